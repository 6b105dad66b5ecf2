package internal

// In this file, we defined all ast nodes of the language according to its grammar. A source file is a
// list of function declarations, there are no globals, imports or nested functions.

type Type int

const (
	IntType Type = iota
	FloatType
	BoolType
	VoidType
	UnknownType // Result of an expression whose type could not be resolved.
)

var typeNames = [...]string{
	IntType:     "int",
	FloatType:   "float",
	BoolType:    "bool",
	VoidType:    "void",
	UnknownType: "unknown",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t Type) isNumeric() bool {
	return t == IntType || t == FloatType
}

// typeOfToken maps a type keyword to its Type.
func typeOfToken(tp TokenType) (Type, bool) {
	switch tp {
	case IntTP:
		return IntType, true
	case FloatTP:
		return FloatType, true
	case BoolTP:
		return BoolType, true
	case VoidTP:
		return VoidType, true
	}
	return UnknownType, false
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) Pos() Position {
	return p
}

func positionOf(token *Token) Position {
	return Position{Line: token.Line, Column: token.Column}
}

// Node is implemented by the node types of this file only.
type Node interface {
	Pos() Position
	node()
}

type Statement interface {
	Node
	statement()
}

type Expression interface {
	Node
	expression()
}

type Program struct {
	Position
	Functions []*FunctionDeclaration
}

type FunctionDeclaration struct {
	Position
	ReturnType Type
	Name       string
	Params     []*Parameter
	Body       *Block
}

type Parameter struct {
	Position
	Type Type
	Name string
}

type Block struct {
	Position
	Statements []Statement
}

type VariableDeclaration struct {
	Position
	Type        Type
	Name        string
	Initializer Expression // nil when the variable is only declared.
}

type AssignmentStatement struct {
	Position
	Name  string
	Value Expression
}

type IfStatement struct {
	Position
	Condition Expression
	Then      *Block
	Else      *Block // An else if is an Else block holding one IfStatement.
}

type WhileStatement struct {
	Position
	Condition Expression
	Body      *Block
}

type ReturnStatement struct {
	Position
	Value Expression
}

type ExpressionStatement struct {
	Position
	Expression Expression
}

// BinaryExpression is positioned at its operator.
type BinaryExpression struct {
	Position
	Operator string
	Left     Expression
	Right    Expression
}

type UnaryExpression struct {
	Position
	Operator string
	Operand  Expression
}

type CallExpression struct {
	Position
	Callee    Expression
	Arguments []Expression
}

type Identifier struct {
	Position
	Name string
}

type IntegerLiteral struct {
	Position
	Text string
}

type FloatLiteral struct {
	Position
	Text string
}

type BooleanLiteral struct {
	Position
	Value bool
}

func (*Program) node()             {}
func (*FunctionDeclaration) node() {}
func (*Parameter) node()           {}
func (*Block) node()               {}
func (*VariableDeclaration) node() {}
func (*AssignmentStatement) node() {}
func (*IfStatement) node()         {}
func (*WhileStatement) node()      {}
func (*ReturnStatement) node()     {}
func (*ExpressionStatement) node() {}
func (*BinaryExpression) node()    {}
func (*UnaryExpression) node()     {}
func (*CallExpression) node()      {}
func (*Identifier) node()          {}
func (*IntegerLiteral) node()      {}
func (*FloatLiteral) node()        {}
func (*BooleanLiteral) node()      {}

func (*VariableDeclaration) statement() {}
func (*AssignmentStatement) statement() {}
func (*IfStatement) statement()         {}
func (*WhileStatement) statement()      {}
func (*ReturnStatement) statement()     {}
func (*ExpressionStatement) statement() {}

func (*BinaryExpression) expression() {}
func (*UnaryExpression) expression()  {}
func (*CallExpression) expression()   {}
func (*Identifier) expression()       {}
func (*IntegerLiteral) expression()   {}
func (*FloatLiteral) expression()     {}
func (*BooleanLiteral) expression()   {}

package internal

import (
	"fmt"
)

// Analyzer resolves names and checks types in one depth first walk. Every visit returns the type of
// the node, statements return VoidType. An expression whose type can't be resolved is UnknownType
// and no further errors are reported on its account.
type Analyzer struct {
	table           *SymbolTable
	errors          Diagnostics
	types           map[Expression]Type
	currentFunction *Symbol
	declarations    map[string]int
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze checks program and returns the frozen symbol table it built.
func (analyzer *Analyzer) Analyze(program *Program) (*SymbolTable, Diagnostics) {
	analyzer.table = NewSymbolTable()
	analyzer.errors = nil
	analyzer.types = map[Expression]Type{}
	analyzer.currentFunction = nil
	analyzer.declarations = map[string]int{}
	if program != nil {
		Accept[Type](program, analyzer)
	}
	analyzer.table.Freeze()
	return analyzer.table, analyzer.errors
}

// TypeOf returns the type recorded for expr by the last Analyze call.
func (analyzer *Analyzer) TypeOf(expr Expression) Type {
	if t, exist := analyzer.types[expr]; exist {
		return t
	}
	return UnknownType
}

// compatible reports whether a value of type actual can be used where expected is required. An int
// widens to a float, nothing else converts.
func compatible(expected, actual Type) bool {
	if expected == UnknownType || actual == UnknownType {
		return true
	}
	return expected == actual || (expected == FloatType && actual == IntType)
}

func (analyzer *Analyzer) makeError(node Node, format string, args ...interface{}) {
	pos := node.Pos()
	analyzer.errors = append(analyzer.errors, &Diagnostic{
		Kind:    SemanticError,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line,
		Column:  pos.Column,
	})
}

func (analyzer *Analyzer) typed(expr Expression, t Type) Type {
	analyzer.types[expr] = t
	return t
}

func (analyzer *Analyzer) check(node Node) Type {
	return Accept[Type](node, analyzer)
}

func (analyzer *Analyzer) define(node Node, symbol *Symbol) bool {
	_, defined, err := analyzer.table.Define(symbol)
	if err != nil {
		analyzer.makeError(node, "%v", err)
		return false
	}
	return defined
}

func (analyzer *Analyzer) VisitProgram(node *Program) Type {
	for _, function := range node.Functions {
		analyzer.check(function)
	}
	return VoidType
}

// VisitFunctionDeclaration binds the function before its body, so a function may call itself but
// not one declared further down.
func (analyzer *Analyzer) VisitFunctionDeclaration(node *FunctionDeclaration) Type {
	signature := &Signature{ReturnType: node.ReturnType}
	for _, param := range node.Params {
		signature.ParamTypes = append(signature.ParamTypes, param.Type)
	}
	symbol := &Symbol{
		Name:      node.Name,
		Type:      node.ReturnType,
		Kind:      FunctionSymbol,
		Line:      node.Line,
		Column:    node.Column,
		Signature: signature,
	}
	analyzer.declarations[node.Name]++
	scopeName := node.Name
	if !analyzer.define(node, symbol) {
		analyzer.makeError(node, "Function already declared: %s", node.Name)
		scopeName = fmt.Sprintf("%s#%d", node.Name, analyzer.declarations[node.Name])
	}
	if analyzer.table.HasScope(scopeName) {
		scopeName = fmt.Sprintf("%s#%d", node.Name, analyzer.declarations[node.Name])
	}
	if _, err := analyzer.table.EnterScope(scopeName); err != nil {
		analyzer.makeError(node, "%v", err)
		return VoidType
	}
	analyzer.currentFunction = symbol
	for _, param := range node.Params {
		analyzer.check(param)
	}
	if node.Body != nil {
		analyzer.check(node.Body)
	}
	analyzer.currentFunction = nil
	analyzer.table.ExitScope()
	return VoidType
}

func (analyzer *Analyzer) VisitParameter(node *Parameter) Type {
	symbol := &Symbol{Name: node.Name, Type: node.Type, Kind: ParameterSymbol, Line: node.Line, Column: node.Column}
	if !analyzer.define(node, symbol) {
		analyzer.makeError(node, "Parameter already declared: %s", node.Name)
	}
	return VoidType
}

func (analyzer *Analyzer) VisitBlock(node *Block) Type {
	for _, statement := range node.Statements {
		analyzer.check(statement)
	}
	return VoidType
}

// VisitVariableDeclaration checks the initializer before binding the name, so int x = x; refers to
// an outer x.
func (analyzer *Analyzer) VisitVariableDeclaration(node *VariableDeclaration) Type {
	initializerType := UnknownType
	if node.Initializer != nil {
		initializerType = analyzer.check(node.Initializer)
	}
	symbol := &Symbol{Name: node.Name, Type: node.Type, Kind: VariableSymbol, Line: node.Line, Column: node.Column}
	if !analyzer.define(node, symbol) {
		analyzer.makeError(node, "Variable already declared: %s", node.Name)
	}
	if node.Initializer != nil && !compatible(node.Type, initializerType) {
		analyzer.makeError(node, "Type mismatch in initializer of %s: expected %s, got %s", node.Name,
			node.Type, initializerType)
	}
	return VoidType
}

func (analyzer *Analyzer) VisitAssignmentStatement(node *AssignmentStatement) Type {
	valueType := analyzer.check(node.Value)
	symbol := analyzer.table.LookUp(node.Name)
	switch {
	case symbol == nil:
		analyzer.makeError(node, "Undefined identifier: %s", node.Name)
	case symbol.Kind == FunctionSymbol:
		analyzer.makeError(node, "Cannot assign to function: %s", node.Name)
	case !compatible(symbol.Type, valueType):
		analyzer.makeError(node, "Type mismatch in assignment to %s: expected %s, got %s", node.Name,
			symbol.Type, valueType)
	}
	return VoidType
}

func (analyzer *Analyzer) checkCondition(statement string, condition Expression) {
	conditionType := analyzer.check(condition)
	if conditionType != BoolType && conditionType != UnknownType {
		analyzer.makeError(condition, "Condition of %s must be bool, got %s", statement, conditionType)
	}
}

func (analyzer *Analyzer) VisitIfStatement(node *IfStatement) Type {
	analyzer.checkCondition("if", node.Condition)
	analyzer.check(node.Then)
	if node.Else != nil {
		analyzer.check(node.Else)
	}
	return VoidType
}

func (analyzer *Analyzer) VisitWhileStatement(node *WhileStatement) Type {
	analyzer.checkCondition("while", node.Condition)
	analyzer.check(node.Body)
	return VoidType
}

func (analyzer *Analyzer) VisitReturnStatement(node *ReturnStatement) Type {
	valueType := VoidType
	if node.Value != nil {
		valueType = analyzer.check(node.Value)
	}
	function := analyzer.currentFunction
	if function == nil {
		analyzer.makeError(node, "Return outside of function")
		return VoidType
	}
	expected := function.Signature.ReturnType
	switch {
	case expected == VoidType:
		if node.Value != nil && valueType != VoidType && valueType != UnknownType {
			analyzer.makeError(node, "Void function cannot return a value")
		}
	case node.Value == nil:
		analyzer.makeError(node, "Missing return value: function %s returns %s", function.Name, expected)
	case !compatible(expected, valueType):
		analyzer.makeError(node, "Return type mismatch: expected %s, got %s", expected, valueType)
	}
	return VoidType
}

func (analyzer *Analyzer) VisitExpressionStatement(node *ExpressionStatement) Type {
	analyzer.check(node.Expression)
	return VoidType
}

func (analyzer *Analyzer) VisitBinaryExpression(node *BinaryExpression) Type {
	left, right := analyzer.check(node.Left), analyzer.check(node.Right)
	switch node.Operator {
	case "+", "-", "*", "/":
		if left == UnknownType || right == UnknownType {
			return analyzer.typed(node, UnknownType)
		}
		if !left.isNumeric() || !right.isNumeric() {
			analyzer.makeError(node, "Operator %s requires numeric operands, got %s and %s", node.Operator, left, right)
			return analyzer.typed(node, IntType)
		}
		if left == FloatType || right == FloatType {
			return analyzer.typed(node, FloatType)
		}
		return analyzer.typed(node, IntType)
	case "==", "!=":
		if !compatible(left, right) && !compatible(right, left) {
			analyzer.makeError(node, "Operator %s requires compatible operands, got %s and %s", node.Operator, left, right)
		}
	case "<", ">", "<=", ">=":
		if left != UnknownType && right != UnknownType && (!left.isNumeric() || !right.isNumeric()) {
			analyzer.makeError(node, "Operator %s requires numeric operands, got %s and %s", node.Operator, left, right)
		}
	case "&&", "||":
		if !compatible(BoolType, left) || !compatible(BoolType, right) {
			analyzer.makeError(node, "Operator %s requires bool operands, got %s and %s", node.Operator, left, right)
		}
	default:
		analyzer.makeError(node, "Unknown operator: %s", node.Operator)
		return analyzer.typed(node, UnknownType)
	}
	return analyzer.typed(node, BoolType)
}

func (analyzer *Analyzer) VisitUnaryExpression(node *UnaryExpression) Type {
	operand := analyzer.check(node.Operand)
	switch node.Operator {
	case "-":
		if operand != UnknownType && !operand.isNumeric() {
			analyzer.makeError(node, "Operator - requires a numeric operand, got %s", operand)
		}
		return analyzer.typed(node, operand)
	case "!":
		if !compatible(BoolType, operand) {
			analyzer.makeError(node, "Operator ! requires a bool operand, got %s", operand)
		}
		return analyzer.typed(node, BoolType)
	}
	analyzer.makeError(node, "Unknown operator: %s", node.Operator)
	return analyzer.typed(node, UnknownType)
}

func (analyzer *Analyzer) checkArguments(args []Expression) []Type {
	argTypes := make([]Type, 0, len(args))
	for _, arg := range args {
		argTypes = append(argTypes, analyzer.check(arg))
	}
	return argTypes
}

// VisitCallExpression checks a call. Only a function name can be called and the arguments are matched
// against the parameters by position.
func (analyzer *Analyzer) VisitCallExpression(node *CallExpression) Type {
	callee, isIdentifier := node.Callee.(*Identifier)
	if !isIdentifier {
		analyzer.check(node.Callee)
		analyzer.checkArguments(node.Arguments)
		analyzer.makeError(node, "Expression is not callable")
		return analyzer.typed(node, UnknownType)
	}
	argTypes := analyzer.checkArguments(node.Arguments)
	symbol := analyzer.table.LookUp(callee.Name)
	if symbol == nil {
		analyzer.makeError(node, "Undefined function: %s", callee.Name)
		analyzer.typed(callee, UnknownType)
		return analyzer.typed(node, UnknownType)
	}
	if symbol.Kind != FunctionSymbol {
		analyzer.makeError(node, "Not a function: %s", callee.Name)
		analyzer.typed(callee, symbol.Type)
		return analyzer.typed(node, UnknownType)
	}
	analyzer.typed(callee, symbol.Type)
	paramTypes := symbol.Signature.ParamTypes
	if len(paramTypes) != len(argTypes) {
		analyzer.makeError(node, "Argument count mismatch for %s: expected %d, got %d", callee.Name,
			len(paramTypes), len(argTypes))
		return analyzer.typed(node, symbol.Signature.ReturnType)
	}
	for i, paramType := range paramTypes {
		if !compatible(paramType, argTypes[i]) {
			analyzer.makeError(node.Arguments[i], "Argument %d type mismatch for %s: expected %s, got %s", i+1,
				callee.Name, paramType, argTypes[i])
		}
	}
	return analyzer.typed(node, symbol.Signature.ReturnType)
}

func (analyzer *Analyzer) VisitIdentifier(node *Identifier) Type {
	symbol := analyzer.table.LookUp(node.Name)
	if symbol == nil {
		analyzer.makeError(node, "Undefined identifier: %s", node.Name)
		return analyzer.typed(node, UnknownType)
	}
	if symbol.Kind == FunctionSymbol {
		analyzer.makeError(node, "Function used as a value: %s", node.Name)
		return analyzer.typed(node, UnknownType)
	}
	return analyzer.typed(node, symbol.Type)
}

func (analyzer *Analyzer) VisitIntegerLiteral(node *IntegerLiteral) Type {
	return analyzer.typed(node, IntType)
}

func (analyzer *Analyzer) VisitFloatLiteral(node *FloatLiteral) Type {
	return analyzer.typed(node, FloatType)
}

func (analyzer *Analyzer) VisitBooleanLiteral(node *BooleanLiteral) Type {
	return analyzer.typed(node, BoolType)
}

// Analyze runs a fresh Analyzer over program.
func Analyze(program *Program) (*SymbolTable, Diagnostics) {
	return NewAnalyzer().Analyze(program)
}

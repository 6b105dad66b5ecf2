package internal

import (
	"strconv"

	"three_address_compiler/tac"
)

// Generator linearizes a checked program into three address code. Temporaries and labels are
// numbered from zero on every Generate call and never reused within one.
//
// Each expression visit returns the name holding its value: a temporary for operators and calls, the
// name or literal text itself for identifiers and literals. Statement visits return "".
type Generator struct {
	tempCounter  int
	labelCounter int
	instructions []tac.Instruction
}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate expects a program without lexical, parse or semantic errors.
func (generator *Generator) Generate(program *Program) []tac.Instruction {
	generator.tempCounter, generator.labelCounter, generator.instructions = 0, 0, nil
	if program != nil {
		generator.generate(program)
	}
	return generator.instructions
}

func (generator *Generator) generate(node Node) string {
	return Accept[string](node, generator)
}

func (generator *Generator) writeOutput(instruction tac.Instruction) {
	generator.instructions = append(generator.instructions, instruction)
}

func (generator *Generator) newTemp() string {
	temp := tac.Temp(generator.tempCounter)
	generator.tempCounter++
	return temp
}

func (generator *Generator) newLabel() string {
	label := tac.LabelName(generator.labelCounter)
	generator.labelCounter++
	return label
}

func (generator *Generator) VisitProgram(node *Program) string {
	for _, function := range node.Functions {
		generator.generate(function)
	}
	return ""
}

// FUNCTION name:
// body
// END_FUNCTION name
func (generator *Generator) VisitFunctionDeclaration(node *FunctionDeclaration) string {
	generator.writeOutput(tac.Function(node.Name))
	for _, param := range node.Params {
		generator.generate(param)
	}
	generator.generate(node.Body)
	generator.writeOutput(tac.EndFunction(node.Name))
	return ""
}

// Parameters are bound by the caller's PARAM instructions, nothing is emitted for them.
func (generator *Generator) VisitParameter(node *Parameter) string {
	return ""
}

func (generator *Generator) VisitBlock(node *Block) string {
	for _, statement := range node.Statements {
		generator.generate(statement)
	}
	return ""
}

func (generator *Generator) VisitVariableDeclaration(node *VariableDeclaration) string {
	if node.Initializer == nil {
		generator.writeOutput(tac.Declare(node.Name))
		return ""
	}
	value := generator.generate(node.Initializer)
	generator.writeOutput(tac.Assign(node.Name, value))
	return ""
}

func (generator *Generator) VisitAssignmentStatement(node *AssignmentStatement) string {
	value := generator.generate(node.Value)
	generator.writeOutput(tac.Assign(node.Name, value))
	return ""
}

// Without else:              With else:
//
//	IF_FALSE cond GOTO L1      IF_FALSE cond GOTO Lelse
//	then                       then
//	L1:                        GOTO Lend
//	                           Lelse:
//	                           else
//	                           Lend:
func (generator *Generator) VisitIfStatement(node *IfStatement) string {
	if node.Else == nil {
		endLabel := generator.newLabel()
		condition := generator.generate(node.Condition)
		generator.writeOutput(tac.IfFalse(condition, endLabel))
		generator.generate(node.Then)
		generator.writeOutput(tac.Label(endLabel))
		return ""
	}
	elseLabel, endLabel := generator.newLabel(), generator.newLabel()
	condition := generator.generate(node.Condition)
	generator.writeOutput(tac.IfFalse(condition, elseLabel))
	generator.generate(node.Then)
	generator.writeOutput(tac.Goto(endLabel))
	generator.writeOutput(tac.Label(elseLabel))
	generator.generate(node.Else)
	generator.writeOutput(tac.Label(endLabel))
	return ""
}

//	Lstart:
//	cond
//	IF_FALSE cond GOTO Lend
//	body
//	GOTO Lstart
//	Lend:
func (generator *Generator) VisitWhileStatement(node *WhileStatement) string {
	startLabel, endLabel := generator.newLabel(), generator.newLabel()
	generator.writeOutput(tac.Label(startLabel))
	condition := generator.generate(node.Condition)
	generator.writeOutput(tac.IfFalse(condition, endLabel))
	generator.generate(node.Body)
	generator.writeOutput(tac.Goto(startLabel))
	generator.writeOutput(tac.Label(endLabel))
	return ""
}

func (generator *Generator) VisitReturnStatement(node *ReturnStatement) string {
	if node.Value == nil {
		generator.writeOutput(tac.Return(""))
		return ""
	}
	generator.writeOutput(tac.Return(generator.generate(node.Value)))
	return ""
}

// The value of an expression statement is computed and dropped.
func (generator *Generator) VisitExpressionStatement(node *ExpressionStatement) string {
	generator.generate(node.Expression)
	return ""
}

func (generator *Generator) VisitBinaryExpression(node *BinaryExpression) string {
	left := generator.generate(node.Left)
	right := generator.generate(node.Right)
	temp := generator.newTemp()
	generator.writeOutput(tac.Binary(temp, left, node.Operator, right))
	return temp
}

func (generator *Generator) VisitUnaryExpression(node *UnaryExpression) string {
	operand := generator.generate(node.Operand)
	temp := generator.newTemp()
	generator.writeOutput(tac.Unary(temp, node.Operator, operand))
	return temp
}

// All arguments are evaluated before the first PARAM, so PARAMs of a nested call never interleave.
func (generator *Generator) VisitCallExpression(node *CallExpression) string {
	callee := generator.generate(node.Callee)
	args := make([]string, 0, len(node.Arguments))
	for _, arg := range node.Arguments {
		args = append(args, generator.generate(arg))
	}
	for _, arg := range args {
		generator.writeOutput(tac.Param(arg))
	}
	temp := generator.newTemp()
	generator.writeOutput(tac.Call(temp, callee, len(args)))
	return temp
}

func (generator *Generator) VisitIdentifier(node *Identifier) string {
	return node.Name
}

func (generator *Generator) VisitIntegerLiteral(node *IntegerLiteral) string {
	return node.Text
}

func (generator *Generator) VisitFloatLiteral(node *FloatLiteral) string {
	return node.Text
}

func (generator *Generator) VisitBooleanLiteral(node *BooleanLiteral) string {
	return strconv.FormatBool(node.Value)
}

// Generate runs a fresh Generator over program.
func Generate(program *Program) []tac.Instruction {
	return NewGenerator().Generate(program)
}

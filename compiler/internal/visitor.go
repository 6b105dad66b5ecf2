package internal

import (
	"fmt"
)

// Visitor has one method per node kind. Every phase walking the tree implements it, so a new node kind
// does not compile until each phase handles it.
type Visitor[R any] interface {
	VisitProgram(node *Program) R
	VisitFunctionDeclaration(node *FunctionDeclaration) R
	VisitParameter(node *Parameter) R
	VisitBlock(node *Block) R
	VisitVariableDeclaration(node *VariableDeclaration) R
	VisitAssignmentStatement(node *AssignmentStatement) R
	VisitIfStatement(node *IfStatement) R
	VisitWhileStatement(node *WhileStatement) R
	VisitReturnStatement(node *ReturnStatement) R
	VisitExpressionStatement(node *ExpressionStatement) R
	VisitBinaryExpression(node *BinaryExpression) R
	VisitUnaryExpression(node *UnaryExpression) R
	VisitCallExpression(node *CallExpression) R
	VisitIdentifier(node *Identifier) R
	VisitIntegerLiteral(node *IntegerLiteral) R
	VisitFloatLiteral(node *FloatLiteral) R
	VisitBooleanLiteral(node *BooleanLiteral) R
}

// Accept dispatches node to the matching method of visitor.
func Accept[R any](node Node, visitor Visitor[R]) R {
	switch n := node.(type) {
	case *Program:
		return visitor.VisitProgram(n)
	case *FunctionDeclaration:
		return visitor.VisitFunctionDeclaration(n)
	case *Parameter:
		return visitor.VisitParameter(n)
	case *Block:
		return visitor.VisitBlock(n)
	case *VariableDeclaration:
		return visitor.VisitVariableDeclaration(n)
	case *AssignmentStatement:
		return visitor.VisitAssignmentStatement(n)
	case *IfStatement:
		return visitor.VisitIfStatement(n)
	case *WhileStatement:
		return visitor.VisitWhileStatement(n)
	case *ReturnStatement:
		return visitor.VisitReturnStatement(n)
	case *ExpressionStatement:
		return visitor.VisitExpressionStatement(n)
	case *BinaryExpression:
		return visitor.VisitBinaryExpression(n)
	case *UnaryExpression:
		return visitor.VisitUnaryExpression(n)
	case *CallExpression:
		return visitor.VisitCallExpression(n)
	case *Identifier:
		return visitor.VisitIdentifier(n)
	case *IntegerLiteral:
		return visitor.VisitIntegerLiteral(n)
	case *FloatLiteral:
		return visitor.VisitFloatLiteral(n)
	case *BooleanLiteral:
		return visitor.VisitBooleanLiteral(n)
	}
	panic(fmt.Sprintf("unexpected node %T", node))
}

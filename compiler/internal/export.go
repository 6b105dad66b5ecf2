package internal

import (
	"strconv"
)

// NodeRecord is the plain form of a node handed to presentation layers.
type NodeRecord struct {
	Kind     string        `json:"kind"`
	Value    string        `json:"value,omitempty"`
	Type     string        `json:"type,omitempty"`
	Line     int           `json:"line"`
	Column   int           `json:"column"`
	Children []*NodeRecord `json:"children,omitempty"`
}

// Export converts a tree into records, children ordered as the node kind defines them.
func Export(node Node) *NodeRecord {
	if node == nil {
		return nil
	}
	return Accept[*NodeRecord](node, exporter{})
}

type exporter struct{}

func (e exporter) record(kind string, node Node, value string, children ...*NodeRecord) *NodeRecord {
	pos := node.Pos()
	return &NodeRecord{Kind: kind, Value: value, Line: pos.Line, Column: pos.Column, Children: children}
}

func (e exporter) export(node Node) *NodeRecord {
	return Accept[*NodeRecord](node, e)
}

func (e exporter) VisitProgram(node *Program) *NodeRecord {
	var children []*NodeRecord
	for _, function := range node.Functions {
		children = append(children, e.export(function))
	}
	return e.record("Program", node, "", children...)
}

func (e exporter) VisitFunctionDeclaration(node *FunctionDeclaration) *NodeRecord {
	var children []*NodeRecord
	for _, param := range node.Params {
		children = append(children, e.export(param))
	}
	if node.Body != nil {
		children = append(children, e.export(node.Body))
	}
	ret := e.record("FunctionDeclaration", node, node.Name, children...)
	ret.Type = node.ReturnType.String()
	return ret
}

func (e exporter) VisitParameter(node *Parameter) *NodeRecord {
	ret := e.record("Parameter", node, node.Name)
	ret.Type = node.Type.String()
	return ret
}

func (e exporter) VisitBlock(node *Block) *NodeRecord {
	var children []*NodeRecord
	for _, statement := range node.Statements {
		children = append(children, e.export(statement))
	}
	return e.record("Block", node, "", children...)
}

func (e exporter) VisitVariableDeclaration(node *VariableDeclaration) *NodeRecord {
	var children []*NodeRecord
	if node.Initializer != nil {
		children = append(children, e.export(node.Initializer))
	}
	ret := e.record("VariableDeclaration", node, node.Name, children...)
	ret.Type = node.Type.String()
	return ret
}

func (e exporter) VisitAssignmentStatement(node *AssignmentStatement) *NodeRecord {
	return e.record("AssignmentStatement", node, node.Name, e.export(node.Value))
}

func (e exporter) VisitIfStatement(node *IfStatement) *NodeRecord {
	children := []*NodeRecord{e.export(node.Condition), e.export(node.Then)}
	if node.Else != nil {
		children = append(children, e.export(node.Else))
	}
	return e.record("IfStatement", node, "", children...)
}

func (e exporter) VisitWhileStatement(node *WhileStatement) *NodeRecord {
	return e.record("WhileStatement", node, "", e.export(node.Condition), e.export(node.Body))
}

func (e exporter) VisitReturnStatement(node *ReturnStatement) *NodeRecord {
	if node.Value == nil {
		return e.record("ReturnStatement", node, "")
	}
	return e.record("ReturnStatement", node, "", e.export(node.Value))
}

func (e exporter) VisitExpressionStatement(node *ExpressionStatement) *NodeRecord {
	return e.record("ExpressionStatement", node, "", e.export(node.Expression))
}

func (e exporter) VisitBinaryExpression(node *BinaryExpression) *NodeRecord {
	return e.record("BinaryExpression", node, node.Operator, e.export(node.Left), e.export(node.Right))
}

func (e exporter) VisitUnaryExpression(node *UnaryExpression) *NodeRecord {
	return e.record("UnaryExpression", node, node.Operator, e.export(node.Operand))
}

func (e exporter) VisitCallExpression(node *CallExpression) *NodeRecord {
	children := []*NodeRecord{e.export(node.Callee)}
	for _, argument := range node.Arguments {
		children = append(children, e.export(argument))
	}
	return e.record("CallExpression", node, "", children...)
}

func (e exporter) VisitIdentifier(node *Identifier) *NodeRecord {
	return e.record("Identifier", node, node.Name)
}

func (e exporter) VisitIntegerLiteral(node *IntegerLiteral) *NodeRecord {
	return e.record("IntegerLiteral", node, node.Text)
}

func (e exporter) VisitFloatLiteral(node *FloatLiteral) *NodeRecord {
	return e.record("FloatLiteral", node, node.Text)
}

func (e exporter) VisitBooleanLiteral(node *BooleanLiteral) *NodeRecord {
	return e.record("BooleanLiteral", node, strconv.FormatBool(node.Value))
}

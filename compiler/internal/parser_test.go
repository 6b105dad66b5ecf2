package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sexpr prints an expression in prefix form, e.g. (+ a (* b c)).
func sexpr(expr Expression) string {
	switch e := expr.(type) {
	case *BinaryExpression:
		return "(" + e.Operator + " " + sexpr(e.Left) + " " + sexpr(e.Right) + ")"
	case *UnaryExpression:
		return "(" + e.Operator + " " + sexpr(e.Operand) + ")"
	case *CallExpression:
		parts := []string{"call", sexpr(e.Callee)}
		for _, arg := range e.Arguments {
			parts = append(parts, sexpr(arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *Identifier:
		return e.Name
	case *IntegerLiteral:
		return e.Text
	case *FloatLiteral:
		return e.Text
	case *BooleanLiteral:
		if e.Value {
			return "true"
		}
		return "false"
	}
	return "?"
}

func parseSource(t *testing.T, source string) (*Program, Diagnostics) {
	tokens, errs := Tokenize(source)
	require.Empty(t, errs, source)
	return Parse(tokens)
}

func TestParser_ParseExpression(t *testing.T) {
	testData := []struct {
		Content  string
		Expected string
	}{
		{Content: "a + b * c", Expected: "(+ a (* b c))"},
		{Content: "a * b + c * d", Expected: "(+ (* a b) (* c d))"},
		{Content: "a - b - c", Expected: "(- (- a b) c)"},
		{Content: "a / b * c", Expected: "(* (/ a b) c)"},
		{Content: "a || b && c", Expected: "(|| a (&& b c))"},
		{Content: "a && b || c && d", Expected: "(|| (&& a b) (&& c d))"},
		{Content: "a == b < c", Expected: "(== a (< b c))"},
		{Content: "a != b == c", Expected: "(== (!= a b) c)"},
		{Content: "a < b + 1", Expected: "(< a (+ b 1))"},
		{Content: "!a && -b > c", Expected: "(&& (! a) (> (- b) c))"},
		{Content: "(a + b) * c", Expected: "(* (+ a b) c)"},
		{Content: "((a))", Expected: "a"},
		{Content: "--a", Expected: "(- (- a))"},
		{Content: "5 + -2", Expected: "(+ 5 (- 2))"},
		{Content: "f()", Expected: "(call f)"},
		{Content: "f(a, b + 1)(2)", Expected: "(call (call f a (+ b 1)) 2)"},
		{Content: "-f(x) * 2", Expected: "(* (- (call f x)) 2)"},
		{Content: "1.5 >= true", Expected: "(>= 1.5 true)"},
		{Content: "a <= b || false", Expected: "(|| (<= a b) false)"},
	}
	parser := NewParser()
	for _, data := range testData {
		tokens, errs := Tokenize(data.Content)
		require.Empty(t, errs)
		parser.reset(tokens)
		expr, err := parser.parseExpression()
		require.Nil(t, err, data.Content)
		assert.Equal(t, data.Expected, sexpr(expr), data.Content)
		assert.True(t, parser.isAtEnd(), data.Content)
	}
}

func TestParser_BinaryPositionIsOperator(t *testing.T) {
	tokens, _ := Tokenize("a +\n  b")
	parser := NewParser()
	parser.reset(tokens)
	expr, err := parser.parseExpression()
	require.Nil(t, err)
	assert.Equal(t, Position{Line: 1, Column: 3}, expr.Pos())
}

func TestParser_Statements(t *testing.T) {
	source := `int f(int a, float b) {
	int x;
	bool ok = a < b;
	x = a * 2;
	if (ok) { x = 1; } else if (!ok) { x = 2; } else { x = 3; }
	while (x > 0) { x = x - 1; }
	f(x, b);
	return x;
}
void g() { return; }`
	program, errs := parseSource(t, source)
	require.Empty(t, errs)
	require.Len(t, program.Functions, 2)

	f := program.Functions[0]
	assert.Equal(t, "f", f.Name)
	assert.Equal(t, IntType, f.ReturnType)
	require.Len(t, f.Params, 2)
	assert.Equal(t, Parameter{Position: Position{Line: 1, Column: 7}, Type: IntType, Name: "a"}, *f.Params[0])
	assert.Equal(t, FloatType, f.Params[1].Type)

	statements := f.Body.Statements
	require.Len(t, statements, 7)
	declaration := statements[0].(*VariableDeclaration)
	assert.Equal(t, "x", declaration.Name)
	assert.Nil(t, declaration.Initializer)
	assert.Equal(t, "(< a b)", sexpr(statements[1].(*VariableDeclaration).Initializer))
	assignment := statements[2].(*AssignmentStatement)
	assert.Equal(t, "x", assignment.Name)
	assert.Equal(t, "(* a 2)", sexpr(assignment.Value))

	ifStatement := statements[3].(*IfStatement)
	require.NotNil(t, ifStatement.Else)
	require.Len(t, ifStatement.Else.Statements, 1)
	elseIf := ifStatement.Else.Statements[0].(*IfStatement)
	assert.Equal(t, "(! ok)", sexpr(elseIf.Condition))
	require.NotNil(t, elseIf.Else)
	assert.Len(t, elseIf.Else.Statements, 1)

	while := statements[4].(*WhileStatement)
	assert.Equal(t, "(> x 0)", sexpr(while.Condition))
	assert.Equal(t, "(call f x b)", sexpr(statements[5].(*ExpressionStatement).Expression))
	assert.Equal(t, "x", sexpr(statements[6].(*ReturnStatement).Value))

	g := program.Functions[1]
	assert.Equal(t, VoidType, g.ReturnType)
	assert.Nil(t, g.Body.Statements[0].(*ReturnStatement).Value)
}

func TestParser_Errors(t *testing.T) {
	testData := []struct {
		Content   string
		Errors    []string
		Functions []string
	}{
		{
			Content:   "int main() {\n int x = ;\n int y = 2;\n y + ;\n return y;\n}",
			Errors:    []string{"Expected expression, got ';'", "Expected expression, got ';'"},
			Functions: []string{"main"},
		},
		{
			Content:   "x int main() { return 0; }",
			Errors:    []string{"Expected function declaration, got 'x'"},
			Functions: []string{"main"},
		},
		{
			Content:   "int main() { int x = 1 return x; }",
			Errors:    []string{"Expected ';' after variable declaration, got 'return'"},
			Functions: []string{"main"},
		},
		{
			Content: "int main( { }",
			Errors:  []string{"Expected parameter type, got '{'"},
		},
		{
			Content: "int main() { return 0;",
			Errors:  []string{"Expected '}' after block, got end of input"},
		},
		{
			Content:   "void main() { void x; }",
			Errors:    []string{"Variable cannot have type void"},
			Functions: []string{"main"},
		},
		{
			Content:   "int f(void a) { return 0; }",
			Errors:    []string{"Parameter cannot have type void"},
			Functions: []string{"f"},
		},
		{
			Content:   "int main() { if x { } return 0; }",
			Errors:    []string{"Expected '(' after if, got 'x'"},
			Functions: []string{"main"},
		},
		{
			Content:   "int main() { f(1, 2; return 0; }",
			Errors:    []string{"Expected ')' after arguments, got ';'"},
			Functions: []string{"main"},
		},
		{
			Content:   "int main() { int = 3; x = (1 + 2; return 0; }",
			Errors:    []string{"Expected variable name, got '='", "Expected ')' after expression, got ';'"},
			Functions: []string{"main"},
		},
		{
			Content: "int (",
			Errors:  []string{"Expected function name, got '('"},
		},
		{
			Content:   "",
			Functions: nil,
		},
	}
	for _, data := range testData {
		program, errs := parseSource(t, data.Content)
		require.NotNil(t, program, data.Content)
		var messages []string
		for _, err := range errs {
			assert.Equal(t, ParseError, err.Kind)
			messages = append(messages, err.Message)
		}
		assert.Equal(t, data.Errors, messages, data.Content)
		var functions []string
		for _, function := range program.Functions {
			functions = append(functions, function.Name)
		}
		assert.Equal(t, data.Functions, functions, data.Content)
	}
}

func TestParser_ErrorPositions(t *testing.T) {
	_, errs := parseSource(t, "int main() {\n int x = ;\n y + ;\n return 0;\n}")
	require.Len(t, errs, 2)
	assert.Equal(t, 2, errs[0].Line)
	assert.Equal(t, 10, errs[0].Column)
	assert.Equal(t, 3, errs[1].Line)
	assert.Equal(t, 6, errs[1].Column)
}

func TestParser_TokensWithoutEOF(t *testing.T) {
	tokens, _ := Tokenize("int main() { return 0; }")
	program, errs := Parse(tokens[:len(tokens)-1])
	assert.Empty(t, errs)
	assert.Len(t, program.Functions, 1)

	program, errs = Parse(nil)
	assert.Empty(t, errs)
	assert.Empty(t, program.Functions)
}

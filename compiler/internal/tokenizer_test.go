package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenKinds(tokens []*Token) []TokenType {
	var ret []TokenType
	for _, token := range tokens {
		ret = append(ret, token.Kind)
	}
	return ret
}

func TestTokenizer_Positions(t *testing.T) {
	tokens, errs := Tokenize("int main() { return 0; }")
	require.Empty(t, errs)
	expected := []Token{
		{Kind: IntTP, Lexeme: "int", Line: 1, Column: 1},
		{Kind: IdentifierTP, Lexeme: "main", Line: 1, Column: 5},
		{Kind: LeftParentThesesTP, Lexeme: "(", Line: 1, Column: 9},
		{Kind: RightParentThesesTP, Lexeme: ")", Line: 1, Column: 10},
		{Kind: LeftBraceTP, Lexeme: "{", Line: 1, Column: 12},
		{Kind: ReturnTP, Lexeme: "return", Line: 1, Column: 14},
		{Kind: IntegerTP, Lexeme: "0", Line: 1, Column: 21},
		{Kind: SemiColonTP, Lexeme: ";", Line: 1, Column: 22},
		{Kind: RightBraceTP, Lexeme: "}", Line: 1, Column: 24},
		{Kind: EOFTP, Lexeme: "", Line: 1, Column: 25},
	}
	require.Len(t, tokens, len(expected))
	for i, token := range tokens {
		assert.Equal(t, expected[i], *token)
	}
}

func TestTokenizer_Kinds(t *testing.T) {
	testData := []struct {
		Content  string
		Expected []TokenType
	}{
		{Content: "", Expected: []TokenType{EOFTP}},
		{Content: "   \n\t ", Expected: []TokenType{EOFTP}},
		{
			Content: "int float bool void if else while return true false",
			Expected: []TokenType{IntTP, FloatTP, BoolTP, VoidTP, IfTP, ElseTP, WhileTP, ReturnTP, TrueTP, FalseTP,
				EOFTP},
		},
		{Content: "integer _x x1 iff", Expected: []TokenType{IdentifierTP, IdentifierTP, IdentifierTP, IdentifierTP, EOFTP}},
		{Content: "{ } ( ) , ;", Expected: []TokenType{LeftBraceTP, RightBraceTP, LeftParentThesesTP,
			RightParentThesesTP, CommaTP, SemiColonTP, EOFTP}},
		{Content: "+ - * / = ! < >", Expected: []TokenType{AddTP, MinusTP, MultiplyTP, DivideTP, AssignTP, NotTP,
			LessTP, GreaterTP, EOFTP}},
		{Content: "== != <= >= && ||", Expected: []TokenType{EqualTP, NotEqualTP, LessEqualTP, GreaterEqualTP, AndTP,
			OrTP, EOFTP}},
		{Content: "a<=b==!c", Expected: []TokenType{IdentifierTP, LessEqualTP, IdentifierTP, EqualTP, NotTP,
			IdentifierTP, EOFTP}},
		{Content: "x=-1", Expected: []TokenType{IdentifierTP, AssignTP, MinusTP, IntegerTP, EOFTP}},
		{Content: "42 4.2 0.125", Expected: []TokenType{IntegerTP, FloatNumberTP, FloatNumberTP, EOFTP}},
		{Content: "1.2.3", Expected: []TokenType{FloatNumberTP, IllegalTP, IntegerTP, EOFTP}},
		{Content: "7.", Expected: []TokenType{IntegerTP, IllegalTP, EOFTP}},
		{Content: "12ab", Expected: []TokenType{IntegerTP, IdentifierTP, EOFTP}},
		{Content: "a // comment\nb", Expected: []TokenType{IdentifierTP, IdentifierTP, EOFTP}},
		{Content: "a /* multiple\nline */ b", Expected: []TokenType{IdentifierTP, IdentifierTP, EOFTP}},
		{Content: "a / b", Expected: []TokenType{IdentifierTP, DivideTP, IdentifierTP, EOFTP}},
	}
	for _, data := range testData {
		tokens, _ := Tokenize(data.Content)
		assert.Equal(t, data.Expected, tokenKinds(tokens), data.Content)
	}
}

func TestTokenizer_Lexemes(t *testing.T) {
	tokens, errs := Tokenize("x1 = 3.75 >= y_")
	require.Empty(t, errs)
	var lexemes []string
	for _, token := range tokens {
		lexemes = append(lexemes, token.Lexeme)
	}
	assert.Equal(t, []string{"x1", "=", "3.75", ">=", "y_", ""}, lexemes)
}

func TestTokenizer_LinesAndColumns(t *testing.T) {
	tokens, errs := Tokenize("// first\nint /* two\n lines */ a\n  b")
	require.Empty(t, errs)
	require.Len(t, tokens, 4)
	assert.Equal(t, Token{Kind: IntTP, Lexeme: "int", Line: 2, Column: 1}, *tokens[0])
	assert.Equal(t, Token{Kind: IdentifierTP, Lexeme: "a", Line: 3, Column: 11}, *tokens[1])
	assert.Equal(t, Token{Kind: IdentifierTP, Lexeme: "b", Line: 4, Column: 3}, *tokens[2])
	assert.Equal(t, EOFTP, tokens[3].Kind)
}

func TestTokenizer_Errors(t *testing.T) {
	testData := []struct {
		Content  string
		Expected []Diagnostic
	}{
		{
			Content:  "int @x;",
			Expected: []Diagnostic{{Kind: LexicalError, Message: "Unexpected character: @", Line: 1, Column: 6}},
		},
		{
			Content:  "a & b",
			Expected: []Diagnostic{{Kind: LexicalError, Message: "Unrecognized operator: &", Line: 1, Column: 3}},
		},
		{
			Content:  "a\n  | b",
			Expected: []Diagnostic{{Kind: LexicalError, Message: "Unrecognized operator: |", Line: 2, Column: 3}},
		},
		{
			Content:  "int /* never closed",
			Expected: []Diagnostic{{Kind: LexicalError, Message: "Unterminated comment", Line: 1, Column: 5}},
		},
		{
			Content: "# $",
			Expected: []Diagnostic{
				{Kind: LexicalError, Message: "Unexpected character: #", Line: 1, Column: 2},
				{Kind: LexicalError, Message: "Unexpected character: $", Line: 1, Column: 4},
			},
		},
		{
			Content:  "é",
			Expected: []Diagnostic{{Kind: LexicalError, Message: "Unexpected character: é", Line: 1, Column: 2}},
		},
	}
	for _, data := range testData {
		tokens, errs := Tokenize(data.Content)
		require.Len(t, errs, len(data.Expected), data.Content)
		for i, err := range errs {
			assert.Equal(t, data.Expected[i], *err, data.Content)
		}
		assert.Equal(t, EOFTP, tokens[len(tokens)-1].Kind)
	}
}

func TestTokenizer_IllegalTokenKeepsScanning(t *testing.T) {
	tokens, errs := Tokenize("int @x;")
	assert.Len(t, errs, 1)
	assert.Equal(t, []TokenType{IntTP, IllegalTP, IdentifierTP, SemiColonTP, EOFTP}, tokenKinds(tokens))
	assert.Equal(t, Token{Kind: IllegalTP, Lexeme: "@", Line: 1, Column: 6}, *tokens[1])
	assert.Equal(t, 6, tokens[2].Column)
}

func TestTokenizer_EOFAlwaysLast(t *testing.T) {
	testData := []string{"", "int", "@@@", "/*", "a && & b", "1.", "\n\n\n"}
	for _, content := range testData {
		tokens, _ := Tokenize(content)
		require.NotEmpty(t, tokens, content)
		eofs := 0
		for _, token := range tokens {
			if token.Kind == EOFTP {
				eofs++
			}
		}
		assert.Equal(t, 1, eofs, content)
		assert.Equal(t, EOFTP, tokens[len(tokens)-1].Kind, content)
	}
}

func TestTokenizer_Reuse(t *testing.T) {
	tokenizer := NewTokenizer()
	first, _ := tokenizer.Tokenize("int a;\nint b;")
	second, _ := tokenizer.Tokenize("int a;\nint b;")
	assert.Equal(t, first, second)
	_, errs := tokenizer.Tokenize("@")
	assert.Len(t, errs, 1)
	_, errs = tokenizer.Tokenize("ok")
	assert.Empty(t, errs)
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "&&", AndTP.String())
	assert.Equal(t, "identifier", IdentifierTP.String())
	assert.Equal(t, "EOF", EOFTP.String())
	assert.Equal(t, "TokenType(99)", TokenType(99).String())
}

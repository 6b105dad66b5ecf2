package internal

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"three_address_compiler/util"
)

// A Tokenizer for the language.

// The language has those elements:
// * KeyWord: int, float, bool, void, if, else, while, return, true, false.
// * Delimiter: {, }, (, ), ,, ;.
// * Operator: +, -, *, /, =, !, <, >, ==, !=, <=, >=, &&, ||.
// * Constant: integer (42), float (4.2)
// * Identifier: letters, digits, underscore, not starting with a digit.
// * Comment: /**/, //.

type TokenType int

const (
	IntTP               TokenType = iota // int
	FloatTP                              // float
	BoolTP                               // bool
	VoidTP                               // void
	IfTP                                 // if
	ElseTP                               // else
	WhileTP                              // while
	ReturnTP                             // return
	TrueTP                               // true
	FalseTP                              // false
	LeftBraceTP                          // {
	RightBraceTP                         // }
	LeftParentThesesTP                   // (
	RightParentThesesTP                  // )
	CommaTP                              // ,
	SemiColonTP                          // ;
	AddTP                                // +
	MinusTP                              // -
	MultiplyTP                           // *
	DivideTP                             // /
	AssignTP                             // =
	NotTP                                // !
	LessTP                               // <
	GreaterTP                            // >
	EqualTP                              // ==
	NotEqualTP                           // !=
	LessEqualTP                          // <=
	GreaterEqualTP                       // >=
	AndTP                                // &&
	OrTP                                 // ||
	IntegerTP                            // 1010
	FloatNumberTP                        // 10.10
	IdentifierTP                         // varA
	IllegalTP                            // @
	EOFTP
)

var tokenTypeNames = [...]string{
	IntTP:               "int",
	FloatTP:             "float",
	BoolTP:              "bool",
	VoidTP:              "void",
	IfTP:                "if",
	ElseTP:              "else",
	WhileTP:             "while",
	ReturnTP:            "return",
	TrueTP:              "true",
	FalseTP:             "false",
	LeftBraceTP:         "{",
	RightBraceTP:        "}",
	LeftParentThesesTP:  "(",
	RightParentThesesTP: ")",
	CommaTP:             ",",
	SemiColonTP:         ";",
	AddTP:               "+",
	MinusTP:             "-",
	MultiplyTP:          "*",
	DivideTP:            "/",
	AssignTP:            "=",
	NotTP:               "!",
	LessTP:              "<",
	GreaterTP:           ">",
	EqualTP:             "==",
	NotEqualTP:          "!=",
	LessEqualTP:         "<=",
	GreaterEqualTP:      ">=",
	AndTP:               "&&",
	OrTP:                "||",
	IntegerTP:           "integer",
	FloatNumberTP:       "float literal",
	IdentifierTP:        "identifier",
	IllegalTP:           "illegal",
	EOFTP:               "EOF",
}

func (tp TokenType) String() string {
	if tp < 0 || int(tp) >= len(tokenTypeNames) {
		return fmt.Sprintf("TokenType(%d)", int(tp))
	}
	return tokenTypeNames[tp]
}

func (tp TokenType) MarshalText() ([]byte, error) {
	return []byte(tp.String()), nil
}

// keyWordTokenTPMap is the mapping from identifier to the corresponding TokenTP.
var keyWordTokenTPMap = map[string]TokenType{
	"int":    IntTP,
	"float":  FloatTP,
	"bool":   BoolTP,
	"void":   VoidTP,
	"if":     IfTP,
	"else":   ElseTP,
	"while":  WhileTP,
	"return": ReturnTP,
	"true":   TrueTP,
	"false":  FalseTP,
}

// simpleSymbolTokenTPMap is the mapping from one character symbols to the corresponding TokenTP.
// & and | are missing on purpose, they only exist doubled.
var simpleSymbolTokenTPMap = map[string]TokenType{
	"{": LeftBraceTP,
	"}": RightBraceTP,
	"(": LeftParentThesesTP,
	")": RightParentThesesTP,
	",": CommaTP,
	";": SemiColonTP,
	"+": AddTP,
	"-": MinusTP,
	"*": MultiplyTP,
	"/": DivideTP,
	"=": AssignTP,
	"!": NotTP,
	"<": LessTP,
	">": GreaterTP,
}

var compoundSymbolTokenTPMap = map[string]TokenType{
	"==": EqualTP,
	"!=": NotEqualTP,
	"<=": LessEqualTP,
	">=": GreaterEqualTP,
	"&&": AndTP,
	"||": OrTP,
}

type Token struct {
	Kind   TokenType `json:"kind"`
	Lexeme string    `json:"lexeme"`
	Line   int       `json:"line"`
	Column int       `json:"column"`
}

func (t *Token) String() string {
	return fmt.Sprintf("Token: {Kind: %s, Lexeme: %s, Line: %d, Column: %d}", t.Kind, t.Lexeme, t.Line, t.Column)
}

type Tokenizer struct {
	source        string
	currentPos    int
	currentLine   int
	currentColumn int
	tokens        []*Token
	errors        Diagnostics
}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize scans source and returns its tokens followed by one EOF token. Lexical errors do not stop
// the scan, they are collected and returned next to the tokens.
func (tokenizer *Tokenizer) Tokenize(source string) ([]*Token, Diagnostics) {
	tokenizer.Reset()
	tokenizer.source = source
	for {
		tokenizer.skipSpaceAndComments()
		if !tokenizer.hasRemainCharacters() {
			break
		}
		tokenizer.tokenNext()
	}
	tokenizer.tokens = append(tokenizer.tokens, &Token{
		Kind:   EOFTP,
		Line:   tokenizer.currentLine,
		Column: tokenizer.currentColumn,
	})
	return tokenizer.tokens, tokenizer.errors
}

func (tokenizer *Tokenizer) Reset() {
	tokenizer.source, tokenizer.currentPos, tokenizer.currentLine, tokenizer.currentColumn = "", 0, 1, 1
	tokenizer.tokens, tokenizer.errors = nil, nil
}

func (tokenizer *Tokenizer) hasRemainCharacters() bool {
	return tokenizer.currentPos < len(tokenizer.source)
}

func (tokenizer *Tokenizer) peek(offset int) byte {
	if tokenizer.currentPos+offset >= len(tokenizer.source) {
		return 0
	}
	return tokenizer.source[tokenizer.currentPos+offset]
}

// stepForward moves over one byte, keeping line and column in step.
func (tokenizer *Tokenizer) stepForward() {
	if tokenizer.source[tokenizer.currentPos] == '\n' {
		tokenizer.currentLine++
		tokenizer.currentColumn = 1
	} else {
		tokenizer.currentColumn++
	}
	tokenizer.currentPos++
}

func (tokenizer *Tokenizer) skipSpaceAndComments() {
	for tokenizer.hasRemainCharacters() {
		b := tokenizer.peek(0)
		switch {
		case b < utf8.RuneSelf && unicode.IsSpace(rune(b)):
			tokenizer.stepForward()
		case b == '/' && tokenizer.peek(1) == '/':
			for tokenizer.hasRemainCharacters() && tokenizer.peek(0) != '\n' {
				tokenizer.stepForward()
			}
		case b == '/' && tokenizer.peek(1) == '*':
			tokenizer.skipMultipleLineComment()
		default:
			return
		}
	}
}

func (tokenizer *Tokenizer) skipMultipleLineComment() {
	startLine, startColumn := tokenizer.currentLine, tokenizer.currentColumn
	tokenizer.stepForward()
	tokenizer.stepForward()
	for tokenizer.hasRemainCharacters() {
		if tokenizer.peek(0) == '*' && tokenizer.peek(1) == '/' {
			tokenizer.stepForward()
			tokenizer.stepForward()
			return
		}
		tokenizer.stepForward()
	}
	tokenizer.makeError(startLine, startColumn, "Unterminated comment")
}

func (tokenizer *Tokenizer) tokenNext() {
	b := tokenizer.peek(0)
	switch {
	case util.IsLetterOrUnderscore(b):
		tokenizer.toKeywordOrIdentifier()
	case util.IsNumber(b):
		tokenizer.tokenNumber()
	case util.IsOperatorStart(b):
		tokenizer.tokenOperator()
	case util.IsDelimiter(b):
		tokenizer.tokenSimpleSymbol(1, simpleSymbolTokenTPMap[string(b)])
	default:
		tokenizer.tokenIllegal()
	}
}

func (tokenizer *Tokenizer) addToken(tp TokenType, startPos, line, column int) {
	tokenizer.tokens = append(tokenizer.tokens, &Token{
		Kind:   tp,
		Lexeme: tokenizer.source[startPos:tokenizer.currentPos],
		Line:   line,
		Column: column,
	})
}

func (tokenizer *Tokenizer) tokenSimpleSymbol(width int, tp TokenType) {
	startPos, line, column := tokenizer.currentPos, tokenizer.currentLine, tokenizer.currentColumn
	for i := 0; i < width; i++ {
		tokenizer.stepForward()
	}
	tokenizer.addToken(tp, startPos, line, column)
}

// tokenOperator tries the two character operator before the one character one.
func (tokenizer *Tokenizer) tokenOperator() {
	if tokenizer.currentPos+2 <= len(tokenizer.source) {
		if tp, ok := compoundSymbolTokenTPMap[tokenizer.source[tokenizer.currentPos:tokenizer.currentPos+2]]; ok {
			tokenizer.tokenSimpleSymbol(2, tp)
			return
		}
	}
	symbol := string(tokenizer.peek(0))
	if tp, ok := simpleSymbolTokenTPMap[symbol]; ok {
		tokenizer.tokenSimpleSymbol(1, tp)
		return
	}
	tokenizer.makeError(tokenizer.currentLine, tokenizer.currentColumn, "Unrecognized operator: "+symbol)
	tokenizer.stepForward()
}

func (tokenizer *Tokenizer) tokenNumber() {
	// Look forward to find a continuous number, a dot only belongs to it when a digit follows.
	startPos, line, column := tokenizer.currentPos, tokenizer.currentLine, tokenizer.currentColumn
	tp := IntegerTP
	for util.IsNumber(tokenizer.peek(0)) {
		tokenizer.stepForward()
	}
	if tokenizer.peek(0) == '.' && util.IsNumber(tokenizer.peek(1)) {
		tp = FloatNumberTP
		tokenizer.stepForward()
		for util.IsNumber(tokenizer.peek(0)) {
			tokenizer.stepForward()
		}
	}
	tokenizer.addToken(tp, startPos, line, column)
}

func (tokenizer *Tokenizer) toKeywordOrIdentifier() {
	startPos, line, column := tokenizer.currentPos, tokenizer.currentLine, tokenizer.currentColumn
	for util.IsLetterOrUnderscoreOrNumber(tokenizer.peek(0)) {
		tokenizer.stepForward()
	}
	tp, isKeyWord := keyWordTokenTPMap[tokenizer.source[startPos:tokenizer.currentPos]]
	if !isKeyWord {
		tp = IdentifierTP
	}
	tokenizer.addToken(tp, startPos, line, column)
}

// tokenIllegal skips one character. The token and the error are reported at the column after it.
func (tokenizer *Tokenizer) tokenIllegal() {
	startPos := tokenizer.currentPos
	_, size := utf8.DecodeRuneInString(tokenizer.source[tokenizer.currentPos:])
	tokenizer.currentPos += size
	tokenizer.currentColumn++
	lexeme := tokenizer.source[startPos:tokenizer.currentPos]
	tokenizer.addToken(IllegalTP, startPos, tokenizer.currentLine, tokenizer.currentColumn)
	tokenizer.makeError(tokenizer.currentLine, tokenizer.currentColumn, "Unexpected character: "+lexeme)
}

func (tokenizer *Tokenizer) makeError(line, column int, msg string) {
	tokenizer.errors = append(tokenizer.errors, &Diagnostic{
		Kind:    LexicalError,
		Message: msg,
		Line:    line,
		Column:  column,
	})
}

// Tokenize runs a fresh Tokenizer over source.
func Tokenize(source string) ([]*Token, Diagnostics) {
	return NewTokenizer().Tokenize(source)
}

package internal

import (
	"fmt"
)

// Parser is a recursive descent parser with one token of lookahead. A failing production records a
// diagnostic and returns an error up to the closest block or to the function loop, where the parser
// skips ahead to a safe token and carries on, so one pass reports as many syntax errors as it can.
type Parser struct {
	currentTokenPos int
	currentTokens   []*Token
	errors          Diagnostics
}

func NewParser() *Parser {
	return &Parser{}
}

// Parse builds a Program from tokens. The program is returned even when errors were found, holding
// every function that parsed.
func (parser *Parser) Parse(tokens []*Token) (*Program, Diagnostics) {
	parser.reset(tokens)
	token, _ := parser.getCurrentToken()
	program := &Program{Position: positionOf(token)}
	for !parser.isAtEnd() {
		function, err := parser.parseFunctionDeclaration()
		if err != nil {
			parser.synchronize()
			continue
		}
		program.Functions = append(program.Functions, function)
	}
	return program, parser.errors
}

func (parser *Parser) reset(tokens []*Token) {
	parser.currentTokenPos, parser.currentTokens, parser.errors = 0, tokens, nil
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOFTP {
		eof := &Token{Kind: EOFTP, Line: 1, Column: 1}
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			eof.Line, eof.Column = last.Line, last.Column+len(last.Lexeme)
		}
		parser.currentTokens = append(append([]*Token{}, tokens...), eof)
	}
}

// type IDENT "(" params? ")" block
func (parser *Parser) parseFunctionDeclaration() (*FunctionDeclaration, error) {
	token, _ := parser.getCurrentToken()
	returnType, isType := typeOfToken(token.Kind)
	if !isType {
		return nil, parser.makeError(token, "Expected function declaration")
	}
	parser.stepForward()
	name, err := parser.consume(IdentifierTP, "Expected function name")
	if err != nil {
		return nil, err
	}
	if _, err = parser.consume(LeftParentThesesTP, "Expected '(' after function name"); err != nil {
		return nil, err
	}
	params, err := parser.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err = parser.consume(RightParentThesesTP, "Expected ')' after parameters"); err != nil {
		return nil, err
	}
	body, err := parser.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FunctionDeclaration{
		Position:   positionOf(token),
		ReturnType: returnType,
		Name:       name.Lexeme,
		Params:     params,
		Body:       body,
	}, nil
}

// paramType IDENT ("," paramType IDENT)*
func (parser *Parser) parseParams() ([]*Parameter, error) {
	if _, match := parser.expectToken(RightParentThesesTP, false); match {
		return nil, nil
	}
	var params []*Parameter
	for {
		token, _ := parser.getCurrentToken()
		paramType, isType := typeOfToken(token.Kind)
		if !isType {
			return nil, parser.makeError(token, "Expected parameter type")
		}
		if paramType == VoidType {
			parser.reportError(token, "Parameter cannot have type void")
		}
		parser.stepForward()
		name, err := parser.consume(IdentifierTP, "Expected parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, &Parameter{Position: positionOf(token), Type: paramType, Name: name.Lexeme})
		if _, match := parser.expectToken(CommaTP, true); !match {
			return params, nil
		}
	}
}

// "{" statement* "}"
func (parser *Parser) parseBlock() (*Block, error) {
	leftBrace, err := parser.consume(LeftBraceTP, "Expected '{' before block")
	if err != nil {
		return nil, err
	}
	block := &Block{Position: positionOf(leftBrace)}
	for !parser.isAtEnd() {
		if _, match := parser.expectToken(RightBraceTP, false); match {
			break
		}
		statement, err := parser.parseStatement()
		if err != nil {
			parser.synchronize()
			continue
		}
		block.Statements = append(block.Statements, statement)
	}
	if _, err = parser.consume(RightBraceTP, "Expected '}' after block"); err != nil {
		return nil, err
	}
	return block, nil
}

func (parser *Parser) parseStatement() (Statement, error) {
	token, _ := parser.getCurrentToken()
	switch token.Kind {
	case IntTP, FloatTP, BoolTP, VoidTP:
		return parser.parseVariableDeclaration()
	case IfTP:
		return parser.parseIfStatement()
	case WhileTP:
		return parser.parseWhileStatement()
	case ReturnTP:
		return parser.parseReturnStatement()
	case IdentifierTP:
		if next := parser.peekToken(1); next.Kind == AssignTP {
			return parser.parseAssignmentStatement()
		}
	}
	return parser.parseExpressionStatement()
}

// varType IDENT ("=" expression)? ";"
func (parser *Parser) parseVariableDeclaration() (Statement, error) {
	token, _ := parser.getCurrentToken()
	varType, _ := typeOfToken(token.Kind)
	if varType == VoidType {
		parser.reportError(token, "Variable cannot have type void")
	}
	parser.stepForward()
	name, err := parser.consume(IdentifierTP, "Expected variable name")
	if err != nil {
		return nil, err
	}
	stm := &VariableDeclaration{Position: positionOf(token), Type: varType, Name: name.Lexeme}
	if _, match := parser.expectToken(AssignTP, true); match {
		if stm.Initializer, err = parser.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err = parser.consume(SemiColonTP, "Expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return stm, nil
}

// IDENT "=" expression ";"
func (parser *Parser) parseAssignmentStatement() (Statement, error) {
	name, _ := parser.getCurrentToken()
	parser.stepForward()
	parser.stepForward()
	value, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err = parser.consume(SemiColonTP, "Expected ';' after assignment"); err != nil {
		return nil, err
	}
	return &AssignmentStatement{Position: positionOf(name), Name: name.Lexeme, Value: value}, nil
}

// "if" "(" expression ")" block ("else" (block | if))?
func (parser *Parser) parseIfStatement() (*IfStatement, error) {
	token, _ := parser.getCurrentToken()
	parser.stepForward()
	if _, err := parser.consume(LeftParentThesesTP, "Expected '(' after if"); err != nil {
		return nil, err
	}
	condition, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err = parser.consume(RightParentThesesTP, "Expected ')' after condition"); err != nil {
		return nil, err
	}
	then, err := parser.parseBlock()
	if err != nil {
		return nil, err
	}
	stm := &IfStatement{Position: positionOf(token), Condition: condition, Then: then}
	if _, match := parser.expectToken(ElseTP, true); !match {
		return stm, nil
	}
	if elseIf, match := parser.expectToken(IfTP, false); match {
		nested, err := parser.parseIfStatement()
		if err != nil {
			return nil, err
		}
		stm.Else = &Block{Position: positionOf(elseIf), Statements: []Statement{nested}}
		return stm, nil
	}
	if stm.Else, err = parser.parseBlock(); err != nil {
		return nil, err
	}
	return stm, nil
}

// "while" "(" expression ")" block
func (parser *Parser) parseWhileStatement() (Statement, error) {
	token, _ := parser.getCurrentToken()
	parser.stepForward()
	if _, err := parser.consume(LeftParentThesesTP, "Expected '(' after while"); err != nil {
		return nil, err
	}
	condition, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err = parser.consume(RightParentThesesTP, "Expected ')' after condition"); err != nil {
		return nil, err
	}
	body, err := parser.parseBlock()
	if err != nil {
		return nil, err
	}
	return &WhileStatement{Position: positionOf(token), Condition: condition, Body: body}, nil
}

// "return" expression? ";"
func (parser *Parser) parseReturnStatement() (Statement, error) {
	token, _ := parser.getCurrentToken()
	parser.stepForward()
	stm := &ReturnStatement{Position: positionOf(token)}
	if _, match := parser.expectToken(SemiColonTP, true); match {
		return stm, nil
	}
	value, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	stm.Value = value
	if _, err = parser.consume(SemiColonTP, "Expected ';' after return value"); err != nil {
		return nil, err
	}
	return stm, nil
}

// expression ";"
func (parser *Parser) parseExpressionStatement() (Statement, error) {
	token, _ := parser.getCurrentToken()
	expression, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err = parser.consume(SemiColonTP, "Expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ExpressionStatement{Position: positionOf(token), Expression: expression}, nil
}

// synchronize skips at least one token, then stops after a ';' or in front of a token that can start a
// declaration or a statement.
func (parser *Parser) synchronize() {
	if parser.isAtEnd() {
		return
	}
	parser.stepForward()
	for !parser.isAtEnd() {
		if parser.currentTokens[parser.currentTokenPos-1].Kind == SemiColonTP {
			return
		}
		token, _ := parser.getCurrentToken()
		switch token.Kind {
		case IntTP, FloatTP, BoolTP, VoidTP, IfTP, WhileTP, ReturnTP:
			return
		}
		parser.stepForward()
	}
}

func (parser *Parser) stepForward() {
	if !parser.isAtEnd() {
		parser.currentTokenPos++
	}
}

func (parser *Parser) hasRemainTokens() bool {
	return parser.currentTokenPos < len(parser.currentTokens)
}

func (parser *Parser) isAtEnd() bool {
	token, _ := parser.getCurrentToken()
	return token.Kind == EOFTP
}

// getCurrentToken returns the current token, or the EOF token and false once the tokens ran out.
func (parser *Parser) getCurrentToken() (*Token, bool) {
	if !parser.hasRemainTokens() {
		return parser.currentTokens[len(parser.currentTokens)-1], false
	}
	return parser.currentTokens[parser.currentTokenPos], true
}

func (parser *Parser) peekToken(offset int) *Token {
	pos := parser.currentTokenPos + offset
	if pos >= len(parser.currentTokens) {
		return parser.currentTokens[len(parser.currentTokens)-1]
	}
	return parser.currentTokens[pos]
}

func (parser *Parser) expectToken(expectedTokenTp TokenType, walk bool) (*Token, bool) {
	token, _ := parser.getCurrentToken()
	if token.Kind != expectedTokenTp {
		return nil, false
	}
	if walk {
		parser.stepForward()
	}
	return token, true
}

// consume walks over a token of type tp, or records msg against the current token and fails.
func (parser *Parser) consume(tp TokenType, msg string) (*Token, error) {
	if token, match := parser.expectToken(tp, true); match {
		return token, nil
	}
	token, _ := parser.getCurrentToken()
	return nil, parser.makeError(token, msg)
}

// makeError reports msg together with the token found instead.
func (parser *Parser) makeError(token *Token, msg string) error {
	found := "end of input"
	if token.Kind != EOFTP {
		found = fmt.Sprintf("'%s'", token.Lexeme)
	}
	return parser.reportError(token, fmt.Sprintf("%s, got %s", msg, found))
}

func (parser *Parser) reportError(token *Token, msg string) error {
	diagnostic := &Diagnostic{Kind: ParseError, Message: msg, Line: token.Line, Column: token.Column}
	parser.errors = append(parser.errors, diagnostic)
	return diagnostic
}

// Parse runs a fresh Parser over tokens.
func Parse(tokens []*Token) (*Program, Diagnostics) {
	return NewParser().Parse(tokens)
}

package internal

// binaryLevels lists the binary operators from the loosest binding to the tightest. Every level is
// left associative.
var binaryLevels = [][]TokenType{
	{OrTP},
	{AndTP},
	{EqualTP, NotEqualTP},
	{LessTP, GreaterTP, LessEqualTP, GreaterEqualTP},
	{AddTP, MinusTP},
	{MultiplyTP, DivideTP},
}

func (parser *Parser) parseExpression() (Expression, error) {
	return parser.parseBinary(0)
}

// parseBinary parses the operators of binaryLevels[level], the operands come from the next level.
func (parser *Parser) parseBinary(level int) (Expression, error) {
	if level == len(binaryLevels) {
		return parser.parseUnary()
	}
	left, err := parser.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, match := parser.matchOp(binaryLevels[level])
		if !match {
			return left, nil
		}
		parser.stepForward()
		right, err := parser.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpression{Position: positionOf(op), Operator: op.Lexeme, Left: left, Right: right}
	}
}

func (parser *Parser) matchOp(ops []TokenType) (*Token, bool) {
	token, _ := parser.getCurrentToken()
	for _, op := range ops {
		if token.Kind == op {
			return token, true
		}
	}
	return nil, false
}

// Note: 5 + -2 is accepted the same way c does.
func (parser *Parser) parseUnary() (Expression, error) {
	op, match := parser.matchOp([]TokenType{NotTP, MinusTP})
	if !match {
		return parser.parseCall()
	}
	parser.stepForward()
	operand, err := parser.parseUnary()
	if err != nil {
		return nil, err
	}
	return &UnaryExpression{Position: positionOf(op), Operator: op.Lexeme, Operand: operand}, nil
}

// parseCall parses a primary followed by any number of argument lists, f(1)(2) is a call of a call.
func (parser *Parser) parseCall() (Expression, error) {
	expr, err := parser.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		if _, match := parser.expectToken(LeftParentThesesTP, true); !match {
			return expr, nil
		}
		args, err := parser.parseArguments()
		if err != nil {
			return nil, err
		}
		expr = &CallExpression{Position: expr.Pos(), Callee: expr, Arguments: args}
	}
}

// expression ("," expression)* ")"
func (parser *Parser) parseArguments() ([]Expression, error) {
	if _, match := parser.expectToken(RightParentThesesTP, true); match {
		return nil, nil
	}
	var args []Expression
	for {
		arg, err := parser.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if _, match := parser.expectToken(CommaTP, true); !match {
			break
		}
	}
	if _, err := parser.consume(RightParentThesesTP, "Expected ')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

func (parser *Parser) parsePrimary() (Expression, error) {
	token, _ := parser.getCurrentToken()
	pos := positionOf(token)
	switch token.Kind {
	case TrueTP, FalseTP:
		parser.stepForward()
		return &BooleanLiteral{Position: pos, Value: token.Kind == TrueTP}, nil
	case IntegerTP:
		parser.stepForward()
		return &IntegerLiteral{Position: pos, Text: token.Lexeme}, nil
	case FloatNumberTP:
		parser.stepForward()
		return &FloatLiteral{Position: pos, Text: token.Lexeme}, nil
	case IdentifierTP:
		parser.stepForward()
		return &Identifier{Position: pos, Name: token.Lexeme}, nil
	case LeftParentThesesTP:
		// A parenthesized expression leaves no node of its own.
		parser.stepForward()
		expr, err := parser.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err = parser.consume(RightParentThesesTP, "Expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, parser.makeError(token, "Expected expression")
}

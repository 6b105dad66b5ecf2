package tac

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"three_address_compiler/util"
)

type Opcode int

const (
	FunctionOp    Opcode = iota // FUNCTION f:
	EndFunctionOp               // END_FUNCTION f
	AssignOp                    // x = v
	DeclareOp                   // DECLARE x
	IfFalseOp                   // IF_FALSE v GOTO L
	GotoOp                      // GOTO L
	LabelOp                     // L:
	ReturnOp                    // RETURN [v]
	BinaryOp                    // t = a op b
	UnaryOp                     // t = op a
	ParamOp                     // PARAM v
	CallOp                      // t = CALL f, n
)

var opcodeNames = [...]string{
	FunctionOp:    "FUNCTION",
	EndFunctionOp: "END_FUNCTION",
	AssignOp:      "ASSIGN",
	DeclareOp:     "DECLARE",
	IfFalseOp:     "IF_FALSE",
	GotoOp:        "GOTO",
	LabelOp:       "LABEL",
	ReturnOp:      "RETURN",
	BinaryOp:      "BINARY",
	UnaryOp:       "UNARY",
	ParamOp:       "PARAM",
	CallOp:        "CALL",
}

func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeNames) {
		return "UNKNOWN"
	}
	return opcodeNames[op]
}

// keyWordsMap holds the opcodes introduced by a leading keyword. Assignments and labels have no
// keyword and are recognised by shape.
var keyWordsMap = map[string]Opcode{
	"FUNCTION":     FunctionOp,
	"END_FUNCTION": EndFunctionOp,
	"DECLARE":      DeclareOp,
	"IF_FALSE":     IfFalseOp,
	"GOTO":         GotoOp,
	"RETURN":       ReturnOp,
	"PARAM":        ParamOp,
}

var binaryOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"&&": true, "||": true,
}

// Decoded is the structured form of one instruction.
type Decoded struct {
	Op       Opcode
	Dest     string   // target of assignments, binary, unary and call
	Name     string   // function name for FUNCTION, END_FUNCTION, DECLARE and CALL
	Label    string   // label for LABEL, GOTO and IF_FALSE
	Operator string   // BINARY and UNARY only
	Operands []string // values read by the instruction, left to right
	ArgCount int      // CALL only
}

type Decoder struct {
	lineCounter int
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses a single instruction line.
func Decode(line string) (*Decoded, error) {
	return NewDecoder().decodeLine(line)
}

// Read decodes a whole listing. Blank lines are skipped and do not count as instructions.
func Read(rd io.Reader) (instructions []Instruction, err error) {
	decoder := NewDecoder()
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		decoder.lineCounter++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if _, err = decoder.decodeLine(line); err != nil {
			return nil, err
		}
		instructions = append(instructions, Instruction(line))
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading listing: %w", err)
	}
	return instructions, nil
}

func (decoder *Decoder) decodeLine(line string) (*Decoded, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, decoder.makeError(line)
	}
	op, isKeyWord := keyWordsMap[fields[0]]
	// A variable may share its name with a keyword, e.g. "GOTO = 1".
	if !isKeyWord || (len(fields) > 1 && fields[1] == "=") {
		return decoder.decodeKeywordless(line, fields)
	}
	switch op {
	case FunctionOp:
		return decoder.decodeFunction(line, fields)
	case EndFunctionOp, DeclareOp:
		if len(fields) != 2 || !util.IsIdentifier(fields[1]) {
			return nil, decoder.makeError(line)
		}
		return &Decoded{Op: op, Name: fields[1]}, nil
	case IfFalseOp:
		if len(fields) != 4 || fields[2] != "GOTO" || !isValue(fields[1]) || !util.IsIdentifier(fields[3]) {
			return nil, decoder.makeError(line)
		}
		return &Decoded{Op: op, Operands: []string{fields[1]}, Label: fields[3]}, nil
	case GotoOp:
		if len(fields) != 2 || !util.IsIdentifier(fields[1]) {
			return nil, decoder.makeError(line)
		}
		return &Decoded{Op: op, Label: fields[1]}, nil
	case ReturnOp:
		if len(fields) == 1 {
			return &Decoded{Op: op}, nil
		}
		if len(fields) != 2 || !isValue(fields[1]) {
			return nil, decoder.makeError(line)
		}
		return &Decoded{Op: op, Operands: []string{fields[1]}}, nil
	case ParamOp:
		if len(fields) != 2 || !isValue(fields[1]) {
			return nil, decoder.makeError(line)
		}
		return &Decoded{Op: op, Operands: []string{fields[1]}}, nil
	}
	return nil, decoder.makeError(line)
}

func (decoder *Decoder) decodeFunction(line string, fields []string) (*Decoded, error) {
	if len(fields) != 2 || !strings.HasSuffix(fields[1], ":") {
		return nil, decoder.makeError(line)
	}
	name := strings.TrimSuffix(fields[1], ":")
	if !util.IsIdentifier(name) {
		return nil, decoder.makeError(line)
	}
	return &Decoded{Op: FunctionOp, Name: name}, nil
}

// decodeKeywordless handles labels and the four assignment shapes.
func (decoder *Decoder) decodeKeywordless(line string, fields []string) (*Decoded, error) {
	if len(fields) == 1 && strings.HasSuffix(fields[0], ":") {
		label := strings.TrimSuffix(fields[0], ":")
		if !util.IsIdentifier(label) {
			return nil, decoder.makeError(line)
		}
		return &Decoded{Op: LabelOp, Label: label}, nil
	}
	if len(fields) < 3 || fields[1] != "=" || !util.IsIdentifier(fields[0]) {
		return nil, decoder.makeError(line)
	}
	dest, rhs := fields[0], fields[2:]
	switch {
	case len(rhs) == 3 && rhs[0] == "CALL" && strings.HasSuffix(rhs[1], ","):
		name := strings.TrimSuffix(rhs[1], ",")
		argCount, err := strconv.Atoi(rhs[2])
		if err != nil || argCount < 0 || !util.IsIdentifier(name) {
			return nil, decoder.makeError(line)
		}
		return &Decoded{Op: CallOp, Dest: dest, Name: name, ArgCount: argCount}, nil
	case len(rhs) == 3:
		if !binaryOperators[rhs[1]] || !isValue(rhs[0]) || !isValue(rhs[2]) {
			return nil, decoder.makeError(line)
		}
		return &Decoded{Op: BinaryOp, Dest: dest, Operator: rhs[1], Operands: []string{rhs[0], rhs[2]}}, nil
	case len(rhs) == 1 && (rhs[0][0] == '-' || rhs[0][0] == '!'):
		if !isValue(rhs[0][1:]) {
			return nil, decoder.makeError(line)
		}
		return &Decoded{Op: UnaryOp, Dest: dest, Operator: rhs[0][:1], Operands: []string{rhs[0][1:]}}, nil
	case len(rhs) == 1:
		if !isValue(rhs[0]) {
			return nil, decoder.makeError(line)
		}
		return &Decoded{Op: AssignOp, Dest: dest, Operands: []string{rhs[0]}}, nil
	}
	return nil, decoder.makeError(line)
}

// isValue accepts names and unsigned integer or decimal literals.
func isValue(s string) bool {
	if util.IsIdentifier(s) {
		return true
	}
	if len(s) == 0 || !util.IsNumber(s[0]) {
		return false
	}
	dot := false
	for i := 0; i < len(s); i++ {
		switch {
		case util.IsNumber(s[i]):
		case s[i] == '.' && !dot && i+1 < len(s):
			dot = true
		default:
			return false
		}
	}
	return true
}

func (decoder *Decoder) makeError(near string) error {
	if decoder.lineCounter == 0 {
		return fmt.Errorf("SyntaxError: malformed instruction %q", near)
	}
	return fmt.Errorf("SyntaxError: malformed instruction %q at line %d", near, decoder.lineCounter)
}

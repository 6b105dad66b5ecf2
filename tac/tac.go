package tac

import (
	"fmt"
	"strconv"
	"strings"
)

// Three address code is the wire format between the compiler and any consumer. Every instruction is
// one line of text in one of these forms:
//
// FUNCTION <name>:
// END_FUNCTION <name>
// <name> = <value>
// DECLARE <name>
// IF_FALSE <value> GOTO <label>
// GOTO <label>
// <label>:
// RETURN [<value>]
// t<N> = <value> <op> <value>
// t<N> = <op><value>
// PARAM <value>
// t<N> = CALL <name>, <argCount>

type Instruction string

func (i Instruction) String() string {
	return string(i)
}

func Function(name string) Instruction {
	return Instruction("FUNCTION " + name + ":")
}

func EndFunction(name string) Instruction {
	return Instruction("END_FUNCTION " + name)
}

func Assign(name, value string) Instruction {
	return Instruction(name + " = " + value)
}

func Declare(name string) Instruction {
	return Instruction("DECLARE " + name)
}

func IfFalse(value, label string) Instruction {
	return Instruction("IF_FALSE " + value + " GOTO " + label)
}

func Goto(label string) Instruction {
	return Instruction("GOTO " + label)
}

func Label(label string) Instruction {
	return Instruction(label + ":")
}

// Return builds a RETURN, bare when value is empty.
func Return(value string) Instruction {
	if value == "" {
		return "RETURN"
	}
	return Instruction("RETURN " + value)
}

func Binary(dest, left, op, right string) Instruction {
	return Instruction(dest + " = " + left + " " + op + " " + right)
}

func Unary(dest, op, operand string) Instruction {
	return Instruction(dest + " = " + op + operand)
}

func Param(value string) Instruction {
	return Instruction("PARAM " + value)
}

func Call(dest, name string, argCount int) Instruction {
	return Instruction(fmt.Sprintf("%s = CALL %s, %d", dest, name, argCount))
}

// Temp is the name of the n-th temporary.
func Temp(n int) string {
	return "t" + strconv.Itoa(n)
}

// LabelName is the name of the n-th label.
func LabelName(n int) string {
	return "L" + strconv.Itoa(n)
}

// Listing joins instructions into a newline terminated listing.
func Listing(instructions []Instruction) string {
	var sb strings.Builder
	for _, instruction := range instructions {
		sb.WriteString(string(instruction))
		sb.WriteByte('\n')
	}
	return sb.String()
}

package tac

import (
	"fmt"
)

type jumpLocation struct {
	label string
	line  int
}

// Verify checks the structure of a listing. Functions must be opened and closed in pairs with
// matching names and must not nest, nothing may appear outside a function, every label may be
// defined once and every jump must target a defined label. Labels are collected first and jumps
// resolved afterwards, since a jump can name a label defined later in the listing.
func Verify(instructions []Instruction) (errs []error) {
	labelLocationMap := map[string]int{}
	var jumpLocations []jumpLocation
	currentFunction := ""
	inFunction := false
	for i, instruction := range instructions {
		line := i + 1
		decoded, err := Decode(string(instruction))
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		switch decoded.Op {
		case FunctionOp:
			if inFunction {
				errs = append(errs, fmt.Errorf("line %d: function %s opened inside function %s", line,
					decoded.Name, currentFunction))
			}
			currentFunction, inFunction = decoded.Name, true
			continue
		case EndFunctionOp:
			if !inFunction {
				errs = append(errs, fmt.Errorf("line %d: END_FUNCTION %s without FUNCTION", line, decoded.Name))
			} else if decoded.Name != currentFunction {
				errs = append(errs, fmt.Errorf("line %d: END_FUNCTION %s closes function %s", line,
					decoded.Name, currentFunction))
			}
			currentFunction, inFunction = "", false
			continue
		}
		if !inFunction {
			errs = append(errs, fmt.Errorf("line %d: instruction outside of function: %s", line, instruction))
		}
		switch decoded.Op {
		case LabelOp:
			if defined, exist := labelLocationMap[decoded.Label]; exist {
				errs = append(errs, fmt.Errorf("line %d: label %s already defined at line %d", line,
					decoded.Label, defined))
				continue
			}
			labelLocationMap[decoded.Label] = line
		case GotoOp, IfFalseOp:
			jumpLocations = append(jumpLocations, jumpLocation{label: decoded.Label, line: line})
		}
	}
	if inFunction {
		errs = append(errs, fmt.Errorf("function %s is never closed", currentFunction))
	}
	for _, jump := range jumpLocations {
		if _, exist := labelLocationMap[jump.label]; !exist {
			errs = append(errs, fmt.Errorf("line %d: undefined label %s", jump.line, jump.label))
		}
	}
	return errs
}

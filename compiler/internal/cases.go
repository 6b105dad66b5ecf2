package internal

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"three_address_compiler/casefile"
)

// CheckCase compiles the source of c and compares the diagnostics and instructions with the
// expectation written in the case.
func CheckCase(c casefile.Case) error {
	result := Compile(c.Source)
	var errs []error

	var actualErrors []string
	for _, diagnostic := range result.Diagnostics() {
		actualErrors = append(actualErrors, casefile.ExpectedError{
			Phase:   diagnostic.Kind.String(),
			Message: diagnostic.Message,
		}.String())
	}
	var expectedErrors []string
	for _, expected := range c.Errors {
		expectedErrors = append(expectedErrors, expected.String())
	}
	if !slices.Equal(actualErrors, expectedErrors) {
		errs = append(errs, mismatch("errors", expectedErrors, actualErrors))
	}

	var actualInstructions []string
	for _, instruction := range result.Instructions {
		actualInstructions = append(actualInstructions, instruction.String())
	}
	if !slices.Equal(actualInstructions, c.Instructions) {
		errs = append(errs, mismatch("tac", c.Instructions, actualInstructions))
	}
	if len(errs) > 0 {
		return fmt.Errorf("case '%s' at line %d: %w", c.Name, c.Line, errors.Join(errs...))
	}
	return nil
}

func mismatch(what string, expected, actual []string) error {
	return fmt.Errorf("%s mismatch\nexpected:\n\t%s\nactual:\n\t%s", what,
		strings.Join(expected, "\n\t"), strings.Join(actual, "\n\t"))
}

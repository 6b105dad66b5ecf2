package internal

import (
	"errors"
	"fmt"
)

type DiagnosticKind int

const (
	LexicalError DiagnosticKind = iota
	ParseError
	SemanticError
)

var diagnosticKindNames = [...]string{
	LexicalError:  "lexical",
	ParseError:    "parse",
	SemanticError: "semantic",
}

func (kind DiagnosticKind) String() string {
	if kind < 0 || int(kind) >= len(diagnosticKindNames) {
		return "unknown"
	}
	return diagnosticKindNames[kind]
}

func (kind DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

// Diagnostic is a problem found in the source by one of the phases.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
	Line    int            `json:"line"`
	Column  int            `json:"column"`
}

func (diagnostic *Diagnostic) Error() string {
	return fmt.Sprintf("%s error at line %d, column %d: %s", diagnostic.Kind, diagnostic.Line,
		diagnostic.Column, diagnostic.Message)
}

type Diagnostics []*Diagnostic

// Err joins the diagnostics into one error, nil when there are none.
func (diagnostics Diagnostics) Err() error {
	if len(diagnostics) == 0 {
		return nil
	}
	errs := make([]error, 0, len(diagnostics))
	for _, diagnostic := range diagnostics {
		errs = append(errs, diagnostic)
	}
	return errors.Join(errs...)
}

// Messages returns the bare messages in order.
func (diagnostics Diagnostics) Messages() []string {
	messages := make([]string, 0, len(diagnostics))
	for _, diagnostic := range diagnostics {
		messages = append(messages, diagnostic.Message)
	}
	return messages
}

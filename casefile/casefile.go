package casefile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FenceType is the info string of a code fence inside a case.
type FenceType string

const (
	FenceSource FenceType = "source"
	FenceTAC    FenceType = "tac"
	FenceErrors FenceType = "errors"
)

// ExpectedError is one line of an errors fence, written as "<phase>: <message>".
type ExpectedError struct {
	Phase   string
	Message string
}

func (e ExpectedError) String() string {
	return e.Phase + ": " + e.Message
}

// Case is a compilation case extracted from Markdown.
type Case struct {
	Name         string          // The heading text after "Test: "
	Line         int             // Line of the heading
	Source       string          // Content of the source fence
	Instructions []string        // Lines of the tac fence
	Errors       []ExpectedError // Lines of the errors fence
	HasTAC       bool
	HasErrors    bool
}

// Extract parses a Markdown document and returns its cases in document order. A heading
// "Test: <name>" opens a case. Inside a case a source fence is required, and at least one tac or errors
// fence states the expectation. A case without an errors fence expects a clean compilation, one
// without a tac fence expects no instructions.
func Extract(markdown string) ([]Case, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []Case
	var current *Case
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			headingText := extractTextFromNode(n, source)
			if !strings.HasPrefix(headingText, "Test: ") {
				return ast.WalkContinue, nil
			}
			if current != nil {
				if err := validateCase(current); err != nil {
					return ast.WalkStop, err
				}
				cases = append(cases, *current)
			}
			current = &Case{
				Name: strings.TrimSpace(strings.TrimPrefix(headingText, "Test: ")),
				Line: lineOf(n, source),
			}
		case *ast.FencedCodeBlock:
			return ast.WalkContinue, addFence(current, n, source)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("extracting cases: %w", err)
	}
	if current != nil {
		if err := validateCase(current); err != nil {
			return nil, err
		}
		cases = append(cases, *current)
	}
	return cases, nil
}

func addFence(current *Case, fence *ast.FencedCodeBlock, source []byte) error {
	language := FenceType(fence.Language(source))
	content := extractCodeBlockContent(fence, source)
	line := lineOf(fence, source)
	if current == nil {
		// Plain code blocks are allowed between cases.
		if language == "" {
			return nil
		}
		return fmt.Errorf("line %d: %s fence found outside of a case", line, language)
	}
	switch language {
	case FenceSource:
		if current.Source != "" {
			return fmt.Errorf("line %d: multiple source fences in case '%s'", line, current.Name)
		}
		current.Source = content
	case FenceTAC:
		if current.HasTAC {
			return fmt.Errorf("line %d: multiple tac fences in case '%s'", line, current.Name)
		}
		current.HasTAC, current.Instructions = true, nonEmptyLines(content)
	case FenceErrors:
		if current.HasErrors {
			return fmt.Errorf("line %d: multiple errors fences in case '%s'", line, current.Name)
		}
		current.HasErrors = true
		for _, errorLine := range nonEmptyLines(content) {
			phase, message, found := strings.Cut(errorLine, ": ")
			if !found {
				return fmt.Errorf("line %d: malformed error line %q in case '%s'", line, errorLine, current.Name)
			}
			current.Errors = append(current.Errors, ExpectedError{Phase: phase, Message: message})
		}
	default:
		return fmt.Errorf("line %d: unknown fence language '%s' in case '%s'", line, language, current.Name)
	}
	return nil
}

func validateCase(c *Case) error {
	if c.Source == "" {
		return fmt.Errorf("case '%s' has no source fence", c.Name)
	}
	if !c.HasTAC && !c.HasErrors {
		return fmt.Errorf("case '%s' has neither a tac nor an errors fence", c.Name)
	}
	return nil
}

func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func nonEmptyLines(content string) []string {
	var ret []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ret = append(ret, line)
		}
	}
	return ret
}

// lineOf returns the 1-based line a block starts on.
func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:min(start, len(source))], []byte("\n")) + 1
}

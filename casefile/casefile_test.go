package casefile

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestExtract(t *testing.T) {
	markdown := "# Title\n\n" +
		"Plain text and a plain block:\n\n```\nignored\n```\n\n" +
		"## Test: first\n\n```source\nint main() { return 0; }\n```\n\n```tac\nFUNCTION main:\n  RETURN 0\n\nEND_FUNCTION main\n```\n\n" +
		"## Test: second\n\n```source\nint main() {\n  return x;\n}\n```\n\n```errors\nsemantic: Undefined identifier: x\n```\n"

	cases, err := Extract(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	first := cases[0]
	be.Equal(t, first.Name, "first")
	be.Equal(t, first.Source, "int main() { return 0; }\n")
	be.Equal(t, first.Instructions, []string{"FUNCTION main:", "RETURN 0", "END_FUNCTION main"})
	be.True(t, first.HasTAC)
	be.True(t, !first.HasErrors)
	be.Equal(t, len(first.Errors), 0)

	second := cases[1]
	be.Equal(t, second.Name, "second")
	be.Equal(t, second.Source, "int main() {\n  return x;\n}\n")
	be.True(t, !second.HasTAC)
	be.Equal(t, second.Errors, []ExpectedError{{Phase: "semantic", Message: "Undefined identifier: x"}})
	be.Equal(t, second.Errors[0].String(), "semantic: Undefined identifier: x")
	be.True(t, second.Line > first.Line)
}

func TestExtract_Line(t *testing.T) {
	cases, err := Extract("intro\n\n## Test: only\n\n```source\nvoid main() { }\n```\n\n```tac\n```\n")
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 1)
	be.Equal(t, cases[0].Line, 3)
	be.True(t, cases[0].HasTAC)
	be.Equal(t, len(cases[0].Instructions), 0)
}

func TestExtract_Errors(t *testing.T) {
	testData := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "fence outside case",
			markdown: "```source\nint x;\n```\n",
			want:     "source fence found outside of a case",
		},
		{
			name:     "duplicate source",
			markdown: "## Test: dup\n\n```source\na\n```\n\n```source\nb\n```\n",
			want:     "multiple source fences in case 'dup'",
		},
		{
			name:     "duplicate tac",
			markdown: "## Test: dup\n\n```source\na\n```\n\n```tac\nRETURN\n```\n\n```tac\nRETURN\n```\n",
			want:     "multiple tac fences in case 'dup'",
		},
		{
			name:     "malformed error line",
			markdown: "## Test: bad\n\n```source\na\n```\n\n```errors\nno phase here\n```\n",
			want:     "malformed error line",
		},
		{
			name:     "unknown language",
			markdown: "## Test: lang\n\n```source\na\n```\n\n```python\nprint()\n```\n",
			want:     "unknown fence language 'python' in case 'lang'",
		},
		{
			name:     "missing source",
			markdown: "## Test: empty\n\n```tac\nRETURN\n```\n",
			want:     "case 'empty' has no source fence",
		},
		{
			name:     "missing expectation",
			markdown: "## Test: open\n\n```source\na\n```\n\n## Test: next\n\n```source\nb\n```\n\n```tac\n```\n",
			want:     "case 'open' has neither a tac nor an errors fence",
		},
	}
	for _, test := range testData {
		t.Run(test.name, func(t *testing.T) {
			_, err := Extract(test.markdown)
			be.Err(t, err)
			be.True(t, strings.Contains(err.Error(), test.want))
		})
	}
}

func TestExtract_NoCases(t *testing.T) {
	cases, err := Extract("# Nothing here\n\nJust prose.\n")
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 0)
}

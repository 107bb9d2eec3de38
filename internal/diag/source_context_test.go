package diag

import (
	"strings"
	"testing"

	"github.com/chr1sps/mole/internal/lexer"
)

func TestFormatWithSourcePointsAtColumn(t *testing.T) {
	d := Diagnostic{
		Phase:    Semantic,
		Pos:      lexer.Position{Line: 2, Column: 9},
		Severity: Error,
		Message:  "undefined variable 'y'",
	}
	source := "fn main() {\n\treturn y;\n}"

	got := d.FormatWithSource(source)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), got)
	}
	if !strings.Contains(lines[1], "return y;") {
		t.Fatalf("expected the source line to be quoted, got %q", lines[1])
	}
	caretCol := strings.Index(lines[2], "^")
	if caretCol == -1 {
		t.Fatalf("expected a caret, got %q", lines[2])
	}
	sourceCol := strings.Index(lines[1], "return y;") + len("return ")
	if caretCol != sourceCol {
		t.Fatalf("caret at column %d, expected it under column %d", caretCol, sourceCol)
	}
}

func TestFormatWithSourceOmitsLineWhenOutOfRange(t *testing.T) {
	d := Diagnostic{Phase: Lexical, Pos: lexer.Position{Line: 99, Column: 1}, Severity: Error, Message: "oops"}
	got := d.FormatWithSource("one line only")
	if strings.Contains(got, "\n") {
		t.Fatalf("expected a single line when the position is out of range, got %q", got)
	}
}

func TestFormatAllWithSourceJoinsEveryDiagnostic(t *testing.T) {
	s := NewSink()
	s.Addf(Lexical, lexer.Position{Line: 1, Column: 1}, Error, "first")
	s.Addf(Syntax, lexer.Position{Line: 1, Column: 1}, Error, "second")
	got := s.FormatAllWithSource("abc")
	if strings.Count(got, "[ERROR]") != 2 {
		t.Fatalf("expected both diagnostics rendered, got %q", got)
	}
}

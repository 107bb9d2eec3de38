package diag

import (
	"strings"
	"testing"

	"github.com/chr1sps/mole/internal/lexer"
)

func TestDiagnosticFormat(t *testing.T) {
	d := Diagnostic{
		Phase:    Semantic,
		Pos:      lexer.Position{Line: 3, Column: 7},
		Severity: Error,
		Message:  "use of uninitialized variable 'x'",
	}
	want := "[ERROR] semantic error at [3,7]: use of uninitialized variable 'x'."
	if got := d.Format(); got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestDiagnosticFormatTrimsTrailingPeriod(t *testing.T) {
	d := Diagnostic{Phase: Lexical, Pos: lexer.Position{Line: 1, Column: 1}, Severity: Error, Message: "unterminated string."}
	if strings.Count(d.Format(), ".") != 1 {
		t.Fatalf("Format() = %q, expected exactly one trailing period", d.Format())
	}
}

func TestSinkWorstSeverity(t *testing.T) {
	s := NewSink()
	if s.WorstSeverity() != Info {
		t.Fatalf("empty sink should report Info, got %v", s.WorstSeverity())
	}
	s.Add(Diagnostic{Severity: Warning})
	if s.WorstSeverity() != Warning {
		t.Fatalf("expected Warning, got %v", s.WorstSeverity())
	}
	s.Add(Diagnostic{Severity: Error})
	if s.WorstSeverity() != Error {
		t.Fatalf("expected Error, got %v", s.WorstSeverity())
	}
	s.Add(Diagnostic{Severity: Info})
	if s.WorstSeverity() != Error {
		t.Fatalf("adding a lower severity must not downgrade the worst, got %v", s.WorstSeverity())
	}
}

func TestSinkHasErrorsAndExitCode(t *testing.T) {
	s := NewSink()
	if s.HasErrors() || s.ExitCode() != 0 {
		t.Fatalf("empty sink must report no errors and exit code 0")
	}
	s.Add(Diagnostic{Severity: Warning})
	if s.HasErrors() || s.ExitCode() != 0 {
		t.Fatalf("warnings alone must not count as errors")
	}
	s.Add(Diagnostic{Severity: Error})
	if !s.HasErrors() || s.ExitCode() != 1 {
		t.Fatalf("an Error diagnostic must set HasErrors and a non-zero exit code")
	}
}

func TestSinkPreservesOrder(t *testing.T) {
	s := NewSink()
	s.Addf(Lexical, lexer.Position{Line: 1, Column: 1}, Error, "first %s", "error")
	s.Addf(Syntax, lexer.Position{Line: 2, Column: 1}, Error, "second error")
	got := s.Diagnostics()
	if len(got) != 2 || got[0].Message != "first error" || got[1].Phase != Syntax {
		t.Fatalf("unexpected diagnostics order/content: %+v", got)
	}
}

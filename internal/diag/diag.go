// Package diag implements Mole's diagnostics sink: a structured,
// severity-tagged, append-only collector that every compiler phase
// writes to and the driver drains in source order.
//
// It generalizes the single-shot position-plus-caret error formatting
// the teacher's internal/errors package does for one phase at a time
// into a sink multiple phases share, since Mole's pipeline (R → L → P →
// S → G) buffers diagnostics across phase boundaries rather than
// stopping at the first one.
package diag

import (
	"fmt"
	"strings"

	"github.com/chr1sps/mole/internal/lexer"
)

// Severity ranks a diagnostic's urgency. Order matters: WorstSeverity
// picks the maximum value seen.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "?"
	}
}

// Phase names the compiler stage that raised a Diagnostic, used in the
// stable output format and to enforce phase ordering (§ lexical errors
// precede parse errors precede semantic errors).
type Phase int

const (
	Lexical Phase = iota
	Syntax
	Semantic
	Codegen
)

func (p Phase) String() string {
	switch p {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	case Codegen:
		return "codegen"
	default:
		return "?"
	}
}

// Diagnostic is one structured message: which phase raised it, where,
// how severe, and what it says.
type Diagnostic struct {
	Phase    Phase
	Pos      lexer.Position
	Severity Severity
	Message  string
}

// Format renders a Diagnostic in the stable format:
// "[LEVEL] <phase> error at [<line>,<col>]: <message>."
func (d Diagnostic) Format() string {
	msg := strings.TrimSuffix(d.Message, ".")
	return fmt.Sprintf("[%s] %s error at [%d,%d]: %s.",
		d.Severity, d.Phase, d.Pos.Line, d.Pos.Column, msg)
}

// Sink collects diagnostics from every phase in the order they are
// raised. Phases never read each other's sinks; they only append.
// The caller is responsible for serializing access across concurrent
// compilations — a Sink itself has no internal locking, matching the
// single-threaded, synchronous pipeline the rest of the compiler
// assumes.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends a Diagnostic to the sink.
func (s *Sink) Add(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

// Addf is a convenience wrapper around Add that formats Message with
// fmt.Sprintf.
func (s *Sink) Addf(phase Phase, pos lexer.Position, sev Severity, format string, args ...any) {
	s.Add(Diagnostic{Phase: phase, Pos: pos, Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// Diagnostics returns every diagnostic recorded so far, in the order
// they were added.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// HasErrors reports whether any diagnostic at or above Error severity
// was recorded — the "had errors" flag a phase returns to the driver so
// it can decide whether to proceed to the next phase.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity >= Error {
			return true
		}
	}
	return false
}

// WorstSeverity returns the highest severity recorded, or Info if the
// sink is empty. The driver maps this to the process exit code.
func (s *Sink) WorstSeverity() Severity {
	worst := Info
	for _, d := range s.diagnostics {
		if d.Severity > worst {
			worst = d.Severity
		}
	}
	return worst
}

// ExitCode maps WorstSeverity to the process exit code the CLI returns:
// 0 on success, non-zero on any diagnostic of severity >= Error.
func (s *Sink) ExitCode() int {
	if s.WorstSeverity() >= Error {
		return 1
	}
	return 0
}

// FormatAll renders every diagnostic, one per line, in recorded order.
func (s *Sink) FormatAll() string {
	var sb strings.Builder
	for i, d := range s.diagnostics {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(d.Format())
	}
	return sb.String()
}

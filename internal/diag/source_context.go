package diag

import (
	"fmt"
	"strings"
)

// FormatWithSource renders a Diagnostic the way Format does, plus the
// offending source line with a caret pointing at the column. Generalizes
// the teacher's internal/errors.CompilerError.Format: one severity/phase
// tag instead of a single fixed "Error" header, everything else the same
// line-extract-and-caret shape.
func (d Diagnostic) FormatWithSource(source string) string {
	var sb strings.Builder
	sb.WriteString(d.Format())

	line := sourceLine(source, d.Pos.Line)
	if line == "" {
		return sb.String()
	}

	sb.WriteString("\n")
	prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")
	col := d.Pos.Column
	if col < 1 {
		col = 1
	}
	sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
	sb.WriteString("^")
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAllWithSource renders every diagnostic with its source-line
// caret, one after another.
func (s *Sink) FormatAllWithSource(source string) string {
	var sb strings.Builder
	for i, d := range s.diagnostics {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(d.FormatWithSource(source))
	}
	return sb.String()
}

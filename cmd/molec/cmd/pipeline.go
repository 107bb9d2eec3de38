package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/diag"
	"github.com/chr1sps/mole/internal/lexer"
	"github.com/chr1sps/mole/internal/parser"
)

// readSource reads args[0] as a file path, or stdin when no path is
// given.
func readSource(args []string) (src, filename string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		return string(data), "<stdin>", err
	}
	data, err := os.ReadFile(args[0])
	return string(data), args[0], err
}

// drainLexErrors converts every lexical error the lexer accumulated
// into a diag.Lexical diagnostic, since neither internal/lexer nor
// internal/parser own a Sink to report into directly (spec.md §7's
// taxonomy separates "lexer error" from "parser error" by phase, not by
// component boundary — the driver is what reconciles the two).
func drainLexErrors(l *lexer.Lexer, sink *diag.Sink) {
	for _, e := range l.Errors() {
		sink.Addf(diag.Lexical, e.Pos, diag.Error, "%s", e.Message)
	}
}

// parseSource runs the lexer and parser and returns the resulting
// program (possibly partial) and a sink carrying both lexical and
// syntax diagnostics. Lexical diagnostics are placed first so the
// combined sink honors diag.Phase's ordering (Lexical < Syntax), even
// though the lexer only surfaces its errors once parsing has fully
// drained the token stream.
func parseSource(src string) (*ast.Program, *diag.Sink) {
	l := lexer.New(src)
	parseSink := diag.NewSink()
	prog := parser.ParseProgram(l, parseSink)

	sink := diag.NewSink()
	drainLexErrors(l, sink)
	for _, d := range parseSink.Diagnostics() {
		sink.Add(d)
	}
	return prog, sink
}

// printDiagnostics writes every diagnostic in sink to stderr, one per
// line, each followed by its source line and a caret under the reported
// column — the presentation internal/errors.CompilerError.Format gave
// DWScript's driver, generalized onto diag.Sink's multi-phase model.
func printDiagnostics(sink *diag.Sink, source string) {
	for _, d := range sink.Diagnostics() {
		fmt.Fprintln(os.Stderr, d.FormatWithSource(source))
	}
}

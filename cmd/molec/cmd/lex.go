package cmd

import (
	"fmt"
	"os"

	"github.com/chr1sps/mole/internal/diag"
	"github.com/chr1sps/mole/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Mole source file",
	Long: `Tokenize a Mole source file and print the resulting tokens.

Reads from stdin if no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	src, filename, err := readSource(args)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "tokenizing %s (%d bytes)\n", filename, len(src))
	}

	l := lexer.New(src)
	for {
		tok := l.Next()
		fmt.Printf("%-20s @%d:%d\n", tok.String(), tok.Pos.Line, tok.Pos.Column)
		if tok.Type == lexer.EOF {
			break
		}
	}

	sink := diag.NewSink()
	drainLexErrors(l, sink)
	printDiagnostics(sink, src)
	os.Exit(sink.ExitCode())
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/chr1sps/mole/internal/semantic"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run the semantic checker and report diagnostics",
	Long: `Parse a Mole source file and run the semantic checker over it, reporting
every lexical, syntax, and semantic diagnostic without generating code.

Reads from stdin if no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	src, filename, err := readSource(args)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "checking %s (%d bytes)\n", filename, len(src))
	}

	prog, sink := parseSource(src)
	if sink.HasErrors() {
		printDiagnostics(sink, src)
		os.Exit(sink.ExitCode())
	}

	semSink := semantic.Check(prog)
	printDiagnostics(semSink, src)
	os.Exit(semSink.ExitCode())
	return nil
}

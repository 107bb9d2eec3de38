package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Mole source file and print its syntax tree",
	Long: `Parse a Mole source file and print its reconstructed syntax tree.

Reads from stdin if no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParseCmd(_ *cobra.Command, args []string) error {
	src, filename, err := readSource(args)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "parsing %s (%d bytes)\n", filename, len(src))
	}

	prog, sink := parseSource(src)
	if !sink.HasErrors() {
		fmt.Println(prog.String())
	}
	printDiagnostics(sink, src)
	os.Exit(sink.ExitCode())
	return nil
}

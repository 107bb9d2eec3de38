package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "molec",
	Short: "Mole compiler driver",
	Long: `molec compiles Mole source files: a small statically-typed, curly-brace
language that lowers to LLVM IR.

Subcommands mirror the compiler's phases:
  lex      tokenize a source file
  parse    parse a source file and print its syntax tree
  check    run the semantic checker and report diagnostics
  compile  run the full pipeline and emit LLVM IR, bitcode, or an object file`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

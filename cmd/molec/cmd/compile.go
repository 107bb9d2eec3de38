package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chr1sps/mole/internal/codegen"
	"github.com/chr1sps/mole/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	outputFile string
	emitFormat string
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a Mole source file",
	Long: `Run the full pipeline (lex, parse, check, generate) over a Mole source
file and write the result to disk.

--emit selects the output format:
  ir        textual LLVM IR (default)
  bitcode   LLVM bitcode
  object    a relocatable object file

Reads from stdin if no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: derived from the input name)")
	compileCmd.Flags().StringVar(&emitFormat, "emit", "ir", "output format: ir, bitcode, or object")
}

func runCompile(_ *cobra.Command, args []string) error {
	format, ext, err := parseEmitFormat(emitFormat)
	if err != nil {
		return err
	}

	src, filename, err := readSource(args)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "compiling %s (%d bytes)\n", filename, len(src))
	}

	prog, sink := parseSource(src)
	if sink.HasErrors() {
		printDiagnostics(sink, src)
		os.Exit(sink.ExitCode())
	}

	semSink := semantic.Check(prog)
	if semSink.HasErrors() {
		printDiagnostics(semSink, src)
		os.Exit(semSink.ExitCode())
	}

	moduleName := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	data, genSink := codegen.Emit(prog, moduleName, format)
	printDiagnostics(genSink, src)
	if genSink.HasErrors() {
		os.Exit(genSink.ExitCode())
	}

	out := outputFile
	if out == "" {
		out = moduleName + ext
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", out, len(data))
	}
	return nil
}

func parseEmitFormat(name string) (codegen.OutputFormat, string, error) {
	switch name {
	case "ir":
		return codegen.FormatIR, ".ll", nil
	case "bitcode":
		return codegen.FormatBitcode, ".bc", nil
	case "object":
		return codegen.FormatObject, ".o", nil
	default:
		return 0, "", fmt.Errorf("unknown --emit format %q (want ir, bitcode, or object)", name)
	}
}

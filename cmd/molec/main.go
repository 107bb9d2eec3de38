// Command molec is Mole's compiler driver: lexer -> parser -> semantic
// checker -> LLVM code generator, wired together the way spec.md §6's
// CLI surface describes.
package main

import (
	"fmt"
	"os"

	"github.com/chr1sps/mole/cmd/molec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

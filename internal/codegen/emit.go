package codegen

import (
	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/diag"
	"tinygo.org/x/go-llvm"
)

// OutputFormat selects which of spec.md §6's three persisted output
// formats Emit produces.
type OutputFormat int

const (
	FormatIR OutputFormat = iota
	FormatBitcode
	FormatObject
)

var nativeTargetReady = false

// ensureNativeTarget initializes the LLVM backend for the host machine
// exactly once; tinygo.org/x/go-llvm panics if these are invoked twice
// in one process.
func ensureNativeTarget() {
	if nativeTargetReady {
		return
	}
	llvm.InitializeNativeTarget()
	llvm.InitializeNativeAsmPrinter()
	nativeTargetReady = true
}

// Emit lowers prog the same way Generate does, then serializes the
// module in the requested format. Bitcode and object output need the
// module kept alive past verification, which Generate's string-only
// return does not support, so Emit manages its own Generator instead of
// reusing Generate.
func Emit(prog *ast.Program, moduleName string, format OutputFormat) ([]byte, *diag.Sink) {
	if format == FormatIR {
		ir, sink := Generate(prog, moduleName)
		return []byte(ir), sink
	}

	g := newGenerator(moduleName)
	defer g.dispose()
	_, sink := g.run(prog)
	if sink.HasErrors() {
		return nil, sink
	}

	if format == FormatBitcode {
		buf := llvm.WriteBitcodeToMemoryBuffer(g.module)
		defer buf.Dispose()
		return append([]byte(nil), buf.Bytes()...), sink
	}

	ensureNativeTarget()
	triple := llvm.DefaultTargetTriple()
	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		sink.Addf(diag.Codegen, prog.Pos(), diag.Error,
			"could not resolve target triple %q: %s", triple, err)
		return nil, sink
	}
	tm := target.CreateTargetMachine(triple, "generic", "",
		llvm.CodeGenLevelNone, llvm.RelocDefault, llvm.CodeModelDefault)
	defer tm.Dispose()

	td := tm.CreateTargetData()
	defer td.Dispose()
	g.module.SetDataLayout(td.String())
	g.module.SetTarget(triple)

	buf, err := tm.EmitToMemoryBuffer(g.module, llvm.ObjectFile)
	if err != nil {
		sink.Addf(diag.Codegen, prog.Pos(), diag.Error, "object emission failed: %s", err)
		return nil, sink
	}
	defer buf.Dispose()
	return append([]byte(nil), buf.Bytes()...), sink
}

package semantic

import (
	"testing"

	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/diag"
	"github.com/chr1sps/mole/internal/lexer"
	"github.com/chr1sps/mole/internal/parser"
	"github.com/chr1sps/mole/internal/types"
)

// TestSemanticInvariantVariableReferenceTypeAgreesWithDeclaration covers
// spec.md §8's semantic-checker invariant: for any program the checker
// accepts, every variable reference's resolved type exactly equals its
// declaration's type, and a successful assignment's target is mutable
// with a type equal to the value's type.
func TestSemanticInvariantVariableReferenceTypeAgreesWithDeclaration(t *testing.T) {
	src := `
		fn main() {
			let mut x: u32 = 1;
			let y: u32 = x;
			x = 2;
		}
	`
	l := lexer.New(src)
	parseSink := diag.NewSink()
	prog := parser.ParseProgram(l, parseSink)
	if parseSink.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", parseSink.FormatAll())
	}
	sink := Check(prog)
	assertNoErrors(t, sink)

	mainFn := prog.Functions[0]
	yDecl := mainFn.Body.Stmts[1].(*ast.VarDecl)
	assign := mainFn.Body.Stmts[2].(*ast.Assign)

	xRef := yDecl.Value.(*ast.Variable)
	target := assign.Target.(*ast.Variable)
	if !target.Assignable() {
		t.Fatalf("assignment target must be mutable")
	}
	if !target.ResolvedType().Equals(xRef.ResolvedType()) {
		t.Fatalf("variable reference type must agree across uses: %v vs %v", target.ResolvedType(), xRef.ResolvedType())
	}
	declared := types.NonRefOf(types.U32) // `let mut x: u32`
	if !xRef.ResolvedType().Equals(declared) {
		t.Fatalf("variable reference type must equal its declared type: %v vs %v", xRef.ResolvedType(), declared)
	}
	value := assign.Value.(*ast.U32Literal)
	if !target.ResolvedType().Equals(value.ResolvedType()) {
		t.Fatalf("assignment target type must equal the value's type: %v vs %v", target.ResolvedType(), value.ResolvedType())
	}
}

// TestCheckIsIdempotent covers spec.md §8's idempotence property:
// running the checker twice on the same AST yields the same diagnostics.
func TestCheckIsIdempotent(t *testing.T) {
	src := `
		fn const f(x: u32) => u32 {
			return x + 1;
		}
		fn main() => u32 {
			let mut total: u32;
			if (true) {
				total = f(1);
			} else {
				total = f(2);
			}
			return total;
		}
	`
	l := lexer.New(src)
	parseSink := diag.NewSink()
	prog := parser.ParseProgram(l, parseSink)
	if parseSink.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", parseSink.FormatAll())
	}

	first := Check(prog)
	second := Check(prog)

	firstMsgs := first.FormatAll()
	secondMsgs := second.FormatAll()
	if firstMsgs != secondMsgs {
		t.Fatalf("check is not idempotent:\nfirst:  %s\nsecond: %s", firstMsgs, secondMsgs)
	}
}

package semantic

import (
	"strings"
	"testing"

	"github.com/chr1sps/mole/internal/diag"
	"github.com/chr1sps/mole/internal/lexer"
	"github.com/chr1sps/mole/internal/parser"
)

func check(t *testing.T, src string) *diag.Sink {
	t.Helper()
	l := lexer.New(src)
	parseSink := diag.NewSink()
	prog := parser.ParseProgram(l, parseSink)
	if parseSink.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %s", src, parseSink.FormatAll())
	}
	return Check(prog)
}

func assertNoErrors(t *testing.T, sink *diag.Sink) {
	t.Helper()
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", sink.FormatAll())
	}
}

func assertHasError(t *testing.T, sink *diag.Sink, substr string) {
	t.Helper()
	for _, d := range sink.Diagnostics() {
		if d.Severity >= diag.Error && strings.Contains(d.Message, substr) {
			return
		}
	}
	t.Fatalf("expected an error containing %q, got: %s", substr, sink.FormatAll())
}

func TestMinimalMainAccepted(t *testing.T) {
	sink := check(t, `fn main() {}`)
	assertNoErrors(t, sink)
}

func TestMissingMainRejected(t *testing.T) {
	sink := check(t, `fn helper() {}`)
	assertHasError(t, sink, "no 'main' function")
}

func TestMainWithParamsRejected(t *testing.T) {
	sink := check(t, `fn main(x: u32) {}`)
	assertHasError(t, sink, "'main' must take no parameters")
}

func TestMainReturningBoolRejected(t *testing.T) {
	sink := check(t, `fn main() => bool { return true; }`)
	assertHasError(t, sink, "'main' must return nothing or u32")
}

func TestMainReturningU32Accepted(t *testing.T) {
	sink := check(t, `fn main() => u32 { return 0; }`)
	assertNoErrors(t, sink)
}

func TestVariableNamedMainRejected(t *testing.T) {
	sink := check(t, `
		let main: u32 = 0;
		fn main() {}
	`)
	assertHasError(t, sink, "'main' may not be used as a variable name")
}

func TestExternNamedMainRejected(t *testing.T) {
	sink := check(t, `
		extern main();
		fn main() {}
	`)
	assertHasError(t, sink, "'extern' may not be named 'main'")
}

func TestForwardReferenceBetweenFunctionsAllowed(t *testing.T) {
	sink := check(t, `
		fn main() => u32 {
			return helper();
		}
		fn helper() => u32 {
			return 42;
		}
	`)
	assertNoErrors(t, sink)
}

func TestRedeclarationInSameScopeRejected(t *testing.T) {
	sink := check(t, `
		fn main() {
			let x: u32 = 1;
			let x: u32 = 2;
		}
	`)
	assertHasError(t, sink, "redeclaration of 'x'")
}

func TestShadowingInNestedScopeAllowed(t *testing.T) {
	sink := check(t, `
		fn main() {
			let x: u32 = 1;
			{
				let x: bool = true;
			}
		}
	`)
	assertNoErrors(t, sink)
}

func TestUndefinedVariableRejected(t *testing.T) {
	sink := check(t, `
		fn main() {
			let x: u32 = y;
		}
	`)
	assertHasError(t, sink, "undefined variable 'y'")
}

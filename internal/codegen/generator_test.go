package codegen

import (
	"testing"

	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/diag"
	"github.com/chr1sps/mole/internal/lexer"
	"github.com/chr1sps/mole/internal/parser"
	"github.com/chr1sps/mole/internal/semantic"
)

// parseAndCheck runs the lexer, parser and checker, failing the test at
// the first phase that reports an error — codegen's own tests never
// want to debug a parse or type error through a generated-IR diff.
func parseAndCheck(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	parseSink := diag.NewSink()
	prog := parser.ParseProgram(l, parseSink)
	if parseSink.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %s", src, parseSink.FormatAll())
	}
	if sink := semantic.Check(prog); sink.HasErrors() {
		t.Fatalf("unexpected semantic errors for %q: %s", src, sink.FormatAll())
	}
	return prog
}

func mustVerify(t *testing.T, src string) string {
	t.Helper()
	prog := parseAndCheck(t, src)
	ir, sink := Generate(prog, "test")
	if sink.HasErrors() {
		t.Fatalf("unexpected codegen errors for %q: %s", src, sink.FormatAll())
	}
	return ir
}

func TestEmptyMainVerifies(t *testing.T) {
	ir := mustVerify(t, `fn main() {}`)
	if ir == "" {
		t.Fatalf("expected non-empty IR text")
	}
}

func TestArithmeticFunctionVerifies(t *testing.T) {
	mustVerify(t, `
		fn add(a: u32, b: u32) => u32 {
			return a + b * 2 - a % b;
		}
		fn main() {
			let x: u32 = add(3, 4);
		}
	`)
}

func TestFloatArithmeticVerifies(t *testing.T) {
	mustVerify(t, `
		fn main() {
			let x: f64 = 1.5 + 2.5 * 3.0;
			let y: f64 = x / 2.0;
		}
	`)
}

func TestIfElseVerifies(t *testing.T) {
	mustVerify(t, `
		fn classify(n: u32) => u32 {
			if (n == 0) {
				return 0;
			} else {
				return 1;
			}
		}
		fn main() {
			let r: u32 = classify(5);
		}
	`)
}

func TestIfWithoutElseVerifies(t *testing.T) {
	mustVerify(t, `
		fn main() {
			let mut x: u32 = 0;
			if (x == 0) {
				x = 1;
			}
		}
	`)
}

func TestWhileLoopWithBreakContinueVerifies(t *testing.T) {
	mustVerify(t, `
		fn sum(n: u32) => u32 {
			let mut i: u32 = 0;
			let mut acc: u32 = 0;
			while (i < n) {
				i += 1;
				if (i % 2 == 0) {
					continue;
				}
				if (i > 100) {
					break;
				}
				acc += i;
			}
			return acc;
		}
		fn main() {
			let r: u32 = sum(10);
		}
	`)
}

func TestMatchWithElseVerifies(t *testing.T) {
	mustVerify(t, `
		fn describe(n: u32) => u32 {
			match (n) {
				0 => { return 100; }
				1 => { return 200; }
				else => { return 300; }
			}
		}
		fn main() {
			let r: u32 = describe(1);
		}
	`)
}

func TestMatchWithoutElseVerifies(t *testing.T) {
	mustVerify(t, `
		fn main() {
			let mut out: u32 = 0;
			let n: u32 = 2;
			match (n) {
				0 => { out = 10; }
				1 => { out = 20; }
			}
		}
	`)
}

func TestMatchArmWithMultipleLiteralsVerifies(t *testing.T) {
	mustVerify(t, `
		fn describe(n: u32) => u32 {
			match (n) {
				1 | 2 | 3 => { return 100; }
				else => { return 300; }
			}
		}
		fn main() {
			let r: u32 = describe(2);
		}
	`)
}

func TestRefAndDerefVerifies(t *testing.T) {
	mustVerify(t, `
		fn main() {
			let mut x: u32 = 5;
			let r: &mut u32 = &mut x;
			*r = 9;
			let y: u32 = *r;
		}
	`)
}

func TestStringIndexVerifies(t *testing.T) {
	mustVerify(t, `
		fn main() {
			let s: &str = "hello";
			let c: char = s[0];
		}
	`)
}

func TestStringConcatVerifies(t *testing.T) {
	mustVerify(t, `
		fn main() {
			let a: &str = "foo";
			let b: &str = "bar";
			let c: &str = a + b;
		}
	`)
}

func TestCastsVerify(t *testing.T) {
	mustVerify(t, `
		fn main() {
			let b: bool = true;
			let u: u32 = b as u32;
			let f: f64 = u as f64;
			let i: i32 = f as i32;
			let ch: char = u as char;
		}
	`)
}

func TestExternCallVerifies(t *testing.T) {
	mustVerify(t, `
		extern puts(s: &str) => u32;
		fn main() {
			let r: u32 = puts("hi");
		}
	`)
}

func TestShiftAndBitwiseVerify(t *testing.T) {
	mustVerify(t, `
		fn main() {
			let a: u32 = 1 << 4;
			let b: u32 = a >> 2;
			let c: u32 = a & b | (a ^ b);
		}
	`)
}

func TestExponentVerifies(t *testing.T) {
	mustVerify(t, `
		fn main() {
			let a: u32 = 2 ^^ 8;
			let b: f64 = 2.0 ^^ 0.5;
		}
	`)
}

func TestConstFunctionCallVerifies(t *testing.T) {
	mustVerify(t, `
		fn const square(x: u32) => u32 {
			return x * x;
		}
		fn main() {
			let r: u32 = square(5);
		}
	`)
}

func TestGlobalConstantInitializerVerifies(t *testing.T) {
	mustVerify(t, `
		let LIMIT: u32 = 100;
		fn main() {
			let x: u32 = LIMIT;
		}
	`)
}

func TestGlobalNonLiteralInitializerReportsCodegenError(t *testing.T) {
	prog := parseAndCheck(t, `
		fn const compute() => u32 { return 1; }
		let START: u32 = compute();
		fn main() {
			let x: u32 = START;
		}
	`)
	_, sink := Generate(prog, "test")
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Phase == diag.Codegen && d.Severity >= diag.Error {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a codegen error for a non-literal global initializer, got: %s", sink.FormatAll())
	}
}

func TestLambdaCallReportsCodegenError(t *testing.T) {
	prog := parseAndCheck(t, `
		fn add(a: u32, b: u32) => u32 {
			return a + b;
		}
		fn main() {
			let f: fn(u32) => u32 = add@(1, _);
		}
	`)
	_, sink := Generate(prog, "test")
	if !sink.HasErrors() {
		t.Fatalf("expected a codegen error for a lambda call")
	}
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Phase == diag.Codegen && d.Severity >= diag.Error {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the error to be reported at the Codegen phase, got: %s", sink.FormatAll())
	}
}

package codegen

import "testing"

func TestEmitBitcodeProducesNonEmptyBytes(t *testing.T) {
	prog := parseAndCheck(t, `fn main() {}`)
	data, sink := Emit(prog, "test", FormatBitcode)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", sink.FormatAll())
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty bitcode output")
	}
}

func TestEmitObjectProducesNonEmptyBytes(t *testing.T) {
	prog := parseAndCheck(t, `
		fn add(a: u32, b: u32) => u32 {
			return a + b;
		}
		fn main() {
			let x: u32 = add(1, 2);
		}
	`)
	data, sink := Emit(prog, "test", FormatObject)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", sink.FormatAll())
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty object output")
	}
}

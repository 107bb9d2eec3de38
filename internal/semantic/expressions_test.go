package semantic

import "testing"

func TestArithmeticRequiresMatchingNumericTypes(t *testing.T) {
	sink := check(t, `
		fn main() {
			let x: u32 = 1;
			let y: i32 = 2;
			let z: u32 = x + y;
		}
	`)
	assertHasError(t, sink, "requires matching numeric operands")
}

func TestArithmeticOnMatchingTypesAccepted(t *testing.T) {
	sink := check(t, `
		fn main() {
			let x: u32 = 1;
			let y: u32 = 2;
			let z: u32 = x + y;
		}
	`)
	assertNoErrors(t, sink)
}

func TestStringConcatenationAccepted(t *testing.T) {
	sink := check(t, `
		fn main() {
			let a: &str = "hi";
			let b: &str = "there";
			let c: &str = a + b;
		}
	`)
	assertNoErrors(t, sink)
}

func TestStringOrderingRejected(t *testing.T) {
	sink := check(t, `
		fn main() {
			let a: &str = "hi";
			let b: &str = "there";
			let c: bool = a < b;
		}
	`)
	assertHasError(t, sink, "requires matching non-reference, non-str operands")
}

func TestStringEqualityRejected(t *testing.T) {
	sink := check(t, `
		fn main() {
			let a: &str = "hi";
			let b: &str = "there";
			let c: bool = a == b;
		}
	`)
	assertHasError(t, sink, "is not defined for str operands")
}

func TestAndOrRequireBool(t *testing.T) {
	sink := check(t, `
		fn main() {
			let x: u32 = 1;
			let y: bool = x && true;
		}
	`)
	assertHasError(t, sink, "requires bool operands")
}

func TestRefOfNonMutVariableRejectsMutRef(t *testing.T) {
	sink := check(t, `
		fn main() {
			let x: u32 = 1;
			let r: &mut u32 = &mut x;
		}
	`)
	assertHasError(t, sink, "'&mut' requires a mutable operand")
}

func TestRefOfMutVariableAccepted(t *testing.T) {
	sink := check(t, `
		fn main() {
			let mut x: u32 = 1;
			let r: &mut u32 = &mut x;
		}
	`)
	assertNoErrors(t, sink)
}

func TestDerefOfMutRefIsAssignable(t *testing.T) {
	sink := check(t, `
		fn main() {
			let mut x: u32 = 1;
			let r: &mut u32 = &mut x;
			*r = 2;
		}
	`)
	assertNoErrors(t, sink)
}

func TestDerefOfSharedRefIsNotAssignable(t *testing.T) {
	sink := check(t, `
		fn main() {
			let x: u32 = 1;
			let r: &u32 = &x;
			*r = 2;
		}
	`)
	assertHasError(t, sink, "not assignable")
}

func TestIndexOnStringReferenceProducesChar(t *testing.T) {
	sink := check(t, `
		fn main() {
			let s: &str = "hi";
			let c: char = s[0];
		}
	`)
	assertNoErrors(t, sink)
}

func TestIndexOnNonStringRejected(t *testing.T) {
	sink := check(t, `
		fn main() {
			let x: u32 = 1;
			let c: char = x[0];
		}
	`)
	assertHasError(t, sink, "index target must be a str reference")
}

func TestCastTableAllowsU32ToChar(t *testing.T) {
	sink := check(t, `
		fn main() {
			let x: u32 = 65;
			let c: char = x as char;
		}
	`)
	assertNoErrors(t, sink)
}

func TestCastTableRejectsF64ToChar(t *testing.T) {
	sink := check(t, `
		fn main() {
			let x: f64 = 65.0;
			let c: char = x as char;
		}
	`)
	assertHasError(t, sink, "no cast from f64 to char")
}

func TestCastOfReferenceRejected(t *testing.T) {
	sink := check(t, `
		fn main() {
			let x: u32 = 1;
			let r: &u32 = &x;
			let y: u32 = r as u32;
		}
	`)
	assertHasError(t, sink, "casts to/from references or strings are forbidden")
}

func TestCallArgumentCountMismatch(t *testing.T) {
	sink := check(t, `
		fn add(a: u32, b: u32) => u32 {
			return a + b;
		}
		fn main() {
			let x: u32 = add(1);
		}
	`)
	assertHasError(t, sink, "expected 2 argument(s), got 1")
}

func TestCallArgumentTypeMismatch(t *testing.T) {
	sink := check(t, `
		fn add(a: u32, b: u32) => u32 {
			return a + b;
		}
		fn main() {
			let x: u32 = add(1, true);
		}
	`)
	assertHasError(t, sink, "argument 2")
}

func TestLambdaCallHolesFormNewFunctionType(t *testing.T) {
	sink := check(t, `
		fn add(a: u32, b: u32) => u32 {
			return a + b;
		}
		fn main() {
			let f: fn(u32) => u32 = add@(1, _);
		}
	`)
	assertNoErrors(t, sink)
}

func TestLambdaCallEllipsisCoversRemainingParams(t *testing.T) {
	sink := check(t, `
		fn add3(a: u32, b: u32, c: u32) => u32 {
			return a + b + c;
		}
		fn main() {
			let f: fn(u32, u32) => u32 = add3@(1, ...);
		}
	`)
	assertNoErrors(t, sink)
}

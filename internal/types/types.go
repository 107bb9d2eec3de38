// Package types implements Mole's resolved type algebra: the Type sum the
// semantic checker produces from a parsed type expression and the code
// generator lowers to LLVM types. It is intentionally tiny — Mole has no
// classes, records, interfaces, or generics — so the sum is modeled as a
// closed Go interface with exactly two implementations, matched with a
// type switch wherever behavior differs per variant.
package types

import "strings"

// Kind enumerates the base scalar kinds a SimpleType can carry.
type Kind int

const (
	BOOL Kind = iota
	U32
	I32
	F64
	CHAR
	STR
)

func (k Kind) String() string {
	switch k {
	case BOOL:
		return "bool"
	case U32:
		return "u32"
	case I32:
		return "i32"
	case F64:
		return "f64"
	case CHAR:
		return "char"
	case STR:
		return "str"
	default:
		return "?"
	}
}

// Ref enumerates how a SimpleType is accessed: by value, by reference, or
// by mutable reference. Reference-of-reference is never constructed:
// AsRef/AsMutRef do not check their receiver, and their caller (the
// semantic checker's unary '&' rule) only applies them to NON_REF
// operands.
type Ref int

const (
	NonRef Ref = iota
	Ref_
	MutRef
)

func (r Ref) String() string {
	switch r {
	case Ref_:
		return "&"
	case MutRef:
		return "&mut "
	default:
		return ""
	}
}

// Type is the sum of SimpleType and FunctionType. It is deliberately a
// closed interface (an unexported marker method) so every switch over it
// can be exhaustive.
type Type interface {
	isType()
	// String renders the type the way Mole source would spell it, e.g.
	// "&mut u32" or "fn(u32, f64) => bool".
	String() string
	// Equals reports structural equality: same variant, same contents.
	// Two SimpleTypes are equal iff Kind and Ref match; two FunctionTypes
	// are equal iff their argument lists (in order), return type, and
	// IsConst flag all match.
	Equals(other Type) bool
}

// SimpleType is a scalar type, optionally accessed by reference.
type SimpleType struct {
	Kind Kind
	Ref  Ref
}

func (SimpleType) isType() {}

func (s SimpleType) String() string {
	return s.Ref.String() + s.Kind.String()
}

func (s SimpleType) Equals(other Type) bool {
	o, ok := other.(SimpleType)
	return ok && o.Kind == s.Kind && o.Ref == s.Ref
}

// NonRefOf constructs an unreferenced SimpleType of the given kind.
func NonRefOf(k Kind) SimpleType { return SimpleType{Kind: k, Ref: NonRef} }

// AsRef returns the REF variant of a NON_REF SimpleType. The caller (the
// semantic checker, at the unary '&' rule) is responsible for only ever
// calling this on a NON_REF operand — Mole's grammar has no syntax that
// could produce a reference-of-reference to begin with.
func (s SimpleType) AsRef() SimpleType { return SimpleType{Kind: s.Kind, Ref: Ref_} }

// AsMutRef returns the MUT_REF variant of a NON_REF SimpleType.
func (s SimpleType) AsMutRef() SimpleType { return SimpleType{Kind: s.Kind, Ref: MutRef} }

// Deref returns the NON_REF variant of a REF/MUT_REF SimpleType.
func (s SimpleType) Deref() SimpleType { return SimpleType{Kind: s.Kind, Ref: NonRef} }

// IsNumeric reports whether the kind participates in arithmetic.
func (s SimpleType) IsNumeric() bool {
	return s.Ref == NonRef && (s.Kind == U32 || s.Kind == I32 || s.Kind == F64)
}

// IsInteger reports whether the kind is one of the two integer kinds.
func (s SimpleType) IsInteger() bool {
	return s.Ref == NonRef && (s.Kind == U32 || s.Kind == I32)
}

// Str is the canonical "reference to a string buffer" type; per spec.md
// there is no owned str value, so STR only ever appears wrapped in Ref.
func Str() SimpleType { return SimpleType{Kind: STR, Ref: Ref_} }

// FunctionType describes a callable value: an ordered list of parameter
// types, an optional return type (nil means the function returns
// nothing), and whether it is const (pure).
type FunctionType struct {
	Args    []Type
	Return  Type // nil for a function with no return value
	IsConst bool
}

func (FunctionType) isType() {}

func (f FunctionType) String() string {
	var sb strings.Builder
	sb.WriteString("fn")
	if f.IsConst {
		sb.WriteString(" const")
	}
	sb.WriteString("(")
	for i, a := range f.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteString(")")
	if f.Return != nil {
		sb.WriteString(" => ")
		sb.WriteString(f.Return.String())
	}
	return sb.String()
}

func (f FunctionType) Equals(other Type) bool {
	o, ok := other.(FunctionType)
	if !ok || o.IsConst != f.IsConst || len(o.Args) != len(f.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	if (f.Return == nil) != (o.Return == nil) {
		return false
	}
	if f.Return != nil && !f.Return.Equals(o.Return) {
		return false
	}
	return true
}

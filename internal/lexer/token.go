package lexer

import "fmt"

// Token is a single lexical unit: a kind, an optional literal payload, and
// the position of its first rune. Per spec.md's data model, the literal
// payload is one of {identifier string, non-negative integer, floating
// point, single wide character, wide string, none} depending on Type.
type Token struct {
	Type TokenType
	Pos  Position

	// Literal is the token's source spelling (used for IDENT, and for
	// diagnostics on every kind).
	Literal string

	// IntValue carries the parsed value for INT_LIT (spec: unsigned-64,
	// low 64 bits on overflow).
	IntValue uint64

	// FloatValue carries the parsed value for FLOAT_LIT.
	FloatValue float64

	// CharValue carries the decoded rune for CHAR_LIT.
	CharValue rune

	// StringValue carries the decoded (escape-processed) text for
	// STRING_LIT.
	StringValue string
}

// String renders a token for debugging/diagnostics.
func (t Token) String() string {
	switch t.Type {
	case IDENT:
		return fmt.Sprintf("IDENT(%s)", t.Literal)
	case INT_LIT:
		return fmt.Sprintf("INT(%d)", t.IntValue)
	case FLOAT_LIT:
		return fmt.Sprintf("FLOAT(%g)", t.FloatValue)
	case CHAR_LIT:
		return fmt.Sprintf("CHAR(%q)", t.CharValue)
	case STRING_LIT:
		return fmt.Sprintf("STRING(%q)", t.StringValue)
	default:
		return t.Type.String()
	}
}

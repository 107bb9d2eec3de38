package lexer

import "fmt"

// Position identifies a single rune of source text by 1-based line and
// column, plus the 0-based byte offset useful for slicing the original
// source string.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position as "line:column", the form used throughout
// diagnostic messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

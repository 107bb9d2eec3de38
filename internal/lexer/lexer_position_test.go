package lexer

import "testing"

func TestPositionTracking(t *testing.T) {
	input := "let x\ny"

	tests := []struct {
		typ  TokenType
		line int
		col  int
	}{
		{LET, 1, 1},
		{IDENT, 1, 5},
		{IDENT, 2, 1},
		{EOF, 2, 2},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		if tok.Type != tt.typ {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s", i, tt.typ, tok.Type)
		}
		if tok.Pos.Line != tt.line || tok.Pos.Column != tt.col {
			t.Fatalf("tests[%d] - expected %d:%d, got %d:%d", i, tt.line, tt.col, tok.Pos.Line, tok.Pos.Column)
		}
	}
}

func TestCRLFNormalization(t *testing.T) {
	input := "let x\r\ny"
	l := New(input)

	l.Next() // let
	l.Next() // x
	tok := l.Next()
	if tok.Type != IDENT || tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Fatalf("expected IDENT at 2:1, got %s at %d:%d", tok.Type, tok.Pos.Line, tok.Pos.Column)
	}
}

func TestBOMIsStripped(t *testing.T) {
	input := "\xEF\xBB\xBFlet"
	l := New(input)
	tok := l.Next()
	if tok.Type != LET || tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("expected LET at 1:1, got %s at %d:%d", tok.Type, tok.Pos.Line, tok.Pos.Column)
	}
}

package lexer

import "testing"

func TestOperatorLongestMatch(t *testing.T) {
	input := "+ ++ += - -- -= * *= / /= % %= ~ = == => < <= << <<= > >= >> >>= ! != ^ ^= ^^ ^^= & &= && | |= ||"
	want := []TokenType{
		PLUS, PLUS_PLUS, PLUS_EQ, MINUS, MINUS_MINUS, MINUS_EQ,
		STAR, STAR_EQ, SLASH, SLASH_EQ, PERCENT, PERCENT_EQ, TILDE,
		ASSIGN, EQ, FAT_ARROW,
		LT, LE, SHL, SHL_EQ, GT, GE, SHR, SHR_EQ,
		BANG, NEQ,
		CARET, CARET_EQ, CARET_CARET, CARET_CARET_EQ,
		AMP, AMP_EQ, AMP_AMP,
		PIPE, PIPE_EQ, PIPE_PIPE,
		EOF,
	}

	l := New(input)
	for i, typ := range want {
		tok := l.Next()
		if tok.Type != typ {
			t.Fatalf("tests[%d] - expected=%s, got=%s (literal=%q)", i, typ, tok.Type, tok.Literal)
		}
	}
}

func TestPunctuation(t *testing.T) {
	input := "{ } ( ) [ ] : , ; @"
	want := []TokenType{LBRACE, RBRACE, LPAREN, RPAREN, LBRACKET, RBRACKET, COLON, COMMA, SEMICOLON, AT, EOF}
	l := New(input)
	for i, typ := range want {
		tok := l.Next()
		if tok.Type != typ {
			t.Fatalf("tests[%d] - expected=%s, got=%s", i, typ, tok.Type)
		}
	}
}

func TestEllipsis(t *testing.T) {
	l := New("...")
	tok := l.Next()
	if tok.Type != ELLIPSIS {
		t.Fatalf("expected ELLIPSIS, got %s", tok.Type)
	}
}

func TestAmpersandVersusAmpersandAmpersand(t *testing.T) {
	l := New("&mut &&")
	tok := l.Next()
	if tok.Type != AMP {
		t.Fatalf("expected AMP, got %s", tok.Type)
	}
	tok = l.Next()
	if tok.Type != MUT {
		t.Fatalf("expected MUT, got %s", tok.Type)
	}
	tok = l.Next()
	if tok.Type != AMP_AMP {
		t.Fatalf("expected AMP_AMP, got %s", tok.Type)
	}
}

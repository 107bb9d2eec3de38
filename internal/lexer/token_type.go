package lexer

// TokenType identifies the syntactic category of a Token. Kinds are
// grouped by the grammar rule family that produces them, mirroring the
// grouping spec.md uses when listing them.
type TokenType int

const (
	// INVALID marks a lexical error. It is distinct from EOF: a caller
	// must be able to tell "lexing failed here" from "input ended here".
	INVALID TokenType = iota
	EOF

	// Literals and identifiers.
	IDENT
	INT_LIT
	FLOAT_LIT
	CHAR_LIT
	STRING_LIT
	PLACEHOLDER // the lone '_' token, valid only in lambda-call argument lists
	ELLIPSIS    // '...'
	COMMENT     // only produced when WithPreserveComments is set

	// Keywords.
	FN
	EXTERN
	LET
	RETURN
	MUT
	CONST
	IF
	ELSE
	WHILE
	MATCH
	CONTINUE
	BREAK
	AS
	TRUE
	FALSE

	// Base type keywords.
	U32
	I32
	F64
	BOOL
	CHAR
	STR

	// Punctuation.
	LBRACE
	RBRACE
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	COLON
	COMMA
	SEMICOLON
	AT // '@', introduces a lambda call: f@(...)

	// Operators.
	PLUS
	PLUS_PLUS
	PLUS_EQ
	MINUS
	MINUS_MINUS
	MINUS_EQ
	STAR
	STAR_EQ
	SLASH
	SLASH_EQ
	PERCENT
	PERCENT_EQ
	TILDE
	ASSIGN
	EQ
	FAT_ARROW // '=>'
	LT
	LE
	SHL
	SHL_EQ
	GT
	GE
	SHR
	SHR_EQ
	BANG
	NEQ
	CARET
	CARET_EQ
	CARET_CARET // '^^', exponentiation
	CARET_CARET_EQ
	AMP
	AMP_EQ
	AMP_AMP
	PIPE
	PIPE_EQ
	PIPE_PIPE
)

var tokenNames = map[TokenType]string{
	INVALID: "INVALID", EOF: "EOF",
	IDENT: "IDENT", INT_LIT: "INT_LIT", FLOAT_LIT: "FLOAT_LIT",
	CHAR_LIT: "CHAR_LIT", STRING_LIT: "STRING_LIT",
	PLACEHOLDER: "_", ELLIPSIS: "...", COMMENT: "COMMENT",
	FN: "fn", EXTERN: "extern", LET: "let", RETURN: "return", MUT: "mut",
	CONST: "const", IF: "if", ELSE: "else", WHILE: "while", MATCH: "match",
	CONTINUE: "continue", BREAK: "break", AS: "as", TRUE: "true", FALSE: "false",
	U32: "u32", I32: "i32", F64: "f64", BOOL: "bool", CHAR: "char", STR: "str",
	LBRACE: "{", RBRACE: "}", LPAREN: "(", RPAREN: ")",
	LBRACKET: "[", RBRACKET: "]", COLON: ":", COMMA: ",", SEMICOLON: ";", AT: "@",
	PLUS: "+", PLUS_PLUS: "++", PLUS_EQ: "+=",
	MINUS: "-", MINUS_MINUS: "--", MINUS_EQ: "-=",
	STAR: "*", STAR_EQ: "*=", SLASH: "/", SLASH_EQ: "/=",
	PERCENT: "%", PERCENT_EQ: "%=", TILDE: "~",
	ASSIGN: "=", EQ: "==", FAT_ARROW: "=>",
	LT: "<", LE: "<=", SHL: "<<", SHL_EQ: "<<=",
	GT: ">", GE: ">=", SHR: ">>", SHR_EQ: ">>=",
	BANG: "!", NEQ: "!=",
	CARET: "^", CARET_EQ: "^=", CARET_CARET: "^^", CARET_CARET_EQ: "^^=",
	AMP: "&", AMP_EQ: "&=", AMP_AMP: "&&",
	PIPE: "|", PIPE_EQ: "|=", PIPE_PIPE: "||",
}

// String renders the token type using its canonical spelling (for
// keywords/operators) or a category name (for IDENT and friends), which is
// exactly what diagnostic messages and tests want to print.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// keywords maps the exact spelling of each reserved word to its TokenType.
// Lifted into a single package-level constant rather than a mutable
// process-wide table, per the REDESIGN FLAGS note against global mutable
// keyword tables.
var keywords = map[string]TokenType{
	"fn": FN, "extern": EXTERN, "let": LET, "return": RETURN, "mut": MUT,
	"const": CONST, "if": IF, "else": ELSE, "while": WHILE, "match": MATCH,
	"continue": CONTINUE, "break": BREAK, "as": AS,
	"true": TRUE, "false": FALSE,
	"u32": U32, "i32": I32, "f64": F64, "bool": BOOL, "char": CHAR, "str": STR,
}

// LookupIdent classifies ident as a keyword TokenType, or IDENT if it is
// not reserved.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

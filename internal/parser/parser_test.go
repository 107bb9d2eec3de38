package parser

import (
	"testing"

	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/diag"
	"github.com/chr1sps/mole/internal/lexer"
)

func parseProgram(t *testing.T, src string) (*ast.Program, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	prog := ParseProgram(lexer.New(src), sink)
	return prog, sink
}

func mustNoErrors(t *testing.T, sink *diag.Sink) {
	t.Helper()
	if sink.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", sink.FormatAll())
	}
}

func TestParseEmptyProgram(t *testing.T) {
	prog, sink := parseProgram(t, "")
	mustNoErrors(t, sink)
	if len(prog.Globals) != 0 || len(prog.Functions) != 0 || len(prog.Externs) != 0 {
		t.Fatalf("expected an empty program, got %+v", prog)
	}
}

func TestParseGlobalVarDecl(t *testing.T) {
	prog, sink := parseProgram(t, "let mut x: u32 = 5;")
	mustNoErrors(t, sink)
	if len(prog.Globals) != 1 {
		t.Fatalf("expected one global, got %d", len(prog.Globals))
	}
	g := prog.Globals[0]
	if g.Name != "x" || !g.Mut {
		t.Fatalf("unexpected global: %+v", g)
	}
}

func TestParseExtern(t *testing.T) {
	prog, sink := parseProgram(t, "extern puts(s: &str) => u32;")
	mustNoErrors(t, sink)
	if len(prog.Externs) != 1 {
		t.Fatalf("expected one extern, got %d", len(prog.Externs))
	}
	e := prog.Externs[0]
	if e.Name != "puts" || len(e.ParamTypes) != 1 {
		t.Fatalf("unexpected extern: %+v", e)
	}
}

func TestParseFuncDef(t *testing.T) {
	src := `fn add(a: u32, b: u32) => u32 {
		return a + b;
	}`
	prog, sink := parseProgram(t, src)
	mustNoErrors(t, sink)
	if len(prog.Functions) != 1 {
		t.Fatalf("expected one function, got %d", len(prog.Functions))
	}
	f := prog.Functions[0]
	if f.Name != "add" || len(f.Params) != 2 {
		t.Fatalf("unexpected function: %+v", f)
	}
	ret, ok := f.Body.Stmts[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected a return statement, got %T", f.Body.Stmts[0])
	}
	bin, ok := ret.Value.(*ast.Binary)
	if !ok || bin.Op != ast.ADD {
		t.Fatalf("expected a + binary, got %+v", ret.Value)
	}
}

func TestParseConstFuncDef(t *testing.T) {
	prog, sink := parseProgram(t, "fn const square(x: u32) => u32 { return x * x; }")
	mustNoErrors(t, sink)
	if !prog.Functions[0].IsConst {
		t.Fatalf("expected function to be const")
	}
}

func TestOperatorPrecedence(t *testing.T) {
	prog, sink := parseProgram(t, "fn f() => u32 { return 1 + 2 * 3; }")
	mustNoErrors(t, sink)
	ret := prog.Functions[0].Body.Stmts[0].(*ast.Return)
	top, ok := ret.Value.(*ast.Binary)
	if !ok || top.Op != ast.ADD {
		t.Fatalf("expected outer '+', got %+v", ret.Value)
	}
	if _, ok := top.LHS.(*ast.U32Literal); !ok {
		t.Fatalf("expected LHS to be a literal, got %T", top.LHS)
	}
	rhs, ok := top.RHS.(*ast.Binary)
	if !ok || rhs.Op != ast.MUL {
		t.Fatalf("expected RHS to be '*', got %+v", top.RHS)
	}
}

func TestExponentiationIsRightAssociative(t *testing.T) {
	prog, sink := parseProgram(t, "fn f() => u32 { return 2 ^^ 3 ^^ 2; }")
	mustNoErrors(t, sink)
	ret := prog.Functions[0].Body.Stmts[0].(*ast.Return)
	top, ok := ret.Value.(*ast.Binary)
	if !ok || top.Op != ast.EXP {
		t.Fatalf("expected outer '^^', got %+v", ret.Value)
	}
	if _, ok := top.LHS.(*ast.U32Literal); !ok {
		t.Fatalf("right-associativity requires a literal LHS, got %T", top.LHS)
	}
	if _, ok := top.RHS.(*ast.Binary); !ok {
		t.Fatalf("right-associativity requires a nested Binary RHS, got %T", top.RHS)
	}
}

func TestParseCall(t *testing.T) {
	prog, sink := parseProgram(t, "fn f() { g(1, 2); }")
	mustNoErrors(t, sink)
	exprStmt := prog.Functions[0].Body.Stmts[0].(*ast.ExprStmt)
	call, ok := exprStmt.Expr.(*ast.Call)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("expected a 2-arg call, got %+v", exprStmt.Expr)
	}
}

func TestParseLambdaCallWithHoleAndEllipsis(t *testing.T) {
	prog, sink := parseProgram(t, "fn f() { g@(_, 1, ...); }")
	mustNoErrors(t, sink)
	exprStmt := prog.Functions[0].Body.Stmts[0].(*ast.ExprStmt)
	lc, ok := exprStmt.Expr.(*ast.LambdaCall)
	if !ok {
		t.Fatalf("expected a LambdaCall, got %T", exprStmt.Expr)
	}
	if !lc.IsEllipsis || len(lc.Args) != 2 || !lc.Args[0].IsHole {
		t.Fatalf("unexpected lambda call: %+v", lc)
	}
}

func TestParseRefAndMutRef(t *testing.T) {
	prog, sink := parseProgram(t, "fn f() { let x = &mut y; }")
	mustNoErrors(t, sink)
	decl := prog.Functions[0].Body.Stmts[0].(*ast.VarDecl)
	u, ok := decl.Value.(*ast.Unary)
	if !ok || u.Op != ast.UMUT_REF {
		t.Fatalf("expected &mut unary, got %+v", decl.Value)
	}
}

func TestAmpMutIdentifierIsNotMutRef(t *testing.T) {
	// "mut5" lexes as a single identifier, distinct from the keyword
	// "mut", so "&mut5" must parse as REF of the variable "mut5".
	prog, sink := parseProgram(t, "fn f() { let x = &mut5; }")
	mustNoErrors(t, sink)
	decl := prog.Functions[0].Body.Stmts[0].(*ast.VarDecl)
	u, ok := decl.Value.(*ast.Unary)
	if !ok || u.Op != ast.UREF {
		t.Fatalf("expected plain REF, got %+v", decl.Value)
	}
	v, ok := u.Expr.(*ast.Variable)
	if !ok || v.Name != "mut5" {
		t.Fatalf("expected variable 'mut5', got %+v", u.Expr)
	}
}

func TestParseIfElse(t *testing.T) {
	prog, sink := parseProgram(t, "fn f() { if (true) { break; } else { continue; } }")
	mustNoErrors(t, sink)
	ifStmt, ok := prog.Functions[0].Body.Stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("expected an If, got %T", prog.Functions[0].Body.Stmts[0])
	}
	if ifStmt.Else == nil {
		t.Fatalf("expected an else branch")
	}
}

func TestParseWhileWithBareStatementBody(t *testing.T) {
	prog, sink := parseProgram(t, "fn f() { while (true) break; }")
	mustNoErrors(t, sink)
	w, ok := prog.Functions[0].Body.Stmts[0].(*ast.While)
	if !ok || len(w.Body.Stmts) != 1 {
		t.Fatalf("expected a while with a 1-statement body, got %+v", w)
	}
}

func TestParseMatchWithElseArm(t *testing.T) {
	src := `fn f(x: u32) {
		match (x) {
			1 => { break; }
			else => { continue; }
		}
	}`
	prog, sink := parseProgram(t, src)
	mustNoErrors(t, sink)
	m, ok := prog.Functions[0].Body.Stmts[0].(*ast.Match)
	if !ok || len(m.Arms) != 2 {
		t.Fatalf("expected a match with 2 arms, got %+v", m)
	}
	if !m.Arms[1].IsElse {
		t.Fatalf("expected the second arm to be the else arm")
	}
}

func TestParseMatchArmWithMultipleLiterals(t *testing.T) {
	src := `fn f(x: u32) {
		match (x) {
			1 | 2 | 3 => { break; }
			else => { continue; }
		}
	}`
	prog, sink := parseProgram(t, src)
	mustNoErrors(t, sink)
	m, ok := prog.Functions[0].Body.Stmts[0].(*ast.Match)
	if !ok || len(m.Arms) != 2 {
		t.Fatalf("expected a match with 2 arms, got %+v", m)
	}
	arm := m.Arms[0]
	if len(arm.Literals) != 3 {
		t.Fatalf("expected 3 literal patterns, got %d: %+v", len(arm.Literals), arm.Literals)
	}
	for i, want := range []uint64{1, 2, 3} {
		lit, ok := arm.Literals[i].(*ast.U32Literal)
		if !ok || lit.Value != want {
			t.Fatalf("literal[%d]: expected U32Literal(%d), got %+v", i, want, arm.Literals[i])
		}
	}
	// The arm's fat arrow must still terminate the pattern list, not get
	// folded into it.
	if !m.Arms[1].IsElse {
		t.Fatalf("expected the second arm to be the else arm")
	}
}

func TestParseCompoundAssign(t *testing.T) {
	prog, sink := parseProgram(t, "fn f() { x += 1; }")
	mustNoErrors(t, sink)
	a, ok := prog.Functions[0].Body.Stmts[0].(*ast.Assign)
	if !ok || a.Op != ast.ASSIGN_PLUS {
		t.Fatalf("expected a '+=' assign, got %+v", prog.Functions[0].Body.Stmts[0])
	}
}

func TestParseFunctionTypeParam(t *testing.T) {
	prog, sink := parseProgram(t, "fn apply(f: fn const(u32) => u32, x: u32) => u32 { return f(x); }")
	mustNoErrors(t, sink)
	param := prog.Functions[0].Params[0]
	ft, ok := param.Type.(*ast.FunctionTypeExpr)
	if !ok || !ft.IsConst || len(ft.ParamTypes) != 1 {
		t.Fatalf("unexpected function type param: %+v", param.Type)
	}
}

func TestParseCastAndIndex(t *testing.T) {
	prog, sink := parseProgram(t, "fn f(s: &str) => i32 { return s[0] as i32; }")
	mustNoErrors(t, sink)
	ret := prog.Functions[0].Body.Stmts[0].(*ast.Return)
	cast, ok := ret.Value.(*ast.Cast)
	if !ok {
		t.Fatalf("expected a Cast, got %T", ret.Value)
	}
	if _, ok := cast.Expr.(*ast.Index); !ok {
		t.Fatalf("expected the cast's operand to be an Index, got %T", cast.Expr)
	}
}

func TestUnexpectedTokenRecovers(t *testing.T) {
	prog, sink := parseProgram(t, "let x = ; fn f() { return 1; }")
	if !sink.HasErrors() {
		t.Fatalf("expected a parse error on the malformed global")
	}
	if len(prog.Functions) != 1 {
		t.Fatalf("expected recovery to still parse the following function, got %+v", prog.Functions)
	}
}

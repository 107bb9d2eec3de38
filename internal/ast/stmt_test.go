package ast

import "testing"

func TestVarDeclString(t *testing.T) {
	v := &VarDecl{
		Name:  "x",
		Mut:   true,
		Type:  &SimpleTypeExpr{Base: BaseU32},
		Value: &U32Literal{Value: 5},
	}
	if got, want := v.String(), "let mut x: u32 = 5;"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestVarDeclStringNoTypeAnnotation(t *testing.T) {
	v := &VarDecl{Name: "x", Value: &U32Literal{Value: 5}}
	if got, want := v.String(), "let x = 5;"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestIfElseString(t *testing.T) {
	i := &If{
		Cond: &Variable{Name: "cond"},
		Then: &Block{Stmts: []Statement{&Break{}}},
		Else: &Block{Stmts: []Statement{&Continue{}}},
	}
	want := "if (cond) {\nbreak;\n} else {\ncontinue;\n}"
	if got := i.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestMatchArmElseString(t *testing.T) {
	arm := MatchArm{IsElse: true, Body: &Block{Stmts: []Statement{&Break{}}}}
	if got, want := arm.String(), "else => {\nbreak;\n}"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestFuncDefString(t *testing.T) {
	f := &FuncDef{
		Name:       "add",
		Params:     []Param{{Name: "a", Type: &SimpleTypeExpr{Base: BaseU32}}, {Name: "b", Type: &SimpleTypeExpr{Base: BaseU32}}},
		ReturnType: &SimpleTypeExpr{Base: BaseU32},
		Body:       &Block{Stmts: []Statement{&Return{Value: &Variable{Name: "a"}}}},
	}
	want := "fn add(a: u32, b: u32) => u32 {\nreturn a;\n}"
	if got := f.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestExternString(t *testing.T) {
	e := &Extern{
		Name:       "puts",
		ParamTypes: []TypeExpr{&SimpleTypeExpr{Ref: RefShared, Base: BaseStr}},
	}
	if got, want := e.String(), "extern puts(&str);"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestAssignCompoundString(t *testing.T) {
	a := &Assign{
		Target: &Variable{Name: "x"},
		Op:     ASSIGN_PLUS,
		Value:  &U32Literal{Value: 1},
	}
	if got, want := a.String(), "x += 1;"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

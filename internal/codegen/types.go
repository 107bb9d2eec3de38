package codegen

import (
	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/types"
	"tinygo.org/x/go-llvm"
)

var baseKindFor = map[ast.BaseTypeKeyword]types.Kind{
	ast.BaseU32: types.U32, ast.BaseI32: types.I32, ast.BaseF64: types.F64,
	ast.BaseBool: types.BOOL, ast.BaseChar: types.CHAR, ast.BaseStr: types.STR,
}

// resolveTypeExpr mirrors internal/semantic.Checker.resolveType: codegen
// only ever runs over an already-checked program, so every TypeExpr it
// sees has been resolved once already and this never needs to report an
// error.
func resolveTypeExpr(te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case *ast.SimpleTypeExpr:
		kind := baseKindFor[t.Base]
		switch t.Ref {
		case ast.RefShared:
			return types.SimpleType{Kind: kind, Ref: types.Ref_}
		case ast.RefMut:
			return types.SimpleType{Kind: kind, Ref: types.MutRef}
		default:
			return types.NonRefOf(kind)
		}
	case *ast.FunctionTypeExpr:
		args := make([]types.Type, len(t.ParamTypes))
		for i, p := range t.ParamTypes {
			args[i] = resolveTypeExpr(p)
		}
		var ret types.Type
		if t.ReturnType != nil {
			ret = resolveTypeExpr(t.ReturnType)
		}
		return types.FunctionType{Args: args, Return: ret, IsConst: t.IsConst}
	default:
		return nil
	}
}

// llvmType lowers a resolved type to its LLVM representation, per
// spec.md §4.5: 1-bit for BOOL, 32-bit integer for U32/I32/CHAR, 64-bit
// float for F64, and for any reference a pointer to its base kind's type
// (so STR, which only ever appears under a Ref — spec.md §3 — is a
// pointer to a 32-bit integer).
func (g *Generator) llvmType(t types.Type) llvm.Type {
	st, ok := t.(types.SimpleType)
	if !ok {
		panic("codegen: function-typed values have no direct LLVM representation")
	}
	base := g.baseLLVMType(st.Kind)
	if st.Ref != types.NonRef {
		return llvm.PointerType(base, 0)
	}
	return base
}

func (g *Generator) baseLLVMType(k types.Kind) llvm.Type {
	switch k {
	case types.BOOL:
		return g.ctx.Int1Type()
	case types.F64:
		return g.ctx.DoubleType()
	default: // U32, I32, CHAR, and STR's buffer element type.
		return g.ctx.Int32Type()
	}
}

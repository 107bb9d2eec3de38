package semantic

import (
	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/types"
)

var baseKindFor = map[ast.BaseTypeKeyword]types.Kind{
	ast.BaseU32: types.U32, ast.BaseI32: types.I32, ast.BaseF64: types.F64,
	ast.BaseBool: types.BOOL, ast.BaseChar: types.CHAR, ast.BaseStr: types.STR,
}

// resolveType turns a parser's syntactic TypeExpr into a resolved
// types.Type. te is nil for the "no return value" case; callers check
// that separately.
func (c *Checker) resolveType(te ast.TypeExpr) types.Type {
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
			args[i] = c.resolveType(p)
		}
		var ret types.Type
		if t.ReturnType != nil {
			ret = c.resolveType(t.ReturnType)
		}
		return types.FunctionType{Args: args, Return: ret, IsConst: t.IsConst}
	default:
		return nil
	}
}

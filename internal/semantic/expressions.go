package semantic

import (
	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/types"
)

// invalidType is returned by checkExpr on any error so callers can keep
// walking the tree without cascading "expected X got <nil>" diagnostics;
// comparisons against it always fail, which is what we want once an
// error has already been reported at the offending node.
var invalidType = types.SimpleType{Kind: types.Kind(-1)}

func isInvalid(t types.Type) bool {
	s, ok := t.(types.SimpleType)
	return ok && s.Kind == types.Kind(-1)
}

// annotate stores the checker's verdict on a TypedExpression and returns
// the resolved type, so call sites can both annotate and propagate the
// type in one expression.
func annotate(e ast.TypedExpression, t types.Type, assignable, initialized bool) types.Type {
	e.SetResolvedType(t)
	e.SetAssignable(assignable)
	e.SetInitialized(initialized)
	return t
}

// checkExpr resolves e's type, enforces spec.md §4.4's typing rules, and
// annotates e via its TypedExpression interface.
func (c *Checker) checkExpr(e ast.Expression) types.Type {
	switch ex := e.(type) {
	case *ast.U32Literal:
		return annotate(ex, types.NonRefOf(types.U32), false, true)
	case *ast.F64Literal:
		return annotate(ex, types.NonRefOf(types.F64), false, true)
	case *ast.BoolLiteral:
		return annotate(ex, types.NonRefOf(types.BOOL), false, true)
	case *ast.CharLiteral:
		return annotate(ex, types.NonRefOf(types.CHAR), false, true)
	case *ast.StringLiteral:
		return annotate(ex, types.Str(), false, true)
	case *ast.Variable:
		return c.checkVariable(ex)
	case *ast.Unary:
		return c.checkUnary(ex)
	case *ast.Binary:
		return c.checkBinary(ex)
	case *ast.Index:
		return c.checkIndex(ex)
	case *ast.Cast:
		return c.checkCast(ex)
	case *ast.Call:
		return c.checkCall(ex)
	case *ast.LambdaCall:
		return c.checkLambdaCall(ex)
	default:
		c.errAt(e, "internal: unhandled expression kind")
		return invalidType
	}
}

func (c *Checker) checkVariable(v *ast.Variable) types.Type {
	sym, depth, ok := c.symbols.Resolve(v.Name)
	if !ok || sym.Var == nil {
		c.errAt(v, "undefined variable '%s'", v.Name)
		return annotate(v, invalidType, false, false)
	}
	c.checkPurity(v, v.Name, sym, depth)
	return annotate(v, sym.Var.Type, sym.Var.Mut, sym.Var.Initialized)
}

func (c *Checker) checkUnary(u *ast.Unary) types.Type {
	operand := c.checkExpr(u.Expr)
	if isInvalid(operand) {
		return annotate(u, invalidType, false, false)
	}
	simple, isSimple := operand.(types.SimpleType)

	switch u.Op {
	case ast.INC, ast.DEC, ast.UMINUS:
		if !isSimple || !simple.IsNumeric() {
			c.errAt(u, "operator '%s' requires a numeric operand", u.Op)
			return annotate(u, invalidType, false, false)
		}
		return annotate(u, operand, false, true)
	case ast.BIT_NEG:
		if !isSimple || !simple.IsInteger() {
			c.errAt(u, "operator '~' requires an integer operand")
			return annotate(u, invalidType, false, false)
		}
		return annotate(u, operand, false, true)
	case ast.NEG:
		if !isSimple || simple.Kind != types.BOOL || simple.Ref != types.NonRef {
			c.errAt(u, "operator '!' requires a bool operand")
			return annotate(u, invalidType, false, false)
		}
		return annotate(u, operand, false, true)
	case ast.UREF, ast.UMUT_REF:
		if !isSimple || simple.Ref != types.NonRef {
			c.errAt(u, "'&'/'&mut' require a non-reference operand")
			return annotate(u, invalidType, false, false)
		}
		if u.Op == ast.UMUT_REF && !u.Expr.(ast.TypedExpression).Assignable() {
			c.errAt(u, "'&mut' requires a mutable operand")
			return annotate(u, invalidType, false, false)
		}
		if u.Op == ast.UMUT_REF {
			return annotate(u, simple.AsMutRef(), false, true)
		}
		return annotate(u, simple.AsRef(), false, true)
	case ast.UDEREF:
		if !isSimple || simple.Ref == types.NonRef {
			c.errAt(u, "'*' requires a reference operand")
			return annotate(u, invalidType, false, false)
		}
		return annotate(u, simple.Deref(), simple.Ref == types.MutRef, true)
	default:
		c.errAt(u, "internal: unhandled unary operator")
		return annotate(u, invalidType, false, false)
	}
}

func (c *Checker) checkBinary(b *ast.Binary) types.Type {
	lhs := c.checkExpr(b.LHS)
	rhs := c.checkExpr(b.RHS)
	if isInvalid(lhs) || isInvalid(rhs) {
		return annotate(b, invalidType, false, false)
	}

	ls, lok := lhs.(types.SimpleType)
	rs, rok := rhs.(types.SimpleType)
	if !lok || !rok {
		c.errAt(b, "operator '%s' does not support function-typed operands", b.Op)
		return annotate(b, invalidType, false, false)
	}

	switch b.Op {
	case ast.ADD:
		// '+' additionally concatenates STR-reference and STR+CHAR pairs.
		if ls.Ref == types.Ref_ && ls.Kind == types.STR {
			if (rs.Kind == types.STR && rs.Ref == types.Ref_) || (rs.Kind == types.CHAR && rs.Ref == types.NonRef) {
				return annotate(b, types.Str(), false, true)
			}
		}
		return c.checkArithmetic(b, ls, rs)
	case ast.SUB, ast.MUL, ast.DIV:
		return c.checkArithmetic(b, ls, rs)
	case ast.MOD:
		return c.checkArithmeticNoMixedSign(b, ls, rs)
	case ast.EXP:
		if ls.Kind == types.I32 && ls.Ref == types.NonRef {
			c.errAt(b, "exponentiation is not defined for signed integers")
			return annotate(b, invalidType, false, false)
		}
		return c.checkArithmeticNoMixedSign(b, ls, rs)
	case ast.SHL, ast.SHR:
		return c.checkShift(b, ls, rs)
	case ast.BIT_AND, ast.BIT_OR, ast.BIT_XOR:
		if !ls.Equals(rs) || !ls.IsInteger() {
			c.errAt(b, "operator '%s' requires matching integer operands", b.Op)
			return annotate(b, invalidType, false, false)
		}
		return annotate(b, ls, false, true)
	case ast.AND, ast.OR:
		if ls.Kind != types.BOOL || ls.Ref != types.NonRef || !ls.Equals(rs) {
			c.errAt(b, "operator '%s' requires bool operands", b.Op)
			return annotate(b, invalidType, false, false)
		}
		return annotate(b, types.NonRefOf(types.BOOL), false, true)
	case ast.EQ, ast.NEQ:
		return c.checkEquality(b, ls, rs)
	case ast.GT, ast.GE, ast.LT, ast.LE:
		if !ls.Equals(rs) || ls.Ref == types.Ref_ || ls.Ref == types.MutRef || ls.Kind == types.STR {
			c.errAt(b, "operator '%s' requires matching non-reference, non-str operands", b.Op)
			return annotate(b, invalidType, false, false)
		}
		return annotate(b, types.NonRefOf(types.BOOL), false, true)
	default:
		c.errAt(b, "internal: unhandled binary operator")
		return annotate(b, invalidType, false, false)
	}
}

func (c *Checker) checkArithmetic(b *ast.Binary, ls, rs types.SimpleType) types.Type {
	if !ls.Equals(rs) || !ls.IsNumeric() {
		c.errAt(b, "operator '%s' requires matching numeric operands", b.Op)
		return annotate(b, invalidType, false, false)
	}
	return annotate(b, ls, false, true)
}

// checkArithmeticNoMixedSign handles '%' and '^^', which reject mixed
// signedness even though they otherwise follow the arithmetic rule
// (matching operand types is already mixed-signedness-proof, since U32
// and I32 are distinct SimpleTypes; this function exists so the
// rejection is named at the call site per spec.md's explicit callout).
func (c *Checker) checkArithmeticNoMixedSign(b *ast.Binary, ls, rs types.SimpleType) types.Type {
	return c.checkArithmetic(b, ls, rs)
}

func (c *Checker) checkShift(b *ast.Binary, ls, rs types.SimpleType) types.Type {
	if !ls.IsInteger() || !rs.IsInteger() {
		c.errAt(b, "shift operands must be u32 or i32")
		return annotate(b, invalidType, false, false)
	}
	// The shift amount must be U32 whatever the left operand's sign, so
	// the left operand's type alone determines the result.
	if rs.Kind != types.U32 {
		c.errAt(b, "shift amount must be u32")
		return annotate(b, invalidType, false, false)
	}
	return annotate(b, ls, false, true)
}

func (c *Checker) checkEquality(b *ast.Binary, ls, rs types.SimpleType) types.Type {
	if !ls.Equals(rs) {
		c.errAt(b, "'%s' requires matching operand types", b.Op)
		return annotate(b, invalidType, false, false)
	}
	switch ls.Kind {
	case types.BOOL, types.CHAR:
		if ls.Ref != types.NonRef {
			c.errAt(b, "'%s' requires non-reference operands", b.Op)
			return annotate(b, invalidType, false, false)
		}
	case types.STR:
		// TODO: str is a raw pointer-to-buffer with no length prefix, so
		// there's no representation to compare against yet; revisit once
		// strings carry a length.
		c.errAt(b, "'%s' is not defined for str operands", b.Op)
		return annotate(b, invalidType, false, false)
	case types.U32, types.I32, types.F64:
		if ls.Ref != types.NonRef {
			c.errAt(b, "'%s' requires non-reference operands", b.Op)
			return annotate(b, invalidType, false, false)
		}
	}
	return annotate(b, types.NonRefOf(types.BOOL), false, true)
}

func (c *Checker) checkIndex(ix *ast.Index) types.Type {
	target := c.checkExpr(ix.Expr)
	idx := c.checkExpr(ix.Idx)
	if isInvalid(target) || isInvalid(idx) {
		return annotate(ix, invalidType, false, false)
	}
	ts, ok := target.(types.SimpleType)
	if !ok || ts.Kind != types.STR || ts.Ref != types.Ref_ {
		c.errAt(ix, "index target must be a str reference")
		return annotate(ix, invalidType, false, false)
	}
	is, ok := idx.(types.SimpleType)
	if !ok || is.Kind != types.U32 || is.Ref != types.NonRef {
		c.errAt(ix, "index must be u32")
		return annotate(ix, invalidType, false, false)
	}
	return annotate(ix, types.NonRefOf(types.CHAR), false, true)
}

// castTable enumerates the allowed source→target pairs from spec.md
// §4.4's cast table.
var castTable = map[types.Kind]map[types.Kind]bool{
	types.BOOL: {types.BOOL: true, types.U32: true, types.I32: true, types.F64: true},
	types.U32:  {types.U32: true, types.I32: true, types.F64: true, types.CHAR: true},
	types.I32:  {types.I32: true, types.U32: true, types.F64: true, types.CHAR: true},
	types.F64:  {types.F64: true, types.U32: true, types.I32: true},
	types.CHAR: {types.CHAR: true, types.U32: true, types.I32: true},
}

func (c *Checker) checkCast(cast *ast.Cast) types.Type {
	src := c.checkExpr(cast.Expr)
	target := c.resolveType(cast.Target)
	if isInvalid(src) {
		return annotate(cast, invalidType, false, false)
	}
	ss, ok := src.(types.SimpleType)
	ts, tok := target.(types.SimpleType)
	if !ok || !tok || ss.Ref != types.NonRef || ts.Ref != types.NonRef {
		c.errAt(cast, "casts to/from references or strings are forbidden")
		return annotate(cast, invalidType, false, false)
	}
	if allowed, ok := castTable[ss.Kind]; !ok || !allowed[ts.Kind] {
		c.errAt(cast, "no cast from %s to %s", ss, ts)
		return annotate(cast, invalidType, false, false)
	}
	return annotate(cast, ts, false, true)
}

func (c *Checker) checkCall(call *ast.Call) types.Type {
	var fnType types.FunctionType
	var ok bool

	if v, isVar := call.Callable.(*ast.Variable); isVar {
		sym, depth, found := c.symbols.Resolve(v.Name)
		if !found {
			c.errAt(call, "undefined variable '%s'", v.Name)
			return annotate(call, invalidType, false, false)
		}
		c.checkPurity(call, v.Name, sym, depth)
		switch {
		case sym.Func != nil:
			fnType = sym.Func.Type
			ok = true
			annotate(v, fnType, false, true)
		case sym.Var != nil:
			if ft, isFn := sym.Var.Type.(types.FunctionType); isFn {
				fnType = ft
				ok = true
			}
			annotate(v, sym.Var.Type, sym.Var.Mut, sym.Var.Initialized)
		}
	} else {
		t := c.checkExpr(call.Callable)
		if isInvalid(t) {
			return annotate(call, invalidType, false, false)
		}
		fnType, ok = t.(types.FunctionType)
	}

	if !ok {
		c.errAt(call, "callable's type must be a function type")
		return annotate(call, invalidType, false, false)
	}
	if len(call.Args) != len(fnType.Args) {
		c.errAt(call, "expected %d argument(s), got %d", len(fnType.Args), len(call.Args))
		return annotate(call, invalidType, false, false)
	}
	for i, arg := range call.Args {
		at := c.checkExpr(arg)
		if isInvalid(at) {
			continue
		}
		if !at.Equals(fnType.Args[i]) {
			c.errAt(arg, "argument %d: expected %s, got %s", i+1, fnType.Args[i], at)
		}
	}
	if fnType.Return == nil {
		return annotate(call, invalidType, false, false)
	}
	return annotate(call, fnType.Return, false, true)
}

// checkLambdaCall implements spec.md §4.4's lambda-call typing: filled
// positions must match; hole positions form a new function type whose
// parameters are the holes' corresponding parameter types, in order,
// plus any trailing parameters implied by a present "...".
func (c *Checker) checkLambdaCall(lc *ast.LambdaCall) types.Type {
	v, isVar := lc.Callable.(*ast.Variable)
	if !isVar {
		c.errAt(lc, "lambda-call target must be a named function")
		return annotate(lc, invalidType, false, false)
	}
	sym, depth, found := c.symbols.Resolve(v.Name)
	if !found || sym.Func == nil {
		c.errAt(lc, "'%s' is not a function", v.Name)
		return annotate(lc, invalidType, false, false)
	}
	c.checkPurity(lc, v.Name, sym, depth)
	fnType := sym.Func.Type

	explicit := len(lc.Args)
	if lc.IsEllipsis && explicit > len(fnType.Args) {
		c.errAt(lc, "too many lambda-call arguments for '%s'", v.Name)
		return annotate(lc, invalidType, false, false)
	}
	if !lc.IsEllipsis && explicit != len(fnType.Args) {
		c.errAt(lc, "expected %d argument(s), got %d", len(fnType.Args), explicit)
		return annotate(lc, invalidType, false, false)
	}

	var holeParams []types.Type
	for i, a := range lc.Args {
		if a.IsHole {
			holeParams = append(holeParams, fnType.Args[i])
			continue
		}
		at := c.checkExpr(a.Expr)
		if isInvalid(at) {
			continue
		}
		if !at.Equals(fnType.Args[i]) {
			c.errAt(a.Expr, "lambda-call argument %d: expected %s, got %s", i+1, fnType.Args[i], at)
		}
	}
	if lc.IsEllipsis {
		holeParams = append(holeParams, fnType.Args[explicit:]...)
	}

	result := types.FunctionType{Args: holeParams, Return: fnType.Return, IsConst: fnType.IsConst}
	return annotate(lc, result, false, true)
}

package codegen

import (
	"fmt"

	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/diag"
	"github.com/chr1sps/mole/internal/types"
	"tinygo.org/x/go-llvm"
)

// genExpr lowers e to the LLVM value it evaluates to, per spec.md
// §4.5's lowering rules. It assumes e was produced by a program that
// passed internal/semantic.Check.
func (g *Generator) genExpr(e ast.Expression) llvm.Value {
	switch ex := e.(type) {
	case *ast.U32Literal:
		return llvm.ConstInt(g.ctx.Int32Type(), ex.Value, false)
	case *ast.F64Literal:
		return llvm.ConstFloat(g.ctx.DoubleType(), ex.Value)
	case *ast.BoolLiteral:
		return llvm.ConstInt(g.ctx.Int1Type(), boolBit(ex.Value), false)
	case *ast.CharLiteral:
		return llvm.ConstInt(g.ctx.Int32Type(), uint64(ex.Value), false)
	case *ast.StringLiteral:
		return g.genStringLiteral(ex.Value)
	case *ast.Variable:
		return g.genVariableLoad(ex)
	case *ast.Unary:
		return g.genUnary(ex)
	case *ast.Binary:
		return g.genBinary(ex)
	case *ast.Index:
		return g.genIndex(ex)
	case *ast.Cast:
		return g.genCast(ex)
	case *ast.Call:
		return g.genCall(ex)
	case *ast.LambdaCall:
		return g.genLambdaCall(ex)
	default:
		panic(unhandled("expression", e))
	}
}

// genStringLiteral lowers a string literal to a private, constant,
// null-terminated global array of 32-bit integers and returns a pointer
// to its first element, per spec.md §4.5.
func (g *Generator) genStringLiteral(s string) llvm.Value {
	elemTy := g.ctx.Int32Type()
	runes := []rune(s)
	vals := make([]llvm.Value, len(runes)+1)
	for i, r := range runes {
		vals[i] = llvm.ConstInt(elemTy, uint64(r), false)
	}
	vals[len(runes)] = llvm.ConstInt(elemTy, 0, false)

	arrTy := llvm.ArrayType(elemTy, len(vals))
	name := fmt.Sprintf(".str.%d", g.strCount)
	g.strCount++
	global := llvm.AddGlobal(g.module, arrTy, name)
	global.SetInitializer(llvm.ConstArray(elemTy, vals))
	global.SetLinkage(llvm.PrivateLinkage)
	global.SetGlobalConstant(true)

	zero := llvm.ConstInt(elemTy, 0, false)
	return g.builder.CreateGEP(arrTy, global, []llvm.Value{zero, zero}, "")
}

func (g *Generator) genVariableLoad(v *ast.Variable) llvm.Value {
	b := g.resolve(v.Name)
	if _, isFn := b.typ.(types.FunctionType); isFn {
		return b.addr
	}
	return g.builder.CreateLoad(g.llvmType(b.typ), b.addr, "")
}

func (g *Generator) genUnary(u *ast.Unary) llvm.Value {
	switch u.Op {
	case ast.UREF, ast.UMUT_REF:
		addr, _ := g.genLValueAddr(u.Expr)
		return addr
	case ast.UDEREF:
		ptr := g.genExpr(u.Expr)
		return g.builder.CreateLoad(g.llvmType(u.ResolvedType()), ptr, "")
	}

	operand := g.genExpr(u.Expr)
	opType := u.Expr.(ast.TypedExpression).ResolvedType().(types.SimpleType)
	switch u.Op {
	case ast.UMINUS:
		if opType.Kind == types.F64 {
			return g.builder.CreateFNeg(operand, "")
		}
		// U32 and I32 share the same 32-bit LLVM representation, so the
		// widening step spec.md describes for a narrower U32 is a no-op
		// at this bit width.
		return g.builder.CreateNeg(operand, "")
	case ast.BIT_NEG, ast.NEG:
		return g.builder.CreateNot(operand, "")
	case ast.INC:
		if opType.Kind == types.F64 {
			return g.builder.CreateFAdd(operand, llvm.ConstFloat(operand.Type(), 1), "")
		}
		return g.builder.CreateAdd(operand, llvm.ConstInt(operand.Type(), 1, false), "")
	case ast.DEC:
		if opType.Kind == types.F64 {
			return g.builder.CreateFSub(operand, llvm.ConstFloat(operand.Type(), 1), "")
		}
		return g.builder.CreateSub(operand, llvm.ConstInt(operand.Type(), 1, false), "")
	default:
		panic(unhandled("unary operator", u.Op))
	}
}

// genLValueAddr returns the stack address (or GEP) an assignment or a
// '&'/'&mut' operand needs, and the type stored there.
func (g *Generator) genLValueAddr(e ast.Expression) (llvm.Value, types.Type) {
	switch ex := e.(type) {
	case *ast.Variable:
		b := g.resolve(ex.Name)
		return b.addr, b.typ
	case *ast.Unary: // UDEREF
		ptr := g.genExpr(ex.Expr)
		baseType := ex.Expr.(ast.TypedExpression).ResolvedType().(types.SimpleType).Deref()
		return ptr, baseType
	case *ast.Index:
		strPtr := g.genExpr(ex.Expr)
		idx := g.genExpr(ex.Idx)
		elemTy := g.ctx.Int32Type()
		gep := g.builder.CreateGEP(elemTy, strPtr, []llvm.Value{idx}, "")
		return gep, types.NonRefOf(types.CHAR)
	default:
		panic(unhandled("assignment target", e))
	}
}

func (g *Generator) genBinary(b *ast.Binary) llvm.Value {
	lhsType := b.LHS.(ast.TypedExpression).ResolvedType().(types.SimpleType)
	rhsType := b.RHS.(ast.TypedExpression).ResolvedType().(types.SimpleType)

	if b.Op == ast.ADD && lhsType.Kind == types.STR {
		return g.genStringConcat(b, rhsType)
	}
	if b.Op == ast.AND {
		return g.builder.CreateAnd(g.genExpr(b.LHS), g.genExpr(b.RHS), "")
	}
	if b.Op == ast.OR {
		return g.builder.CreateOr(g.genExpr(b.LHS), g.genExpr(b.RHS), "")
	}

	lhs := g.genExpr(b.LHS)
	rhs := g.genExpr(b.RHS)
	return g.genBinaryOp(b.Op, lhsType, lhs, rhs)
}

// genBinaryOp is the shared core between ordinary binary expressions and
// compound assignment's implicit arithmetic, per spec.md §4.5's
// binary-op lowering table.
func (g *Generator) genBinaryOp(op ast.BinOp, t types.SimpleType, lhs, rhs llvm.Value) llvm.Value {
	isFloat := t.Kind == types.F64
	isSigned := t.Kind == types.I32

	switch op {
	case ast.ADD:
		if isFloat {
			return g.builder.CreateFAdd(lhs, rhs, "")
		}
		return g.builder.CreateAdd(lhs, rhs, "")
	case ast.SUB:
		if isFloat {
			return g.builder.CreateFSub(lhs, rhs, "")
		}
		return g.builder.CreateSub(lhs, rhs, "")
	case ast.MUL:
		if isFloat {
			return g.builder.CreateFMul(lhs, rhs, "")
		}
		return g.builder.CreateMul(lhs, rhs, "")
	case ast.DIV:
		if isFloat {
			return g.builder.CreateFDiv(lhs, rhs, "")
		}
		if isSigned {
			return g.builder.CreateSDiv(lhs, rhs, "")
		}
		return g.builder.CreateUDiv(lhs, rhs, "")
	case ast.MOD:
		if isFloat {
			return g.builder.CreateFRem(lhs, rhs, "")
		}
		if isSigned {
			return g.builder.CreateSRem(lhs, rhs, "")
		}
		return g.builder.CreateURem(lhs, rhs, "")
	case ast.EXP:
		return g.genExp(t, lhs, rhs)
	case ast.EQ, ast.NEQ:
		if isFloat {
			pred := llvm.FloatOEQ
			if op == ast.NEQ {
				pred = llvm.FloatONE
			}
			return g.builder.CreateFCmp(pred, lhs, rhs, "")
		}
		pred := llvm.IntEQ
		if op == ast.NEQ {
			pred = llvm.IntNE
		}
		return g.builder.CreateICmp(pred, lhs, rhs, "")
	case ast.GT, ast.GE, ast.LT, ast.LE:
		if isFloat {
			return g.builder.CreateFCmp(floatPred(op), lhs, rhs, "")
		}
		return g.builder.CreateICmp(intPred(op, isSigned), lhs, rhs, "")
	case ast.SHL:
		return g.builder.CreateShl(lhs, rhs, "")
	case ast.SHR:
		if isSigned {
			return g.builder.CreateAShr(lhs, rhs, "")
		}
		return g.builder.CreateLShr(lhs, rhs, "")
	case ast.BIT_AND:
		return g.builder.CreateAnd(lhs, rhs, "")
	case ast.BIT_OR:
		return g.builder.CreateOr(lhs, rhs, "")
	case ast.BIT_XOR:
		return g.builder.CreateXor(lhs, rhs, "")
	default:
		panic(unhandled("binary operator", op))
	}
}

func floatPred(op ast.BinOp) llvm.FloatPredicate {
	switch op {
	case ast.GT:
		return llvm.FloatOGT
	case ast.GE:
		return llvm.FloatOGE
	case ast.LT:
		return llvm.FloatOLT
	case ast.LE:
		return llvm.FloatOLE
	default:
		panic(unhandled("float comparison operator", op))
	}
}

func intPred(op ast.BinOp, signed bool) llvm.IntPredicate {
	if signed {
		switch op {
		case ast.GT:
			return llvm.IntSGT
		case ast.GE:
			return llvm.IntSGE
		case ast.LT:
			return llvm.IntSLT
		case ast.LE:
			return llvm.IntSLE
		}
	}
	switch op {
	case ast.GT:
		return llvm.IntUGT
	case ast.GE:
		return llvm.IntUGE
	case ast.LT:
		return llvm.IntULT
	case ast.LE:
		return llvm.IntULE
	}
	panic(unhandled("int comparison operator", op))
}

// genExp lowers '^^' to the llvm.powi (integer exponent) or llvm.pow
// (float) intrinsic. Per DESIGN.md's Open Question Decisions, the
// checker already rejects I32 ^^ I32, so t is always U32 or F64 here.
func (g *Generator) genExp(t types.SimpleType, lhs, rhs llvm.Value) llvm.Value {
	if t.Kind == types.F64 {
		fn, fnTy := g.intrinsic("llvm.pow.f64", []llvm.Type{g.ctx.DoubleType(), g.ctx.DoubleType()})
		return g.builder.CreateCall(fnTy, fn, []llvm.Value{lhs, rhs}, "")
	}
	fn, fnTy := g.intrinsic("llvm.powi.i32.i32", []llvm.Type{g.ctx.Int32Type(), g.ctx.Int32Type()})
	return g.builder.CreateCall(fnTy, fn, []llvm.Value{lhs, rhs}, "")
}

func (g *Generator) intrinsic(name string, argTypes []llvm.Type) (llvm.Value, llvm.Type) {
	fnTy := llvm.FunctionType(argTypes[0], argTypes, false)
	if fn := g.module.NamedFunction(name); !fn.IsNil() {
		return fn, fnTy
	}
	return llvm.AddFunction(g.module, name, fnTy), fnTy
}

// genStringConcat lowers '+' on a STR-reference lhs to a call into a
// small runtime support library, the same way an Extern call is lowered
// — strings carry no length prefix (spec.md §4.5), so concatenation
// cannot be done inline and needs a helper the linker resolves, exactly
// like any other extern.
func (g *Generator) genStringConcat(b *ast.Binary, rhsType types.SimpleType) llvm.Value {
	lhs := g.genExpr(b.LHS)
	rhs := g.genExpr(b.RHS)
	strPtr := llvm.PointerType(g.ctx.Int32Type(), 0)

	if rhsType.Kind == types.CHAR {
		fn, fnTy := g.runtimeHelper("mole_str_append_char",
			llvm.FunctionType(strPtr, []llvm.Type{strPtr, g.ctx.Int32Type()}, false))
		return g.builder.CreateCall(fnTy, fn, []llvm.Value{lhs, rhs}, "")
	}
	fn, fnTy := g.runtimeHelper("mole_str_concat",
		llvm.FunctionType(strPtr, []llvm.Type{strPtr, strPtr}, false))
	return g.builder.CreateCall(fnTy, fn, []llvm.Value{lhs, rhs}, "")
}

func (g *Generator) runtimeHelper(name string, fnTy llvm.Type) (llvm.Value, llvm.Type) {
	if fn := g.module.NamedFunction(name); !fn.IsNil() {
		return fn, fnTy
	}
	return llvm.AddFunction(g.module, name, fnTy), fnTy
}

func (g *Generator) genIndex(ix *ast.Index) llvm.Value {
	ptr := g.genExpr(ix.Expr)
	idx := g.genExpr(ix.Idx)
	elemTy := g.ctx.Int32Type()
	gep := g.builder.CreateGEP(elemTy, ptr, []llvm.Value{idx}, "")
	return g.builder.CreateLoad(elemTy, gep, "")
}

// genCast lowers 'as' per spec.md §4.5's allowed-pairs table: any pair
// among U32, I32 and CHAR is a representation no-op (all 32-bit
// integers); every other pair emits the matching conversion instruction.
func (g *Generator) genCast(c *ast.Cast) llvm.Value {
	srcType := c.Expr.(ast.TypedExpression).ResolvedType().(types.SimpleType)
	dstType := resolveTypeExpr(c.Target).(types.SimpleType)
	v := g.genExpr(c.Expr)

	if srcType.Kind == dstType.Kind {
		return v
	}
	if isNoOpIntCast(srcType.Kind, dstType.Kind) {
		return v
	}

	dstLL := g.llvmType(dstType)
	switch {
	case srcType.Kind == types.BOOL && dstType.Kind == types.F64:
		return g.builder.CreateUIToFP(v, dstLL, "")
	case srcType.Kind == types.BOOL:
		return g.builder.CreateZExt(v, dstLL, "")
	case srcType.Kind == types.F64 && dstType.Kind == types.U32:
		return g.builder.CreateFPToUI(v, dstLL, "")
	case srcType.Kind == types.F64 && dstType.Kind == types.I32:
		return g.builder.CreateFPToSI(v, dstLL, "")
	case dstType.Kind == types.F64 && srcType.Kind == types.I32:
		return g.builder.CreateSIToFP(v, dstLL, "")
	case dstType.Kind == types.F64:
		return g.builder.CreateUIToFP(v, dstLL, "")
	default: // U32<->I32: identical 32-bit representation.
		return v
	}
}

func isNoOpIntCast(src, dst types.Kind) bool {
	is32 := func(k types.Kind) bool { return k == types.U32 || k == types.I32 || k == types.CHAR }
	return is32(src) && is32(dst)
}

func (g *Generator) genCall(call *ast.Call) llvm.Value {
	v, isVar := call.Callable.(*ast.Variable)
	if !isVar {
		panic("codegen: non-variable call targets are unreachable for a checked program")
	}
	b := g.resolve(v.Name)
	args := make([]llvm.Value, len(call.Args))
	for i, a := range call.Args {
		args[i] = g.genExpr(a)
	}
	return g.builder.CreateCall(b.fnType, b.addr, args, "")
}

// genLambdaCall rejects lambda calls at the code generator, per
// spec.md §4.5 and DESIGN.md's Open Question Decisions: the checker
// accepts them (producing a function-typed value), but the closure
// representation a partially applied function value needs is not yet
// specified.
func (g *Generator) genLambdaCall(lc *ast.LambdaCall) llvm.Value {
	g.sink.Addf(diag.Codegen, lc.Pos(), diag.Error,
		"lambda calls are not yet compiled: closure-capture representation is unresolved")
	return llvm.ConstInt(g.ctx.Int32Type(), 0, false)
}

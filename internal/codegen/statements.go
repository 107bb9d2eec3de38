package codegen

import (
	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/diag"
	"github.com/chr1sps/mole/internal/types"
	"tinygo.org/x/go-llvm"
)

// genStmt generates s and reports whether it unconditionally terminated
// the current basic block (a return, or a break/continue), mirroring
// internal/semantic's return-coverage analysis — here the same notion
// also tells callers whether it is safe to keep emitting instructions
// into the current block or whether a terminator has already been
// placed.
func (g *Generator) genStmt(s ast.Statement) bool {
	switch st := s.(type) {
	case *ast.VarDecl:
		return g.genVarDecl(st)
	case *ast.Assign:
		return g.genAssign(st)
	case *ast.ExprStmt:
		g.genExpr(st.Expr)
		return false
	case *ast.Return:
		return g.genReturn(st)
	case *ast.Continue:
		g.builder.CreateBr(g.loops[len(g.loops)-1].cond)
		return true
	case *ast.Break:
		g.builder.CreateBr(g.loops[len(g.loops)-1].exit)
		return true
	case *ast.While:
		return g.genWhile(st)
	case *ast.If:
		return g.genIf(st)
	case *ast.Match:
		return g.genMatch(st)
	case *ast.Block:
		return g.genBlock(st)
	default:
		panic(unhandled("statement", s))
	}
}

func (g *Generator) genBlock(b *ast.Block) bool {
	g.pushScope()
	covers := g.genBlockStmts(b.Stmts)
	g.popScope()
	return covers
}

// genBlockStmts stops as soon as a statement covers: a block can have at
// most one terminator, so statements after an unconditional
// return/break/continue are not emitted (internal/semantic does not
// reject such unreachable statements).
func (g *Generator) genBlockStmts(stmts []ast.Statement) bool {
	for _, s := range stmts {
		if g.genStmt(s) {
			return true
		}
	}
	return false
}

func (g *Generator) genVarDecl(v *ast.VarDecl) bool {
	var t types.Type
	if v.Type != nil {
		t = resolveTypeExpr(v.Type)
	} else {
		t = v.Value.(ast.TypedExpression).ResolvedType()
	}
	if lc, ok := v.Value.(*ast.LambdaCall); ok {
		// A function-typed local has no LLVM storage type; genLambdaCall
		// reports the codegen diagnostic and no alloca is emitted.
		g.declareLocal(v.Name, binding{addr: g.genLambdaCall(lc), typ: t})
		return false
	}
	addr := g.builder.CreateAlloca(g.llvmType(t), v.Name)
	if v.Value != nil {
		g.builder.CreateStore(g.genExpr(v.Value), addr)
	}
	g.declareLocal(v.Name, binding{addr: addr, typ: t})
	return false
}

// genGlobalVarDecl declares a module-level global. LLVM requires a
// global's initializer to be a compile-time constant, which spec.md
// does not spell out as a restriction on Mole source — this generator
// enforces it here, at the codegen/LLVM boundary, rather than teaching
// the semantic checker about constant-foldability.
func (g *Generator) genGlobalVarDecl(v *ast.VarDecl) {
	var t types.Type
	if v.Type != nil {
		t = resolveTypeExpr(v.Type)
	} else {
		t = v.Value.(ast.TypedExpression).ResolvedType()
	}
	llt := g.llvmType(t)
	global := llvm.AddGlobal(g.module, llt, v.Name)
	if v.Value != nil {
		global.SetInitializer(g.genConstExpr(v.Value))
	} else {
		global.SetInitializer(llvm.ConstNull(llt))
	}
	g.globals[v.Name] = binding{addr: global, typ: t}
}

// genConstExpr evaluates a global initializer. Only literal expressions
// are accepted; anything else is a diagnostic rather than a panic, since
// whether an initializer is constant-foldable is a property of the
// expression the checker never needed to enforce.
func (g *Generator) genConstExpr(e ast.Expression) llvm.Value {
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
	default:
		t := e.(ast.TypedExpression).ResolvedType()
		g.sink.Addf(diag.Codegen, e.Pos(), diag.Error, "global initializer must be a literal constant")
		return llvm.ConstNull(g.llvmType(t))
	}
}

func (g *Generator) genAssign(a *ast.Assign) bool {
	addr, addrType := g.genLValueAddr(a.Target)
	var val llvm.Value
	if a.Op == ast.ASSIGN_NORMAL {
		val = g.genExpr(a.Value)
	} else {
		op, _ := a.Op.BinOpFor()
		cur := g.builder.CreateLoad(g.llvmType(addrType), addr, "")
		val = g.genBinaryOp(op, addrType.(types.SimpleType), cur, g.genExpr(a.Value))
	}
	g.builder.CreateStore(val, addr)
	return false
}

func (g *Generator) genReturn(r *ast.Return) bool {
	if r.Value == nil {
		g.builder.CreateRetVoid()
	} else {
		g.builder.CreateRet(g.genExpr(r.Value))
	}
	return true
}

// genIf implements spec.md §4.5's three-block if/else model: a
// condition block (the current block, which branches into it), a then
// block, an optional else block, and an exit block whose reachability is
// then_cover ∧ else_cover. When both branches cover, the exit block is
// dead and is erased rather than left as an unreachable leftover.
func (g *Generator) genIf(i *ast.If) bool {
	fn := g.currentFunc
	thenBB := llvm.AddBasicBlock(fn, "if.then")
	var elseBB llvm.BasicBlock
	if i.Else != nil {
		elseBB = llvm.AddBasicBlock(fn, "if.else")
	}
	exitBB := llvm.AddBasicBlock(fn, "if.exit")

	cond := g.genExpr(i.Cond)
	if i.Else != nil {
		g.builder.CreateCondBr(cond, thenBB, elseBB)
	} else {
		g.builder.CreateCondBr(cond, thenBB, exitBB)
	}

	g.builder.SetInsertPointAtEnd(thenBB)
	thenCovers := g.genBlock(i.Then)
	if !thenCovers {
		g.builder.CreateBr(exitBB)
	}

	elseCovers := false
	if i.Else != nil {
		g.builder.SetInsertPointAtEnd(elseBB)
		elseCovers = g.genStmt(i.Else)
		if !elseCovers {
			g.builder.CreateBr(exitBB)
		}
	}

	if i.Else != nil && thenCovers && elseCovers {
		exitBB.EraseFromParent()
		return true
	}
	g.builder.SetInsertPointAtEnd(exitBB)
	return false
}

// genWhile implements spec.md §4.5's three-block while model: condition,
// body, exit. A while never covers — its body may run zero times.
func (g *Generator) genWhile(w *ast.While) bool {
	fn := g.currentFunc
	condBB := llvm.AddBasicBlock(fn, "while.cond")
	bodyBB := llvm.AddBasicBlock(fn, "while.body")
	exitBB := llvm.AddBasicBlock(fn, "while.exit")

	g.builder.CreateBr(condBB)
	g.builder.SetInsertPointAtEnd(condBB)
	g.builder.CreateCondBr(g.genExpr(w.Cond), bodyBB, exitBB)

	g.builder.SetInsertPointAtEnd(bodyBB)
	g.loops = append(g.loops, loopLabels{cond: condBB, exit: exitBB})
	bodyCovers := g.genBlock(w.Body)
	g.loops = g.loops[:len(g.loops)-1]
	if !bodyCovers {
		g.builder.CreateBr(condBB)
	}

	g.builder.SetInsertPointAtEnd(exitBB)
	return false
}

// genMatch implements spec.md §4.5's arm-entry/next-condition block
// model. Each non-else arm tests against a "fail" target: the next
// arm's condition block, or — for the final arm when there is no else —
// the match's exit block directly, which is the generator's equivalent
// of internal/semantic's implicit "no arm fired" branch.
func (g *Generator) genMatch(m *ast.Match) bool {
	fn := g.currentFunc
	subject := g.genExpr(m.Subject)
	subjectType := m.Subject.(ast.TypedExpression).ResolvedType()
	exitBB := llvm.AddBasicBlock(fn, "match.exit")

	hasElse := false
	allCover := true

	for idx, arm := range m.Arms {
		isLast := idx == len(m.Arms)-1
		armBB := llvm.AddBasicBlock(fn, "match.arm")

		var failTarget llvm.BasicBlock
		if !arm.IsElse {
			if isLast {
				failTarget = exitBB
			} else {
				failTarget = llvm.AddBasicBlock(fn, "match.next")
			}
		}

		switch {
		case arm.IsElse:
			hasElse = true
			g.builder.CreateBr(armBB)
		case arm.Guard != nil:
			g.builder.CreateCondBr(g.genExpr(arm.Guard), armBB, failTarget)
		default:
			// A multi-literal arm (`1 | 2 | 3 => ...`) matches if the
			// subject equals any one of its patterns, so the per-literal
			// equality tests are OR-reduced into the single branch
			// condition the arm-entry/next-condition model expects.
			var matched llvm.Value
			for _, pattern := range arm.Literals {
				lit := g.genExpr(pattern)
				eq := g.genScalarEqual(subjectType, subject, lit)
				if matched.IsNil() {
					matched = eq
				} else {
					matched = g.builder.CreateOr(matched, eq, "")
				}
			}
			g.builder.CreateCondBr(matched, armBB, failTarget)
		}

		g.builder.SetInsertPointAtEnd(armBB)
		armCovers := g.genBlock(arm.Body)
		if !armCovers {
			g.builder.CreateBr(exitBB)
		}
		allCover = allCover && armCovers

		if !arm.IsElse && !isLast {
			g.builder.SetInsertPointAtEnd(failTarget)
		}
	}

	if hasElse && allCover {
		exitBB.EraseFromParent()
		return true
	}
	g.builder.SetInsertPointAtEnd(exitBB)
	return false
}

func (g *Generator) genScalarEqual(t types.Type, a, b llvm.Value) llvm.Value {
	if st, ok := t.(types.SimpleType); ok && st.Kind == types.F64 {
		return g.builder.CreateFCmp(llvm.FloatOEQ, a, b, "")
	}
	return g.builder.CreateICmp(llvm.IntEQ, a, b, "")
}

func boolBit(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

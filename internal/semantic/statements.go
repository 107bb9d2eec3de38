package semantic

import (
	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/types"
)

// checkPurity enforces spec.md's const-function rule: inside a const
// function, a name resolved from outside that function's own scope must
// itself name a const function; any other outside name (a variable, or
// a non-const function) is rejected. declDepth is the scope depth
// Resolve found the symbol at, from SymbolTable.declDepth.
func (c *Checker) checkPurity(pos ast.Node, name string, sym *Symbol, declDepth int) {
	if c.constScopeDepth < 0 || declDepth >= c.constScopeDepth {
		return
	}
	if sym.Func != nil && sym.Func.Type.IsConst {
		return
	}
	c.errAt(pos, "const function may not access '%s' declared outside its own body", name)
}

// checkVarDeclCommon types a `let` declaration, shared between a
// top-level Global and a local VarDecl statement: exactly one of the
// declared type and the initializer may be omitted, never both, and if
// both are present they must agree.
func (c *Checker) checkVarDeclCommon(v *ast.VarDecl) {
	if v.Name == "main" {
		c.errAt(v, "'main' may not be used as a variable name")
	}
	if c.symbols.DefinedInCurrentScope(v.Name) {
		c.errAt(v, "redeclaration of '%s'", v.Name)
	}

	var declared types.Type
	if v.Type != nil {
		declared = c.resolveType(v.Type)
	}

	var valueType types.Type
	if v.Value != nil {
		valueType = c.checkExpr(v.Value)
	}

	var finalType types.Type
	switch {
	case declared != nil && valueType != nil:
		if !isInvalid(valueType) && !declared.Equals(valueType) {
			c.errAt(v, "declared type %s does not match initializer type %s", declared, valueType)
		}
		finalType = declared
	case declared != nil:
		finalType = declared
	case valueType != nil:
		finalType = valueType
	default:
		c.errAt(v, "'%s' needs either a declared type or an initializer", v.Name)
		finalType = invalidType
	}

	c.symbols.Define(v.Name, &Symbol{Var: &VarSymbol{
		Type:        finalType,
		Mut:         v.Mut,
		Initialized: v.Value != nil,
	}})
}

func (c *Checker) checkGlobalVarDecl(v *ast.VarDecl) {
	c.checkVarDeclCommon(v)
}

// compoundOpType types the implicit binary operator underneath a
// compound assignment (`+=`, `<<=`, ...), covering exactly the BinOp
// kinds AssignOp.BinOpFor can produce.
func (c *Checker) compoundOpType(pos ast.Node, op ast.BinOp, ls, rs types.SimpleType) types.Type {
	switch op {
	case ast.ADD, ast.SUB, ast.MUL, ast.DIV, ast.MOD, ast.EXP:
		if op == ast.EXP && ls.Kind == types.I32 && ls.Ref == types.NonRef {
			c.errAt(pos, "exponentiation is not defined for signed integers")
			return invalidType
		}
		if !ls.Equals(rs) || !ls.IsNumeric() {
			c.errAt(pos, "operator '%s=' requires matching numeric operands", op)
			return invalidType
		}
		return ls
	case ast.BIT_AND, ast.BIT_OR, ast.BIT_XOR:
		if !ls.Equals(rs) || !ls.IsInteger() {
			c.errAt(pos, "operator '%s=' requires matching integer operands", op)
			return invalidType
		}
		return ls
	case ast.SHL, ast.SHR:
		if !ls.IsInteger() || !rs.IsInteger() {
			c.errAt(pos, "shift operands must be u32 or i32")
			return invalidType
		}
		if rs.Kind != types.U32 {
			c.errAt(pos, "shift amount must be u32")
			return invalidType
		}
		return ls
	default:
		c.errAt(pos, "internal: unhandled compound assignment operator")
		return invalidType
	}
}

func (c *Checker) checkAssign(a *ast.Assign) {
	targetType := c.checkExpr(a.Target)
	valType := c.checkExpr(a.Value)

	td, ok := a.Target.(ast.TypedExpression)
	if !ok {
		c.errAt(a, "assignment target must be an expression")
		return
	}
	if !isInvalid(targetType) && !td.Assignable() {
		c.errAt(a, "left-hand side is not assignable")
	}

	v, isVar := a.Target.(*ast.Variable)
	var sym *Symbol
	if isVar {
		sym, _, _ = c.symbols.Resolve(v.Name)
	}

	if a.Op == ast.ASSIGN_NORMAL {
		if isVar && sym != nil && sym.Var != nil && !sym.Var.Mut && sym.Var.Initialized {
			c.errAt(a, "cannot assign to non-mut variable '%s' more than once", v.Name)
		}
		if !isInvalid(targetType) && !isInvalid(valType) && !targetType.Equals(valType) {
			c.errAt(a, "cannot assign %s to %s", valType, targetType)
		}
	} else {
		if !isInvalid(targetType) && !td.Initialized() {
			c.errAt(a, "compound assignment target must already be initialized")
		}
		ts, tok := targetType.(types.SimpleType)
		vs, vok := valType.(types.SimpleType)
		if tok && vok {
			binOp, _ := a.Op.BinOpFor()
			c.compoundOpType(a, binOp, ts, vs)
		} else if !isInvalid(targetType) && !isInvalid(valType) {
			c.errAt(a, "compound assignment requires scalar operands")
		}
	}

	if isVar && sym != nil && sym.Var != nil {
		sym.Var.Initialized = true
	}
}

func (c *Checker) checkReturn(r *ast.Return) bool {
	var expected types.Type
	if len(c.expectedReturn) > 0 {
		expected = c.expectedReturn[len(c.expectedReturn)-1]
	}
	if r.Value == nil {
		if expected != nil {
			c.errAt(r, "expected a return value of type %s", expected)
		}
		return true
	}
	got := c.checkExpr(r.Value)
	if expected == nil {
		c.errAt(r, "function returns nothing, but a value was given")
	} else if !isInvalid(got) && !expected.Equals(got) {
		c.errAt(r, "expected return type %s, got %s", expected, got)
	}
	return true
}

func (c *Checker) checkCondIsBool(e ast.Expression, context string) {
	t := c.checkExpr(e)
	if isInvalid(t) {
		return
	}
	s, ok := t.(types.SimpleType)
	if !ok || s.Kind != types.BOOL || s.Ref != types.NonRef {
		c.errAt(e, "%s must be bool", context)
	}
}

func (c *Checker) checkWhile(w *ast.While) {
	c.checkCondIsBool(w.Cond, "while condition")

	// The body runs zero or more times, so nothing it initializes can be
	// relied on afterward; snapshot and restore rather than merge.
	snap := c.snapshotInit()
	c.loopDepth++
	c.checkBlockScoped(w.Body)
	c.loopDepth--
	c.restoreInit(snap)
}

func (c *Checker) checkIf(i *ast.If) bool {
	c.checkCondIsBool(i.Cond, "if condition")

	snap := c.snapshotInit()
	thenCovers := c.checkBlockScoped(i.Then)
	thenSnap := c.snapshotInit()
	c.restoreInit(snap)

	elseSnap := snap
	var elseCovers bool
	if i.Else != nil {
		elseCovers = c.checkStmt(i.Else)
		elseSnap = c.snapshotInit()
		c.restoreInit(snap)
	}

	c.mergeBranches([]initBranch{{thenSnap, thenCovers}, {elseSnap, elseCovers}})
	return i.Else != nil && thenCovers && elseCovers
}

func (c *Checker) checkMatch(m *ast.Match) bool {
	subjType := c.checkExpr(m.Subject)

	snap := c.snapshotInit()
	hasElse := false
	allCover := true
	var branches []initBranch

	for i := range m.Arms {
		arm := &m.Arms[i]
		switch {
		case arm.IsElse:
			hasElse = true
		case arm.Guard != nil:
			c.checkCondIsBool(arm.Guard, "match guard")
		default:
			for _, lit := range arm.Literals {
				lt := c.checkExpr(lit)
				if !isInvalid(lt) && !isInvalid(subjType) && !lt.Equals(subjType) {
					c.errAt(lit, "match arm literal type %s does not match subject type %s", lt, subjType)
				}
			}
		}

		covers := c.checkBlockScoped(arm.Body)
		branches = append(branches, initBranch{c.snapshotInit(), covers})
		c.restoreInit(snap)
		if !covers {
			allCover = false
		}
	}

	// With no else arm, "no arm fired" is reachable (the subject matched
	// nothing), so the pre-match initialization state is one more branch
	// the merge must account for.
	if !hasElse {
		branches = append(branches, initBranch{snap, false})
	}
	c.mergeBranches(branches)

	return hasElse && allCover
}

func (c *Checker) checkBlockScoped(b *ast.Block) bool {
	c.symbols.PushScope()
	covers := c.checkBlockStmts(b.Stmts)
	c.symbols.PopScope()
	return covers
}

// checkBlockStmts checks stmts in the current scope (no push/pop),
// used directly for a function body so parameters and top-level locals
// share one scope. Per spec.md, a sequence of statements covers iff any
// one of them covers.
func (c *Checker) checkBlockStmts(stmts []ast.Statement) bool {
	covers := false
	for _, s := range stmts {
		if c.checkStmt(s) {
			covers = true
		}
	}
	return covers
}

func (c *Checker) checkStmt(s ast.Statement) bool {
	switch st := s.(type) {
	case *ast.VarDecl:
		c.checkVarDeclCommon(st)
		return false
	case *ast.Assign:
		c.checkAssign(st)
		return false
	case *ast.ExprStmt:
		c.checkExpr(st.Expr)
		return false
	case *ast.Return:
		return c.checkReturn(st)
	case *ast.Continue:
		if c.loopDepth == 0 {
			c.errAt(st, "'continue' outside a loop")
		}
		return false
	case *ast.Break:
		if c.loopDepth == 0 {
			c.errAt(st, "'break' outside a loop")
		}
		return false
	case *ast.While:
		c.checkWhile(st)
		return false
	case *ast.If:
		return c.checkIf(st)
	case *ast.Match:
		return c.checkMatch(st)
	case *ast.Block:
		return c.checkBlockScoped(st)
	default:
		c.errAt(s, "internal: unhandled statement kind")
		return false
	}
}

func (c *Checker) checkFuncBody(f *ast.FuncDef) {
	c.symbols.PushScope()

	for _, p := range f.Params {
		if c.symbols.DefinedInCurrentScope(p.Name) {
			c.errAt(f, "redeclaration of parameter '%s'", p.Name)
			continue
		}
		c.symbols.Define(p.Name, &Symbol{Var: &VarSymbol{
			Type:        c.resolveType(p.Type),
			Mut:         false,
			Initialized: true,
		}})
	}

	prevConstDepth := c.constScopeDepth
	if f.IsConst {
		c.constScopeDepth = c.symbols.Depth()
	}

	var expected types.Type
	if f.ReturnType != nil {
		expected = c.resolveType(f.ReturnType)
	}
	c.expectedReturn = append(c.expectedReturn, expected)

	covers := c.checkBlockStmts(f.Body.Stmts)
	if expected != nil && !covers {
		c.errAt(f, "function '%s' does not return a value on all paths", f.Name)
	}

	c.expectedReturn = c.expectedReturn[:len(c.expectedReturn)-1]
	c.constScopeDepth = prevConstDepth
	c.symbols.PopScope()
}

// initBranch is one arm of a structural join over initialization state:
// the state at the end of the branch, and whether the branch covers
// (always returns, making its end-state irrelevant to the join since
// control never falls through it).
type initBranch struct {
	snap   map[*VarSymbol]bool
	covers bool
}

// snapshotInit captures the Initialized flag of every variable symbol
// currently in scope, so a branching construct (if/else, match) can
// check each arm from the same starting point and then join the
// results instead of letting one arm's assignments leak into another.
func (c *Checker) snapshotInit() map[*VarSymbol]bool {
	snap := make(map[*VarSymbol]bool)
	for _, sc := range c.symbols.scopes {
		for _, sym := range sc.symbols {
			if sym.Var != nil {
				snap[sym.Var] = sym.Var.Initialized
			}
		}
	}
	return snap
}

func (c *Checker) restoreInit(snap map[*VarSymbol]bool) {
	for v, b := range snap {
		v.Initialized = b
	}
}

// mergeBranches joins the initialization state across every branch of a
// control construct: a variable ends up initialized iff, in every
// branch, it was either already initialized or the branch covers (so
// its end state can never be observed).
func (c *Checker) mergeBranches(branches []initBranch) {
	seen := make(map[*VarSymbol]bool)
	for _, b := range branches {
		for v := range b.snap {
			seen[v] = true
		}
	}
	for v := range seen {
		init := true
		for _, b := range branches {
			if !b.covers && !b.snap[v] {
				init = false
				break
			}
		}
		v.Initialized = init
	}
}

package semantic

import (
	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/diag"
	"github.com/chr1sps/mole/internal/types"
)

// Checker performs one pass over a Program, maintaining the state
// spec.md §4.4 names: a scope stack (embedded in SymbolTable), a stack
// of expected return types (one per enclosing function), and a
// const-scope depth marking the nearest enclosing const function's
// scope boundary.
type Checker struct {
	sink    *diag.Sink
	symbols *SymbolTable

	// expectedReturn is a stack of the enclosing function's return type;
	// nil entries mean "this function returns nothing". Only the top
	// matters, but the full stack is kept since the grammar has no
	// nested function definitions today and this makes that assumption
	// explicit rather than implicit in a single field.
	expectedReturn []types.Type

	// constScopeDepth is the SymbolTable depth at which the nearest
	// enclosing const function's parameters live, or -1 outside any
	// const function. Grounded on the original const_scopes depth stack:
	// a variable or function declared at a scope index below this
	// boundary is invisible from inside the const body.
	constScopeDepth int

	// loopDepth > 0 means break/continue are currently valid.
	loopDepth int
}

// Check runs the semantic checker over prog and returns the diagnostics
// sink it populated. A caller inspects sink.HasErrors() to decide
// whether to proceed to code generation.
func Check(prog *ast.Program) *diag.Sink {
	c := &Checker{
		sink:            diag.NewSink(),
		symbols:         NewSymbolTable(),
		constScopeDepth: -1,
	}
	c.checkProgram(prog)
	return c.sink
}

func (c *Checker) errAt(pos ast.Node, format string, args ...any) {
	c.sink.Addf(diag.Semantic, pos.Pos(), diag.Error, format, args...)
}

// checkProgram implements spec.md §4.4's "Top-level order":
//  1. Register all externs and function signatures in the global scope.
//  2. Check global variable declarations.
//  3. Check each function body.
func (c *Checker) checkProgram(prog *ast.Program) {
	var mainFunc *ast.FuncDef

	for _, e := range prog.Externs {
		c.registerExtern(e)
	}
	for _, f := range prog.Functions {
		c.registerFuncSignature(f)
		if f.Name == "main" {
			mainFunc = f
		}
	}

	c.checkMainConstraint(prog, mainFunc)

	for _, g := range prog.Globals {
		c.checkGlobalVarDecl(g)
	}

	for _, f := range prog.Functions {
		c.checkFuncBody(f)
	}
}

func (c *Checker) registerExtern(e *ast.Extern) {
	if e.Name == "main" {
		c.errAt(e, "'extern' may not be named 'main'")
	}
	if c.symbols.DefinedInCurrentScope(e.Name) {
		c.errAt(e, "redeclaration of '%s'", e.Name)
		return
	}
	args := make([]types.Type, len(e.ParamTypes))
	for i, p := range e.ParamTypes {
		args[i] = c.resolveType(p)
	}
	var ret types.Type
	if e.ReturnType != nil {
		ret = c.resolveType(e.ReturnType)
	}
	c.symbols.Define(e.Name, &Symbol{Func: &FuncSymbol{Type: types.FunctionType{Args: args, Return: ret}}})
}

func (c *Checker) registerFuncSignature(f *ast.FuncDef) {
	if c.symbols.DefinedInCurrentScope(f.Name) {
		c.errAt(f, "redeclaration of '%s'", f.Name)
		return
	}
	args := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		args[i] = c.resolveType(p.Type)
	}
	var ret types.Type
	if f.ReturnType != nil {
		ret = c.resolveType(f.ReturnType)
	}
	c.symbols.Define(f.Name, &Symbol{Func: &FuncSymbol{Type: types.FunctionType{Args: args, Return: ret, IsConst: f.IsConst}}})
}

// checkMainConstraint enforces spec.md §4.4: main must exist, take no
// parameters, and return nothing or u32; a variable named "main" at any
// scope is rejected (checked at each VarDecl site, see checkVarDeclCommon).
func (c *Checker) checkMainConstraint(prog *ast.Program, mainFunc *ast.FuncDef) {
	if mainFunc == nil {
		c.sink.Addf(diag.Semantic, prog.Pos(), diag.Error, "program has no 'main' function")
		return
	}
	if len(mainFunc.Params) != 0 {
		c.errAt(mainFunc, "'main' must take no parameters")
	}
	if mainFunc.ReturnType != nil {
		ret := c.resolveType(mainFunc.ReturnType)
		if simple, ok := ret.(types.SimpleType); !ok || simple.Kind != types.U32 || simple.Ref != types.NonRef {
			c.errAt(mainFunc, "'main' must return nothing or u32")
		}
	}
}

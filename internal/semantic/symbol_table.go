// Package semantic implements Mole's one-pass semantic checker: scope
// resolution, typing, mutability/assignment rules, purity (const
// functions), control-flow validation, and return-coverage analysis.
//
// It keeps the teacher's two-tier scope-stack SymbolTable design
// (NewSymbolTable, PushScope/PopScope, Define/Resolve), simplified to
// Mole's much smaller symbol shape: a variable carries {type, mutable,
// initialized}, a function carries {type}. DWScript's case-insensitive
// lookup and overload sets have no analogue in Mole, which has neither
// case folding nor overloading, so Define/Resolve key on the name as
// written.
package semantic

import "github.com/chr1sps/mole/internal/types"

// VarSymbol is a variable record: its resolved type, whether it was
// declared `mut`, and whether it is initialized on every path reaching
// the current point.
type VarSymbol struct {
	Type        types.Type
	Mut         bool
	Initialized bool
}

// FuncSymbol is a function record: its resolved signature.
type FuncSymbol struct {
	Type types.FunctionType
}

// Symbol is exactly one of Var or Func.
type Symbol struct {
	Var  *VarSymbol
	Func *FuncSymbol
}

type scope struct {
	symbols map[string]*Symbol
}

// SymbolTable is a stack of lexical scopes, index 0 being the global
// scope. Depth() is used by the purity check to compare a symbol's
// declaring depth against the const-scope boundary.
type SymbolTable struct {
	scopes []*scope
	// declDepth records the scope depth at which each live symbol was
	// defined, keyed by the same pointer Resolve returns, so the purity
	// check can ask "was this declared inside or outside the nearest
	// enclosing const function" without threading an extra return value
	// through every call site.
	declDepth map[*Symbol]int
}

// NewSymbolTable creates a table with just the global scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		scopes:    []*scope{{symbols: make(map[string]*Symbol)}},
		declDepth: make(map[*Symbol]int),
	}
}

// PushScope opens a new nested lexical scope.
func (st *SymbolTable) PushScope() {
	st.scopes = append(st.scopes, &scope{symbols: make(map[string]*Symbol)})
}

// PopScope closes the innermost lexical scope.
func (st *SymbolTable) PopScope() {
	st.scopes = st.scopes[:len(st.scopes)-1]
}

// Depth returns the index of the current innermost scope (0 = global).
func (st *SymbolTable) Depth() int {
	return len(st.scopes) - 1
}

// Define adds sym to the innermost scope under name, recording the
// scope depth it was declared at.
func (st *SymbolTable) Define(name string, sym *Symbol) {
	st.scopes[len(st.scopes)-1].symbols[name] = sym
	st.declDepth[sym] = st.Depth()
}

// DefinedInCurrentScope reports whether name is already bound in the
// innermost scope (used to reject re-declaration within one block).
func (st *SymbolTable) DefinedInCurrentScope(name string) bool {
	_, ok := st.scopes[len(st.scopes)-1].symbols[name]
	return ok
}

// Resolve looks up name from the innermost scope outward, returning the
// symbol and the depth it was declared at.
func (st *SymbolTable) Resolve(name string) (*Symbol, int, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i].symbols[name]; ok {
			return sym, st.declDepth[sym], true
		}
	}
	return nil, 0, false
}

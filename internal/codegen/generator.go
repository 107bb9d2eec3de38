// Package codegen lowers a semantically checked Program to an LLVM
// module via tinygo.org/x/go-llvm, per spec.md §4.5. It assumes its
// input has already passed internal/semantic.Check: it does not
// re-validate typing, initialization, or purity, and panics on any AST
// shape those guarantees rule out.
package codegen

import (
	"fmt"

	"github.com/chr1sps/mole/internal/ast"
	"github.com/chr1sps/mole/internal/diag"
	"github.com/chr1sps/mole/internal/types"
	"tinygo.org/x/go-llvm"
)

// binding is what the scope stack and the global table map a name to:
// the stack address (or, for a function, the function value itself),
// its resolved type, and — only when typ is a types.FunctionType — the
// LLVM function type needed to make a typed call.
type binding struct {
	addr   llvm.Value
	typ    types.Type
	fnType llvm.Type
}

// loopLabels are the two basic blocks break/continue branch to.
type loopLabels struct {
	cond llvm.BasicBlock
	exit llvm.BasicBlock
}

// Generator owns one LLVM context/module/builder for the lifetime of a
// single Generate call. Mole's pipeline is single-threaded and
// synchronous (spec.md §5), so unlike the scope stack the teacher's
// reference generator threads through every call, Generator keeps the
// current function and builder position as fields — there is never more
// than one function being generated at a time.
type Generator struct {
	ctx     llvm.Context
	builder llvm.Builder
	module  llvm.Module
	sink    *diag.Sink

	globals     map[string]binding
	scopes      []map[string]binding
	loops       []loopLabels
	currentFunc llvm.Value
	strCount    int
}

func newGenerator(moduleName string) *Generator {
	ctx := llvm.NewContext()
	return &Generator{
		ctx:     ctx,
		builder: ctx.NewBuilder(),
		module:  ctx.NewModule(moduleName),
		sink:    diag.NewSink(),
		globals: make(map[string]binding),
	}
}

func (g *Generator) dispose() {
	g.builder.Dispose()
	g.module.Dispose()
	g.ctx.Dispose()
}

// Generate lowers prog to an LLVM module and returns its textual IR
// representation plus a diagnostics sink covering codegen-only concerns
// (rejected lambda calls, a failed module verification). The caller is
// responsible for running internal/semantic.Check first; Generate does
// not repeat that work.
func Generate(prog *ast.Program, moduleName string) (string, *diag.Sink) {
	g := newGenerator(moduleName)
	defer g.dispose()
	return g.run(prog)
}

func (g *Generator) run(prog *ast.Program) (string, *diag.Sink) {
	for _, e := range prog.Externs {
		g.genExternHeader(e)
	}
	for _, f := range prog.Functions {
		g.genFuncHeader(f)
	}
	for _, v := range prog.Globals {
		g.genGlobalVarDecl(v)
	}
	for _, f := range prog.Functions {
		g.genFuncBody(f)
	}

	if err := llvm.VerifyModule(g.module, llvm.ReturnStatusAction); err != nil {
		g.sink.Addf(diag.Codegen, prog.Pos(), diag.Error,
			"module verification failed: %s\n%s", err, g.module.String())
		return "", g.sink
	}
	return g.module.String(), g.sink
}

func (g *Generator) genExternHeader(e *ast.Extern) {
	params := make([]llvm.Type, len(e.ParamTypes))
	args := make([]types.Type, len(e.ParamTypes))
	for i, p := range e.ParamTypes {
		t := resolveTypeExpr(p)
		args[i] = t
		params[i] = g.llvmType(t)
	}
	var ret types.Type
	retLL := g.ctx.VoidType()
	if e.ReturnType != nil {
		ret = resolveTypeExpr(e.ReturnType)
		retLL = g.llvmType(ret)
	}
	fnTy := llvm.FunctionType(retLL, params, false)
	fn := llvm.AddFunction(g.module, e.Name, fnTy)
	g.globals[e.Name] = binding{addr: fn, typ: types.FunctionType{Args: args, Return: ret}, fnType: fnTy}
}

func (g *Generator) genFuncHeader(f *ast.FuncDef) {
	params := make([]llvm.Type, len(f.Params))
	args := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		t := resolveTypeExpr(p.Type)
		args[i] = t
		params[i] = g.llvmType(t)
	}
	var ret types.Type
	retLL := g.ctx.VoidType()
	if f.ReturnType != nil {
		ret = resolveTypeExpr(f.ReturnType)
		retLL = g.llvmType(ret)
	}
	fnTy := llvm.FunctionType(retLL, params, false)
	fn := llvm.AddFunction(g.module, f.Name, fnTy)
	fn.SetFunctionCallConv(llvm.CCallConv)
	for i, p := range fn.Params() {
		p.SetName(f.Params[i].Name)
	}
	g.globals[f.Name] = binding{
		addr:   fn,
		typ:    types.FunctionType{Args: args, Return: ret, IsConst: f.IsConst},
		fnType: fnTy,
	}
}

func (g *Generator) genFuncBody(f *ast.FuncDef) {
	b := g.globals[f.Name]
	fn := b.addr
	fnType := b.typ.(types.FunctionType)
	g.currentFunc = fn

	entry := llvm.AddBasicBlock(fn, "entry")
	g.builder.SetInsertPointAtEnd(entry)

	g.pushScope()
	for i, param := range fn.Params() {
		pt := fnType.Args[i]
		addr := g.builder.CreateAlloca(g.llvmType(pt), f.Params[i].Name)
		g.builder.CreateStore(param, addr)
		g.declareLocal(f.Params[i].Name, binding{addr: addr, typ: pt})
	}

	covers := g.genBlockStmts(f.Body.Stmts)
	if !covers && fnType.Return == nil {
		g.builder.CreateRetVoid()
	}
	g.popScope()
}

func unhandled(kind string, v any) string {
	return fmt.Sprintf("codegen: unhandled %s %T", kind, v)
}

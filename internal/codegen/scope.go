package codegen

// pushScope/popScope/declareLocal/resolve implement spec.md §4.5's
// "stack of variable-name → (value, type, stack-address)", kept
// separate from the global table the same way the teacher reference
// keeps function parameters and block locals on a scope stack with
// globals looked up separately.

func (g *Generator) pushScope() {
	g.scopes = append(g.scopes, make(map[string]binding))
}

func (g *Generator) popScope() {
	g.scopes = g.scopes[:len(g.scopes)-1]
}

func (g *Generator) declareLocal(name string, b binding) {
	g.scopes[len(g.scopes)-1][name] = b
}

func (g *Generator) resolve(name string) binding {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if b, ok := g.scopes[i][name]; ok {
			return b
		}
	}
	return g.globals[name]
}

package object

// Environment is a chained scope: a local name-to-value map plus an
// optional outer link. Get resolves through the outer chain; Set always
// writes into the local map, so a child environment can shadow an outer
// binding but never mutate it.
type Environment struct {
	store map[string]Object
	outer *Environment
}

// NewEnvironment creates a top-level environment with no outer scope.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment creates a child scope for a function call, whose
// outer link is the closure's captured environment. This is what implements
// lexical scoping and closure capture.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get resolves name in the local scope, falling back to the outer chain.
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

// Set binds name to val in the local scope, shadowing but never writing
// through to an outer environment.
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

// env.go — chained variable-binding environments
//
// An Env is one scope frame: a name table plus a parent pointer. Frames are
// created at program start, at every call, at do-blocks and catch-blocks.
// Lookup walks the parent chain. Plain assignment mutates the nearest
// enclosing frame that already binds the name (so closures can write their
// captured variables); when no frame binds it, the name is created in the
// current frame. Const bindings are tracked per frame and refuse
// reassignment.
package wolfera

// Env is a single scope in the environment chain.
type Env struct {
	parent *Env
	table  map[string]Value
	consts map[string]bool
}

// NewEnv creates a scope with the given parent (nil for the root).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: map[string]Value{}}
}

// Get resolves a name through the chain.
func (e *Env) Get(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.table[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Define binds a name in this frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// DefineConst binds a name in this frame and marks it immutable.
func (e *Env) DefineConst(name string, v Value) {
	e.table[name] = v
	if e.consts == nil {
		e.consts = map[string]bool{}
	}
	e.consts[name] = true
}

// IsConst reports whether the name is const in the frame that binds it.
func (e *Env) IsConst(name string) bool {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.table[name]; ok {
			return s.consts[name]
		}
	}
	return false
}

// Assign writes to the nearest enclosing frame that binds the name, or
// defines it in the current frame when unbound. It reports false when the
// target binding is const.
func (e *Env) Assign(name string, v Value) bool {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.table[name]; ok {
			if s.consts[name] {
				return false
			}
			s.table[name] = v
			return true
		}
	}
	e.table[name] = v
	return true
}

// Snapshot copies this frame's own bindings (not the parents') into a fresh
// map. The module loader uses it to capture a module's export surface.
func (e *Env) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.table))
	for k, v := range e.table {
		out[k] = v
	}
	return out
}

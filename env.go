// env.go — lexical environment frames.
//
// An Env is one scope frame with a parent link; lookups walk parent-ward.
// Function calls and 🔄 loops push fresh frames, which is what makes
// recursion and shared parameter names safe. The declare-exactly-once rule
// is enforced per frame by DefineOnce.
package moji

import (
	"fmt"
	"sort"
)

// Env is a name→Value frame with a parent link.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a frame with the given parent (nil for a root frame).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name in this frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// DefineOnce binds name in this frame, failing if the frame already has it.
func (e *Env) DefineOnce(name string, v Value) error {
	if _, ok := e.table[name]; ok {
		return fmt.Errorf("'%s' has already been declared", name)
	}
	e.table[name] = v
	return nil
}

// Set updates the nearest visible binding of name. It never defines.
func (e *Env) Set(name string, v Value) error {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.table[name]; ok {
			f.table[name] = v
			return nil
		}
	}
	return fmt.Errorf("variable '%s' has not been declared", name)
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, error) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, nil
		}
	}
	return Value{}, fmt.Errorf("variable '%s' has not been declared", name)
}

// Has reports whether this frame (not its ancestors) binds name.
func (e *Env) Has(name string) bool {
	_, ok := e.table[name]
	return ok
}

// Names lists this frame's bindings in sorted order.
func (e *Env) Names() []string {
	out := make([]string, 0, len(e.table))
	for name := range e.table {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Root walks to the outermost frame: the global frame of the running program
// or module, which is where imports merge.
func (e *Env) Root() *Env {
	f := e
	for f.parent != nil {
		f = f.parent
	}
	return f
}

// modules.go — the 📥 import system.
//
// A module is an ordinary 🌱 ... 🌳 program in a "<name>.moji" file next to
// the working directory. Importing it executes the file once in its own root
// frame and merges its top-level bindings into the importing program's global
// frame. Name collisions with existing globals are runtime errors.
//
// Loads are memoized by canonical absolute path: importing the same module
// from several places runs its side effects exactly once, and a diamond
// (a imports b and c, both import d) merges d's bindings once instead of
// colliding with themselves. Only a binding that collides with something
// *else* is an error.
//
// Each loaded module is a moduleRec recording the bindings the module itself
// introduced (its "own" bindings, minus whatever its imports contributed) and
// the records of its imports. Merging walks deps first, so the importing
// program sees the same bindings the module saw.
package moji

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const moduleExt = ".moji"

type modState int

const (
	modLoading modState = iota
	modReady
)

// binding is one exported name with the value it held when the module
// finished executing.
type binding struct {
	Name string
	Val  Value
}

// moduleRec is the memoized result of loading one module file.
type moduleRec struct {
	name  string // the name as written after 📥
	path  string // canonical absolute path, the memoization key
	state modState
	own   []binding    // bindings this module introduced, sorted by name
	deps  []*moduleRec // modules this module imported, in import order
}

// execImport handles one 📥 statement: load (or reuse) the module, then merge
// its bindings into the importer's root frame.
func (ip *Interpreter) execImport(n *Import, env *Env) error {
	rec, err := ip.loadModule(n)
	if err != nil {
		return err
	}
	// A nested import registers as a dependency of the module being loaded,
	// so the outer merge can walk the full graph.
	if len(ip.loadRecs) > 0 {
		top := ip.loadRecs[len(ip.loadRecs)-1]
		top.deps = append(top.deps, rec)
	}
	return ip.mergeModule(rec, env.Root(), n)
}

// loadModule resolves, parses and executes a module file, memoized by path.
func (ip *Interpreter) loadModule(n *Import) (*moduleRec, error) {
	path, err := filepath.Abs(n.Module + moduleExt)
	if err != nil {
		return nil, rterrAt(n, "cannot import module '%s': %v", n.Module, err)
	}
	path = filepath.Clean(path)

	if rec, ok := ip.modules[path]; ok {
		if rec.state == modLoading {
			return nil, rterrAt(n, "import cycle detected: %s", ip.cycleChain(n.Module))
		}
		return rec, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, rterrAt(n, "cannot import module '%s': %v", n.Module, err)
	}
	prog, err := ParseSource(string(src))
	if err != nil {
		return nil, rterrAt(n, "syntax error in module '%s': %v", n.Module, err)
	}

	rec := &moduleRec{name: n.Module, path: path, state: modLoading}
	ip.modules[path] = rec
	ip.loadStack = append(ip.loadStack, n.Module)
	ip.loadRecs = append(ip.loadRecs, rec)

	modEnv := NewEnv(nil)
	runErr := ip.runIn(prog, modEnv)

	ip.loadRecs = ip.loadRecs[:len(ip.loadRecs)-1]
	ip.loadStack = ip.loadStack[:len(ip.loadStack)-1]
	if runErr != nil {
		delete(ip.modules, path)
		return nil, rterrAt(n, "error in module '%s': %v", n.Module, runErr)
	}

	rec.own = ownBindings(modEnv, rec.deps)
	rec.state = modReady
	return rec, nil
}

// ownBindings snapshots the module frame's bindings minus everything its
// imports contributed, sorted for deterministic merge order.
func ownBindings(modEnv *Env, deps []*moduleRec) []binding {
	imported := make(map[string]bool)
	var mark func(rec *moduleRec)
	seen := make(map[*moduleRec]bool)
	mark = func(rec *moduleRec) {
		if seen[rec] {
			return
		}
		seen[rec] = true
		for _, b := range rec.own {
			imported[b.Name] = true
		}
		for _, d := range rec.deps {
			mark(d)
		}
	}
	for _, d := range deps {
		mark(d)
	}

	own := make([]binding, 0, len(modEnv.table))
	for _, name := range modEnv.Names() {
		if imported[name] {
			continue
		}
		v, _ := modEnv.Get(name)
		own = append(own, binding{Name: name, Val: v})
	}
	sort.Slice(own, func(i, j int) bool { return own[i].Name < own[j].Name })
	return own
}

// mergeModule folds a module's bindings (deps first) into a root frame. Each
// module path merges into a given root at most once; a repeat is a no-op, not
// a collision.
func (ip *Interpreter) mergeModule(rec *moduleRec, root *Env, at *Import) error {
	done := ip.merged[root]
	if done == nil {
		done = make(map[string]bool)
		ip.merged[root] = done
	}
	return ip.mergeRec(rec, root, done, at)
}

func (ip *Interpreter) mergeRec(rec *moduleRec, root *Env, done map[string]bool, at *Import) error {
	if done[rec.path] {
		return nil
	}
	done[rec.path] = true
	for _, d := range rec.deps {
		if err := ip.mergeRec(d, root, done, at); err != nil {
			return err
		}
	}
	for _, b := range rec.own {
		if err := root.DefineOnce(b.Name, b.Val); err != nil {
			return rterrAt(at, "import of module '%s' failed: %v", rec.name, err)
		}
	}
	return nil
}

// cycleChain renders "a -> b -> a" from the active load stack.
func (ip *Interpreter) cycleChain(repeat string) string {
	chain := append(append([]string{}, ip.loadStack...), repeat)
	return strings.Join(chain, " -> ")
}

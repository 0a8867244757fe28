package object

import (
	"strings"

	"github.com/loomlang/loom/internal/ast"
)

// Watch is a registered reactive dependency: when the identifier it's keyed
// under is reassigned, Block is re-evaluated in Home and the result rebound
// to Name in Home.
type Watch struct {
	Name  string
	Block *ast.BlockExpression
	Home  *Environment
}

// Environment is one lexical scope: a flat binding table, a parent pointer
// for the enclosing scope, the set of child scopes created under it (kept
// so the root environment can be rendered recursively for diagnostics and
// golden tests), and a per-scope watch registry keyed by identifier name.
type Environment struct {
	store    map[string]Object
	watch    map[string]*Watch
	parent   *Environment
	children []*Environment
}

// NewRootEnvironment creates a parentless environment, the base every
// program evaluates against.
func NewRootEnvironment() *Environment {
	return &Environment{store: map[string]Object{}}
}

// NewChild creates an environment scoped inside parent, registering itself
// so parent's dump can recurse into it.
func NewChild(parent *Environment) *Environment {
	child := &Environment{store: map[string]Object{}, parent: parent}
	parent.children = append(parent.children, child)
	return child
}

// Define binds name to value in the current scope only, shadowing any
// outer binding of the same name without affecting it.
func (e *Environment) Define(name string, value Object) {
	e.store[name] = value
}

// Get resolves name by walking from the current scope outward through
// parents, returning ok=false if no scope in the chain defines it.
func (e *Environment) Get(name string) (Object, bool) {
	for env := e; env != nil; env = env.parent {
		if value, ok := env.store[name]; ok {
			return value, true
		}
	}
	return nil, false
}

// Assign walks the parent chain looking for the scope that defines name
// and mutates the binding there in place. It is a silent no-op — neither an
// error nor a new binding — if name is not defined anywhere in the chain.
func (e *Environment) Assign(name string, value Object) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.store[name]; ok {
			env.store[name] = value
			return true
		}
	}
	return false
}

// SetWatch registers a dependency: a later Assign of name found anywhere in
// e's chain, checked against e specifically, re-evaluates w.
func (e *Environment) SetWatch(name string, w *Watch) {
	if e.watch == nil {
		e.watch = map[string]*Watch{}
	}
	e.watch[name] = w
}

// WatchFor looks up a registered watch for name on e itself — not on the
// scope where the binding ultimately resolves or is mutated. This is the
// environment instance an assignment's left-hand identifier was evaluated
// against at the call site.
func (e *Environment) WatchFor(name string) (*Watch, bool) {
	w, ok := e.watch[name]
	return w, ok
}

// String renders the environment tree in the sorted, nested-block format
// used for diagnostics and golden-test comparison.
func (e *Environment) String() string {
	var b strings.Builder
	environmentDump(e, &b)
	return b.String()
}

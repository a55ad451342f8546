package eval

import (
	"sort"

	"github.com/marmoset-lang/marmoset/errors"
	"github.com/marmoset-lang/marmoset/object"
)

// binding is a single named slot in a scope. The mutable flag records
// whether the program declared the name with "let mut".
type binding struct {
	value   object.Object
	mutable bool
}

// Scope is one frame of the lexical environment chain. Name lookups walk
// from a scope to its parent; declarations always land in the innermost
// scope, shadowing any outer binding of the same name.
type Scope struct {
	parent *Scope
	vars   map[string]*binding
}

// NewScope creates a scope with the given parent. A nil parent creates a
// root scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: map[string]*binding{}}
}

// Declare introduces a name in this scope. Redeclaring a name shadows the
// previous binding, matching let semantics.
func (s *Scope) Declare(name string, value object.Object, mutable bool) {
	s.vars[name] = &binding{value: value, mutable: mutable}
}

// Get resolves a name, walking the parent chain.
func (s *Scope) Get(name string) (object.Object, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if b, ok := scope.vars[name]; ok {
			return b.value, true
		}
	}
	return nil, false
}

// Assign updates the nearest binding of name. It fails when the name is
// not declared or when the binding is immutable.
func (s *Scope) Assign(name string, value object.Object) error {
	for scope := s; scope != nil; scope = scope.parent {
		if b, ok := scope.vars[name]; ok {
			if !b.mutable {
				return errors.EvalErrorf(
					"cannot assign to immutable variable %q (declare it with \"let mut\")", name)
			}
			b.value = value
			return nil
		}
	}
	return errors.EvalErrorf("undefined variable %q", name)
}

// Names returns every name visible from this scope, sorted. Used for
// did-you-mean suggestions on failed lookups.
func (s *Scope) Names() []string {
	seen := map[string]bool{}
	var names []string
	for scope := s; scope != nil; scope = scope.parent {
		for name := range scope.vars {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

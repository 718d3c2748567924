// Package typecheck is lumen's flow-sensitive type checker: nominal and
// union types, structural member/method lookup, and narrowing driven by
// nil-tests and `matches` tests inside `if`/`while` conditions.
package typecheck

import (
	"lumen/internal/semtypes"
	"lumen/internal/source"
)

// binding is one variable's declared type plus bookkeeping for unused-
// binding diagnostics.
type binding struct {
	declaredType semtypes.Type
	declaredAt   source.Span
	used         bool
	mutable      bool
}

// Scope is one lexical block's variable bindings.
type Scope struct {
	vars   map[string]*binding
	parent *Scope
}

func newScope(parent *Scope) *Scope {
	return &Scope{vars: map[string]*binding{}, parent: parent}
}

func (s *Scope) declare(name string, t semtypes.Type, mutable bool) {
	s.vars[name] = &binding{declaredType: t, mutable: mutable}
}

func (s *Scope) declareAt(name string, t semtypes.Type, mutable bool, span source.Span) {
	s.vars[name] = &binding{declaredType: t, mutable: mutable, declaredAt: span}
}

// lookup finds the nearest binding for name, searching outward through
// enclosing scopes.
func (s *Scope) lookup(name string) (*binding, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.vars[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// narrowedType returns a binding's current effective type, which is its
// declared type unless a flow-narrowing mutation has temporarily replaced
// it (see narrowing.go — narrowing mutates binding.declaredType directly
// and relies on callers to save/restore it at scope boundaries, rather
// than layering a second shadow environment on top of Scope).
func (b *binding) narrowedType() semtypes.Type {
	return b.declaredType
}

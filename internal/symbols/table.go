// Package symbols collects each package's declared symbols and classifies
// their visibility: declared-only, package-visible, or exported.
package symbols

import (
	"lumen/internal/ast"
	"lumen/internal/source"
)

// Visibility classifies how widely a symbol can be referenced.
type Visibility uint8

const (
	// Declared: visible only within the file that declares it.
	Declared Visibility = iota
	// PackageVisible: visible to every file in the owning package, because
	// it was declared `public` but not (yet) re-exported.
	PackageVisible
	// Exported: visible to importing packages, because the owning
	// package's manifest names it in an `exports {}` block.
	Exported
)

// Symbol is one top-level declaration with its resolved visibility.
type Symbol struct {
	Name       string
	Decl       ast.DeclID
	File       source.FileID
	Package    source.PackageID
	Visibility Visibility
	Kind       ast.DeclKind
}

// Table indexes a package's symbols by name. Names are unique per package;
// a duplicate is a diagnostic raised by the collector, not a table
// invariant the table itself enforces.
type Table struct {
	Package source.PackageID
	byName  map[string]*Symbol
	order   []string
}

// NewTable returns an empty symbol table for a package.
func NewTable(pkg source.PackageID) *Table {
	return &Table{Package: pkg, byName: map[string]*Symbol{}}
}

// Insert adds sym if its name isn't already taken, returning false (and the
// pre-existing symbol) on a collision so the caller can raise a diagnostic.
func (t *Table) Insert(sym Symbol) (*Symbol, bool) {
	if existing, ok := t.byName[sym.Name]; ok {
		return existing, false
	}
	stored := sym
	t.byName[sym.Name] = &stored
	t.order = append(t.order, sym.Name)
	return &stored, true
}

// Declare records sym's name as declared in the package without enforcing
// uniqueness: a name already occupied by another declared (non-public)
// symbol is left as-is, and an occupied slot is only replaced when sym is
// PackageVisible and the existing entry isn't — so a later `public` name
// always wins the slot over an earlier private one with the same name, and
// private collisions never block lookup of "is this name declared at all".
func (t *Table) Declare(sym Symbol) {
	existing, ok := t.byName[sym.Name]
	if !ok {
		stored := sym
		t.byName[sym.Name] = &stored
		t.order = append(t.order, sym.Name)
		return
	}
	if sym.Visibility == PackageVisible && existing.Visibility != PackageVisible {
		stored := sym
		t.byName[sym.Name] = &stored
	}
}

// Lookup returns the symbol named name, if any.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// MarkExported promotes a symbol (already PackageVisible) to Exported.
func (t *Table) MarkExported(name string) bool {
	s, ok := t.byName[name]
	if !ok {
		return false
	}
	s.Visibility = Exported
	return true
}

// Names returns symbol names in insertion order.
func (t *Table) Names() []string {
	return t.order
}

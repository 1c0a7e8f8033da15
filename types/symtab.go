// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package types

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Symbol stores information for a type declaration maintained by an
// environment.
type Symbol struct {
	// Name is the identifier of the symbol.
	Name string
	// Value is the type bound to the symbol.
	Value *T
	// Source describes where the symbol was declared, for example
	// "list.mls:3:1"; used for error reporting.
	Source string
	// Used is true if the binding has been marked used.
	Used bool
}

// Symtab is a symbol table of symbols.
type Symtab map[string]*Symbol

// Env represents a type environment that binds type identifiers to
// *Ts. Declarations later in a problem (or in an inner frame) shadow
// earlier ones.
type Env struct {
	Types Symtab
	next  *Env
}

// NewEnv creates and initializes a new Env.
func NewEnv() *Env {
	var e *Env
	return e.Push()
}

// Bind binds the type identifier id to type t.
func (e *Env) Bind(id string, t *T, source string) {
	e.Types[id] = &Symbol{Name: id, Value: t, Source: source}
}

// Type returns the type bound to identifier id, if any.
func (e *Env) Type(id string) *T {
	sym := e.Symbol(id)
	if sym == nil {
		return nil
	}
	return sym.Value
}

// Symbol returns the symbol bound to identifier id, if any.
func (e *Env) Symbol(id string) *Symbol {
	for ; e != nil; e = e.next {
		if sym := e.Types[id]; sym != nil {
			return sym
		}
	}
	return nil
}

// Use marks the provided identifier as used.
func (e *Env) Use(id string) {
	if sym := e.Symbol(id); sym != nil {
		sym.Used = true
	}
}

// UseAll marks every name referenced by type t as used.
func (e *Env) UseAll(t *T) {
	switch t.Kind {
	case NamedKind:
		e.Use(t.Name)
	case ArrowKind:
		e.UseAll(t.Arg)
		e.UseAll(t.Elem)
	case MuKind:
		e.UseAll(t.Elem)
	case TupleKind, VariantKind:
		for _, f := range t.Fields {
			e.UseAll(f.T)
		}
	}
}

// Unused returns the symbols of the topmost frame that were never
// marked used, sorted by name.
func (e *Env) Unused() []*Symbol {
	var syms []*Symbol
	for _, sym := range e.Types {
		if !sym.Used {
			syms = append(syms, sym)
		}
	}
	slices.SortFunc(syms, func(a, b *Symbol) int { return strings.Compare(a.Name, b.Name) })
	return syms
}

// Push returns a new environment level linked to e.
func (e *Env) Push() *Env {
	return &Env{
		Types: make(Symtab),
		next:  e,
	}
}

// Pop returns the environment below the topmost frame of e.
func (e *Env) Pop() *Env {
	return e.next
}

// Symbols returns the full type environment as a map.
func (e *Env) Symbols() map[string]*T {
	tab := map[string]*T{}
	for ; e != nil; e = e.next {
		for id, sym := range e.Types {
			if tab[id] == nil {
				tab[id] = sym.Value
			}
		}
	}
	return tab
}

// Expand returns type t with named types that are bound in the
// environment replaced by their definitions, interned by tab. Names
// bound by an enclosing mu type are left alone, as are names whose
// expansion is already in progress, so recursive declarations are
// unrolled only once.
func (e *Env) Expand(tab *Table, t *T) *T {
	return e.expand(tab, t, map[string]bool{})
}

func (e *Env) expand(tab *Table, t *T, stop map[string]bool) *T {
	switch t.Kind {
	case NamedKind:
		def := e.Type(t.Name)
		if def == nil || stop[t.Name] {
			return t
		}
		stop[t.Name] = true
		defer delete(stop, t.Name)
		return e.expand(tab, def, stop)
	case ArrowKind:
		return tab.Arrow(e.expand(tab, t.Arg, stop), e.expand(tab, t.Elem, stop))
	case MuKind:
		bound := stop[t.Name]
		stop[t.Name] = true
		body := e.expand(tab, t.Elem, stop)
		stop[t.Name] = bound
		return tab.Mu(t.Name, body)
	case TupleKind:
		elems := make([]*T, len(t.Fields))
		for i, f := range t.Fields {
			elems[i] = e.expand(tab, f.T, stop)
		}
		return tab.Tuple(elems...)
	case VariantKind:
		ctors := make([]*Field, len(t.Fields))
		for i, f := range t.Fields {
			ctors[i] = &Field{Name: f.Name, T: e.expand(tab, f.T, stop)}
		}
		return tab.Variant(ctors...)
	}
	return t
}

// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package types contains the type trees of synthesis problems:
// constructors for hash-consed type trees, a total structural order
// over them, and an environment for type declarations.
//
// A type is one of:
//
//	name                               a named type, e.g. nat or list
//	t1 -> t2                           the type of functions from t1 to t2
//	t1 * t2 * ... * tn                 the type of n-tuples; () is the empty tuple
//	mu x . t                           the recursive type t binding x
//	| C1 of t1 | C2 of t2 | ...        the variant type with constructors C1, C2, ...
//
// See package syntax for parsing concrete syntax into type trees.
//
// Types are always created through a Table, which interns them: two
// types built through the same table are structurally equal if and
// only if they are the same *T. Types are immutable once created.
package types

import (
	"strings"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/intern"
	"github.com/grailbio/base/digest"
	"golang.org/x/exp/slices"
)

// Kind represents a type's kind.
type Kind int

const (
	// ErrorKind is an illegal type; it is the kind of the zero T.
	ErrorKind Kind = iota
	// NamedKind is a reference to a named type.
	NamedKind
	// ArrowKind is the type of functions.
	ArrowKind
	// TupleKind is the kind of n-tuples, including the empty tuple
	// (unit).
	TupleKind
	// MuKind is the kind of recursive types.
	MuKind
	// VariantKind is the kind of tagged unions.
	VariantKind

	maxKind
)

var kindStrings = [maxKind]string{
	ErrorKind:   "error",
	NamedKind:   "named",
	ArrowKind:   "arrow",
	TupleKind:   "tuple",
	MuKind:      "mu",
	VariantKind: "variant",
}

func (k Kind) String() string {
	return kindStrings[k]
}

// A Field is a labelled type. It is used for the constructors of a
// variant; tuple elements are unlabelled fields.
type Field struct {
	Name string
	*T
}

func (f *Field) String() string {
	if f.Name == "" {
		return f.T.String()
	}
	return f.Name + " of " + f.T.String()
}

// A T is a type. The zero T is an error type.
type T struct {
	// Kind is the kind of the type. See above.
	Kind Kind
	// Name is the name of a named type and the binder of a mu type.
	Name string
	// Arg is the argument type of an arrow.
	Arg *T
	// Elem is the result type of an arrow and the body of a mu type.
	Elem *T
	// Fields stores the elements of a tuple and the constructors
	// of a variant.
	Fields []*Field

	table  *Table
	seq    int
	digest digest.Digest
}

// Digest returns the type's structural digest.
func (t *T) Digest() digest.Digest {
	return t.digest
}

// ID returns the type's sequence number in its table: types are
// numbered in the order in which they were first interned.
func (t *T) ID() int {
	return t.seq
}

// IsNamed tells whether t is a named type.
func (t *T) IsNamed() bool {
	return t.Kind == NamedKind
}

// IsUnit tells whether t is the empty tuple.
func (t *T) IsUnit() bool {
	return t.Kind == TupleKind && len(t.Fields) == 0
}

// Elems returns the element types of a tuple.
func (t *T) Elems() []*T {
	elems := make([]*T, len(t.Fields))
	for i, f := range t.Fields {
		elems[i] = f.T
	}
	return elems
}

// Ctor returns the argument type of the variant constructor with the
// given name, or nil if t has no such constructor.
func (t *T) Ctor(name string) *T {
	if t.Kind != VariantKind {
		return nil
	}
	for _, f := range t.Fields {
		if f.Name == name {
			return f.T
		}
	}
	return nil
}

// String renders a parseable version of type t.
func (t *T) String() string {
	switch t.Kind {
	default:
		return "error"
	case NamedKind:
		return t.Name
	case ArrowKind:
		// Arrows associate to the right.
		return t.Arg.product() + " -> " + t.Elem.String()
	case TupleKind:
		switch len(t.Fields) {
		case 0:
			return "()"
		case 1:
			return "(" + t.Fields[0].T.String() + ")"
		}
		return t.product()
	case MuKind:
		return "mu " + t.Name + " . " + t.Elem.String()
	case VariantKind:
		var b strings.Builder
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString("| " + f.Name)
			if !f.T.IsUnit() {
				b.WriteString(" of " + f.T.product())
			}
		}
		return b.String()
	}
}

// product renders t in a position that binds at least as tightly as
// the tuple operator.
func (t *T) product() string {
	if t.Kind != TupleKind || len(t.Fields) < 2 {
		return t.base()
	}
	elems := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		elems[i] = f.T.base()
	}
	return strings.Join(elems, " * ")
}

// base renders t as an atomic type, parenthesizing if needed.
func (t *T) base() string {
	switch {
	case t.Kind == NamedKind, t.Kind == TupleKind && len(t.Fields) < 2:
		return t.String()
	default:
		return "(" + t.String() + ")"
	}
}

// Equal tests whether type t is structurally equal to type u. For
// types interned by the same table this is pointer equality.
func (t *T) Equal(u *T) bool {
	return Compare(t, u) == 0
}

// Less tells whether t is ordered before u; see Compare.
func (t *T) Less(u *T) bool {
	return Compare(t, u) < 0
}

// Compare defines a total order over types. It orders first by kind,
// then by names, and then recursively by children. The order depends
// only on structure, never on the order in which types were interned.
func Compare(t, u *T) int {
	if t == u {
		return 0
	}
	if t.table != nil && t.table == u.table {
		// Both are canonical: equal structures are equal pointers.
		if t.digest == u.digest {
			return 0
		}
	}
	if c := compareInt(int(t.Kind), int(u.Kind)); c != 0 {
		return c
	}
	switch t.Kind {
	case NamedKind:
		return strings.Compare(t.Name, u.Name)
	case ArrowKind:
		if c := Compare(t.Arg, u.Arg); c != 0 {
			return c
		}
		return Compare(t.Elem, u.Elem)
	case MuKind:
		if c := strings.Compare(t.Name, u.Name); c != 0 {
			return c
		}
		return Compare(t.Elem, u.Elem)
	case TupleKind, VariantKind:
		for i := 0; i < len(t.Fields) && i < len(u.Fields); i++ {
			if c := strings.Compare(t.Fields[i].Name, u.Fields[i].Name); c != 0 {
				return c
			}
			if c := Compare(t.Fields[i].T, u.Fields[i].T); c != 0 {
				return c
			}
		}
		return compareInt(len(t.Fields), len(u.Fields))
	}
	return 0
}

func compareInt(i, j int) int {
	switch {
	case i < j:
		return -1
	case i > j:
		return 1
	}
	return 0
}

// Sort sorts the provided types in the order defined by Compare.
func Sort(ts []*T) {
	slices.SortFunc(ts, Compare)
}

// A Table interns types. Each parsing session owns one table; a
// table may be shared by concurrent sessions. The zero Table is ready
// to use.
type Table struct {
	types intern.Table[*T]
}

// NewTable returns a new, empty type table.
func NewTable() *Table {
	return new(Table)
}

// Stats returns the table's interning counters.
func (tab *Table) Stats() intern.Stats {
	return tab.types.Stats()
}

// Named returns the named type name.
func (tab *Table) Named(name string) *T {
	return tab.Intern(&T{Kind: NamedKind, Name: name})
}

// Arrow returns the type of functions from arg to res.
func (tab *Table) Arrow(arg, res *T) *T {
	return tab.Intern(&T{Kind: ArrowKind, Arg: arg, Elem: res})
}

// Tuple returns the tuple type with the provided elements. Tuple
// does not collapse singletons; see Product.
func (tab *Table) Tuple(elems ...*T) *T {
	fields := make([]*Field, len(elems))
	for i, elem := range elems {
		fields[i] = &Field{T: elem}
	}
	return tab.Intern(&T{Kind: TupleKind, Fields: fields})
}

// Product returns the product of the provided types: the sole element
// of a singleton, and a tuple otherwise.
func (tab *Table) Product(elems ...*T) *T {
	if len(elems) == 1 {
		return tab.Intern(elems[0])
	}
	return tab.Tuple(elems...)
}

// Unit returns the empty tuple type.
func (tab *Table) Unit() *T {
	return tab.Tuple()
}

// Mu returns the recursive type binding binder in body.
func (tab *Table) Mu(binder string, body *T) *T {
	return tab.Intern(&T{Kind: MuKind, Name: binder, Elem: body})
}

// Variant returns the variant type with the provided constructors,
// in order.
func (tab *Table) Variant(ctors ...*Field) *T {
	return tab.Intern(&T{Kind: VariantKind, Fields: ctors})
}

// Intern returns the canonical representative of the candidate type
// t. Children of t are interned first, so t may be assembled from
// types that were never interned, or that were interned by another
// table. The candidate itself is never retained.
func (tab *Table) Intern(t *T) *T {
	if t.table == tab {
		return t
	}
	c := &T{Kind: t.Kind, Name: t.Name}
	key := intern.NewKey(byte(t.Kind))
	switch t.Kind {
	default:
		panic("types: intern of " + t.Kind.String() + " type")
	case NamedKind:
		key.String(t.Name)
	case ArrowKind:
		c.Arg, c.Elem = tab.Intern(t.Arg), tab.Intern(t.Elem)
		key.Digest(c.Arg.digest).Digest(c.Elem.digest)
	case MuKind:
		c.Elem = tab.Intern(t.Elem)
		key.String(t.Name).Digest(c.Elem.digest)
	case TupleKind, VariantKind:
		c.Fields = make([]*Field, len(t.Fields))
		key.Int(int64(len(t.Fields)))
		for i, f := range t.Fields {
			c.Fields[i] = &Field{Name: f.Name, T: tab.Intern(f.T)}
			key.String(f.Name).Digest(c.Fields[i].digest)
		}
	}
	c.digest = key.Sum()
	return tab.types.Intern(c.digest, func(seq int) *T {
		c.table, c.seq = tab, seq
		return c
	})
}

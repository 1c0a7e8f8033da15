// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIntern(t *testing.T) {
	tab := NewTable()
	nat := tab.Named("nat")
	if tab.Named("nat") != nat {
		t.Error("named types were not shared")
	}
	a := tab.Arrow(nat, tab.Arrow(nat, tab.Named("bool")))
	b := tab.Arrow(tab.Named("nat"), tab.Arrow(tab.Named("nat"), tab.Named("bool")))
	if a != b {
		t.Errorf("%v and %v were not shared", a, b)
	}
	if tab.Unit() != tab.Tuple() {
		t.Error("unit is not the empty tuple")
	}
	if got, want := tab.Product(nat), nat; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if tab.Tuple(nat) == nat {
		t.Error("Tuple must not collapse singletons")
	}
	// Handles from another table are re-interned structurally.
	other := NewTable().Arrow(NewTable().Named("nat"), NewTable().Named("nat"))
	if got, want := tab.Intern(other), tab.Arrow(nat, nat); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := tab.Stats().Nodes, 7; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInternCandidate(t *testing.T) {
	tab := NewTable()
	candidate := &T{
		Kind: VariantKind,
		Fields: []*Field{
			{Name: "Nil", T: &T{Kind: TupleKind}},
			{Name: "Cons", T: &T{Kind: TupleKind, Fields: []*Field{
				{T: &T{Kind: NamedKind, Name: "nat"}},
				{T: &T{Kind: NamedKind, Name: "list"}},
			}}},
		},
	}
	got := tab.Intern(candidate)
	want := tab.Variant(
		&Field{Name: "Nil", T: tab.Unit()},
		&Field{Name: "Cons", T: tab.Tuple(tab.Named("nat"), tab.Named("list"))},
	)
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got == candidate {
		t.Error("candidate was retained")
	}
	if got.Ctor("Cons") != tab.Tuple(tab.Named("nat"), tab.Named("list")) {
		t.Errorf("bad constructor type %v", got.Ctor("Cons"))
	}
	if got.Ctor("Snoc") != nil {
		t.Error("unexpected constructor Snoc")
	}
}

func TestString(t *testing.T) {
	tab := NewTable()
	nat, list := tab.Named("nat"), tab.Named("list")
	for _, c := range []struct {
		t    *T
		want string
	}{
		{nat, "nat"},
		{tab.Unit(), "()"},
		{tab.Arrow(nat, tab.Arrow(nat, nat)), "nat -> nat -> nat"},
		{tab.Arrow(tab.Arrow(nat, nat), nat), "(nat -> nat) -> nat"},
		{tab.Arrow(tab.Tuple(nat, list), list), "nat * list -> list"},
		{tab.Tuple(tab.Tuple(nat, nat), nat), "(nat * nat) * nat"},
		{tab.Tuple(tab.Arrow(nat, nat), tab.Unit()), "(nat -> nat) * ()"},
		{tab.Mu("l", tab.Variant(
			&Field{Name: "Nil", T: tab.Unit()},
			&Field{Name: "Cons", T: tab.Tuple(nat, tab.Named("l"))},
		)), "mu l . | Nil | Cons of nat * l"},
		{tab.Variant(
			&Field{Name: "Leaf", T: tab.Unit()},
			&Field{Name: "Node", T: tab.Arrow(nat, nat)},
		), "| Leaf | Node of (nat -> nat)"},
	} {
		if got := c.t.String(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

func TestCompare(t *testing.T) {
	tab := NewTable()
	nat, bool_ := tab.Named("nat"), tab.Named("bool")
	ts := []*T{
		tab.Variant(&Field{Name: "A", T: tab.Unit()}),
		tab.Arrow(nat, nat),
		tab.Tuple(nat, bool_),
		nat,
		tab.Tuple(nat),
		bool_,
		tab.Arrow(bool_, nat),
		tab.Unit(),
		tab.Mu("x", nat),
	}
	Sort(ts)
	var got []string
	for _, t := range ts {
		got = append(got, t.String())
	}
	want := []string{
		"bool",
		"nat",
		"bool -> nat",
		"nat -> nat",
		"()",
		"(nat)",
		"nat * bool",
		"mu x . nat",
		"| A",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sort mismatch (-want +got):\n%s", diff)
	}
	// The order is independent of interning order.
	other := NewTable()
	if Compare(other.Arrow(other.Named("bool"), other.Named("nat")), tab.Arrow(nat, nat)) >= 0 {
		t.Error("order depends on the table")
	}
	if !tab.Arrow(nat, nat).Equal(other.Arrow(other.Named("nat"), other.Named("nat"))) {
		t.Error("structurally equal types from different tables are not Equal")
	}
}

func TestEnv(t *testing.T) {
	tab := NewTable()
	e := NewEnv()
	e.Bind("a", tab.Named("nat"), "a.mls:1:1")
	e.Bind("b", tab.Named("bool"), "a.mls:2:1")
	e = e.Push()
	e.Bind("a", tab.Named("bool"), "a.mls:3:1")
	if got, want := e.Type("a"), tab.Named("bool"); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := e.Type("b"), tab.Named("bool"); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	e = e.Pop()
	if got, want := e.Type("a"), tab.Named("nat"); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	e.UseAll(tab.Arrow(tab.Named("a"), tab.Named("c")))
	unused := e.Unused()
	if len(unused) != 1 || unused[0].Name != "b" {
		t.Errorf("got %v, want [b]", unused)
	}
}

func TestExpand(t *testing.T) {
	tab := NewTable()
	nat, list := tab.Named("nat"), tab.Named("list")
	listDef := tab.Variant(
		&Field{Name: "Nil", T: tab.Unit()},
		&Field{Name: "Cons", T: tab.Tuple(nat, list)},
	)
	e := NewEnv()
	e.Bind("list", listDef, "")
	e.Bind("pair", tab.Tuple(list, list), "")

	got := e.Expand(tab, tab.Arrow(tab.Named("pair"), nat))
	want := tab.Arrow(tab.Tuple(listDef, listDef), nat)
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	// Mu binders shadow declarations.
	mu := tab.Mu("list", tab.Tuple(tab.Named("list"), nat))
	if got := e.Expand(tab, mu); got != mu {
		t.Errorf("got %v, want %v", got, mu)
	}
}

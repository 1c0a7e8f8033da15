// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package syntax

import (
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInternDedup(t *testing.T) {
	in := NewInterner()
	if in.Var("x") != in.Var("x") {
		t.Error("variables were not shared")
	}
	if in.Var("x") == in.Var("y") {
		t.Error("distinct variables were shared")
	}
	f := in.App(in.App(in.Var("f"), in.Var("a")), in.Var("b"))
	g := in.App(in.App(in.Var("f"), in.Var("a")), in.Var("b"))
	if f != g {
		t.Errorf("%v and %v were not shared", f, g)
	}
	if in.Eq(true, f, g) == in.Eq(false, f, g) {
		t.Error("== and != were shared")
	}
	if in.Ctor("Cons", in.Var("x")) == in.Unctor("Cons", in.Var("x")) {
		t.Error("constructor and destructor were shared")
	}
	if got, want := in.CtorByName("Un_Cons", in.Var("x")), in.Unctor("Cons", in.Var("x")); got != want {
		t.Errorf("got %v, want %v", got.Debug(), want.Debug())
	}
	if got, want := in.CtorByName("Uncons", in.Unit()).Kind, ExprCtor; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if in.Product(in.Var("x")) != in.Var("x") {
		t.Error("singleton product was not collapsed")
	}
	if in.Tuple(in.Var("x")) == in.Var("x") {
		t.Error("Tuple must not collapse singletons")
	}
	if in.Unit() != in.Tuple() {
		t.Error("unit is not the empty tuple")
	}
	nat := in.Types.Named("nat")
	if in.Func(Param{"x", nat}, in.Var("x")) == in.Func(Param{"y", nat}, in.Var("x")) {
		t.Error("functions with distinct parameters were shared")
	}
	if in.Fix("f", nat, in.Var("f")) != in.Fix("f", in.Types.Named("nat"), in.Var("f")) {
		t.Error("fixed points were not shared")
	}
	if in.Proj(0, f) == in.Proj(1, f) {
		t.Error("distinct projections were shared")
	}
}

func TestInternMatch(t *testing.T) {
	in := NewInterner()
	branches := func(id string) []*Branch {
		return []*Branch{
			{Pat: &Pat{Kind: PatCtor, Ident: "Nil", Arg: &Pat{Kind: PatWildcard}}, Expr: in.Nat(0)},
			{Pat: &Pat{Kind: PatCtor, Ident: "Cons", Arg: &Pat{Kind: PatTuple, List: []*Pat{
				{Kind: PatVar, Ident: id},
				{Kind: PatWildcard},
			}}}, Expr: in.Var(id)},
		}
	}
	m1 := in.Match(in.Var("l"), branches("h")...)
	m2 := in.Match(in.Var("l"), branches("h")...)
	m3 := in.Match(in.Var("l"), branches("x")...)
	if m1 != m2 {
		t.Error("matches with equal patterns were not shared")
	}
	if m1 == m3 {
		t.Error("matches with distinct patterns were shared")
	}
	// Patterns must not be confused with expressions of the same shape.
	p := &Pat{Kind: PatTuple, List: []*Pat{{Kind: PatVar, Ident: "ab"}, {Kind: PatVar, Ident: "c"}}}
	q := &Pat{Kind: PatTuple, List: []*Pat{{Kind: PatVar, Ident: "a"}, {Kind: PatVar, Ident: "bc"}}}
	if in.Match(in.Var("l"), &Branch{p, in.Unit()}) == in.Match(in.Var("l"), &Branch{q, in.Unit()}) {
		t.Error("distinct patterns were shared")
	}
}

func TestInternCandidate(t *testing.T) {
	in := NewInterner()
	candidate := &Expr{
		Kind: ExprApp,
		Left: &Expr{Kind: ExprVar, Ident: "f"},
		Right: &Expr{Kind: ExprCtor, Ident: "S", Left: &Expr{
			Kind: ExprCtor, Ident: "O", Left: &Expr{Kind: ExprTuple},
		}},
	}
	got := in.Intern(candidate)
	if want := in.App(in.Var("f"), in.Nat(1)); got != want {
		t.Errorf("got %v, want %v", got.Debug(), want.Debug())
	}
	if got == candidate {
		t.Error("candidate was retained")
	}
	// Nodes of another interner are re-interned structurally.
	other := NewInterner()
	e := other.Func(Param{"x", other.Types.Named("nat")}, other.Var("x"))
	if got, want := in.Intern(e), in.Func(Param{"x", in.Types.Named("nat")}, in.Var("x")); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if !e.Equal(in.Intern(e)) {
		t.Error("structurally equal expressions are not Equal")
	}
}

func TestInternStats(t *testing.T) {
	in := NewInterner()
	in.Nat(2)
	in.Nat(3)
	stats := in.Stats()
	// (), O (), S O (), S S O (), S S S O ()
	if got, want := stats.Exprs.Nodes, 5; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if stats.Exprs.Hits == 0 {
		t.Error("expected interning hits")
	}
	if got, want := in.Nat(3).ID(), 4; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNat(t *testing.T) {
	in := NewInterner()
	for _, n := range []int{0, 1, 7} {
		e := in.Nat(n)
		if m, ok := e.Nat(); !ok || m != n {
			t.Errorf("got %v, %v, want %v", m, ok, n)
		}
		if got, want := e.String(), strconv.Itoa(n); got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	if _, ok := in.Ctor("S", in.Var("x")).Nat(); ok {
		t.Error("S x is not a natural number")
	}
	if got, want := in.Nat(3).Debug(), "ctor(S, ctor(S, ctor(S, ctor(O, tuple()))))"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSortExprs(t *testing.T) {
	in := NewInterner()
	es := []*Expr{
		in.Tuple(in.Var("a"), in.Var("b")),
		in.Ctor("S", in.Var("a")),
		in.Var("b"),
		in.App(in.Var("f"), in.Var("a")),
		in.Unit(),
		in.Var("a"),
		in.Ctor("O", in.Unit()),
	}
	SortExprs(es)
	var got []string
	for _, e := range es {
		got = append(got, e.String())
	}
	want := []string{"a", "b", "f a", "0", "S a", "()", "(a, b)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sort mismatch (-want +got):\n%s", diff)
	}
	// The order does not depend on interning order.
	other := NewInterner()
	if Compare(other.Var("b"), in.Var("a")) <= 0 {
		t.Error("order depends on the interner")
	}
}

func TestExprString(t *testing.T) {
	in := NewInterner()
	for _, src := range []string{
		"f a b",
		"f (g a) b",
		"f (a, ()) 3",
		"Cons (1, Nil)",
		"C D",
		"C (D x)",
		"C (0)",
		"Un_Cons (h, t)",
		"x.0.1",
		"(f x).1",
		"(f x).0.1",
		"f (x.0) y",
		"C (x.0)",
		"f x == S y",
		"(fun (x : nat) -> x) != g",
		"fun (x : nat * nat -> nat) -> fix (f : nat) = f",
		"match l with | Nil -> (match x with | _ -> x) | Cons (h, _) -> h",
		"match a with | A -> (fun (x : nat) -> match x with | C -> y) | B -> z",
		"match a with | A -> (fix (f : nat) = fun (x : nat) -> match x with | C -> f) | B -> z",
		"match a with | A -> b | B -> fun (x : nat) -> match x with | C -> y | D -> z",
	} {
		e := parse(t, ParseExpr, in, src).Expr
		if got, want := e.String(), src; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		if f := parse(t, ParseExpr, in, e.String()).Expr; f != e {
			t.Errorf("%s: reparsed as %v", src, f.Debug())
		}
	}
}

func TestInternConcurrent(t *testing.T) {
	in := NewInterner()
	const src = "fun (l : list) -> match l with | Nil -> 0 | Cons (h, t) -> S (f t)"
	var (
		wg    sync.WaitGroup
		exprs = make([]*Expr, 32)
		errs  = make([]error, len(exprs))
	)
	for i := range exprs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x := &Parser{Mode: ParseExpr, Interner: in, Body: strings.NewReader(src)}
			errs[i] = x.Parse()
			exprs[i] = x.Expr
		}(i)
	}
	wg.Wait()
	for i, e := range exprs {
		if errs[i] != nil {
			t.Fatal(errs[i])
		}
		if e != exprs[0] {
			t.Fatal("concurrent parses produced duplicate handles")
		}
	}
}

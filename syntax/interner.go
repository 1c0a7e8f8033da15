// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package syntax

import (
	"strings"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/intern"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/types"
)

// DestructorPrefix is the reserved constructor name prefix that
// denotes a destructor: Un_Foo e unwraps the constructor Foo.
const DestructorPrefix = "Un_"

// An Interner hash-conses types and expressions. All nodes of a
// parse are created through its session's interner, which guarantees
// at most one representative per distinct structure. An Interner is
// safe for concurrent use.
type Interner struct {
	// Types interns type trees.
	Types *types.Table

	exprs intern.Table[*Expr]
}

// NewInterner returns a new interner with an empty type table.
func NewInterner() *Interner {
	return &Interner{Types: types.NewTable()}
}

// Stats holds the counters of an interner.
type Stats struct {
	Types, Exprs intern.Stats
}

// Stats returns the interner's current counters.
func (in *Interner) Stats() Stats {
	return Stats{Types: in.Types.Stats(), Exprs: in.exprs.Stats()}
}

// Var returns the variable reference name.
func (in *Interner) Var(name string) *Expr {
	return in.Intern(&Expr{Kind: ExprVar, Ident: name})
}

// Wildcard returns the wildcard expression.
func (in *Interner) Wildcard() *Expr {
	return in.Intern(&Expr{Kind: ExprWildcard})
}

// App returns the application of fn to arg.
func (in *Interner) App(fn, arg *Expr) *Expr {
	return in.Intern(&Expr{Kind: ExprApp, Left: fn, Right: arg})
}

// Func returns the function with parameter p and the provided body.
func (in *Interner) Func(p Param, body *Expr) *Expr {
	return in.Intern(&Expr{Kind: ExprFunc, Param: p, Left: body})
}

// Ctor returns the application of constructor name to arg.
func (in *Interner) Ctor(name string, arg *Expr) *Expr {
	return in.Intern(&Expr{Kind: ExprCtor, Ident: name, Left: arg})
}

// Unctor returns the application of the destructor of constructor
// name to arg.
func (in *Interner) Unctor(name string, arg *Expr) *Expr {
	return in.Intern(&Expr{Kind: ExprUnctor, Ident: name, Left: arg})
}

// CtorByName applies the constructor name to arg, or, if name carries
// DestructorPrefix, the destructor of the constructor it names.
func (in *Interner) CtorByName(name string, arg *Expr) *Expr {
	if ctor := strings.TrimPrefix(name, DestructorPrefix); ctor != name {
		return in.Unctor(ctor, arg)
	}
	return in.Ctor(name, arg)
}

// Eq returns the equality test (isEqual) or disequality test of left
// and right.
func (in *Interner) Eq(isEqual bool, left, right *Expr) *Expr {
	op := "!="
	if isEqual {
		op = "=="
	}
	return in.Intern(&Expr{Kind: ExprEq, Op: op, Left: left, Right: right})
}

// Match returns the match of e against the provided branches.
func (in *Interner) Match(e *Expr, branches ...*Branch) *Expr {
	return in.Intern(&Expr{Kind: ExprMatch, Left: e, Branches: branches})
}

// Fix returns the fixed point binding name of type t in body.
func (in *Interner) Fix(name string, t *types.T, body *Expr) *Expr {
	return in.Intern(&Expr{Kind: ExprFix, Ident: name, Type: t, Left: body})
}

// Tuple returns the tuple of the provided expressions. Tuple does not
// collapse singletons; see Product.
func (in *Interner) Tuple(elems ...*Expr) *Expr {
	return in.Intern(&Expr{Kind: ExprTuple, List: elems})
}

// Product returns the sole element of a singleton, and the tuple of
// the provided expressions otherwise.
func (in *Interner) Product(elems ...*Expr) *Expr {
	if len(elems) == 1 {
		return in.Intern(elems[0])
	}
	return in.Tuple(elems...)
}

// Unit returns the empty tuple.
func (in *Interner) Unit() *Expr {
	return in.Tuple()
}

// Proj returns the projection of element index of e.
func (in *Interner) Proj(index int, e *Expr) *Expr {
	return in.Intern(&Expr{Kind: ExprProj, Index: index, Left: e})
}

// Nat returns the Peano encoding of n: n applications of constructor
// S to O ().
func (in *Interner) Nat(n int) *Expr {
	e := in.Ctor("O", in.Unit())
	for ; n > 0; n-- {
		e = in.Ctor("S", e)
	}
	return e
}

// Intern returns the canonical representative of the candidate
// expression e. Children (including types) are interned first, so e
// may be assembled from nodes that were never interned or that belong
// to another interner. The candidate itself is never retained.
func (in *Interner) Intern(e *Expr) *Expr {
	if e.interner == in {
		return e
	}
	tab := in.Types
	c := &Expr{Kind: e.Kind, Ident: e.Ident, Op: e.Op, Index: e.Index}
	key := intern.NewKey(byte(e.Kind))
	switch e.Kind {
	default:
		panic("syntax: intern of " + e.Kind.String() + " expression")
	case ExprVar:
		key.String(e.Ident)
	case ExprWildcard:
	case ExprApp:
		c.Left, c.Right = in.Intern(e.Left), in.Intern(e.Right)
		key.Digest(c.Left.digest).Digest(c.Right.digest)
	case ExprFunc:
		c.Param = Param{Name: e.Param.Name, Type: tab.Intern(e.Param.Type)}
		c.Left = in.Intern(e.Left)
		key.String(c.Param.Name).Digest(c.Param.Type.Digest()).Digest(c.Left.digest)
	case ExprCtor, ExprUnctor:
		c.Left = in.Intern(e.Left)
		key.String(e.Ident).Digest(c.Left.digest)
	case ExprEq:
		c.Left, c.Right = in.Intern(e.Left), in.Intern(e.Right)
		key.Bool(c.IsEqual()).Digest(c.Left.digest).Digest(c.Right.digest)
	case ExprMatch:
		c.Left = in.Intern(e.Left)
		key.Digest(c.Left.digest).Int(int64(len(e.Branches)))
		c.Branches = make([]*Branch, len(e.Branches))
		for i, b := range e.Branches {
			c.Branches[i] = &Branch{Pat: b.Pat, Expr: in.Intern(b.Expr)}
			b.Pat.key(key)
			key.Digest(c.Branches[i].Expr.digest)
		}
	case ExprFix:
		c.Type, c.Left = tab.Intern(e.Type), in.Intern(e.Left)
		key.String(e.Ident).Digest(c.Type.Digest()).Digest(c.Left.digest)
	case ExprTuple:
		c.List = make([]*Expr, len(e.List))
		key.Int(int64(len(e.List)))
		for i, f := range e.List {
			c.List[i] = in.Intern(f)
			key.Digest(c.List[i].digest)
		}
	case ExprProj:
		c.Left = in.Intern(e.Left)
		key.Int(int64(e.Index)).Digest(c.Left.digest)
	}
	c.digest = key.Sum()
	return in.exprs.Intern(c.digest, func(seq int) *Expr {
		c.interner, c.seq = in, seq
		return c
	})
}

// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package syntax

import (
	"strconv"
	"strings"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/types"
	"github.com/grailbio/base/digest"
	"golang.org/x/exp/slices"
)

// ExprKind is the kind of an expression.
type ExprKind int

const (
	// ExprError indicates an erroneous expression; it is the kind of
	// the zero Expr.
	ExprError ExprKind = iota
	// ExprVar is a variable reference.
	ExprVar
	// ExprWildcard is the wildcard expression.
	ExprWildcard
	// ExprApp is function application.
	ExprApp
	// ExprFunc is a function abstraction.
	ExprFunc
	// ExprCtor applies a data constructor.
	ExprCtor
	// ExprUnctor applies a destructor, unwrapping a constructor.
	ExprUnctor
	// ExprEq is an equality (==) or disequality (!=) test.
	ExprEq
	// ExprMatch is a match expression.
	ExprMatch
	// ExprFix is a fixed point.
	ExprFix
	// ExprTuple is a tuple; the empty tuple is unit.
	ExprTuple
	// ExprProj projects an element of a tuple.
	ExprProj

	maxExpr
)

var exprKindStrings = [maxExpr]string{
	ExprError:    "error",
	ExprVar:      "var",
	ExprWildcard: "wildcard",
	ExprApp:      "app",
	ExprFunc:     "func",
	ExprCtor:     "ctor",
	ExprUnctor:   "unctor",
	ExprEq:       "eq",
	ExprMatch:    "match",
	ExprFix:      "fix",
	ExprTuple:    "tuple",
	ExprProj:     "proj",
}

func (k ExprKind) String() string {
	return exprKindStrings[k]
}

// A Param is a function parameter.
type Param struct {
	Name string
	Type *types.T
}

// A Branch is a match branch.
type Branch struct {
	Pat  *Pat
	Expr *Expr
}

// An Expr is a node in the expression AST. Exprs are interned (see
// Interner): expressions built by the same interner are structurally
// equal if and only if they are the same *Expr. Since nodes are
// shared, they carry no source positions.
type Expr struct {
	// Kind is the expression's op; see above.
	Kind ExprKind

	// Ident is the variable name in ExprVar, the constructor name in
	// ExprCtor and ExprUnctor, and the bound name in ExprFix.
	Ident string

	// Left is the function in ExprApp; the body in ExprFunc and
	// ExprFix; the argument in ExprCtor, ExprUnctor and ExprProj; the
	// scrutinee in ExprMatch; and the left operand in ExprEq.
	Left *Expr
	// Right is the argument in ExprApp and the right operand in ExprEq.
	Right *Expr

	// Op is "==" or "!=" in ExprEq.
	Op string

	// Param is the parameter of an ExprFunc.
	Param Param
	// Type is the type of the bound name in ExprFix.
	Type *types.T

	// List holds the elements of an ExprTuple.
	List []*Expr
	// Branches holds the branches of an ExprMatch, in order.
	Branches []*Branch
	// Index is the projected index in ExprProj.
	Index int

	interner *Interner
	seq      int
	digest   digest.Digest
}

// Digest returns the expression's structural digest.
func (e *Expr) Digest() digest.Digest {
	return e.digest
}

// ID returns the expression's sequence number in its interner:
// expressions are numbered in the order in which they were first
// interned.
func (e *Expr) ID() int {
	return e.seq
}

// IsEqual tells whether an ExprEq tests for equality (rather than
// disequality).
func (e *Expr) IsEqual() bool {
	return e.Op == "=="
}

// IsUnit tells whether e is the empty tuple.
func (e *Expr) IsUnit() bool {
	return e.Kind == ExprTuple && len(e.List) == 0
}

// Nat returns the natural number n if e is the Peano encoding of n.
func (e *Expr) Nat() (n int, ok bool) {
	for ; e.Kind == ExprCtor && e.Ident == "S"; e = e.Left {
		n++
	}
	if e.Kind == ExprCtor && e.Ident == "O" && e.Left.IsUnit() {
		return n, true
	}
	return 0, false
}

// Equal tests whether expression e is structurally equal to f. For
// expressions interned by the same interner this is pointer equality.
func (e *Expr) Equal(f *Expr) bool {
	return Compare(e, f) == 0
}

// Compare defines a total order over expressions: by kind, then by
// names, then recursively by children. The order depends only on
// structure, never on the order in which expressions were interned.
func Compare(e, f *Expr) int {
	if e == f {
		return 0
	}
	if e.interner != nil && e.interner == f.interner && e.digest == f.digest {
		return 0
	}
	if c := compareInt(int(e.Kind), int(f.Kind)); c != 0 {
		return c
	}
	switch e.Kind {
	case ExprVar:
		return strings.Compare(e.Ident, f.Ident)
	case ExprApp:
		if c := Compare(e.Left, f.Left); c != 0 {
			return c
		}
		return Compare(e.Right, f.Right)
	case ExprFunc:
		if c := strings.Compare(e.Param.Name, f.Param.Name); c != 0 {
			return c
		}
		if c := types.Compare(e.Param.Type, f.Param.Type); c != 0 {
			return c
		}
		return Compare(e.Left, f.Left)
	case ExprCtor, ExprUnctor:
		if c := strings.Compare(e.Ident, f.Ident); c != 0 {
			return c
		}
		return Compare(e.Left, f.Left)
	case ExprEq:
		if c := strings.Compare(e.Op, f.Op); c != 0 {
			return c
		}
		if c := Compare(e.Left, f.Left); c != 0 {
			return c
		}
		return Compare(e.Right, f.Right)
	case ExprMatch:
		if c := Compare(e.Left, f.Left); c != 0 {
			return c
		}
		for i := 0; i < len(e.Branches) && i < len(f.Branches); i++ {
			if c := ComparePat(e.Branches[i].Pat, f.Branches[i].Pat); c != 0 {
				return c
			}
			if c := Compare(e.Branches[i].Expr, f.Branches[i].Expr); c != 0 {
				return c
			}
		}
		return compareInt(len(e.Branches), len(f.Branches))
	case ExprFix:
		if c := strings.Compare(e.Ident, f.Ident); c != 0 {
			return c
		}
		if c := types.Compare(e.Type, f.Type); c != 0 {
			return c
		}
		return Compare(e.Left, f.Left)
	case ExprTuple:
		for i := 0; i < len(e.List) && i < len(f.List); i++ {
			if c := Compare(e.List[i], f.List[i]); c != 0 {
				return c
			}
		}
		return compareInt(len(e.List), len(f.List))
	case ExprProj:
		if c := compareInt(e.Index, f.Index); c != 0 {
			return c
		}
		return Compare(e.Left, f.Left)
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

// SortExprs sorts the provided expressions in the order defined by
// Compare.
func SortExprs(es []*Expr) {
	slices.SortFunc(es, Compare)
}

// Debug returns a debug string of the expression tree.
func (e *Expr) Debug() string {
	switch e.Kind {
	case ExprVar:
		return "var(" + e.Ident + ")"
	case ExprWildcard:
		return "wildcard"
	case ExprApp:
		return "app(" + e.Left.Debug() + ", " + e.Right.Debug() + ")"
	case ExprFunc:
		return "func(" + e.Param.Name + " " + e.Param.Type.String() + ", " + e.Left.Debug() + ")"
	case ExprCtor, ExprUnctor:
		return e.Kind.String() + "(" + e.Ident + ", " + e.Left.Debug() + ")"
	case ExprEq:
		return "eq(" + strconv.FormatBool(e.IsEqual()) + ", " + e.Left.Debug() + ", " + e.Right.Debug() + ")"
	case ExprMatch:
		branches := make([]string, len(e.Branches))
		for i, b := range e.Branches {
			branches[i] = b.Pat.Debug() + " -> " + b.Expr.Debug()
		}
		return "match(" + e.Left.Debug() + ", " + strings.Join(branches, ", ") + ")"
	case ExprFix:
		return "fix(" + e.Ident + " " + e.Type.String() + ", " + e.Left.Debug() + ")"
	case ExprTuple:
		elems := make([]string, len(e.List))
		for i, f := range e.List {
			elems[i] = f.Debug()
		}
		return "tuple(" + strings.Join(elems, ", ") + ")"
	case ExprProj:
		return "proj(" + strconv.Itoa(e.Index) + ", " + e.Left.Debug() + ")"
	}
	return "error"
}

// String renders a parseable version of expression e. Natural
// numbers are rendered as integer literals.
func (e *Expr) String() string {
	switch e.Kind {
	case ExprVar:
		return e.Ident
	case ExprWildcard:
		return "_"
	case ExprApp:
		head := e.Left.String()
		if e.Left.Kind != ExprApp && e.Left.Kind != ExprVar {
			head = e.Left.atom()
		}
		return head + " " + e.Right.atom()
	case ExprFunc:
		return "fun (" + e.Param.Name + " : " + e.Param.Type.String() + ") -> " + e.Left.String()
	case ExprCtor, ExprUnctor:
		if n, ok := e.Nat(); ok {
			return strconv.Itoa(n)
		}
		name := e.Ident
		if e.Kind == ExprUnctor {
			name = "Un_" + name
		}
		switch arg := e.Left; {
		case arg.IsUnit():
			return name
		case arg.Kind == ExprVar:
			return name + " " + arg.Ident
		case arg.Kind == ExprTuple:
			return name + " " + arg.String()
		case (arg.Kind == ExprCtor || arg.Kind == ExprUnctor) && arg.Left.IsUnit():
			if _, ok := arg.Nat(); !ok {
				return name + " " + arg.String()
			}
		}
		return name + " (" + e.Left.String() + ")"
	case ExprEq:
		return e.Left.operand() + " " + e.Op + " " + e.Right.operand()
	case ExprMatch:
		var b strings.Builder
		b.WriteString("match " + e.Left.String() + " with")
		for i, br := range e.Branches {
			b.WriteString(" | " + br.Pat.String() + " -> ")
			// A body ending in a match would capture the branches that follow.
			if i < len(e.Branches)-1 && br.Expr.endsInMatch() {
				b.WriteString("(" + br.Expr.String() + ")")
			} else {
				b.WriteString(br.Expr.String())
			}
		}
		return b.String()
	case ExprFix:
		return "fix (" + e.Ident + " : " + e.Type.String() + ") = " + e.Left.String()
	case ExprTuple:
		elems := make([]string, len(e.List))
		for i, f := range e.List {
			elems[i] = f.String()
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case ExprProj:
		if e.Left.Kind == ExprProj {
			return e.Left.String() + "." + strconv.Itoa(e.Index)
		}
		return e.Left.atom() + "." + strconv.Itoa(e.Index)
	}
	return "error"
}

// endsInMatch tells whether the rightmost subexpression of e, as
// printed, is an unparenthesized match.
func (e *Expr) endsInMatch() bool {
	for {
		switch e.Kind {
		case ExprMatch:
			return true
		case ExprFunc, ExprFix:
			e = e.Left
		default:
			return false
		}
	}
}

// atom renders e as an argument, parenthesizing if needed.
func (e *Expr) atom() string {
	switch e.Kind {
	case ExprVar, ExprWildcard, ExprTuple:
		return e.String()
	case ExprCtor, ExprUnctor:
		if _, ok := e.Nat(); ok || e.Left.IsUnit() {
			return e.String()
		}
	}
	return "(" + e.String() + ")"
}

// operand renders e as an operand of an equality test.
func (e *Expr) operand() string {
	switch e.Kind {
	case ExprFunc, ExprFix, ExprMatch, ExprEq:
		return "(" + e.String() + ")"
	}
	return e.String()
}

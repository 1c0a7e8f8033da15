// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package syntax

import (
	"strings"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/intern"
)

// PatKind is the kind of pattern.
type PatKind int

const (
	// PatError is an erroneous pattern
	// (e.g., uninitialized or parse error).
	PatError PatKind = iota
	// PatTuple is a tuple pattern; the empty tuple pattern matches unit.
	PatTuple
	// PatCtor matches a constructor and its argument.
	PatCtor
	// PatVar binds a variable.
	PatVar
	// PatWildcard matches anything and binds nothing.
	PatWildcard
)

// A Pat stores a pattern tree used in match branches. Patterns are
// not interned.
type Pat struct {
	Kind PatKind
	// Ident is the constructor name of a PatCtor and the variable
	// name of a PatVar.
	Ident string
	// List holds the elements of a PatTuple.
	List []*Pat
	// Arg is the argument pattern of a PatCtor.
	Arg *Pat
}

// Equal tells whether pattern p is equal to pattern q.
func (p *Pat) Equal(q *Pat) bool {
	return ComparePat(p, q) == 0
}

// ComparePat defines a total order over patterns: by kind, then by
// identifier, then by children.
func ComparePat(p, q *Pat) int {
	if p == q {
		return 0
	}
	if c := compareInt(int(p.Kind), int(q.Kind)); c != 0 {
		return c
	}
	if c := strings.Compare(p.Ident, q.Ident); c != 0 {
		return c
	}
	switch p.Kind {
	case PatCtor:
		return ComparePat(p.Arg, q.Arg)
	case PatTuple:
		for i := 0; i < len(p.List) && i < len(q.List); i++ {
			if c := ComparePat(p.List[i], q.List[i]); c != 0 {
				return c
			}
		}
		return compareInt(len(p.List), len(q.List))
	}
	return 0
}

// Debug prints the pattern's AST for debugging.
func (p *Pat) Debug() string {
	switch p.Kind {
	default:
		panic("bad pat")
	case PatVar:
		return "var(" + p.Ident + ")"
	case PatTuple:
		pats := make([]string, len(p.List))
		for i, q := range p.List {
			pats[i] = q.Debug()
		}
		return "tuple(" + strings.Join(pats, ", ") + ")"
	case PatCtor:
		return "ctor(" + p.Ident + ", " + p.Arg.Debug() + ")"
	case PatWildcard:
		return "wildcard"
	}
}

// String prints a parseable representation of the pattern.
func (p *Pat) String() string {
	switch p.Kind {
	default:
		panic("bad pat")
	case PatVar:
		return p.Ident
	case PatTuple:
		if len(p.List) == 0 {
			return "()"
		}
		pats := make([]string, len(p.List))
		for i, q := range p.List {
			pats[i] = q.String()
		}
		return "(" + strings.Join(pats, ", ") + ")"
	case PatCtor:
		// A bare constructor matches any argument.
		if p.Arg.Kind == PatWildcard {
			return p.Ident
		}
		return p.Ident + " " + p.Arg.String()
	case PatWildcard:
		return "_"
	}
}

// Idents appends the pattern's bound identifiers to the passed slice.
// Identifiers bound more than once are appended each time.
func (p *Pat) Idents(ids []string) []string {
	switch p.Kind {
	default:
		panic("bad pat")
	case PatVar:
		return append(ids, p.Ident)
	case PatTuple:
		for _, q := range p.List {
			ids = q.Idents(ids)
		}
		return ids
	case PatCtor:
		return p.Arg.Idents(ids)
	case PatWildcard:
		return ids
	}
}

// ContainsVar tells whether the pattern binds the variable id.
func (p *Pat) ContainsVar(id string) bool {
	switch p.Kind {
	case PatVar:
		return p.Ident == id
	case PatTuple:
		for _, q := range p.List {
			if q.ContainsVar(id) {
				return true
			}
		}
	case PatCtor:
		return p.Arg.ContainsVar(id)
	}
	return false
}

// key appends the pattern's structure to an interning key.
func (p *Pat) key(k *intern.Key) {
	k.Int(int64(p.Kind)).String(p.Ident)
	switch p.Kind {
	case PatCtor:
		p.Arg.key(k)
	case PatTuple:
		k.Int(int64(len(p.List)))
		for _, q := range p.List {
			q.key(k)
		}
	}
}

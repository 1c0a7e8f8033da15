// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package syntax

import (
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/types"
)

// DeclKind is the type of declaration.
type DeclKind int

const (
	// DeclError is an illegal declaration.
	DeclError DeclKind = iota
	// DeclType declares a type: type t = T
	DeclType
	// DeclExp binds an expression: let x = e;;
	DeclExp
)

// A Decl is a toplevel declaration. Declarations are visible to
// later declarations and to the specification clause.
type Decl struct {
	// Position contains the source position of the node.
	// It is set by the parser.
	Position
	// Kind is the Decl's op; see above.
	Kind DeclKind
	// Ident is the declared identifier.
	Ident string
	// Type stores the type for DeclType.
	Type *types.T
	// Expr stores the expression for DeclExp.
	Expr *Expr
}

// Equal tests whether Decl d is equivalent to Decl e. Positions are
// not compared.
func (d *Decl) Equal(e *Decl) bool {
	if d.Kind != e.Kind || d.Ident != e.Ident {
		return false
	}
	switch d.Kind {
	case DeclType:
		return d.Type.Equal(e.Type)
	case DeclExp:
		return d.Expr.Equal(e.Expr)
	}
	return true
}

// String renders a human-readable (and parseable) form of the
// declaration.
func (d *Decl) String() string {
	switch d.Kind {
	case DeclType:
		return "type " + d.Ident + " = " + d.Type.String()
	case DeclExp:
		return "let " + d.Ident + " = " + d.Expr.String() + " ;;"
	}
	return "error"
}

// Debug renders the declaration's tree.
func (d *Decl) Debug() string {
	switch d.Kind {
	case DeclType:
		return "typedecl(" + d.Ident + ", " + d.Type.String() + ")"
	case DeclExp:
		return "expdecl(" + d.Ident + ", " + d.Expr.Debug() + ")"
	}
	return "error"
}

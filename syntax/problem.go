// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package syntax

import (
	"strings"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/types"
)

// An Example is an input/output pair.
type Example struct {
	Input  []*Expr
	Output *Expr
}

// Equal tests whether examples e and f are structurally equal.
func (e *Example) Equal(f *Example) bool {
	if len(e.Input) != len(f.Input) || !e.Output.Equal(f.Output) {
		return false
	}
	for i := range e.Input {
		if !e.Input[i].Equal(f.Input[i]) {
			return false
		}
	}
	return true
}

func (e *Example) String() string {
	in := make([]string, len(e.Input))
	for i, f := range e.Input {
		in[i] = f.String()
	}
	return "[" + strings.Join(in, ", ") + "] -> " + e.Output.String()
}

// Debug renders the example's tree.
func (e *Example) Debug() string {
	in := make([]string, len(e.Input))
	for i, f := range e.Input {
		in[i] = f.Debug()
	}
	return "example([" + strings.Join(in, ", ") + "], " + e.Output.Debug() + ")"
}

// ProblemKind is the kind of a specification clause.
type ProblemKind int

const (
	// ProblemError is an illegal specification.
	ProblemError ProblemKind = iota
	// ProblemIOEs is specified by input/output examples only.
	ProblemIOEs
	// ProblemEquiv is specified by examples and a reference
	// implementation the result must be equivalent to.
	ProblemEquiv
	// ProblemPost is specified by a postcondition.
	ProblemPost
)

// A Problem is the specification clause of a synthesis problem.
type Problem struct {
	Kind ProblemKind
	// Examples holds the examples of ProblemIOEs and ProblemEquiv.
	Examples []*Example
	// Expr is the reference implementation of ProblemEquiv and the
	// postcondition of ProblemPost.
	Expr *Expr
}

// Equal tests whether problems p and q are structurally equal.
func (p *Problem) Equal(q *Problem) bool {
	if p.Kind != q.Kind || len(p.Examples) != len(q.Examples) {
		return false
	}
	for i := range p.Examples {
		if !p.Examples[i].Equal(q.Examples[i]) {
			return false
		}
	}
	if (p.Expr == nil) != (q.Expr == nil) {
		return false
	}
	return p.Expr == nil || p.Expr.Equal(q.Expr)
}

func (p *Problem) String() string {
	exs := make([]string, len(p.Examples))
	for i, e := range p.Examples {
		exs[i] = e.String()
	}
	s := strings.Join(exs, ", ")
	switch p.Kind {
	case ProblemEquiv:
		if s != "" {
			s += " "
		}
		s += "equiv " + p.Expr.String()
	case ProblemPost:
		s = p.Expr.String()
	}
	return s
}

// Debug renders the problem's tree.
func (p *Problem) Debug() string {
	exs := make([]string, len(p.Examples))
	for i, e := range p.Examples {
		exs[i] = e.Debug()
	}
	switch p.Kind {
	case ProblemIOEs:
		return "ioes([" + strings.Join(exs, ", ") + "])"
	case ProblemEquiv:
		return "equiv([" + strings.Join(exs, ", ") + "], " + p.Expr.Debug() + ")"
	case ProblemPost:
		return "post(" + p.Expr.Debug() + ")"
	}
	return "error"
}

// A SynthProblem is a parsed synthesis problem: the included files,
// the auxiliary declarations, the type of the function to synthesize,
// and its specification.
type SynthProblem struct {
	// Imports lists the paths of the include clauses, without quotes.
	Imports []string
	Decls   []*Decl
	// SynthType is the type of the function to synthesize.
	SynthType *types.T
	Spec      *Problem
}

// Equal tests whether problems p and q are structurally equal.
func (p *SynthProblem) Equal(q *SynthProblem) bool {
	if len(p.Imports) != len(q.Imports) || len(p.Decls) != len(q.Decls) {
		return false
	}
	for i := range p.Imports {
		if p.Imports[i] != q.Imports[i] {
			return false
		}
	}
	for i := range p.Decls {
		if !p.Decls[i].Equal(q.Decls[i]) {
			return false
		}
	}
	return p.SynthType.Equal(q.SynthType) && p.Spec.Equal(q.Spec)
}

// String renders the problem in parseable form, one clause per line.
func (p *SynthProblem) String() string {
	var b strings.Builder
	for _, imp := range p.Imports {
		b.WriteString("include \"" + imp + "\"\n")
	}
	for _, d := range p.Decls {
		b.WriteString(d.String() + "\n")
	}
	b.WriteString("synth " + p.SynthType.String() + " satisfying\n")
	b.WriteString(p.Spec.String())
	return b.String()
}

// Debug renders the problem's tree, one clause per line.
func (p *SynthProblem) Debug() string {
	var b strings.Builder
	for _, imp := range p.Imports {
		b.WriteString("include(" + imp + ")\n")
	}
	for _, d := range p.Decls {
		b.WriteString(d.Debug() + "\n")
	}
	b.WriteString("synth(" + p.SynthType.String() + ")\n")
	b.WriteString(p.Spec.Debug())
	return b.String()
}

// TypeEnv returns an environment binding the problem's type
// declarations. Later declarations shadow earlier ones.
func (p *SynthProblem) TypeEnv() *types.Env {
	env := types.NewEnv()
	for _, d := range p.Decls {
		if d.Kind == DeclType {
			env.Bind(d.Ident, d.Type, d.Position.String())
		}
	}
	return env
}

// Lookup returns the last declaration of id, or nil if there is none.
func (p *SynthProblem) Lookup(id string) *Decl {
	for i := len(p.Decls) - 1; i >= 0; i-- {
		if p.Decls[i].Ident == id {
			return p.Decls[i]
		}
	}
	return nil
}

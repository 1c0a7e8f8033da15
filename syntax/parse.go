// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package syntax

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/errors"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/log"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/types"
	"golang.org/x/exp/slices"
)

// ParserMode determines the parser's entry production.
type ParserMode int

const (
	// ParseProblem parses a complete synthesis problem.
	ParseProblem ParserMode = iota
	// ParseDecls parses include clauses followed by declarations, as
	// found in included files.
	ParseDecls
	// ParseExpr parses an expression.
	ParseExpr
	// ParseType parses a type.
	ParseType
)

// MaxNat is the largest integer literal accepted by the parser.
// Integer literals are expanded into Peano terms of their size.
const MaxNat = 1 << 16

// Parser is a recursive-descent parser for synthesis problems. It
// consumes tokens from a Lexer one at a time, with one token of
// lookahead and no backtracking. Types and expressions are built
// through the parser's Interner.
type Parser struct {
	// File is prefixed to parser error locations.
	File string
	// Body is the io.Reader that is parsed.
	Body io.Reader

	// Mode governs how the parser is started. See documentation above.
	// The fields Problem, Imports, Decls, Expr, and Type are set
	// depending on the parser mode.
	Mode ParserMode

	// Interner is used to construct types and expressions. If nil,
	// a fresh interner is used.
	Interner *Interner
	// Log, if not nil, receives a trace of the parser's reductions.
	Log *log.Logger

	// Problem contains the parsed problem (ParseProblem).
	Problem *SynthProblem
	// Imports contains the parsed include paths (ParseDecls).
	Imports []string
	// Decls contains the parsed declarations (ParseDecls).
	Decls []*Decl
	// Expr contains the parsed expression (ParseExpr).
	Expr *Expr
	// Type contains the parsed type (ParseType).
	Type *types.T

	lx  *Lexer
	tok Token
	// expected is the set of tokens tested since the last token was
	// consumed.
	expected []TokenKind
}

// bailout is used to unwind the parser on the first error.
type bailout struct{ err error }

// Parse parses the parser's body and reports any parsing error.
// The parse result is deposited in x.Problem, x.Decls, x.Expr or
// x.Type, depending on the parser's mode.
func (x *Parser) Parse() (err error) {
	src, err := io.ReadAll(x.Body)
	if err != nil {
		return errors.E("parse", x.File, err)
	}
	if x.Interner == nil {
		x.Interner = NewInterner()
	}
	x.lx = NewLexer(x.File, src)
	x.expected = x.expected[:0]
	defer func() {
		if e := recover(); e != nil {
			b, ok := e.(bailout)
			if !ok {
				panic(e)
			}
			err = b.err
		}
	}()
	x.next()
	switch x.Mode {
	case ParseProblem:
		x.Problem = x.problem()
	case ParseDecls:
		x.Imports = x.imports()
		x.Decls = x.decls()
	case ParseExpr:
		x.Expr = x.expr()
	case ParseType:
		x.Type = x.typ()
	}
	if !x.at(TokEOF) {
		x.fail(errors.ExtraToken)
	}
	return nil
}

// Parse parses a synthesis problem from src using a fresh interner.
func Parse(src string) (*SynthProblem, error) {
	x := &Parser{Body: bytes.NewReader([]byte(src))}
	if err := x.Parse(); err != nil {
		return nil, err
	}
	return x.Problem, nil
}

// next consumes the current token and reads the next one.
func (x *Parser) next() {
	tok, err := x.lx.Next()
	if err != nil {
		panic(bailout{err})
	}
	x.tok = tok
	x.expected = x.expected[:0]
}

// at tells whether the current token is of kind k, recording k as
// expected.
func (x *Parser) at(k TokenKind) bool {
	x.expected = append(x.expected, k)
	return x.tok.Kind == k
}

// atAny tells whether the current token is of any of the provided
// kinds, recording them as expected.
func (x *Parser) atAny(ks ...TokenKind) bool {
	x.expected = append(x.expected, ks...)
	return slices.Contains(ks, x.tok.Kind)
}

// got consumes the current token if it is of kind k.
func (x *Parser) got(k TokenKind) bool {
	if x.at(k) {
		x.next()
		return true
	}
	return false
}

// want consumes and returns the current token, which must be of
// kind k.
func (x *Parser) want(k TokenKind) Token {
	if !x.at(k) {
		x.fail(errors.UnrecognizedToken)
	}
	tok := x.tok
	x.next()
	return tok
}

// fail aborts the parse with a syntax error at the current token.
// Errors at the end of input are reported as errors.UnrecognizedEOF.
func (x *Parser) fail(kind errors.Kind) {
	if x.tok.Kind == TokEOF && kind == errors.UnrecognizedToken {
		kind = errors.UnrecognizedEOF
	}
	names := make([]string, 0, len(x.expected))
	for _, k := range x.expected {
		names = append(names, k.String())
	}
	slices.Sort(names)
	panic(bailout{&Error{
		Kind:     kind,
		Pos:      x.tok.Pos,
		End:      x.tok.End,
		Token:    x.tok.Text,
		Expected: slices.Compact(names),
	}})
}

func (x *Parser) errorf(tok Token, format string, args ...interface{}) {
	panic(bailout{&Error{
		Kind:  errors.Lex,
		Pos:   tok.Pos,
		End:   tok.End,
		Token: tok.Text,
		Msg:   fmt.Sprintf(format, args...),
	}})
}

func (x *Parser) trace(production string, v interface{ String() string }) {
	if x.Log.At(log.TraceLevel) {
		x.Log.Tracef("%s: reduce %s: %s", x.tok.Pos, production, v)
	}
}

// problem parses
//
//	Imports Decl* SYNTH Type SATISFYING Spec
func (x *Parser) problem() *SynthProblem {
	p := new(SynthProblem)
	p.Imports = x.imports()
	p.Decls = x.decls()
	x.want(TokSynth)
	p.SynthType = x.typ()
	x.want(TokSatisfying)
	p.Spec = x.spec()
	return p
}

// imports parses a contiguous prefix of include clauses.
func (x *Parser) imports() []string {
	var imports []string
	for x.got(TokInclude) {
		tok := x.want(TokString)
		imports = append(imports, tok.Text[1:len(tok.Text)-1])
	}
	return imports
}

func (x *Parser) decls() []*Decl {
	var decls []*Decl
	for {
		pos := x.tok.Pos
		switch {
		case x.got(TokType):
			d := &Decl{Position: pos, Kind: DeclType}
			d.Ident = x.want(TokLID).Text
			x.want(TokAssign)
			d.Type = x.typ()
			decls = append(decls, d)
		case x.got(TokLet):
			d := &Decl{Position: pos, Kind: DeclExp}
			d.Ident = x.want(TokLID).Text
			x.want(TokAssign)
			d.Expr = x.expr()
			x.want(TokSemiSemi)
			decls = append(decls, d)
		default:
			return decls
		}
		x.trace("decl", decls[len(decls)-1])
	}
}

// typ parses
//
//	Type := TupleT ("->" Type)?
func (x *Parser) typ() *types.T {
	t := x.tupleType()
	if x.got(TokArrow) {
		t = x.Interner.Types.Arrow(t, x.typ())
		x.trace("arrow", t)
	}
	return t
}

// tupleType parses
//
//	TupleT := BaseT ("*" BaseT)*
//
// A single element is returned as is.
func (x *Parser) tupleType() *types.T {
	elems := []*types.T{x.baseType()}
	for x.got(TokStar) {
		elems = append(elems, x.baseType())
	}
	return x.Interner.Types.Product(elems...)
}

func (x *Parser) baseType() *types.T {
	tab := x.Interner.Types
	switch {
	case x.at(TokLID):
		t := tab.Named(x.tok.Text)
		x.next()
		return t
	case x.got(TokUnit), x.got(TokUnitType):
		return tab.Unit()
	case x.got(TokLParen):
		t := x.typ()
		x.want(TokRParen)
		return t
	case x.got(TokMu):
		binder := x.want(TokLID).Text
		x.want(TokDot)
		t := tab.Mu(binder, x.typ())
		x.trace("mu", t)
		return t
	case x.at(TokBar):
		return x.variant()
	}
	x.fail(errors.UnrecognizedToken)
	panic("not reached")
}

// variant parses
//
//	Variant := ("|" UID (OF BaseT ("*" BaseT)*)?)+
//
// Constructors without arguments take the empty tuple.
func (x *Parser) variant() *types.T {
	tab := x.Interner.Types
	var ctors []*types.Field
	for x.got(TokBar) {
		f := &types.Field{Name: x.want(TokUID).Text, T: tab.Unit()}
		if x.got(TokOf) {
			elems := []*types.T{x.baseType()}
			for x.got(TokStar) {
				elems = append(elems, x.baseType())
			}
			f.T = tab.Product(elems...)
		}
		ctors = append(ctors, f)
	}
	t := tab.Variant(ctors...)
	x.trace("variant", t)
	return t
}

// expr parses
//
//	Exp := FUN "(" LID ":" Type ")" "->" Exp
//	     | FIX "(" LID ":" Type ")" "=" Exp
//	     | MATCH Exp WITH ("|" Pat "->" Exp)+
//	     | AppExp (("==" | "!=") AppExp)?
func (x *Parser) expr() *Expr {
	in := x.Interner
	var e *Expr
	switch {
	case x.got(TokFun):
		name, t := x.binder()
		x.want(TokArrow)
		e = in.Func(Param{Name: name, Type: t}, x.expr())
	case x.got(TokFix):
		name, t := x.binder()
		x.want(TokAssign)
		e = in.Fix(name, t, x.expr())
	case x.got(TokMatch):
		scrutinee := x.expr()
		x.want(TokWith)
		x.want(TokBar)
		var branches []*Branch
		for {
			p := x.pat()
			x.want(TokArrow)
			branches = append(branches, &Branch{Pat: p, Expr: x.expr()})
			if !x.got(TokBar) {
				break
			}
		}
		e = in.Match(scrutinee, branches...)
	default:
		e = x.appExpr()
		if x.atAny(TokEqEq, TokNE) {
			isEqual := x.tok.Kind == TokEqEq
			x.next()
			e = in.Eq(isEqual, e, x.appExpr())
		}
	}
	x.trace("exp", e)
	return e
}

// binder parses the parenthesized parameter of fun and fix.
func (x *Parser) binder() (string, *types.T) {
	x.want(TokLParen)
	name := x.want(TokLID).Text
	x.want(TokColon)
	t := x.typ()
	x.want(TokRParen)
	return name, t
}

var argStart = []TokenKind{TokInt, TokLID, TokUnit, TokLParen, TokUID}

// appExpr parses
//
//	AppExp := (LID Atom* | Atom) ("." INT)*
//
// Application associates to the left, and projections apply to the
// whole application: f x.0 is (f x).0.
func (x *Parser) appExpr() *Expr {
	if !x.at(TokLID) {
		return x.projections(x.atom())
	}
	e := x.Interner.Var(x.tok.Text)
	x.next()
	for x.atAny(argStart...) {
		e = x.Interner.App(e, x.atom())
		x.trace("app", e)
	}
	return x.projections(e)
}

func (x *Parser) projections(e *Expr) *Expr {
	for x.got(TokDot) {
		tok := x.want(TokInt)
		i, err := strconv.Atoi(tok.Text)
		if err != nil {
			x.errorf(tok, "projection index out of range")
		}
		e = x.Interner.Proj(i, e)
	}
	return e
}

// atom parses
//
//	Atom := INT | LID | "()" | "(" ExpList ")"
//	      | UID | UID UID | UID LID | UID "()" | UID "(" ArgList ")"
func (x *Parser) atom() *Expr {
	in := x.Interner
	switch tok := x.tok; {
	case x.at(TokInt):
		n, err := strconv.ParseUint(tok.Text, 10, 64)
		if err != nil || n > MaxNat {
			x.errorf(tok, "integer literal exceeds %d", MaxNat)
		}
		x.next()
		return in.Nat(int(n))
	case x.at(TokLID):
		x.next()
		return in.Var(tok.Text)
	case x.got(TokUnit):
		return in.Unit()
	case x.got(TokLParen):
		e := in.Product(x.exprList()...)
		x.want(TokRParen)
		return e
	case x.at(TokUID):
		x.next()
		var arg *Expr
		switch tok2 := x.tok; {
		case x.at(TokUID):
			x.next()
			arg = in.CtorByName(tok2.Text, in.Unit())
		case x.at(TokLID):
			x.next()
			arg = in.Var(tok2.Text)
		case x.got(TokLParen):
			arg = in.Product(x.argList()...)
		default:
			// A bare constructor, or one applied to "()".
			x.got(TokUnit)
			arg = in.Unit()
		}
		e := in.CtorByName(tok.Text, arg)
		x.trace("ctor", e)
		return e
	}
	x.fail(errors.UnrecognizedToken)
	panic("not reached")
}

// exprList parses
//
//	ExpList := Exp ("," Exp)*
func (x *Parser) exprList() []*Expr {
	es := []*Expr{x.expr()}
	for x.got(TokComma) {
		es = append(es, x.expr())
	}
	return es
}

// argList parses the remainder of a constructor's parenthesized
// argument list, including the closing parenthesis:
//
//	ArgList := (Exp ("," Exp)* ","?)? ")"
func (x *Parser) argList() []*Expr {
	var es []*Expr
	for !x.got(TokRParen) {
		es = append(es, x.expr())
		if !x.got(TokComma) {
			x.want(TokRParen)
			break
		}
	}
	return es
}

// pat parses
//
//	Pat := UID Pat? | "_" | LID | "()" | "(" (Pat ("," Pat)* ","?)? ")"
//
// A bare constructor pattern matches any argument.
func (x *Parser) pat() *Pat {
	switch tok := x.tok; {
	case x.at(TokUID):
		x.next()
		p := &Pat{Kind: PatCtor, Ident: tok.Text, Arg: &Pat{Kind: PatWildcard}}
		if x.atAny(TokUID, TokUnderscore, TokLID, TokUnit, TokLParen) {
			p.Arg = x.pat()
		}
		return p
	case x.got(TokUnderscore):
		return &Pat{Kind: PatWildcard}
	case x.at(TokLID):
		x.next()
		return &Pat{Kind: PatVar, Ident: tok.Text}
	case x.got(TokUnit):
		return &Pat{Kind: PatTuple}
	case x.got(TokLParen):
		var pats []*Pat
		for !x.got(TokRParen) {
			pats = append(pats, x.pat())
			if !x.got(TokComma) {
				x.want(TokRParen)
				break
			}
		}
		if len(pats) == 1 {
			return pats[0]
		}
		return &Pat{Kind: PatTuple, List: pats}
	}
	x.fail(errors.UnrecognizedToken)
	panic("not reached")
}

// spec parses
//
//	Spec := Example ("," Example)* ","? (EQUIV Exp)?
//	      | EQUIV Exp
//	      | Exp
//	      | ε
func (x *Parser) spec() *Problem {
	var exs []*Example
	if x.at(TokLBrack) {
		exs = append(exs, x.example())
		for x.got(TokComma) {
			if !x.at(TokLBrack) {
				break
			}
			exs = append(exs, x.example())
		}
	} else if !x.at(TokEquiv) && x.atAny(exprStart...) {
		return &Problem{Kind: ProblemPost, Expr: x.expr()}
	}
	if x.got(TokEquiv) {
		return &Problem{Kind: ProblemEquiv, Examples: exs, Expr: x.expr()}
	}
	return &Problem{Kind: ProblemIOEs, Examples: exs}
}

var exprStart = append([]TokenKind{TokFun, TokFix, TokMatch}, argStart...)

// example parses
//
//	Example := "[" (Exp ("," Exp)* ","?)? "]" "->" Exp
func (x *Parser) example() *Example {
	x.want(TokLBrack)
	ex := new(Example)
	if !x.got(TokRBrack) {
		ex.Input = append(ex.Input, x.expr())
		for x.got(TokComma) {
			if x.at(TokRBrack) {
				break
			}
			ex.Input = append(ex.Input, x.expr())
		}
		x.want(TokRBrack)
	}
	x.want(TokArrow)
	ex.Output = x.expr()
	x.trace("example", ex)
	return ex
}

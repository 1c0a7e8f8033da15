// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package syntax

import (
	"context"
	goerrors "errors"
	"strings"
	"sync"
	"testing"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/errors"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
)

// files is a Resolver backed by a map, counting resolutions.
type files struct {
	mu    sync.Mutex
	srcs  map[string]string
	count map[string]int
}

func newFiles(srcs map[string]string) *files {
	return &files{srcs: srcs, count: map[string]int{}}
}

func (f *files) Resolve(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count[path]++
	src, ok := f.srcs[path]
	if !ok {
		return nil, errors.E("resolve", path, errors.NotExist)
	}
	return []byte(src), nil
}

const (
	natSrc  = "type nat = mu n . | O | S of n\n"
	listSrc = `include "nat.mls"
type list = mu l . | Nil | Cons of nat * l
`
	boolSrc = `include "nat.mls"
type bool = | True | False
let is_zero = fun (n : nat) -> match n with | O -> True | S _ -> False;;
`
)

func declNames(p *SynthProblem) []string {
	var names []string
	for _, d := range p.Decls {
		names = append(names, d.Ident)
	}
	return names
}

func TestSessionOpen(t *testing.T) {
	fs := newFiles(map[string]string{
		"nat.mls":  natSrc,
		"list.mls": listSrc,
		"bool.mls": boolSrc,
		"len.mls": `include "list.mls"
include "bool.mls"
let zero = 0;;
synth list -> nat satisfying [Nil] -> 0`,
	})
	s := NewSession(fs)
	ctx := context.Background()
	p, err := s.Open(ctx, "len.mls")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"list.mls", "bool.mls"}, p.Imports); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}
	// nat.mls is included twice but spliced once.
	if diff := cmp.Diff([]string{"nat", "list", "bool", "is_zero", "zero"}, declNames(p)); diff != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", diff)
	}
	if got, want := p.Decls[0].Position.Filename, "nat.mls"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	// Declarations are built by the session's interner.
	nat := p.Lookup("nat").Type
	cons := p.Lookup("list").Type.Elem.Fields[1].T
	if got := cons.Fields[0].T; got != s.Interner.Types.Named("nat") {
		t.Errorf("got %v, want interned nat", got)
	}
	if nat != s.Interner.Types.Intern(nat) {
		t.Error("declared type is not canonical")
	}

	// Includes are resolved and parsed once per session.
	if _, err := s.Open(ctx, "len.mls"); err != nil {
		t.Fatal(err)
	}
	if got, want := fs.count["nat.mls"], 1; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := fs.count["len.mls"], 2; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSessionParse(t *testing.T) {
	s := NewSession(newFiles(nil))
	p, err := s.Parse("p.mls", []byte(`include "nat.mls" synth nat -> nat satisfying`))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(p.Decls), 0; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if diff := cmp.Diff([]string{"nat.mls"}, p.Imports); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionIncludeCycle(t *testing.T) {
	s := NewSession(newFiles(map[string]string{
		"a.mls": `include "b.mls" synth nat satisfying`,
		"b.mls": `include "a.mls" type nat = | O`,
	}))
	_, err := s.Open(context.Background(), "a.mls")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(errors.Invalid, err) {
		t.Errorf("got %v, want %v", err, errors.Invalid)
	}
	if got, want := err.Error(), "a.mls -> b.mls -> a.mls"; !strings.Contains(got, want) {
		t.Errorf("error %q does not name cycle %q", got, want)
	}
	// A file including itself.
	s = NewSession(newFiles(map[string]string{
		"self.mls": `include "self.mls" synth nat satisfying`,
	}))
	if _, err := s.Open(context.Background(), "self.mls"); !errors.Is(errors.Invalid, err) {
		t.Errorf("got %v, want %v", err, errors.Invalid)
	}
}

func TestSessionIncludeErrors(t *testing.T) {
	s := NewSession(newFiles(map[string]string{
		"missing.mls": `include "nope.mls" synth nat satisfying`,
		"bad.mls":     `include "broken.mls" synth nat satisfying`,
		"broken.mls":  "type nat = | O | S of",
	}))
	ctx := context.Background()
	_, err := s.Open(ctx, "missing.mls")
	if !errors.Is(errors.NotExist, err) {
		t.Errorf("got %v, want %v", err, errors.NotExist)
	}
	if got, want := err.Error(), "nope.mls"; !strings.Contains(got, want) {
		t.Errorf("error %q does not mention %q", got, want)
	}
	_, err = s.Open(ctx, "bad.mls")
	if !errors.Is(errors.UnrecognizedEOF, err) {
		t.Errorf("got %v, want %v", err, errors.UnrecognizedEOF)
	}
	var serr *Error
	if !goerrors.As(err, &serr) {
		t.Fatalf("%v is not a syntax error", err)
	}
	if got, want := serr.Pos.Filename, "broken.mls"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, err := s.Open(ctx, "nonexistent.mls"); !errors.Is(errors.NotExist, err) {
		t.Errorf("got %v, want %v", err, errors.NotExist)
	}
}

// cancelable is a resolver that fails to resolve the paths in
// slow once its context is done.
type cancelable struct {
	*files
	slow map[string]bool
}

func (c cancelable) Resolve(ctx context.Context, path string) ([]byte, error) {
	if c.slow[path] && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return c.files.Resolve(ctx, path)
}

func TestSessionIncludeCanceled(t *testing.T) {
	f := newFiles(map[string]string{
		"nat.mls":    natSrc,
		"zero.mls":   `include "nat.mls" synth nat satisfying [] -> 0`,
		"broken.mls": "type nat = | O | S of",
		"bad.mls":    `include "broken.mls" synth nat satisfying`,
	})
	s := NewSession(cancelable{f, map[string]bool{"nat.mls": true}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Open(ctx, "zero.mls"); !errors.Is(errors.Canceled, err) {
		t.Fatalf("got %v, want %v", err, errors.Canceled)
	}
	p, err := s.Open(context.Background(), "zero.mls")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(p.Decls), 1; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := f.count["nat.mls"], 1; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// Other failures are retained for the session.
	for i := 0; i < 2; i++ {
		if _, err := s.Open(context.Background(), "bad.mls"); !errors.Is(errors.UnrecognizedEOF, err) {
			t.Errorf("got %v, want %v", err, errors.UnrecognizedEOF)
		}
	}
	if got, want := f.count["broken.mls"], 1; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSessionOpenAll(t *testing.T) {
	s := NewSession(newFiles(map[string]string{
		"nat.mls":  natSrc,
		"list.mls": listSrc,
		"a.mls":    `include "list.mls" synth list -> nat satisfying [Nil] -> 0`,
		"b.mls":    `include "nat.mls" synth nat -> nat satisfying equiv fun (n : nat) -> n`,
		"c.mls":    `synth nat satisfying [] -> S`,
		"d.mls":    `include "list.mls" synth list satisfying [] -> Cons (1, Nil)`,
	}))
	s.Parallelism = 2
	paths := []string{"a.mls", "b.mls", "c.mls", "d.mls", "e.mls"}
	problems, err := s.OpenAll(context.Background(), paths)
	if got, want := len(multierr.Errors(err)), 1; got != want {
		t.Fatalf("got %v errors (%v), want %v", got, err, want)
	}
	if !errors.Is(errors.NotExist, multierr.Errors(err)[0]) {
		t.Errorf("got %v, want %v", err, errors.NotExist)
	}
	for i, p := range problems {
		if (p == nil) != (paths[i] == "e.mls") {
			t.Errorf("%s: got %v", paths[i], p)
		}
	}
	// Problems share the session's interner.
	nat := s.Interner.Types.Named("nat")
	if got := problems[1].SynthType.Arg; got != nat {
		t.Errorf("got %v, want interned nat", got)
	}
	if got := problems[0].Decls[0].Type; got != problems[1].Decls[0].Type {
		t.Errorf("got %v, want shared declaration type", got)
	}
	if got, want := problems[3].Spec.Examples[0].Output.Left.List[0], s.Interner.Nat(1); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package include_test

import (
	"context"
	"testing"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/errors"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/include"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/syntax"
	"github.com/stretchr/testify/require"
)

// failing is a resolver that fails every resolution with err.
type failing struct{ err error }

func (f failing) Resolve(ctx context.Context, path string) ([]byte, error) {
	return nil, f.err
}

func TestMap(t *testing.T) {
	ctx := context.Background()
	m := include.Map{"nat.mls": []byte("type nat = | O | S of nat")}
	b, err := m.Resolve(ctx, "nat.mls")
	require.NoError(t, err)
	if got, want := string(b), "type nat = | O | S of nat"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if _, err := m.Resolve(ctx, "list.mls"); !errors.Is(errors.NotExist, err) {
		t.Errorf("got %v, want %v", err, errors.NotExist)
	}
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	c := include.Chain{
		include.Map{"a.mls": []byte("a")},
		include.Map{"a.mls": []byte("shadowed"), "b.mls": []byte("b")},
	}
	for _, path := range []string{"a.mls", "b.mls"} {
		b, err := c.Resolve(ctx, path)
		require.NoError(t, err)
		if got, want := string(b), path[:1]; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
	if _, err := c.Resolve(ctx, "c.mls"); !errors.Is(errors.NotExist, err) {
		t.Errorf("got %v, want %v", err, errors.NotExist)
	}
	// Failures other than missing files stop the search.
	c = include.Chain{
		failing{errors.E("resolve", "a.mls", errors.NotAllowed)},
		include.Map{"a.mls": []byte("a")},
	}
	if _, err := c.Resolve(ctx, "a.mls"); !errors.Is(errors.NotAllowed, err) {
		t.Errorf("got %v, want %v", err, errors.NotAllowed)
	}
}

func TestSessionIncludes(t *testing.T) {
	s := syntax.NewSession(include.Chain{
		include.Map{"p.mls": []byte(`include "nat.mls" synth nat -> nat satisfying [0] -> 1`)},
		include.Map{"nat.mls": []byte("type nat = mu n . | O | S of n")},
	})
	p, err := s.Open(context.Background(), "p.mls")
	require.NoError(t, err)
	if got, want := len(p.Decls), 1; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got, want := p.Decls[0].String(), "type nat = mu n . | O | S of n"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

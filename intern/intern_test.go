// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package intern

import (
	"sync"
	"testing"
)

type node struct {
	name string
	seq  int
}

func TestKeyDistinguishes(t *testing.T) {
	keys := map[string]*Key{
		"ab|c":   NewKey(1).String("ab").String("c"),
		"a|bc":   NewKey(1).String("a").String("bc"),
		"tag2":   NewKey(2).String("ab").String("c"),
		"int":    NewKey(1).Int(3),
		"bool":   NewKey(1).Bool(true),
		"neg":    NewKey(1).Int(-3),
		"nested": NewKey(1).Digest(NewKey(1).String("ab").Sum()),
	}
	seen := map[string]string{}
	for name, k := range keys {
		d := k.Sum().String()
		if other, ok := seen[d]; ok {
			t.Errorf("keys %s and %s collide", name, other)
		}
		seen[d] = name
	}
	if NewKey(1).String("x").Sum() != NewKey(1).String("x").Sum() {
		t.Error("equal keys produced different digests")
	}
}

func TestTable(t *testing.T) {
	var tab Table[*node]
	mk := func(name string) *node {
		return tab.Intern(NewKey(0).String(name).Sum(), func(seq int) *node {
			return &node{name: name, seq: seq}
		})
	}
	a1, b, a2 := mk("a"), mk("b"), mk("a")
	if a1 != a2 {
		t.Error("equal nodes were not shared")
	}
	if a1 == b {
		t.Error("distinct nodes were shared")
	}
	if got, want := b.seq, 1; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := tab.Stats(), (Stats{Nodes: 2, Hits: 1}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if n, ok := tab.Lookup(NewKey(0).String("b").Sum()); !ok || n != b {
		t.Errorf("lookup: got %v, %v", n, ok)
	}
	if _, ok := tab.Lookup(NewKey(0).String("c").Sum()); ok {
		t.Error("unexpected node c")
	}
}

func TestTableConcurrent(t *testing.T) {
	var (
		tab   Table[*node]
		wg    sync.WaitGroup
		nodes = make([]*node, 64)
	)
	d := NewKey(0).String("shared").Sum()
	for i := range nodes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			nodes[i] = tab.Intern(d, func(seq int) *node { return &node{name: "shared", seq: seq} })
		}(i)
	}
	wg.Wait()
	for _, n := range nodes {
		if n != nodes[0] {
			t.Fatal("concurrent interning produced duplicate handles")
		}
	}
	if got, want := tab.Stats(), (Stats{Nodes: 1, Hits: len(nodes) - 1}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

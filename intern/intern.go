// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package intern implements hash-consing: constructing values through
// a canonicalizing table so that all structurally equal values share
// one representative, and structural equality becomes pointer
// equality.
//
// Structural identity is a digest (see Key) computed from a node's
// tag, its scalar fields and the digests of its (already canonical)
// children. A Table maps each digest to the first node registered
// for it. Tables are safe for concurrent use: the lookup-or-insert
// of Intern is performed under a single lock, so two goroutines
// interning equal nodes always observe the same representative.
package intern

import (
	"crypto"
	_ "crypto/sha256"
	"encoding/binary"
	"io"
	"sync"

	"github.com/grailbio/base/digest"
)

// Digester is the digester used to compute structural keys.
var Digester = digest.Digester(crypto.SHA256)

// Key accumulates the structural description of a node. The zero Key
// is not usable; keys are created with NewKey.
type Key struct {
	w   digest.Writer
	buf [binary.MaxVarintLen64]byte
}

// NewKey returns a key for a node with the provided tag. Tags
// distinguish node variants; they must be unique within a table.
func NewKey(tag byte) *Key {
	k := &Key{w: Digester.NewWriter()}
	k.w.Write([]byte{tag})
	return k
}

// Int appends an integer to the key.
func (k *Key) Int(n int64) *Key {
	i := binary.PutVarint(k.buf[:], n)
	k.w.Write(k.buf[:i])
	return k
}

// Bool appends a boolean to the key.
func (k *Key) Bool(b bool) *Key {
	if b {
		return k.Int(1)
	}
	return k.Int(0)
}

// String appends a length-prefixed string to the key, so that
// adjacent strings cannot be confused with one another.
func (k *Key) String(s string) *Key {
	k.Int(int64(len(s)))
	io.WriteString(k.w, s)
	return k
}

// Digest appends a child's digest to the key.
func (k *Key) Digest(d digest.Digest) *Key {
	digest.WriteDigest(k.w, d)
	return k
}

// Sum returns the key's digest.
func (k *Key) Sum() digest.Digest {
	return k.w.Digest()
}

// Stats holds the counters of a Table.
type Stats struct {
	// Nodes is the number of distinct nodes in the table.
	Nodes int
	// Hits is the number of Intern calls that returned an existing
	// node.
	Hits int
}

// A Table is a hash-consing table of nodes of type N, usually a
// pointer type. The zero Table is ready to use.
type Table[N any] struct {
	mu    sync.Mutex
	nodes map[digest.Digest]N
	hits  int
}

// Intern returns the node registered for key d. If there is none,
// mk is called with the node's sequence number (the number of nodes
// registered before it) and its result is registered and returned.
// Mk is called with the table's lock held and must not call back into
// the table.
func (t *Table[N]) Intern(d digest.Digest, mk func(seq int) N) N {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n, ok := t.nodes[d]; ok {
		t.hits++
		return n
	}
	if t.nodes == nil {
		t.nodes = make(map[digest.Digest]N)
	}
	n := mk(len(t.nodes))
	t.nodes[d] = n
	return n
}

// Lookup returns the node registered for key d, if any.
func (t *Table[N]) Lookup(d digest.Digest) (N, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.nodes[d]
	return n, ok
}

// Stats returns the table's current counters.
func (t *Table[N]) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Stats{Nodes: len(t.nodes), Hits: t.hits}
}

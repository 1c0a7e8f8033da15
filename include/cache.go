// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package include

import (
	"context"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/syntax"
	lru "github.com/hashicorp/golang-lru"
)

// Cache memoizes the files resolved by an underlying resolver,
// retaining the most recently used ones. Failures are not cached.
// Cache is safe for concurrent use.
type Cache struct {
	syntax.Resolver
	lru *lru.Cache
}

// NewCache returns a resolver that caches up to size files resolved
// by r.
func NewCache(r syntax.Resolver, size int) (*Cache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{Resolver: r, lru: c}, nil
}

// Resolve returns the cached contents of path, resolving them
// through the underlying resolver on a miss.
func (c *Cache) Resolve(ctx context.Context, path string) ([]byte, error) {
	if v, ok := c.lru.Get(path); ok {
		return v.([]byte), nil
	}
	b, err := c.Resolver.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}
	c.lru.Add(path, b)
	return b, nil
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	return c.lru.Len()
}

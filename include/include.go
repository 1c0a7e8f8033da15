// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package include implements resolvers for the files named by
// include clauses. Resolvers retrieve file contents from local
// search paths (Dir), from S3 (S3), or from memory (Map); they may
// be composed with Chain and memoized with Cache. All resolvers
// report missing files as errors of kind errors.NotExist.
package include

import (
	"context"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/errors"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/syntax"
)

// Map is a resolver backed by an in-memory set of files, keyed by path.
type Map map[string][]byte

// Resolve returns the contents of the file at path.
func (m Map) Resolve(ctx context.Context, path string) ([]byte, error) {
	b, ok := m[path]
	if !ok {
		return nil, errors.E("resolve", path, errors.NotExist)
	}
	return b, nil
}

// Chain is a resolver that consults its resolvers in order. A file
// is resolved by the first resolver that has it; errors other than
// errors.NotExist are returned immediately.
type Chain []syntax.Resolver

// Resolve returns the contents of the file at path from the first
// resolver in the chain that has it.
func (c Chain) Resolve(ctx context.Context, path string) ([]byte, error) {
	for _, r := range c {
		b, err := r.Resolve(ctx, path)
		if err == nil {
			return b, nil
		}
		if !errors.Is(errors.NotExist, err) {
			return nil, err
		}
	}
	return nil, errors.E("resolve", path, errors.NotExist)
}

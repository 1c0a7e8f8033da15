// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package syntax

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/errors"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/log"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// A Resolver provides the text of included files. The parser itself
// never accesses files; see package include for implementations.
type Resolver interface {
	// Resolve returns the contents of the file named by path.
	Resolve(ctx context.Context, path string) ([]byte, error)
}

// A Session is a parsing session. It owns the interner shared by all
// problems it parses, and splices included declarations into them.
// Sessions are safe for concurrent use.
type Session struct {
	// Interner constructs all types and expressions of the session.
	Interner *Interner
	// Resolver resolves the session's files and includes.
	Resolver Resolver
	// Log receives the session's diagnostic output.
	Log *log.Logger
	// Parallelism bounds the number of files parsed concurrently by
	// OpenAll. If zero, files are parsed one at a time.
	Parallelism int

	mu sync.Mutex
	// includes caches the declarations of included files, keyed by path.
	includes map[string]*included
}

type included struct {
	once    sync.Once
	imports []string
	decls   []*Decl
	err     error
}

// NewSession creates and initializes a session that resolves files
// through the provided resolver.
func NewSession(resolver Resolver) *Session {
	return &Session{
		Interner: NewInterner(),
		Resolver: resolver,
		includes: map[string]*included{},
	}
}

// Parse parses the problem src from the named file. Its includes are
// not resolved.
func (s *Session) Parse(file string, src []byte) (*SynthProblem, error) {
	x := &Parser{
		File:     file,
		Body:     bytes.NewReader(src),
		Mode:     ParseProblem,
		Interner: s.Interner,
		Log:      s.Log,
	}
	if err := x.Parse(); err != nil {
		return nil, err
	}
	return x.Problem, nil
}

// Open resolves, parses and returns the problem at the given path.
// The declarations of included files, and of the files they include
// in turn, are spliced before the problem's own declarations, in
// include order. Each included file contributes its declarations
// once. Include cycles are errors of kind errors.Invalid.
func (s *Session) Open(ctx context.Context, path string) (*SynthProblem, error) {
	s.Log.Debugf("open %s", path)
	src, err := s.Resolver.Resolve(ctx, path)
	if err != nil {
		return nil, errors.E("open", path, err)
	}
	p, err := s.Parse(path, src)
	if err != nil {
		return nil, errors.E("open", path, err)
	}
	var (
		decls []*Decl
		seen  = map[string]bool{}
	)
	if err := s.splice(ctx, p.Imports, []string{path}, seen, &decls); err != nil {
		return nil, errors.E("open", path, err)
	}
	p.Decls = append(decls, p.Decls...)
	if s.Log.At(log.DebugLevel) {
		stats := s.Interner.Stats()
		s.Log.Debugf("%s: %d decls; interned %d types (%d hits), %d exprs (%d hits)",
			path, len(p.Decls), stats.Types.Nodes, stats.Types.Hits, stats.Exprs.Nodes, stats.Exprs.Hits)
	}
	return p, nil
}

// splice appends to decls the declarations of the provided imports,
// each preceded by those of its own imports. Stack holds the chain of
// files being included, for cycle detection.
func (s *Session) splice(ctx context.Context, imports, stack []string, seen map[string]bool, decls *[]*Decl) error {
	for _, path := range imports {
		for i, p := range stack {
			if p == path {
				cycle := append(stack[i:len(stack):len(stack)], path)
				return errors.E("include", path, errors.Invalid,
					errors.Errorf("include cycle: %s", strings.Join(cycle, " -> ")))
			}
		}
		if seen[path] {
			continue
		}
		seen[path] = true
		inc := s.include(ctx, path)
		if inc.err != nil {
			return inc.err
		}
		if err := s.splice(ctx, inc.imports, append(stack[:len(stack):len(stack)], path), seen, decls); err != nil {
			return err
		}
		*decls = append(*decls, inc.decls...)
	}
	return nil
}

// include returns the parsed include file at path, parsing it at
// most once per session. Failures due to cancellation are not
// retained.
func (s *Session) include(ctx context.Context, path string) *included {
	s.mu.Lock()
	if s.includes == nil {
		s.includes = map[string]*included{}
	}
	inc := s.includes[path]
	if inc == nil {
		inc = new(included)
		s.includes[path] = inc
	}
	s.mu.Unlock()
	inc.once.Do(func() {
		s.Log.Debugf("include %s", path)
		src, err := s.Resolver.Resolve(ctx, path)
		if err != nil {
			inc.err = errors.E("include", path, err)
			return
		}
		x := &Parser{
			File:     path,
			Body:     bytes.NewReader(src),
			Mode:     ParseDecls,
			Interner: s.Interner,
			Log:      s.Log,
		}
		if err := x.Parse(); err != nil {
			inc.err = errors.E("include", path, err)
			return
		}
		inc.imports, inc.decls = x.Imports, x.Decls
	})
	// Canceled resolutions are retried by later opens.
	if inc.err != nil && (errors.Is(errors.Canceled, inc.err) || ctx.Err() != nil) {
		s.mu.Lock()
		if s.includes[path] == inc {
			delete(s.includes, path)
		}
		s.mu.Unlock()
	}
	return inc
}

// OpenAll opens the problems at the provided paths concurrently,
// sharing the session's interner. Problems are returned in the order
// of paths. Failures are collected across all files and returned
// together; the problems that were opened successfully are returned
// regardless. If ctx is canceled, no further files are opened.
func (s *Session) OpenAll(ctx context.Context, paths []string) ([]*SynthProblem, error) {
	n := s.Parallelism
	if n <= 0 {
		n = 1
	}
	var (
		problems = make([]*SynthProblem, len(paths))
		errs     = make([]error, len(paths))
		sem      = semaphore.NewWeighted(int64(n))
		g        errgroup.Group
	)
	for i, path := range paths {
		if err := sem.Acquire(ctx, 1); err != nil {
			errs[i] = errors.E("open", path, errors.Canceled, err)
			continue
		}
		i, path := i, path
		g.Go(func() error {
			defer sem.Release(1)
			problems[i], errs[i] = s.Open(ctx, path)
			return nil
		})
	}
	_ = g.Wait()
	return problems, multierr.Combine(errs...)
}

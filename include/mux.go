// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package include

import (
	"context"
	"net/url"
	"strings"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/errors"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/log"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/syntax"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// Func is an adapter to allow the use of ordinary functions as a
// resolver.
type Func func(ctx context.Context, path string) ([]byte, error)

// Resolve implements syntax.Resolver.
func (f Func) Resolve(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// Mux is a multiplexing resolver. Keys in the underlying map are
// URL schemes, each mapping to a resolver. Paths of the form
// "scheme://..." are passed whole to the resolver for their scheme;
// plain paths are resolved by the resolver keyed by "".
type Mux map[string]syntax.Resolver

// HandleFunc adds the provided function as a handler for the given scheme.
func (m Mux) HandleFunc(scheme string, r func(ctx context.Context, path string) ([]byte, error)) {
	m[scheme] = Func(r)
}

// Resolve implements syntax.Resolver.
func (m Mux) Resolve(ctx context.Context, path string) ([]byte, error) {
	r := m[scheme(path)]
	if r == nil {
		return nil, errors.E("resolve", path, errors.NotSupported)
	}
	return r.Resolve(ctx, path)
}

func scheme(path string) string {
	i := strings.Index(path, "://")
	if i <= 0 || strings.ContainsAny(path[:i], "/.") {
		return ""
	}
	return path[:i]
}

// S3URLs returns a resolver for absolute S3 URLs of the form
// s3://bucket/key, for use as the "s3" handler of a Mux.
func S3URLs(client s3iface.S3API, log *log.Logger) Func {
	return func(ctx context.Context, path string) ([]byte, error) {
		u, err := url.Parse(path)
		if err != nil {
			return nil, errors.E("resolve", path, errors.Invalid, err)
		}
		if u.Scheme != "s3" || u.Host == "" {
			return nil, errors.E("resolve", path, errors.Invalid, errors.Errorf("not an s3 URL"))
		}
		r := &S3{Client: client, Bucket: u.Host, Log: log}
		return r.Resolve(ctx, strings.TrimPrefix(u.Path, "/"))
	}
}

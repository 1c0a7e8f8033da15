// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strconv"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/include"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/syntax"
)

const defaultCacheSize = 128

func init() {
	Register(Cache, "lru", "size", "memoize up to size resolved include files",
		func(cfg Config, arg string) (Config, error) {
			size := defaultCacheSize
			if arg != "" {
				var err error
				if size, err = strconv.Atoi(arg); err != nil || size <= 0 {
					return nil, fmt.Errorf("invalid cache size %q", arg)
				}
			}
			return &lruCache{cfg, size}, nil
		},
	)
	Register(Cache, "off", "", "turn include caching off",
		func(cfg Config, arg string) (Config, error) {
			return cfg, nil
		},
	)
}

type lruCache struct {
	Config
	size int
}

func (c *lruCache) Resolver() (syntax.Resolver, error) {
	r, err := c.Config.Resolver()
	if err != nil {
		return nil, err
	}
	cache, err := include.NewCache(r, c.size)
	if err != nil {
		return nil, err
	}
	return cache, nil
}

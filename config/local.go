// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package config

import (
	"path/filepath"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/include"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/syntax"
)

func init() {
	Register(Include, "dir", "path", "resolve includes from a list of local directories",
		func(cfg Config, arg string) (Config, error) {
			if arg == "" {
				return nil, errNoArg
			}
			return &localDirs{cfg, filepath.SplitList(arg)}, nil
		},
	)
}

type localDirs struct {
	Config
	dirs []string
}

func (c *localDirs) Resolver() (syntax.Resolver, error) {
	return include.Dir(c.dirs), nil
}

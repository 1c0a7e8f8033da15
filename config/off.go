// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package config

import (
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/log"
)

func init() {
	Register(Logger, "off", "", "turn logging off",
		func(cfg Config, arg string) (Config, error) {
			return &logOff{cfg}, nil
		},
	)
}

type logOff struct {
	Config
}

func (c *logOff) Logger() (*log.Logger, error) {
	// A nil logger discards all messages.
	return nil, nil
}

// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package config

import (
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/log"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/syntax"
	"github.com/grailbio/base/sync/once"
)

// OnceConfig memoizes the first call of the following methods to the
// underlying config: Logger and Resolver. Memoizing the resolver
// lets every session made from the configuration share one include
// cache.
type OnceConfig struct {
	Config

	loggerOnce once.Task
	logger     *log.Logger

	resolverOnce once.Task
	resolver     syntax.Resolver
}

// Once constructs a new OnceConfig using the provided
// underlying configuration.
func Once(cfg Config) *OnceConfig {
	return &OnceConfig{Config: cfg}
}

// Logger returns the result of the first call to the underlying
// configuration's Logger.
func (o *OnceConfig) Logger() (*log.Logger, error) {
	err := o.loggerOnce.Do(func() (err error) {
		o.logger, err = o.Config.Logger()
		return
	})
	return o.logger, err
}

// Resolver returns the result of the first call to the underlying
// configuration's Resolver.
func (o *OnceConfig) Resolver() (syntax.Resolver, error) {
	err := o.resolverOnce.Do(func() (err error) {
		o.resolver, err = o.Config.Resolver()
		return
	})
	return o.resolver, err
}

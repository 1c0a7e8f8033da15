// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package config

import (
	"fmt"

	"gopkg.in/urfave/cli.v1"
)

// Flag exposes command line flags that override a set of config keys.
type Flag struct {
	Config

	ctx *cli.Context
}

// Flags returns a flag for each key in AllKeys, and for the
// parallelism key.
func Flags() []cli.Flag {
	var flags []cli.Flag
	for _, key := range AllKeys {
		flags = append(flags, cli.StringFlag{
			Name:  key,
			Usage: fmt.Sprintf("override %s from config", key),
		})
	}
	return append(flags, cli.IntFlag{
		Name:  Parallelism,
		Usage: "override parallelism from config",
	})
}

// NewFlag returns a configuration in which the flags set in ctx
// (as defined by Flags) override the keys of cfg.
func NewFlag(cfg Config, ctx *cli.Context) *Flag {
	return &Flag{Config: cfg, ctx: ctx}
}

// Value returns the flag override value for key key, or else the
// value from the layered configuration.
func (f *Flag) Value(key string) interface{} {
	if f.ctx.GlobalIsSet(key) {
		if key == Parallelism {
			return f.ctx.GlobalInt(key)
		}
		return f.ctx.GlobalString(key)
	}
	return f.Config.Value(key)
}

// Parallelism returns the overridden parallelism, if any.
func (f *Flag) Parallelism() (int, error) {
	if f.ctx.GlobalIsSet(Parallelism) {
		n := f.ctx.GlobalInt(Parallelism)
		if n <= 0 {
			return 0, fmt.Errorf("invalid parallelism value: %d", n)
		}
		return n, nil
	}
	return f.Config.Parallelism()
}

// Marshal marshals the layered configuration into keys, with the
// flag overrides applied.
func (f *Flag) Marshal(keys Keys) error {
	if err := f.Config.Marshal(keys); err != nil {
		return err
	}
	for _, key := range AllKeys {
		if f.ctx.GlobalIsSet(key) {
			keys[key] = f.Value(key)
		}
	}
	if f.ctx.GlobalIsSet(Parallelism) {
		keys[Parallelism] = f.Value(Parallelism)
	}
	return nil
}

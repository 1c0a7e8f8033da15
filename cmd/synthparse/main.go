// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Command synthparse parses program synthesis problems and prints
// them, either in surface syntax or (with -debug) as syntax trees.
//
//	synthparse [flags] file...
//	synthparse expr [-type] text...
//	synthparse config
//
// Includes are resolved as configured by the YAML file named by
// -config (by default $HOME/.synthparse/config.yaml, if it exists);
// see package config for the available keys.
package main

import (
	"io/ioutil"
	"os"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/config"
	_ "github.com/Pat-Lafon-Synthesis/program-synthesis-parser/config/all"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/log"
	"gopkg.in/urfave/cli.v1"
)

const version = "0.1.0"

var (
	configFile = os.ExpandEnv("$HOME/.synthparse/config.yaml")

	configFlag = cli.StringFlag{
		Name:  "config",
		Value: configFile,
		Usage: "YAML configuration file",
	}
	debugFlag = cli.BoolFlag{
		Name:  "debug",
		Usage: "print syntax trees instead of surface syntax",
	}
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("synthparse: %v", err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "synthparse"
	app.Usage = "parse program synthesis problems"
	app.Version = version
	app.ErrWriter = os.Stderr
	app.ArgsUsage = "file..."
	app.Flags = append([]cli.Flag{configFlag, debugFlag}, config.Flags()...)
	app.Action = parseFiles
	app.Commands = []cli.Command{
		{
			Name:      "expr",
			Usage:     "parse expressions (or types) given on the command line",
			ArgsUsage: "text...",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "type", Usage: "parse types instead of expressions"},
			},
			Action: parseExprs,
		},
		{
			Name:   "config",
			Usage:  "print the current configuration and the available providers",
			Action: dumpConfig,
		},
	}
	return app
}

// makeConfig loads the configuration file named by the -config flag,
// applies flag overrides, and provisions the result.
func makeConfig(ctx *cli.Context) (config.Config, error) {
	var cfg config.Config = make(config.Base)
	file := ctx.GlobalString(configFlag.Name)
	if _, err := os.Stat(file); file != "" && (err == nil || ctx.GlobalIsSet(configFlag.Name)) {
		var err error
		if cfg, err = readConfig(file); err != nil {
			return nil, err
		}
	}
	// Cache includes by default; sessions in this process share the
	// memoized resolver.
	cfg = &config.KeyConfig{Config: cfg, Key: config.Cache, Val: "lru"}
	cfg, err := config.Make(config.NewFlag(cfg, ctx))
	if err != nil {
		return nil, err
	}
	return config.Once(cfg), nil
}

func readConfig(file string) (config.Config, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	base := make(config.Base)
	if err := config.Unmarshal(b, config.Keys(base)); err != nil {
		return nil, err
	}
	return base, nil
}

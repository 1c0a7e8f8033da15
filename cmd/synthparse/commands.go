// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/config"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/syntax"
	"go.uber.org/multierr"
	"gopkg.in/urfave/cli.v1"
)

// parseFiles opens every file named on the command line in one
// session and prints the parsed problems in order. Failures are
// reported with source diagnostics once all files have been parsed.
func parseFiles(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		return cli.ShowAppHelp(ctx)
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	resolver, err := cfg.Resolver()
	if err != nil {
		return err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	parallelism, err := cfg.Parallelism()
	if err != nil {
		return err
	}
	sess := syntax.NewSession(resolver)
	sess.Log = logger
	sess.Parallelism = parallelism

	bg := context.Background()
	problems, err := sess.OpenAll(bg, ctx.Args())
	for i, p := range problems {
		if p == nil {
			continue
		}
		if len(problems) > 1 {
			fmt.Fprintf(ctx.App.Writer, "%s:\n", ctx.Args()[i])
		}
		if ctx.GlobalBool(debugFlag.Name) {
			fmt.Fprintln(ctx.App.Writer, p.Debug())
		} else {
			fmt.Fprintln(ctx.App.Writer, p)
		}
	}
	if err == nil {
		return nil
	}
	errs := multierr.Errors(err)
	for _, err := range errs {
		diagnose(bg, ctx.App.ErrWriter, resolver, err)
	}
	return fmt.Errorf("%d of %d files failed to parse", len(errs), len(problems))
}

// parseExprs parses each argument as an expression (or type) in a
// shared interner, printing its tree, surface syntax and handle.
func parseExprs(ctx *cli.Context) error {
	mode := syntax.ParseExpr
	if ctx.Bool("type") {
		mode = syntax.ParseType
	}
	in := syntax.NewInterner()
	var failed int
	for i, arg := range ctx.Args() {
		x := &syntax.Parser{
			File:     fmt.Sprintf("<arg %d>", i+1),
			Body:     strings.NewReader(arg),
			Mode:     mode,
			Interner: in,
		}
		if err := x.Parse(); err != nil {
			writeDiagnostic(ctx.App.ErrWriter, err, []byte(arg))
			failed++
			continue
		}
		switch mode {
		case syntax.ParseExpr:
			fmt.Fprintf(ctx.App.Writer, "#%d %s\n\t%s\n", x.Expr.ID(), x.Expr.Debug(), x.Expr)
		case syntax.ParseType:
			fmt.Fprintf(ctx.App.Writer, "#%d %s\n", x.Type.ID(), x.Type)
		}
	}
	stats := in.Stats()
	fmt.Fprintf(ctx.App.Writer, "interned %d types (%d hits), %d exprs (%d hits)\n",
		stats.Types.Nodes, stats.Types.Hits, stats.Exprs.Nodes, stats.Exprs.Hits)
	if failed > 0 {
		return fmt.Errorf("%d arguments failed to parse", failed)
	}
	return nil
}

// dumpConfig prints the provisioned configuration as YAML, followed
// by the providers available for each key.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	b, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	w.Write(b)
	fmt.Fprintln(w, "\nproviders:")
	help := config.Help()
	for _, key := range config.AllKeys {
		usages := help[key]
		sort.Slice(usages, func(i, j int) bool { return usages[i].Kind < usages[j].Kind })
		for _, u := range usages {
			name := u.Kind
			if u.Arg != "" {
				name += "," + u.Arg
			}
			fmt.Fprintf(w, "  %s: %s\n\t%s\n", key, name, u.Usage)
		}
	}
	return nil
}

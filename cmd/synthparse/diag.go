// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/syntax"
	"github.com/fatih/color"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	caretColor = color.New(color.FgGreen, color.Bold)
	noteColor  = color.New(color.FgCyan)
)

// diagnose reports err to w. Syntax errors are shown with the
// offending source line, which is retrieved through the resolver.
func diagnose(ctx context.Context, w io.Writer, r syntax.Resolver, err error) {
	var serr *syntax.Error
	if !goerrors.As(err, &serr) {
		errorColor.Fprint(w, "error: ")
		fmt.Fprintln(w, err)
		return
	}
	src, rerr := r.Resolve(ctx, serr.Pos.Filename)
	if rerr != nil {
		src = nil
	}
	writeDiagnostic(w, err, src)
}

// writeDiagnostic writes err to w. If err wraps a syntax error and
// src is its source, the offending line is shown with a caret
// underlining the offending token.
func writeDiagnostic(w io.Writer, err error, src []byte) {
	var serr *syntax.Error
	if !goerrors.As(err, &serr) {
		errorColor.Fprint(w, "error: ")
		fmt.Fprintln(w, err)
		return
	}
	errorColor.Fprint(w, "error: ")
	fmt.Fprintln(w, serr)
	if err.Error() != serr.Error() {
		noteColor.Fprint(w, "note: ")
		fmt.Fprintln(w, err)
	}
	line, ok := sourceLine(src, serr.Pos.Line)
	if !ok {
		return
	}
	fmt.Fprintf(w, "\t%s\n\t", line)
	// Columns count runes; tabs are reproduced so the caret aligns.
	col := 1
	for _, r := range line {
		if col >= serr.Pos.Column {
			break
		}
		if r == '\t' {
			w.Write([]byte{'\t'})
		} else {
			w.Write([]byte{' '})
		}
		col++
	}
	width := 1
	if serr.End.Line == serr.Pos.Line && serr.End.Column > serr.Pos.Column {
		width = serr.End.Column - serr.Pos.Column
	}
	caretColor.Fprintln(w, "^"+strings.Repeat("~", width-1))
}

// sourceLine returns the 1-based line n of src, without its newline.
func sourceLine(src []byte, n int) (string, bool) {
	if src == nil || n < 1 {
		return "", false
	}
	lines := bytes.Split(src, []byte("\n"))
	if n > len(lines) {
		return "", false
	}
	line := bytes.TrimRight(lines[n-1], "\r")
	if !utf8.Valid(line) {
		return "", false
	}
	return string(line), true
}

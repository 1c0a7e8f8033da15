// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package syntax

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/errors"
	"golang.org/x/exp/slices"
)

// Error is a lexical or syntax error. Parsing stops at the first
// error; there is no recovery.
type Error struct {
	// Kind is one of errors.Lex, errors.UnrecognizedToken,
	// errors.UnrecognizedEOF, or errors.ExtraToken.
	Kind errors.Kind
	// Pos and End delimit the offending token.
	Pos, End Position
	// Token is the text of the offending token.
	Token string
	// Expected is the sorted set of token names that would have been
	// accepted instead. It is empty for lexical errors.
	Expected []string
	// Msg is an optional detail message.
	Msg string
}

// ErrorKind returns the error's kind, so that errors.E and errors.Is
// classify syntax errors.
func (e *Error) ErrorKind() errors.Kind {
	return e.Kind
}

func (e *Error) Error() string {
	var b bytes.Buffer
	b.WriteString(e.Pos.String())
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Kind != errors.UnrecognizedEOF && e.Token != "" {
		b.WriteString(" ")
		b.WriteString(strconv.Quote(e.Token))
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	switch len(e.Expected) {
	case 0:
	case 1:
		b.WriteString("; expected ")
		b.WriteString(e.Expected[0])
	default:
		b.WriteString("; expected one of ")
		b.WriteString(strings.Join(e.Expected, ", "))
	}
	return b.String()
}

// Expects tells whether the token named name was among the tokens
// expected at the error's position.
func (e *Error) Expects(name string) bool {
	_, ok := slices.BinarySearch(e.Expected, name)
	return ok
}

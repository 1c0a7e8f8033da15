// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package syntax

import "fmt"

// TokenKind is the kind of a lexical token.
type TokenKind int

const (
	// TokError is an illegal token; it is the kind of the zero Token.
	TokError TokenKind = iota
	// TokEOF marks the end of the input.
	TokEOF

	// TokLID is an identifier starting with a lowercase letter.
	TokLID
	// TokUID is an identifier starting with an uppercase letter.
	TokUID
	// TokInt is a nonnegative integer literal.
	TokInt
	// TokString is a double-quoted string literal.
	TokString

	TokLParen     // (
	TokRParen     // )
	TokUnit       // ()
	TokLBrack     // [
	TokRBrack     // ]
	TokComma      // ,
	TokDot        // .
	TokColon      // :
	TokSemiSemi   // ;;
	TokAssign     // =
	TokEqEq       // ==
	TokNE         // !=
	TokArrow      // ->
	TokStar       // *
	TokBar        // |
	TokUnderscore // _

	TokFun
	TokFix
	TokLet
	TokMatch
	TokWith
	TokOf
	TokMu
	TokType
	TokVal
	TokSynth
	TokSatisfying
	TokInclude
	TokBinding
	TokEquiv
	TokUnitType

	maxToken
)

var tokenNames = [maxToken]string{
	TokError:      "error",
	TokEOF:        "EOF",
	TokLID:        "LID",
	TokUID:        "UID",
	TokInt:        "INT",
	TokString:     "STR",
	TokLParen:     `"("`,
	TokRParen:     `")"`,
	TokUnit:       `"()"`,
	TokLBrack:     `"["`,
	TokRBrack:     `"]"`,
	TokComma:      `","`,
	TokDot:        `"."`,
	TokColon:      `":"`,
	TokSemiSemi:   `";;"`,
	TokAssign:     `"="`,
	TokEqEq:       `"=="`,
	TokNE:         `"!="`,
	TokArrow:      `"->"`,
	TokStar:       `"*"`,
	TokBar:        `"|"`,
	TokUnderscore: `"_"`,
	TokFun:        "FUN",
	TokFix:        "FIX",
	TokLet:        "LET",
	TokMatch:      "MATCH",
	TokWith:       "WITH",
	TokOf:         "OF",
	TokMu:         "MU",
	TokType:       "TYPE",
	TokVal:        "VAL",
	TokSynth:      "SYNTH",
	TokSatisfying: "SATISFYING",
	TokInclude:    "INCLUDE",
	TokBinding:    "BINDING",
	TokEquiv:      "EQUIV",
	TokUnitType:   "UNIT",
}

// String returns the name used for the token kind in diagnostics:
// punctuation is quoted; keywords and token classes are upper case.
func (k TokenKind) String() string {
	if k < 0 || k >= maxToken {
		return fmt.Sprintf("token(%d)", int(k))
	}
	return tokenNames[k]
}

var keywords = map[string]TokenKind{
	"fun":        TokFun,
	"fix":        TokFix,
	"let":        TokLet,
	"match":      TokMatch,
	"with":       TokWith,
	"of":         TokOf,
	"mu":         TokMu,
	"type":       TokType,
	"val":        TokVal,
	"synth":      TokSynth,
	"satisfying": TokSatisfying,
	"include":    TokInclude,
	"binding":    TokBinding,
	"equiv":      TokEquiv,
	"unit":       TokUnitType,
}

// Position is a location in a source file.
type Position struct {
	// Filename is the name of the file, if any.
	Filename string
	// Offset is the byte offset from the start of the file, starting at 0.
	Offset int
	// Line is the line number, starting at 1.
	Line int
	// Column is the column number (in characters), starting at 1.
	Column int
}

// IsValid tells whether the position has been set.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	s := p.Filename
	if s == "" {
		s = "<input>"
	}
	if p.IsValid() {
		s += fmt.Sprintf(":%d:%d", p.Line, p.Column)
	}
	return s
}

// A Token is a lexical token together with the source range
// [Pos, End) it was read from.
type Token struct {
	Kind TokenKind
	// Text is the source text of the token. String literals retain
	// their quotes.
	Text string
	Pos  Position
	End  Position
}

func (t Token) String() string {
	switch t.Kind {
	case TokEOF:
		return "EOF"
	case TokLID, TokUID, TokInt, TokString:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	}
	return t.Text
}

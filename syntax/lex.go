// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package syntax

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/errors"
)

// A Lexer splits source text into tokens. Whitespace and (* ... *)
// comments are skipped. Comments do not nest: a comment ends at the
// first "*)".
type Lexer struct {
	src []byte
	pos Position
}

// NewLexer returns a lexer for src. Positions are reported relative
// to the named file.
func NewLexer(file string, src []byte) *Lexer {
	return &Lexer{src: src, pos: Position{Filename: file, Line: 1, Column: 1}}
}

// Tokens returns all tokens of src, ending with a TokEOF token.
func Tokens(file string, src []byte) ([]Token, error) {
	lx := NewLexer(file, src)
	var toks []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks, nil
		}
	}
}

func (lx *Lexer) peek(i int) byte {
	if j := lx.pos.Offset + i; j < len(lx.src) {
		return lx.src[j]
	}
	return 0
}

// advance moves past n bytes, maintaining line and column.
func (lx *Lexer) advance(n int) {
	for end := lx.pos.Offset + n; lx.pos.Offset < end; {
		r, w := utf8.DecodeRune(lx.src[lx.pos.Offset:])
		lx.pos.Offset += w
		if r == '\n' {
			lx.pos.Line++
			lx.pos.Column = 1
		} else {
			lx.pos.Column++
		}
	}
}

func (lx *Lexer) errorf(pos Position, text, format string, args ...interface{}) error {
	return &Error{
		Kind:  errors.Lex,
		Pos:   pos,
		End:   lx.pos,
		Token: text,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// skip skips whitespace and comments.
func (lx *Lexer) skip() error {
	for {
		switch c := lx.peek(0); {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			lx.advance(1)
		case c == '(' && lx.peek(1) == '*':
			start := lx.pos
			rest := lx.src[lx.pos.Offset+2:]
			i := bytes.Index(rest, []byte("*)"))
			if i < 0 {
				lx.advance(len(lx.src) - lx.pos.Offset)
				return lx.errorf(start, "(*", "unterminated comment")
			}
			lx.advance(i + 4)
		default:
			return nil
		}
	}
}

var punct = []struct {
	text string
	kind TokenKind
}{
	// Longer tokens first.
	{"()", TokUnit},
	{";;", TokSemiSemi},
	{"==", TokEqEq},
	{"!=", TokNE},
	{"->", TokArrow},
	{"(", TokLParen},
	{")", TokRParen},
	{"[", TokLBrack},
	{"]", TokRBrack},
	{",", TokComma},
	{".", TokDot},
	{":", TokColon},
	{"=", TokAssign},
	{"*", TokStar},
	{"|", TokBar},
	{"_", TokUnderscore},
}

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdent(c byte) bool {
	return isLower(c) || isUpper(c) || isDigit(c) || c == '_'
}

// Next returns the next token. At the end of input it returns a
// TokEOF token, repeatedly.
func (lx *Lexer) Next() (Token, error) {
	if err := lx.skip(); err != nil {
		return Token{}, err
	}
	tok := Token{Pos: lx.pos}
	rest := lx.src[lx.pos.Offset:]
	n := 0
	switch c := lx.peek(0); {
	case len(rest) == 0:
		tok.Kind = TokEOF
	case isLower(c) || isUpper(c):
		for n < len(rest) && isIdent(rest[n]) {
			n++
		}
		switch kw, ok := keywords[string(rest[:n])]; {
		case ok:
			tok.Kind = kw
		case isUpper(c):
			tok.Kind = TokUID
		default:
			tok.Kind = TokLID
		}
	case isDigit(c):
		for n < len(rest) && isDigit(rest[n]) {
			n++
		}
		tok.Kind = TokInt
	case c == '"':
		i := bytes.IndexByte(rest[1:], '"')
		if i < 0 {
			lx.advance(len(rest))
			return Token{}, lx.errorf(tok.Pos, `"`, "unterminated string literal")
		}
		n = i + 2
		tok.Kind = TokString
	default:
		for _, p := range punct {
			if bytes.HasPrefix(rest, []byte(p.text)) {
				n = len(p.text)
				tok.Kind = p.kind
				break
			}
		}
		if n == 0 {
			r, w := utf8.DecodeRune(rest)
			lx.advance(w)
			return Token{}, lx.errorf(tok.Pos, string(rest[:w]), "invalid character %q", r)
		}
	}
	tok.Text = string(rest[:n])
	lx.advance(n)
	tok.End = lx.pos
	return tok, nil
}

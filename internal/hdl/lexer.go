// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl implements the lexer and parser for connection strings.
//
package hdl

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Type is a token type.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
	Range
	Equal
)

var typeNames = [...]string{"end of input", "character", "identifier", "'['", "']'", "','", "integer", "'..'", "'='"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// Item is a lexed token.
//
type Item struct {
	Type  Type
	Pos   int
	Value interface{}
}

func (i Item) String() string {
	switch i.Type {
	case EOF:
		return i.Type.String()
	case Ident:
		return "identifier " + strconv.Quote(i.Value.(string))
	case Int:
		return "integer " + strconv.Itoa(i.Value.(int))
	case Raw:
		return "character " + strconv.QuoteRune(i.Value.(rune))
	}
	return i.Type.String()
}

// A Lexer splits a connection string into tokens.
//
type Lexer struct {
	input string
	pos   int
	eof   bool
}

// NewLexer returns a new lexer for i/o specs and connection descriptions.
//
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) next() (rune, int) {
	if l.pos >= len(l.input) {
		return -1, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

// Lex returns the next token. Once the end of input or an invalid character
// has been reached, Lex only returns EOF items.
//
func (l *Lexer) Lex() Item {
	if l.eof {
		return Item{Type: EOF, Pos: len(l.input)}
	}
	r, sz := l.next()
	for r >= 0 && unicode.IsSpace(r) {
		l.pos += sz
		r, sz = l.next()
	}
	start := l.pos
	switch {
	case r < 0:
		l.eof = true
		return Item{Type: EOF, Pos: start}
	case unicode.IsLetter(r) || r == '_':
		for r >= 0 && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			l.pos += sz
			r, sz = l.next()
		}
		return Item{Type: Ident, Pos: start, Value: l.input[start:l.pos]}
	case '0' <= r && r <= '9':
		v := 0
		for '0' <= r && r <= '9' {
			v = v*10 + int(r-'0')
			l.pos += sz
			r, sz = l.next()
		}
		return Item{Type: Int, Pos: start, Value: v}
	}
	l.pos += sz
	switch r {
	case '[':
		return Item{Type: BracketOpen, Pos: start}
	case ']':
		return Item{Type: BracketClose, Pos: start}
	case ',':
		return Item{Type: Comma, Pos: start}
	case '=':
		return Item{Type: Equal, Pos: start}
	case '.':
		if n, nsz := l.next(); n == '.' {
			l.pos += nsz
			return Item{Type: Range, Pos: start}
		}
	}
	l.eof = true
	return Item{Type: Raw, Pos: start, Value: r}
}

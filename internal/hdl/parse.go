// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// A PinRef names a port or a net. Bus references select a single bit
// (name[i]) or a range of bits (name[lo..hi]).
//
type PinRef struct {
	Name  string
	Pos   int  // byte offset in the input
	Start int  // first bit, -1 for a plain name
	End   int  // last bit, equal to Start for an index
	Range bool // true for name[lo..hi]
}

// Bits returns the number of pins designated by r.
//
func (r PinRef) Bits() int {
	if r.Start < 0 {
		return 1
	}
	return r.End - r.Start + 1
}

func (r PinRef) String() string {
	switch {
	case r.Start < 0:
		return r.Name
	case r.Range:
		return r.Name + "[" + strconv.Itoa(r.Start) + ".." + strconv.Itoa(r.End) + "]"
	}
	return r.Name + "[" + strconv.Itoa(r.Start) + "]"
}

// An Assignment connects an element port to a net: port=net. A lone pin name
// is assigned to the net of the same name.
//
type Assignment struct {
	Port PinRef
	Net  PinRef
}

type parser struct {
	in  string
	lx  *Lexer
	tok Item
}

// Parse parses a comma separated list of assignments. An empty input yields
// no assignments.
//
func Parse(input string) ([]Assignment, error) {
	p := &parser{in: input, lx: NewLexer(input)}
	p.advance()
	if p.tok.Type == EOF {
		return nil, nil
	}
	var as []Assignment
	for {
		a, err := p.assignment()
		if err != nil {
			return nil, err
		}
		as = append(as, a)
		switch p.tok.Type {
		case EOF:
			return as, nil
		case Comma:
			p.advance()
		default:
			return nil, p.errorf(p.tok.Pos, "unexpected %s", p.tok)
		}
	}
}

func (p *parser) advance() { p.tok = p.lx.Lex() }

func (p *parser) errorf(pos int, format string, args ...interface{}) error {
	return errors.Errorf("in %q at pos %d: %s", p.in, pos+1, fmt.Sprintf(format, args...))
}

func (p *parser) assignment() (Assignment, error) {
	port, err := p.pinRef()
	if err != nil {
		return Assignment{}, err
	}
	if p.tok.Type != Equal {
		return Assignment{port, port}, nil
	}
	p.advance()
	net, err := p.pinRef()
	if err != nil {
		return Assignment{}, err
	}
	return Assignment{port, net}, nil
}

func (p *parser) pinRef() (PinRef, error) {
	if p.tok.Type != Ident {
		return PinRef{}, p.errorf(p.tok.Pos, "expected pin name")
	}
	r := PinRef{Name: p.tok.Value.(string), Pos: p.tok.Pos, Start: -1, End: -1}
	p.advance()
	if p.tok.Type != BracketOpen {
		return r, nil
	}
	p.advance()
	var err error
	if r.Start, err = p.integer("'['"); err != nil {
		return r, err
	}
	r.End = r.Start
	if p.tok.Type == Range {
		p.advance()
		r.Range = true
		if r.End, err = p.integer("'..'"); err != nil {
			return r, err
		}
	}
	if p.tok.Type != BracketClose {
		return r, p.errorf(p.tok.Pos, "closing ']' expected after index or range")
	}
	p.advance()
	if r.End < r.Start {
		return r, p.errorf(r.Pos, "invalid range")
	}
	return r, nil
}

func (p *parser) integer(after string) (int, error) {
	if p.tok.Type != Int {
		return 0, p.errorf(p.tok.Pos, "integer value expected after %s", after)
	}
	v := p.tok.Value.(int)
	p.advance()
	return v, nil
}

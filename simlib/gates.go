// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simlib

import (
	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Gate is a bitwise logic gate with two or more inputs.
//
// Gates are only resolvable when all their inputs are defined, unless the
// "floatingAsZero" parameter is set, in which case floating inputs are read
// as 0.
//
type Gate struct {
	logicsim.Base
	In  []logicsim.NodeID
	Out logicsim.NodeID
	fn  func(a, b uint64) uint64
	inv bool
}

// Resolve implements logicsim.Element.
//
func (g *Gate) Resolve(c *logicsim.Circuit) {
	v := c.Get(g.In[0]).Uint64()
	for _, in := range g.In[1:] {
		v = g.fn(v, c.Get(in).Uint64())
	}
	if g.inv {
		v = ^v
	}
	c.Set(g.Out, u(v))
}

func gate(kind string, fn func(a, b uint64) uint64, inv bool) logicsim.NewPartFn {
	return func(p logicsim.Params) (*logicsim.PartSpec, error) {
		n := p.Int("inputs", 2)
		if n < 2 || n > 64 {
			return nil, errors.Errorf("invalid input count %d", n)
		}
		return &logicsim.PartSpec{
			Kind:   kind,
			Params: p,
			Mount: func(s *logicsim.Socket) (logicsim.Element, error) {
				if s.Params().Bool("floatingAsZero", false) {
					s.AlwaysResolve()
				}
				return &Gate{
					In:  s.InBus(pIn, n, logicsim.ElementWidth),
					Out: s.Out(pOut, logicsim.ElementWidth),
					fn:  fn,
					inv: inv,
				}, nil
			},
		}, nil
	}
}

func and(a, b uint64) uint64 { return a & b }
func or(a, b uint64) uint64  { return a | b }
func xor(a, b uint64) uint64 { return a ^ b }

var (
	// NewAnd returns an AND gate.
	//
	//	Inputs: in[0] .. in[inputs-1]
	//	Outputs: out
	//	Function: out = in[0] & in[1] & ...
	//
	NewAnd = gate("And", and, false)

	// NewNand returns a NAND gate.
	//
	//	Function: out = ^(in[0] & in[1] & ...)
	//
	NewNand = gate("Nand", and, true)

	// NewOr returns an OR gate.
	//
	//	Function: out = in[0] | in[1] | ...
	//
	NewOr = gate("Or", or, false)

	// NewNor returns a NOR gate.
	//
	//	Function: out = ^(in[0] | in[1] | ...)
	//
	NewNor = gate("Nor", or, true)

	// NewXor returns a XOR gate.
	//
	//	Function: out = in[0] ^ in[1] ^ ...
	//
	NewXor = gate("Xor", xor, false)

	// NewXnor returns a XNOR gate.
	//
	//	Function: out = ^(in[0] ^ in[1] ^ ...)
	//
	NewXnor = gate("Xnor", xor, true)
)

// Not is a bitwise inverter.
//
//	Inputs: in
//	Outputs: out
//	Function: out = ^in
//
type Not struct {
	logicsim.Base
	In  logicsim.NodeID `sim:"in"`
	Out logicsim.NodeID `sim:"out"`
}

// NewNot returns a NOT gate.
//
func NewNot(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("Not", (*Not)(nil), p)
}

// Resolve implements logicsim.Element.
//
func (n *Not) Resolve(c *logicsim.Circuit) {
	c.Set(n.Out, u(^c.Get(n.In).Uint64()))
}

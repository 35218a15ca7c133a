// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simlib

import (
	"github.com/db47h/logicsim"
)

func isOne(v logicsim.Value) bool { return v.Defined() && v.Uint64() == 1 }

// Counter counts rising clock edges, wrapping around after max.
//
//	Inputs: max, clk (1 bit), reset (1 bit)
//	Outputs: out, zero (1 bit)
//	Function:
//		on rising clk: out = (out + 1) % (max + 1)
//		if reset == 1 { out = 0 }
//		zero = clk == 1 && out == 0
//	A floating max counts up to the largest value of the element width.
//
type Counter struct {
	logicsim.Base
	Max   logicsim.NodeID `sim:"in"`
	Clk   logicsim.NodeID `sim:"in,clk,1"`
	Reset logicsim.NodeID `sim:"in,reset,1"`
	Out   logicsim.NodeID `sim:"out"`
	Zero  logicsim.NodeID `sim:"out,zero,1"`

	value uint64
	prev  logicsim.Value
}

// NewCounter returns a new counter.
//
func NewCounter(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("Counter", (*Counter)(nil), p)
}

// Setup implements logicsim.Setuper.
//
func (k *Counter) Setup(s *logicsim.Socket) error {
	s.AlwaysResolve()
	return nil
}

// Resolve implements logicsim.Element.
//
func (k *Counter) Resolve(c *logicsim.Circuit) {
	limit := logicsim.Mask(k.Width())
	if m := c.Get(k.Max); m.Defined() {
		limit = m.Uint64()
	}
	out := k.value
	clk := c.Get(k.Clk)
	if !clk.Equal(k.prev) && isOne(clk) {
		out++
	}
	k.prev = clk
	if limit != ^uint64(0) {
		out %= limit + 1
	}
	if isOne(c.Get(k.Reset)) {
		out = 0
	}
	k.value = out
	c.Set(k.Out, u(out))
	c.Set(k.Zero, logicsim.Bool(isOne(clk) && out == 0))
}

// Value returns the current count.
//
func (k *Counter) Value() uint64 { return k.value }

// DLatch is a level triggered D latch.
//
//	Inputs: d, clk (1 bit)
//	Outputs: q, nq
//	Function: if clk == 1 { q = d }; nq = ^q
//
type DLatch struct {
	logicsim.Base
	D     logicsim.NodeID `sim:"in"`
	Clk   logicsim.NodeID `sim:"in,clk,1"`
	Q     logicsim.NodeID `sim:"out"`
	NQ    logicsim.NodeID `sim:"out"`
	state uint64
}

// NewDLatch returns a new D latch.
//
func NewDLatch(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("DLatch", (*DLatch)(nil), p)
}

// Resolve implements logicsim.Element.
//
func (l *DLatch) Resolve(c *logicsim.Circuit) {
	if d := c.Get(l.D); isOne(c.Get(l.Clk)) && d.Defined() {
		l.state = d.Uint64()
	}
	c.Set(l.Q, u(l.state))
	c.Set(l.NQ, u(^l.state))
}

// DFlipFlop is an edge triggered D flip-flop with asynchronous reset.
// A floating reset is read as 0.
//
//	Inputs: d, clk (1 bit), reset (1 bit)
//	Outputs: q, nq
//	Function: on rising clk: q = d; if reset == 1 { q = 0 }; nq = ^q
//
type DFlipFlop struct {
	logicsim.Base
	D     logicsim.NodeID `sim:"in"`
	Clk   logicsim.NodeID `sim:"in,clk,1"`
	Reset logicsim.NodeID `sim:"in,reset,1"`
	Q     logicsim.NodeID `sim:"out"`
	NQ    logicsim.NodeID `sim:"out"`

	state uint64
	prev  logicsim.Value
}

// NewDFlipFlop returns a new D flip-flop.
//
func NewDFlipFlop(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("DFlipFlop", (*DFlipFlop)(nil), p)
}

// IsResolvable returns true if the clock is defined.
//
func (f *DFlipFlop) IsResolvable(c *logicsim.Circuit) bool {
	return c.Get(f.Clk).Defined()
}

// Resolve implements logicsim.Element.
//
func (f *DFlipFlop) Resolve(c *logicsim.Circuit) {
	clk := c.Get(f.Clk)
	if d := c.Get(f.D); !clk.Equal(f.prev) && isOne(clk) && d.Defined() {
		f.state = d.Uint64()
	}
	f.prev = clk
	if isOne(c.Get(f.Reset)) {
		f.state = 0
	}
	c.Set(f.Q, u(f.state))
	c.Set(f.NQ, u(^f.state))
}

// SRFlipFlop is a set/reset flip-flop.
//
//	Inputs: s, r, en (1 bit), reset (1 bit), preset
//	Outputs: q, nq
//	Function:
//		if reset == 1 { q = preset (0 if floating) }
//		else if (en == 1 or en not connected) && s ^ r != 0 { q = s }
//		nq = ^q
//
type SRFlipFlop struct {
	logicsim.Base
	S      logicsim.NodeID `sim:"in"`
	R      logicsim.NodeID `sim:"in"`
	En     logicsim.NodeID `sim:"in,en,1"`
	Reset  logicsim.NodeID `sim:"in,reset,1"`
	Preset logicsim.NodeID `sim:"in"`
	Q      logicsim.NodeID `sim:"out"`
	NQ     logicsim.NodeID `sim:"out"`
	state  uint64
}

// NewSRFlipFlop returns a new SR flip-flop.
//
func NewSRFlipFlop(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("SRFlipFlop", (*SRFlipFlop)(nil), p)
}

// Setup implements logicsim.Setuper.
//
func (f *SRFlipFlop) Setup(s *logicsim.Socket) error {
	s.AlwaysResolve()
	return nil
}

// Resolve implements logicsim.Element.
//
func (f *SRFlipFlop) Resolve(c *logicsim.Circuit) {
	sv, rv := c.Get(f.S).Uint64(), c.Get(f.R).Uint64()
	switch {
	case isOne(c.Get(f.Reset)):
		f.state = c.Get(f.Preset).Uint64()
	case (isOne(c.Get(f.En)) || !c.Connected(f.En)) && sv^rv != 0:
		f.state = sv
	}
	c.Set(f.Q, u(f.state))
	c.Set(f.NQ, u(^f.state))
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simlib

import (
	"github.com/db47h/logicsim"
)

// TriState is a tri-state buffer. When disabled, its output floats and other
// drivers may use the net. Two enabled drivers on the same net are reported
// as a fatal TriStateContentionError at the end of the pass.
//
//	Inputs: in, en (1 bit)
//	Outputs: out
//	Function: if en == 1 { out = in } else { out = floating }
//
type TriState struct {
	logicsim.Base
	In  logicsim.NodeID `sim:"in"`
	En  logicsim.NodeID `sim:"in,en,1"`
	Out logicsim.NodeID `sim:"out"`
}

// NewTriState returns a new tri-state buffer.
//
func NewTriState(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("TriState", (*TriState)(nil), p)
}

// Enabled implements logicsim.Tristate.
//
func (t *TriState) Enabled(c *logicsim.Circuit) bool {
	en := c.Get(t.En)
	return en.Defined() && en.Uint64() == 1
}

// Resolve implements logicsim.Element.
//
func (t *TriState) Resolve(c *logicsim.Circuit) {
	id := t.ID()
	if t.Enabled(c) {
		c.Set(t.Out, c.Get(t.In))
	} else if c.Get(t.Out).Defined() && !c.ContentionPending(id) {
		c.Set(t.Out, logicsim.Floating)
	}
	c.ClearContention(id)
}

// Force outputs its second input when defined, its first one otherwise.
//
//	Inputs: in1, in2
//	Outputs: out
//	Function: if in2 != floating { out = in2 } else { out = in1 }
//
type Force struct {
	logicsim.Base
	In1 logicsim.NodeID `sim:"in"`
	In2 logicsim.NodeID `sim:"in"`
	Out logicsim.NodeID `sim:"out"`
}

// NewForceGate returns a new force gate.
//
func NewForceGate(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("ForceGate", (*Force)(nil), p)
}

// IsResolvable returns true if any input is defined.
//
func (f *Force) IsResolvable(c *logicsim.Circuit) bool {
	return c.Get(f.In1).Defined() || c.Get(f.In2).Defined()
}

// Resolve implements logicsim.Element.
//
func (f *Force) Resolve(c *logicsim.Circuit) {
	if v := c.Get(f.In2); v.Defined() {
		c.Set(f.Out, v)
		return
	}
	c.Set(f.Out, c.Get(f.In1))
}

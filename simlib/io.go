// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simlib

import (
	"github.com/db47h/logicsim"
)

// Input is a signal source controlled by the user.
//
//	Outputs: out
//	Params: value (initial value, default 0), floating (initially floating)
//
type Input struct {
	logicsim.Base
	Out   logicsim.NodeID `sim:"out"`
	state logicsim.Value
}

// NewInput returns a new input.
//
func NewInput(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("Input", (*Input)(nil), p)
}

// Setup implements logicsim.Setuper.
//
func (in *Input) Setup(s *logicsim.Socket) error {
	s.Source()
	if !s.Params().Bool("floating", false) {
		in.state = u(uint64(s.Params().Int("value", 0))).Mask(s.Width())
	}
	return nil
}

// Resolve implements logicsim.Element.
//
func (in *Input) Resolve(c *logicsim.Circuit) { c.Set(in.Out, in.state) }

// Set sets the input value. The change is propagated on the next pass.
//
func (in *Input) Set(v uint64) { in.state = u(v).Mask(in.Width()) }

// SetValue sets the input value, which may be floating.
//
func (in *Input) SetValue(v logicsim.Value) { in.state = v.Mask(in.Width()) }

// Value returns the input value.
//
func (in *Input) Value() logicsim.Value { return in.state }

// SaveParams implements logicsim.ParamSaver.
//
func (in *Input) SaveParams(p logicsim.Params) {
	if in.state.Defined() {
		p["value"] = int(in.state.Uint64())
		delete(p, "floating")
	} else {
		delete(p, "value")
		p["floating"] = true
	}
}

// Output is a circuit output probe.
//
//	Inputs: in
//
type Output struct {
	logicsim.Base
	In logicsim.NodeID `sim:"in"`
}

// NewOutput returns a new output probe.
//
func NewOutput(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("Output", (*Output)(nil), p)
}

// Resolve implements logicsim.Element.
//
func (o *Output) Resolve(c *logicsim.Circuit) {}

// Value returns the value of the output.
//
func (o *Output) Value(c *logicsim.Circuit) logicsim.Value { return c.Get(o.In) }

// Constant outputs a fixed value.
//
//	Outputs: out
//	Params: value
//
type Constant struct {
	logicsim.Base
	Out logicsim.NodeID `sim:"out"`
	v   logicsim.Value
}

// NewConstant returns a new constant.
//
func NewConstant(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("Constant", (*Constant)(nil), p)
}

// Setup implements logicsim.Setuper.
//
func (k *Constant) Setup(s *logicsim.Socket) error {
	s.Source()
	k.v = u(uint64(s.Params().Int("value", 0)))
	return nil
}

// Resolve implements logicsim.Element.
//
func (k *Constant) Resolve(c *logicsim.Circuit) { c.Set(k.Out, k.v) }

// Clock is a 1 bit signal toggled on every Circuit.Tick.
//
//	Outputs: out
//
type Clock struct {
	logicsim.Base
	Out   logicsim.NodeID `sim:"out,out,1"`
	state uint64
}

// NewClock returns a new clock.
//
func NewClock(p logicsim.Params) (*logicsim.PartSpec, error) {
	return logicsim.MakePart("Clock", (*Clock)(nil), p)
}

// Setup implements logicsim.Setuper.
//
func (k *Clock) Setup(s *logicsim.Socket) error {
	s.Source()
	s.FixedWidth()
	k.state = uint64(s.Params().Int("state", 0)) & 1
	return nil
}

// Resolve implements logicsim.Element.
//
func (k *Clock) Resolve(c *logicsim.Circuit) { c.Set(k.Out, u(k.state)) }

// Tick implements logicsim.Ticker.
//
func (k *Clock) Tick() { k.state ^= 1 }

// SaveParams implements logicsim.ParamSaver.
//
func (k *Clock) SaveParams(p logicsim.Params) { p["state"] = int(k.state) }

// Stepper outputs a value increased by one on every call to Step, until
// it reaches its maximum value.
//
//	Outputs: out
//	Params: width (default 8)
//
type Stepper struct {
	logicsim.Base
	Out   logicsim.NodeID `sim:"out"`
	state uint64
}

// NewStepper returns a new stepper.
//
func NewStepper(p logicsim.Params) (*logicsim.PartSpec, error) {
	if _, ok := p[logicsim.ParamWidth]; !ok {
		p = p.Clone()
		p[logicsim.ParamWidth] = 8
	}
	return logicsim.MakePart("Stepper", (*Stepper)(nil), p)
}

// Setup implements logicsim.Setuper.
//
func (st *Stepper) Setup(s *logicsim.Socket) error {
	s.Source()
	return nil
}

// Resolve implements logicsim.Element.
//
func (st *Stepper) Resolve(c *logicsim.Circuit) {
	v := st.state
	if limit := logicsim.Mask(st.Width()); v > limit {
		v = limit
	}
	c.Set(st.Out, u(v))
}

// Step increases the stepper value.
//
func (st *Stepper) Step() {
	if st.state < logicsim.Mask(st.Width()) {
		st.state++
	}
}

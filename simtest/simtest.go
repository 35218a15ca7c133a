// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing elements and
// circuits.
//
package simtest

import (
	"strings"
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simlib"
	"github.com/pkg/errors"
)

// A Harness wraps a single element in its own circuit. Every input port of the
// element is driven by an Input element of the same width.
//
type Harness struct {
	C      *logicsim.Circuit
	E      logicsim.Element
	inputs map[string]*simlib.Input
	names  []string
}

// NewHarness mounts spec in a new circuit. All inputs are initially floating.
//
func NewHarness(t testing.TB, spec *logicsim.PartSpec, opts ...logicsim.Option) *Harness {
	t.Helper()
	h, err := newHarness(spec, opts...)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return h
}

func newHarness(spec *logicsim.PartSpec, opts ...logicsim.Option) (*Harness, error) {
	c := logicsim.New(spec.Kind, opts...)
	id, err := c.Add(spec)
	if err != nil {
		return nil, err
	}
	e := c.Element(id)
	h := &Harness{C: c, E: e, inputs: make(map[string]*simlib.Input)}
	for _, p := range e.Ports() {
		if p.Kind != logicsim.Input {
			continue
		}
		is, err := simlib.NewInput(logicsim.Params{
			logicsim.ParamWidth: c.Width(p.Node),
			"floating":          true,
		})
		if err != nil {
			return nil, err
		}
		iid, err := c.Add(is)
		if err != nil {
			return nil, err
		}
		in := c.Element(iid).(*simlib.Input)
		if _, err = c.Connect(in.Out, p.Node); err != nil {
			return nil, errors.Wrapf(err, "port %s", p.Name)
		}
		h.inputs[p.Name] = in
		h.names = append(h.names, p.Name)
	}
	return h, nil
}

// Inputs returns the names of the element's input ports.
//
func (h *Harness) Inputs() []string { return h.names }

// Outputs returns the names of the element's output ports.
//
func (h *Harness) Outputs() []string {
	var out []string
	for _, p := range h.E.Ports() {
		if p.Kind == logicsim.Output {
			out = append(out, p.Name)
		}
	}
	return out
}

// Set sets the value of an input port. It panics if there is no such input.
//
func (h *Harness) Set(port string, v uint64) { h.input(port).Set(v) }

// Float makes an input port float.
//
func (h *Harness) Float(port string) { h.input(port).SetValue(logicsim.Floating) }

func (h *Harness) input(port string) *simlib.Input {
	in, ok := h.inputs[port]
	if !ok {
		panic(errors.Errorf("%s: no input port %q", h.E.Kind(), port))
	}
	return in
}

// Get returns the value of any port of the element.
//
func (h *Harness) Get(port string) logicsim.Value {
	id := h.E.Port(port)
	if id == logicsim.NoNode {
		panic(errors.Errorf("%s: no port %q", h.E.Kind(), port))
	}
	return h.C.Get(id)
}

// Run runs a simulation pass and fails the test on fatal errors.
//
func (h *Harness) Run(t testing.TB) *logicsim.PassResult {
	t.Helper()
	r, err := h.C.RunPass(false)
	if err != nil {
		t.Fatalf("%s: %v", h.E.Kind(), err)
	}
	return r
}

// Vector maps port names to values.
//
type Vector map[string]uint64

func (v Vector) String() string {
	var b strings.Builder
	for _, k := range sortedKeys(v) {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(logicsim.Of(v[k]).String())
	}
	return b.String()
}

// A Case is a line of a truth table.
//
type Case struct {
	In  Vector
	Out Vector
}

// TruthTable checks the outputs of spec for each set of input values, in
// order. Inputs not set in a case keep their previous value, so that
// sequential elements can be tested as well.
//
func TruthTable(t *testing.T, spec *logicsim.PartSpec, cases []Case) {
	t.Helper()
	h := NewHarness(t, spec)
	for i, tc := range cases {
		for _, k := range sortedKeys(tc.In) {
			h.Set(k, tc.In[k])
		}
		h.Run(t)
		for _, k := range sortedKeys(tc.Out) {
			want := logicsim.Of(tc.Out[k]).Mask(h.C.Width(h.E.Port(k)))
			if got := h.Get(k); !got.Equal(want) {
				t.Errorf("%s case %d: %v => %s = %v, got %v", spec.Kind, i, tc.In, k, want, got)
			}
		}
	}
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simlib

import (
	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// ParamCircuit is the SubCircuit parameter holding the child circuit. When
// saved, it is replaced by the child circuit's name.
//
const ParamCircuit = "circuit"

// Sub wraps a child circuit into an element. Its ports mirror the labelled
// Input and Output elements of the child circuit, in creation order.
//
// Resolving a Sub copies its inputs into the child circuit, runs a pass on the
// child and copies the child outputs back. A fatal error in the child fails
// the parent pass.
//
type Sub struct {
	logicsim.Base
	child *logicsim.Circuit
	ins   []subInput
	outs  []subOutput
}

type subInput struct {
	port logicsim.NodeID
	elem *Input
}

type subOutput struct {
	port logicsim.NodeID
	elem *Output
}

// NewSubCircuit returns a sub-circuit element. The "circuit" parameter must
// hold the child *logicsim.Circuit.
//
func NewSubCircuit(p logicsim.Params) (*logicsim.PartSpec, error) {
	child, ok := p[ParamCircuit].(*logicsim.Circuit)
	if !ok || child == nil {
		return nil, errors.New("missing child circuit")
	}
	return &logicsim.PartSpec{
		Kind:   "SubCircuit",
		Params: p,
		Mount: func(s *logicsim.Socket) (logicsim.Element, error) {
			s.AlwaysResolve()
			s.Overridable()
			s.FixedWidth()
			sc := &Sub{child: child}
			for _, e := range child.Elements() {
				switch e := e.(type) {
				case *Input:
					if e.Label() == "" {
						return nil, errors.Errorf("sub-circuit %s: unlabelled input %s", child.Name(), e.ID())
					}
					sc.ins = append(sc.ins, subInput{s.In(e.Label(), e.Width()), e})
				case *Output:
					if e.Label() == "" {
						return nil, errors.Errorf("sub-circuit %s: unlabelled output %s", child.Name(), e.ID())
					}
					sc.outs = append(sc.outs, subOutput{s.Out(e.Label(), e.Width()), e})
				}
			}
			return sc, nil
		},
	}, nil
}

// Circuit returns the child circuit.
//
func (sc *Sub) Circuit() *logicsim.Circuit { return sc.child }

// Resolve implements logicsim.Element.
//
func (sc *Sub) Resolve(c *logicsim.Circuit) {
	for _, in := range sc.ins {
		in.elem.SetValue(c.Get(in.port))
	}
	if _, err := sc.child.RunPass(false); err != nil {
		c.Fail(errors.Wrapf(err, "sub-circuit %s", sc.child.Name()))
		return
	}
	for _, out := range sc.outs {
		c.Set(out.port, out.elem.Value(sc.child))
	}
}

// Reset implements logicsim.Resetter. It clears any fatal error in the child
// circuit and schedules a full reset of the child.
//
func (sc *Sub) Reset() { sc.child.ClearFatal() }

// SaveParams implements logicsim.ParamSaver.
//
func (sc *Sub) SaveParams(p logicsim.Params) { p[ParamCircuit] = sc.child.Name() }

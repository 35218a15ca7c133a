// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// A MountFn mounts an element into socket s. It allocates the element's ports
// with the socket and returns the element, which must embed Base.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Kind: "Not",
//		Mount: func(s *Socket) (Element, error) {
//			return &not{
//				in:  s.In("in", ElementWidth),
//				out: s.Out("out", ElementWidth),
//			}, nil
//		},
//	}
//
// with:
//
//	type not struct {
//		Base
//		in, out NodeID
//	}
//
//	func (n *not) Resolve(c *Circuit) {
//		c.Set(n.out, Of(^c.Get(n.in).Uint64()))
//	}
//
type MountFn func(s *Socket) (Element, error)

// A PartSpec wraps an element specification (its blueprint).
//
type PartSpec struct {
	// Element kind.
	Kind string
	// Construction parameters. The "width" parameter sets the element width
	// and defaults to 1.
	Params Params
	// Mount function (see MountFn).
	Mount MountFn
}

// A Socket allocates port nodes for an element being mounted in a circuit.
//
type Socket struct {
	c      *Circuit
	id     ElementID
	width  int
	params Params
	ports  []Port
	err    error

	alwaysResolve bool
	fixedWidth    bool
	source        bool
	overridable   bool
}

// Width returns the width of the element being mounted.
//
func (s *Socket) Width() int { return s.width }

// Params returns the element's construction parameters.
//
func (s *Socket) Params() Params { return s.params }

// Circuit returns the circuit the element is being mounted into.
//
func (s *Socket) Circuit() *Circuit { return s.c }

// In allocates an input port. If width is ElementWidth, the port follows the
// element width.
//
func (s *Socket) In(name string, width int) NodeID { return s.port(name, Input, width) }

// Out allocates an output port. If width is ElementWidth, the port follows the
// element width.
//
func (s *Socket) Out(name string, width int) NodeID { return s.port(name, Output, width) }

// InBus allocates n input ports named name[0] to name[n-1].
//
func (s *Socket) InBus(name string, n int, width int) []NodeID {
	return s.bus(name, Input, n, width)
}

// OutBus allocates n output ports named name[0] to name[n-1].
//
func (s *Socket) OutBus(name string, n int, width int) []NodeID {
	return s.bus(name, Output, n, width)
}

// AlwaysResolve marks the element as resolvable even with floating inputs.
// Such elements are also scheduled at the start of every pass.
//
func (s *Socket) AlwaysResolve() { s.alwaysResolve = true }

// FixedWidth makes the element refuse width changes.
//
func (s *Socket) FixedWidth() { s.fixedWidth = true }

// Source marks the element as a signal source, scheduled at the start of
// every pass.
//
func (s *Socket) Source() { s.source = true }

// Overridable exempts the element's outputs from contention errors.
//
func (s *Socket) Overridable() { s.overridable = true }

// Errorf records a mount error. Mount returns the first recorded error.
//
func (s *Socket) Errorf(format string, args ...interface{}) {
	if s.err == nil {
		s.err = errors.Errorf(format, args...)
	}
}

func (s *Socket) bus(name string, k NodeKind, n int, width int) []NodeID {
	out := make([]NodeID, n)
	for i := range out {
		out[i] = s.port(BusPinName(name, i), k, width)
	}
	return out
}

func (s *Socket) port(name string, k NodeKind, width int) NodeID {
	for i := range s.ports {
		if s.ports[i].Name == name {
			s.Errorf("duplicate port name %q", name)
			return s.ports[i].Node
		}
	}
	follow := width == ElementWidth
	if follow {
		width = s.width
	}
	if width < 1 || width > MaxWidth {
		s.Errorf("port %q: invalid bit width %d", name, width)
		width = 1
	}
	n := s.c.newNode(k, width, s.id)
	n.label = name
	s.ports = append(s.ports, Port{Name: name, Node: n.id, Kind: k, Width: width, follow: follow})
	return n.id
}

// BusPinName returns the pin name for the n-th bit of the named bus.
//
func BusPinName(name string, bit int) string {
	return name + "[" + strconv.Itoa(bit) + "]"
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// ElementID identifies an element within a circuit.
//
type ElementID int

// NoElement is the zero ElementID.
//
const NoElement ElementID = 0

func (id ElementID) String() string { return "e" + strconv.Itoa(int(id)) }

// ElementWidth is used as a port width in Socket.In and Socket.Out to
// indicate that the port follows the element's bit width.
//
const ElementWidth = 0

// An Element is a circuit component owning a set of port nodes. Its Resolve
// method computes output values from input values.
//
// All elements must embed Base, which provides the default behavior for every
// method except Resolve.
//
type Element interface {
	ID() ElementID
	Kind() string
	Label() string
	Width() int
	Ports() []Port
	Port(name string) NodeID

	// IsResolvable returns true if the element has enough defined inputs to
	// compute its outputs.
	IsResolvable(c *Circuit) bool
	// Resolve computes outputs and writes them with Circuit.Set.
	// Resolve must be idempotent: calling it twice with unchanged inputs
	// must not change any output.
	Resolve(c *Circuit)
	// RemovePropagation clears the element's outputs.
	RemovePropagation(c *Circuit)
	// NewBitWidth changes the width of the element.
	NewBitWidth(c *Circuit, width int) error

	base() *Base
}

// Tristate is implemented by elements whose outputs can be disconnected.
//
type Tristate interface {
	Element
	Enabled(c *Circuit) bool
}

// A Ticker is toggled by Circuit.Tick.
//
type Ticker interface {
	Tick()
}

// A Resetter has internal state that must be cleared on full circuit resets.
//
type Resetter interface {
	Reset()
}

// Port is a named node of an element.
//
type Port struct {
	Name   string
	Node   NodeID
	Kind   NodeKind
	Width  int
	follow bool // width follows the element width
}

// Base implements the common parts of the Element interface.
//
type Base struct {
	id     ElementID
	kind   string
	label  string
	width  int
	params Params
	ports  []Port

	alwaysResolve bool
	fixedWidth    bool
	source        bool
	overridable   bool

	queued bool
	seq    uint64
}

func (b *Base) base() *Base { return b }

// ID returns the element ID.
//
func (b *Base) ID() ElementID { return b.id }

// Kind returns the element kind, as registered with Register.
//
func (b *Base) Kind() string { return b.kind }

// Label returns the element label.
//
func (b *Base) Label() string { return b.label }

// Width returns the element bit width.
//
func (b *Base) Width() int { return b.width }

// Ports returns the element ports in declaration order.
//
func (b *Base) Ports() []Port { return b.ports }

// Port returns the node bound to the named port, or NoNode.
//
func (b *Base) Port(name string) NodeID {
	for i := range b.ports {
		if b.ports[i].Name == name {
			return b.ports[i].Node
		}
	}
	return NoNode
}

// IsResolvable returns true if all input ports hold a defined value or if the
// element is configured to always resolve.
//
func (b *Base) IsResolvable(c *Circuit) bool {
	if b.alwaysResolve {
		return true
	}
	for i := range b.ports {
		if b.ports[i].Kind == Input && !c.Get(b.ports[i].Node).Defined() {
			return false
		}
	}
	return true
}

// RemovePropagation clears every defined output and schedules it.
//
func (b *Base) RemovePropagation(c *Circuit) {
	for i := range b.ports {
		if b.ports[i].Kind == Output {
			c.Set(b.ports[i].Node, Floating)
		}
	}
}

// NewBitWidth resizes every port following the element width. The next pass
// will run a full reset.
//
func (b *Base) NewBitWidth(c *Circuit, width int) error {
	if b.fixedWidth {
		return errors.Wrapf(ErrFixedWidth, "%s %s", b.kind, b.id)
	}
	if width < 1 || width > MaxWidth {
		return errors.Errorf("%s %s: invalid bit width %d", b.kind, b.id, width)
	}
	b.width = width
	for i := range b.ports {
		p := &b.ports[i]
		if !p.follow {
			continue
		}
		p.Width = width
		if n := c.node(p.Node); n != nil {
			n.width = width
			n.value = Floating
		}
	}
	if b.params != nil {
		b.params[ParamWidth] = width
	}
	c.forceReset = true
	return nil
}

func (b *Base) inputs() []NodeID  { return b.portNodes(Input) }
func (b *Base) outputs() []NodeID { return b.portNodes(Output) }

func (b *Base) portNodes(k NodeKind) []NodeID {
	var ids []NodeID
	for i := range b.ports {
		if b.ports[i].Kind == k {
			ids = append(ids, b.ports[i].Node)
		}
	}
	return ids
}

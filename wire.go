// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// WireID identifies a wire within a circuit.
//
type WireID int

func (id WireID) String() string { return "w" + strconv.Itoa(int(id)) }

// A Wire is an undirected connection between two nodes.
//
type Wire struct {
	ID   WireID
	A, B NodeID
}

// Wires returns all wires in creation order.
//
func (c *Circuit) Wires() []Wire {
	ws := make([]Wire, 0, len(c.wires))
	for _, w := range c.wires {
		if w != nil {
			ws = append(ws, *w)
		}
	}
	return ws
}

func (c *Circuit) findWire(a, b NodeID) *Wire {
	for _, w := range c.wires {
		if w != nil && (w.A == a && w.B == b || w.A == b && w.B == a) {
			return w
		}
	}
	return nil
}

// Connect connects two nodes with a wire and returns the wire ID. If the nodes
// are already connected, the existing wire is returned.
//
// Both nodes are scheduled for propagation on the next pass.
//
func (c *Circuit) Connect(a, b NodeID) (WireID, error) {
	na, nb := c.node(a), c.node(b)
	if na == nil {
		return 0, errors.Wrap(ErrNoSuchNode, a.String())
	}
	if nb == nil {
		return 0, errors.Wrap(ErrNoSuchNode, b.String())
	}
	if a == b {
		return 0, errors.Errorf("cannot connect node %s to itself", a)
	}
	if na.connectedTo(b) {
		return c.findWire(a, b).ID, nil
	}
	na.conns = append(na.conns, b)
	nb.conns = append(nb.conns, a)
	w := &Wire{ID: WireID(len(c.wires) + 1), A: a, B: b}
	c.wires = append(c.wires, w)
	c.dirty = append(c.dirty, a, b)
	return w.ID, nil
}

// Disconnect removes the wire between two nodes.
//
func (c *Circuit) Disconnect(a, b NodeID) error {
	w := c.findWire(a, b)
	if w == nil {
		return errors.Errorf("nodes %s and %s are not connected", a, b)
	}
	return c.RemoveWire(w.ID)
}

// RemoveWire deletes a wire. Junctions left without connections are deleted.
// The next pass will run a full reset.
//
func (c *Circuit) RemoveWire(id WireID) error {
	if id <= 0 || int(id) > len(c.wires) || c.wires[id-1] == nil {
		return errors.Wrap(ErrNoSuchWire, id.String())
	}
	w := c.wires[id-1]
	na, nb := c.node(w.A), c.node(w.B)
	c.unwire(na, nb)
	for _, n := range [...]*Node{na, nb} {
		if n.kind == Intermediate && len(n.conns) == 0 {
			c.deleteNode(n.id)
		}
	}
	c.forceReset = true
	return nil
}

// SplitWire replaces a wire with a new junction and two wires, and returns
// the junction.
//
func (c *Circuit) SplitWire(id WireID) (NodeID, error) {
	if id <= 0 || int(id) > len(c.wires) || c.wires[id-1] == nil {
		return NoNode, errors.Wrap(ErrNoSuchWire, id.String())
	}
	w := c.wires[id-1]
	na, nb := c.node(w.A), c.node(w.B)
	c.unwire(na, nb)
	j := c.NewJunction(na.width)
	if _, err := c.Connect(na.id, j); err != nil {
		return NoNode, err
	}
	if _, err := c.Connect(j, nb.id); err != nil {
		return NoNode, err
	}
	return j, nil
}

func (c *Circuit) unwire(a, b *Node) {
	a.unlink(b.id)
	b.unlink(a.id)
	if w := c.findWire(a.id, b.id); w != nil {
		c.wires[w.ID-1] = nil
	}
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/pkg/errors"
)

// Check looks for wiring mistakes without running a simulation: input ports
// not connected to anything, orphaned junctions, nets driven by more than one
// output and nets connecting ports of different widths.
//
// Elements that can yield (tri-state buffers and sub-circuit outputs) are not
// counted as competing drivers.
//
func (c *Circuit) Check() []error {
	var errs []error
	for _, e := range c.elems {
		if e == nil {
			continue
		}
		for _, p := range e.Ports() {
			if p.Kind == Input && !c.Connected(p.Node) {
				errs = append(errs, errors.Errorf("pin %s not connected to any output", c.pinName(p.Node)))
			}
		}
	}

	seen := make(map[NodeID]bool)
	for _, n := range c.nodes {
		if n == nil || seen[n.id] {
			continue
		}
		if n.kind == Intermediate && len(n.conns) == 0 {
			errs = append(errs, errors.Errorf("junction %s not connected", c.pinName(n.id)))
			continue
		}
		net := c.collectNet(n, seen)
		var drivers []NodeID
		width := 0
		for _, id := range net {
			m := c.nodes[id-1]
			if m.kind == Intermediate {
				continue
			}
			if width == 0 {
				width = m.width
			} else if m.width != width {
				errs = append(errs, errors.Errorf("pin %s: width %d does not match net width %d", c.pinName(id), m.width, width))
			}
			if m.kind == Output && !c.yields(m) {
				drivers = append(drivers, id)
			}
		}
		if len(drivers) > 1 {
			errs = append(errs, errors.Errorf("pin %s connected to more than one output (%d drivers)", c.pinName(drivers[0]), len(drivers)))
		}
	}
	return errs
}

// collectNet returns all nodes reachable from n, in discovery order.
func (c *Circuit) collectNet(n *Node, seen map[NodeID]bool) []NodeID {
	net := []NodeID{n.id}
	seen[n.id] = true
	for i := 0; i < len(net); i++ {
		for _, id := range c.nodes[net[i]-1].conns {
			if !seen[id] {
				seen[id] = true
				net = append(net, id)
			}
		}
	}
	return net
}

func (c *Circuit) pinName(id NodeID) string {
	n := c.node(id)
	if n == nil {
		return id.String()
	}
	e := c.elem(n.owner)
	if e == nil {
		if n.label != "" {
			return n.label
		}
		return id.String()
	}
	name := e.Label()
	if name == "" {
		name = e.Kind() + "#" + e.ID().String()
	}
	return name + "." + n.label
}

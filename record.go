// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "github.com/pkg/errors"

// A ParamSaver updates an element's construction parameters with its current
// state before it is saved.
//
type ParamSaver interface {
	SaveParams(p Params)
}

// ElementRecord is the persistent form of an element: enough to rebuild it with
// NewPart and reconnect its ports.
//
type ElementRecord struct {
	ID     ElementID
	Kind   string
	Label  string
	Params Params
	Ports  []Port
}

// Record returns the persistent form of an element.
//
func (c *Circuit) Record(id ElementID) (ElementRecord, error) {
	e := c.elem(id)
	if e == nil {
		return ElementRecord{}, errors.Wrap(ErrNoSuchElement, id.String())
	}
	b := e.base()
	p := b.params.Clone()
	p[ParamWidth] = b.width
	if s, ok := e.(ParamSaver); ok {
		s.SaveParams(p)
	}
	ports := make([]Port, len(b.ports))
	copy(ports, b.ports)
	return ElementRecord{
		ID:     id,
		Kind:   b.kind,
		Label:  b.label,
		Params: p,
		Ports:  ports,
	}, nil
}

// LabelNode sets the label of a node. Labelling a junction also makes it
// reachable by name with Net.
//
func (c *Circuit) LabelNode(id NodeID, label string) error {
	n := c.node(id)
	if n == nil {
		return errors.Wrap(ErrNoSuchNode, id.String())
	}
	if n.kind == Intermediate {
		if n.label != "" && c.nets[n.label] == id {
			delete(c.nets, n.label)
		}
		if label != "" {
			c.nets[label] = id
		}
	}
	n.label = label
	return nil
}

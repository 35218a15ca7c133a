// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circuitfile

import (
	"sort"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simlib"
	"github.com/pkg/errors"
)

// Save returns the document describing c. Child circuits of sub-circuit
// elements are saved in the document's Subcircuits, indexed by circuit name.
//
func Save(c *logicsim.Circuit) (*Document, error) {
	doc := &Document{Version: Version}
	if err := save(doc, c, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func save(doc *Document, c *logicsim.Circuit, root *Document) error {
	doc.Version = Version
	doc.ID = c.ID().String()
	doc.Name = c.Name()

	nodes := c.Nodes()
	index := make(map[logicsim.NodeID]int, len(nodes))
	for i, n := range nodes {
		index[n.ID()] = i
	}
	doc.Nodes = make([]NodeRecord, len(nodes))
	for i, n := range nodes {
		nr := NodeRecord{Kind: n.Kind().String(), Width: n.Width()}
		if n.Kind() == logicsim.Intermediate {
			nr.Label = n.Label()
		}
		for _, id := range n.Connections() {
			nr.Conns = append(nr.Conns, index[id])
		}
		sort.Ints(nr.Conns)
		doc.Nodes[i] = nr
	}

	for _, e := range c.Elements() {
		rec, err := c.Record(e.ID())
		if err != nil {
			return err
		}
		er := ElementRecord{
			Kind:   rec.Kind,
			Label:  rec.Label,
			Params: map[string]interface{}(rec.Params),
			Ports:  make(map[string]int, len(rec.Ports)),
		}
		for _, p := range rec.Ports {
			er.Ports[p.Name] = index[p.Node]
		}
		doc.Elements = append(doc.Elements, er)

		sub, ok := e.(*simlib.Sub)
		if !ok {
			continue
		}
		child := sub.Circuit()
		if _, done := root.Subcircuits[child.Name()]; done {
			continue
		}
		if root.Subcircuits == nil {
			root.Subcircuits = make(map[string]*Document)
		}
		cd := &Document{}
		root.Subcircuits[child.Name()] = cd
		if err = save(cd, child, root); err != nil {
			return errors.Wrapf(err, "sub-circuit %s", child.Name())
		}
	}
	return nil
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circuitfile

import (
	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simlib"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// A Resolver returns the document of a named sub-circuit.
//
type Resolver interface {
	Resolve(name string) (*Document, error)
}

type loader struct {
	r       Resolver
	opts    []logicsim.Option
	scopes  []map[string]*Document
	loading map[string]bool
}

// Load builds a circuit from a document. Sub-circuits are looked up in the
// document's Subcircuits, then with r, which may be nil. The options are
// applied to the circuit and all its sub-circuits.
//
func Load(doc *Document, r Resolver, opts ...logicsim.Option) (*logicsim.Circuit, error) {
	l := &loader{r: r, opts: opts, loading: make(map[string]bool)}
	return l.load(doc)
}

func (l *loader) load(doc *Document) (*logicsim.Circuit, error) {
	if l.loading[doc.Name] {
		return nil, errors.Errorf("circuit %s includes itself", doc.Name)
	}
	l.loading[doc.Name] = true
	defer delete(l.loading, doc.Name)
	if len(doc.Subcircuits) > 0 {
		l.scopes = append(l.scopes, doc.Subcircuits)
		defer func() { l.scopes = l.scopes[:len(l.scopes)-1] }()
	}

	c := logicsim.New(doc.Name, l.opts...)
	if doc.ID != "" {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "circuit %s", doc.Name)
		}
		c.SetID(id)
	}

	nodes := make([]logicsim.NodeID, len(doc.Nodes))
	for i, er := range doc.Elements {
		spec, err := l.spec(er.Kind, er.Label, er.Params)
		if err != nil {
			return nil, errors.Wrapf(err, "circuit %s: element %d", doc.Name, i)
		}
		id, err := c.Add(spec)
		if err != nil {
			return nil, errors.Wrapf(err, "circuit %s: element %d", doc.Name, i)
		}
		e := c.Element(id)
		for name, idx := range er.Ports {
			if idx < 0 || idx >= len(nodes) {
				return nil, errors.Errorf("circuit %s: element %d: port %s: invalid node index %d", doc.Name, i, name, idx)
			}
			n := e.Port(name)
			if n == logicsim.NoNode {
				return nil, errors.Errorf("circuit %s: element %d: %s has no port %q", doc.Name, i, er.Kind, name)
			}
			if nodes[idx] != logicsim.NoNode {
				return nil, errors.Errorf("circuit %s: node %d bound to several ports", doc.Name, idx)
			}
			nodes[idx] = n
		}
	}

	for i, nr := range doc.Nodes {
		k, ok := logicsim.ParseNodeKind(nr.Kind)
		if !ok {
			return nil, errors.Errorf("circuit %s: node %d: invalid kind %q", doc.Name, i, nr.Kind)
		}
		if nodes[i] != logicsim.NoNode {
			if got := c.Node(nodes[i]).Kind(); got != k {
				return nil, errors.Errorf("circuit %s: node %d: kind %s does not match port kind %s", doc.Name, i, k, got)
			}
			continue
		}
		if k != logicsim.Intermediate {
			return nil, errors.Errorf("circuit %s: node %d: %s node not bound to any element", doc.Name, i, k)
		}
		nodes[i] = c.NewJunction(nr.Width)
		if nr.Label != "" {
			if err := c.LabelNode(nodes[i], nr.Label); err != nil {
				return nil, err
			}
		}
	}

	for i, nr := range doc.Nodes {
		for _, j := range nr.Conns {
			if j < 0 || j >= len(nodes) {
				return nil, errors.Errorf("circuit %s: node %d: invalid connection %d", doc.Name, i, j)
			}
			if _, err := c.Connect(nodes[i], nodes[j]); err != nil {
				return nil, errors.Wrapf(err, "circuit %s: node %d", doc.Name, i)
			}
		}
	}

	for i, p := range doc.Parts {
		spec, err := l.spec(p.Kind, p.Label, p.Params)
		if err != nil {
			return nil, errors.Wrapf(err, "circuit %s: part %d", doc.Name, i)
		}
		if _, err = c.Place(spec, p.Wires); err != nil {
			return nil, errors.Wrapf(err, "circuit %s: part %d", doc.Name, i)
		}
	}
	return c, nil
}

func (l *loader) spec(kind, label string, params map[string]interface{}) (*logicsim.PartSpec, error) {
	p := logicsim.Params(params).Clone()
	if label != "" {
		p[logicsim.ParamLabel] = label
	}
	if name, ok := p[simlib.ParamCircuit].(string); ok && kind == "SubCircuit" {
		doc, err := l.resolve(name)
		if err != nil {
			return nil, err
		}
		child, err := l.load(doc)
		if err != nil {
			return nil, err
		}
		p[simlib.ParamCircuit] = child
	}
	return logicsim.NewPart(kind, p)
}

func (l *loader) resolve(name string) (*Document, error) {
	for i := len(l.scopes) - 1; i >= 0; i-- {
		if doc, ok := l.scopes[i][name]; ok && doc != nil {
			if doc.Name == "" {
				doc.Name = name
			}
			return doc, nil
		}
	}
	if l.r == nil {
		return nil, errors.Errorf("sub-circuit %s not found", name)
	}
	return l.r.Resolve(name)
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package circuitfile reads and writes circuit descriptions.
//
// A circuit file describes a circuit either as an index based graph (Nodes and
// Elements, as written by Save), as a netlist (Parts), or both. Parts are
// placed after the graph has been built, so that a netlist can extend a saved
// circuit:
//
//	name: HalfAdder
//	parts:
//	  - kind: Input
//	    label: a
//	    wires: out=a
//	  - kind: Input
//	    label: b
//	    wires: out=b
//	  - kind: Xor
//	    wires: in[0]=a, in[1]=b, out=sum
//	  - kind: And
//	    wires: in[0]=a, in[1]=b, out=carry
//
// Sub-circuits are elements of kind SubCircuit whose "circuit" parameter names
// another circuit, looked up in the document's Subcircuits, then in a Library.
//
package circuitfile

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Version is the current document format version.
//
const Version = 1

// Document is the serialized form of a circuit.
//
type Document struct {
	Version     int                  `yaml:"version" json:"version"`
	ID          string               `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string               `yaml:"name" json:"name"`
	Nodes       []NodeRecord         `yaml:"nodes,omitempty" json:"nodes,omitempty"`
	Elements    []ElementRecord      `yaml:"elements,omitempty" json:"elements,omitempty"`
	Parts       []Part               `yaml:"parts,omitempty" json:"parts,omitempty"`
	Subcircuits map[string]*Document `yaml:"subcircuits,omitempty" json:"subcircuits,omitempty"`
}

// NodeRecord describes a node. Connections are indices in Document.Nodes.
//
type NodeRecord struct {
	Kind  string `yaml:"kind" json:"kind"`
	Width int    `yaml:"width" json:"width"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
	Conns []int  `yaml:"conns,flow,omitempty" json:"conns,omitempty"`
}

// ElementRecord describes an element. Ports maps port names to indices in
// Document.Nodes.
//
type ElementRecord struct {
	Kind   string                 `yaml:"kind" json:"kind"`
	Label  string                 `yaml:"label,omitempty" json:"label,omitempty"`
	Params map[string]interface{} `yaml:"params,omitempty" json:"params,omitempty"`
	Ports  map[string]int         `yaml:"ports" json:"ports"`
}

// Part is a netlist entry: an element connected to named nets.
//
type Part struct {
	Kind   string                 `yaml:"kind" json:"kind"`
	Label  string                 `yaml:"label,omitempty" json:"label,omitempty"`
	Params map[string]interface{} `yaml:"params,omitempty" json:"params,omitempty"`
	Wires  string                 `yaml:"wires,omitempty" json:"wires,omitempty"`
}

// Format is a document encoding.
//
type Format int

// Supported formats.
//
const (
	YAML Format = iota
	JSON
)

// FormatOf returns the format matching the extension of a file name. Files
// ending in .json are JSON, anything else is read as YAML.
//
func FormatOf(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return JSON
	}
	return YAML
}

// Decode reads a document from r.
//
func Decode(r io.Reader, f Format) (*Document, error) {
	var doc Document
	var err error
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err = dec.Decode(&doc); err == nil {
			doc.fixNumbers()
		}
	default:
		err = yaml.NewDecoder(r).Decode(&doc)
	}
	if err != nil {
		return nil, errors.Wrap(err, "decode circuit")
	}
	if doc.Version > Version {
		return nil, errors.Errorf("unsupported document version %d", doc.Version)
	}
	return &doc, nil
}

// fixNumbers replaces the json.Number parameters of a JSON document with the
// int, uint64 or float64 the YAML decoder would have produced. Parameters may
// hold 64 bit values that do not survive a trip through float64.
//
func (doc *Document) fixNumbers() {
	for i := range doc.Elements {
		fixParams(doc.Elements[i].Params)
	}
	for i := range doc.Parts {
		fixParams(doc.Parts[i].Params)
	}
	for _, sub := range doc.Subcircuits {
		if sub != nil {
			sub.fixNumbers()
		}
	}
}

func fixParams(p map[string]interface{}) {
	for k, v := range p {
		p[k] = fixNumber(v)
	}
}

func fixNumber(v interface{}) interface{} {
	switch v := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return int(i)
		}
		if u, err := strconv.ParseUint(string(v), 10, 64); err == nil {
			return u
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return string(v)
	case []interface{}:
		for i := range v {
			v[i] = fixNumber(v[i])
		}
	case map[string]interface{}:
		fixParams(v)
	}
	return v
}

// Encode writes doc to w.
//
func Encode(w io.Writer, doc *Document, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(doc), "encode circuit")
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(err, "encode circuit")
		}
		return errors.Wrap(enc.Close(), "encode circuit")
	}
}

// ReadFile reads a document from the named file.
//
func ReadFile(name string) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Decode(f, FormatOf(name))
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return doc, nil
}

// WriteFile writes doc to the named file.
//
func WriteFile(name string, doc *Document) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = Encode(f, doc, FormatOf(name)); err != nil {
		f.Close()
		return errors.Wrap(err, name)
	}
	return f.Close()
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "strconv"

// NodeID identifies a node within a circuit. IDs are never reused, so the ID
// of a deleted node stays invalid.
//
type NodeID int

// NoNode is the zero NodeID.
//
const NoNode NodeID = 0

func (id NodeID) String() string { return "n" + strconv.Itoa(int(id)) }

// NodeKind is the role of a node.
//
type NodeKind int

// Node kinds.
//
const (
	Input        NodeKind = iota // input port of an element
	Output                       // output port of an element
	Intermediate                 // free junction, takes any width
)

var nodeKindNames = [...]string{"input", "output", "intermediate"}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

// ParseNodeKind is the reverse of NodeKind.String.
//
func ParseNodeKind(s string) (NodeKind, bool) {
	for i, n := range nodeKindNames {
		if n == s {
			return NodeKind(i), true
		}
	}
	return 0, false
}

// A Node is a connection point carrying a Value of a given bit width.
//
type Node struct {
	id     NodeID
	kind   NodeKind
	width  int
	value  Value
	label  string
	conns  []NodeID
	owner  ElementID
	driver ElementID // element whose output produced value
	lost   ElementID // driver whose retraction left the node floating

	highlighted bool
	queued      bool
	seq         uint64
}

// ID returns the node's ID.
//
func (n *Node) ID() NodeID { return n.id }

// Kind returns the node kind.
//
func (n *Node) Kind() NodeKind { return n.kind }

// Width returns the node's bit width.
//
func (n *Node) Width() int { return n.width }

// Value returns the node's current value.
//
func (n *Node) Value() Value { return n.value }

// Label returns the node's label. Port nodes are labelled with their port name.
//
func (n *Node) Label() string { return n.label }

// Owner returns the element owning this node, or NoElement for junctions.
//
func (n *Node) Owner() ElementID { return n.owner }

// Connections returns the IDs of all nodes connected to n. The returned slice
// must not be modified.
//
func (n *Node) Connections() []NodeID { return n.conns }

// Highlighted reports whether n took part in a diagnostic.
//
func (n *Node) Highlighted() bool { return n.highlighted }

func (n *Node) connectedTo(id NodeID) bool {
	for _, c := range n.conns {
		if c == id {
			return true
		}
	}
	return false
}

func (n *Node) unlink(id NodeID) {
	for i, c := range n.conns {
		if c == id {
			n.conns = append(n.conns[:i], n.conns[i+1:]...)
			return
		}
	}
}

func (n *Node) clear() {
	n.value = Floating
	n.driver = NoElement
	n.lost = NoElement
	n.highlighted = false
}

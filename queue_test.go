// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nop struct{ Base }

func (*nop) Resolve(c *Circuit) {}

func TestQueue(t *testing.T) {
	var q Queue
	n1, n2 := &Node{id: 1}, &Node{id: 2}
	e := &nop{}

	assert.True(t, q.IsEmpty())
	assert.True(t, q.addNode(n1))
	assert.True(t, q.addElement(e))
	assert.False(t, q.addNode(n1), "duplicate node")
	assert.False(t, q.addElement(e), "duplicate element")
	assert.True(t, q.addNode(n2))
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 3, q.Inserted())

	assert.Equal(t, n1, q.pop().node)
	assert.Equal(t, Element(e), q.pop().elem)
	// n1 can be queued again once popped
	assert.True(t, q.addNode(n1))
	assert.Equal(t, n2, q.pop().node)
	assert.Equal(t, n1, q.pop().node)
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 4, q.Inserted())

	q.addNode(n1)
	q.addElement(e)
	q.Reset()
	assert.True(t, q.IsEmpty())
	assert.False(t, n1.queued)
	assert.False(t, e.queued)
	assert.Equal(t, 6, q.Inserted())
}

func TestQueue_compaction(t *testing.T) {
	var q Queue
	nodes := make([]*Node, 3000)
	for i := range nodes {
		nodes[i] = &Node{id: NodeID(i + 1)}
		q.addNode(nodes[i])
	}
	for i := 0; i < 2000; i++ {
		assert.Equal(t, nodes[i], q.pop().node)
	}
	assert.Equal(t, 1000, q.Len())
	for i := 2000; i < 3000; i++ {
		assert.Equal(t, nodes[i], q.pop().node)
	}
	assert.True(t, q.IsEmpty())
}

func TestPairKey(t *testing.T) {
	assert.Equal(t, pairKey(3, 1, true), pairKey(1, 3, true))
	assert.NotEqual(t, pairKey(1, 3, false), pairKey(1, 3, true))
}

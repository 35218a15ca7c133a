// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// Queue is the FIFO of nodes and elements awaiting resolution. Adding an item
// that is already queued is a no-op.
//
type Queue struct {
	items    []entry
	head     int
	seq      uint64
	inserted int
}

// entry holds either a node or an element.
type entry struct {
	node *Node
	elem Element
}

func (q *Queue) addNode(n *Node) bool {
	if n.queued {
		return false
	}
	n.queued = true
	q.seq++
	n.seq = q.seq
	q.push(entry{node: n})
	return true
}

func (q *Queue) addElement(e Element) bool {
	b := e.base()
	if b.queued {
		return false
	}
	b.queued = true
	q.seq++
	b.seq = q.seq
	q.push(entry{elem: e})
	return true
}

func (q *Queue) push(e entry) {
	q.inserted++
	q.items = append(q.items, e)
}

// pop removes the oldest item and clears its queued flag.
func (q *Queue) pop() entry {
	e := q.items[q.head]
	q.items[q.head] = entry{}
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head >= 1024 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	if e.node != nil {
		e.node.queued = false
	} else {
		e.elem.base().queued = false
	}
	return e
}

// Len returns the number of pending items.
//
func (q *Queue) Len() int { return len(q.items) - q.head }

// IsEmpty returns true if no item is pending.
//
func (q *Queue) IsEmpty() bool { return q.Len() == 0 }

// Inserted returns the number of items accepted since the queue was created.
// Rejected duplicates are not counted.
//
func (q *Queue) Inserted() int { return q.inserted }

// Reset drops all pending items.
//
func (q *Queue) Reset() {
	for _, e := range q.items[q.head:] {
		if e.node != nil {
			e.node.queued = false
		} else {
			e.elem.base().queued = false
		}
	}
	for i := range q.items {
		q.items[i] = entry{}
	}
	q.items = q.items[:0]
	q.head = 0
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// resolveNode pushes the value of n to its neighbors and reschedules its owner
// as needed.
func (c *Circuit) resolveNode(n *Node) {
	if !n.value.Defined() {
		c.retract(n)
		return
	}

	if n.kind == Input {
		if e := c.elem(n.owner); e != nil && e.IsResolvable(c) {
			c.queue.addElement(e)
		}
	}

	for _, id := range n.conns {
		nb := c.nodes[id-1]
		if nb.value.Equal(n.value) && nb.width == n.width {
			continue
		}
		switch {
		case nb.kind == Output && nb.value.Defined() && !nb.value.Equal(n.value) && !c.yields(nb):
			if t := c.enabledTristate(n.driver); t != nil {
				// n carries a value from an enabled tri-state buffer: whether
				// that is a conflict depends on the buffer's final state.
				c.pending.Add(t.ID())
				continue
			}
			key := pairKey(int(n.id), int(nb.id), false)
			if n.driver != NoElement {
				key = pairKey(int(n.driver), int(nb.owner), true)
			}
			c.report(&ContentionError{
				Circuit: c.name,
				A:       n.id,
				B:       nb.id,
				ValueA:  n.value,
				ValueB:  nb.value,
				Element: c.elem(nb.owner).Kind(),
			}, key, n, nb)
		case nb.width == n.width || nb.kind == Intermediate:
			if nb.kind == Output && nb.value.Defined() {
				if t := c.enabledTristate(nb.owner); t != nil {
					c.pending.Add(t.ID())
				}
			}
			nb.width = n.width
			nb.value = n.value
			nb.driver = n.driver
			c.queue.addNode(nb)
		default:
			c.report(&BitWidthError{
				Circuit: c.name,
				A:       n.id,
				B:       nb.id,
				WidthA:  n.width,
				WidthB:  nb.width,
			}, pairKey(int(n.id), int(nb.id), false), n, nb)
		}
	}
}

// retract clears the neighbors of a node whose value became floating. Only
// values coming from the lost driver are cleared. Neighbors holding a value
// from another driver are rescheduled so that they drive n again.
func (c *Circuit) retract(n *Node) {
	for _, id := range n.conns {
		nb := c.nodes[id-1]
		if !nb.value.Defined() {
			continue
		}
		if n.lost != NoElement && nb.driver == n.lost {
			nb.value = Floating
			nb.driver = NoElement
			nb.lost = n.lost
		}
		c.queue.addNode(nb)
	}

	e := c.elem(n.owner)
	if e == nil {
		return
	}
	switch n.kind {
	case Input:
		if e.IsResolvable(c) {
			c.queue.addElement(e)
		} else {
			e.RemovePropagation(c)
		}
	case Output:
		if e.base().overridable || !e.IsResolvable(c) {
			return
		}
		if t, ok := e.(Tristate); ok && !t.Enabled(c) {
			return
		}
		c.queue.addElement(e)
	}
}

// yields returns true if the output node nb gives way to other drivers instead
// of reporting contention.
func (c *Circuit) yields(nb *Node) bool {
	e := c.elem(nb.owner)
	if e == nil {
		return true
	}
	if _, ok := e.(Tristate); ok {
		return true
	}
	return e.base().overridable
}

func (c *Circuit) enabledTristate(id ElementID) Tristate {
	if t, ok := c.elem(id).(Tristate); ok && t.Enabled(c) {
		return t
	}
	return nil
}

// report raises a diagnostic once per pass for a given pair of nodes or
// driving elements.
func (c *Circuit) report(d Diagnostic, key diagKey, a, b *Node) {
	if c.reported.Contains(key) {
		return
	}
	c.reported.Add(key)
	a.highlighted = true
	b.highlighted = true
	c.raise(d)
}

type diagKey struct {
	elems bool
	a, b  int
}

func pairKey(a, b int, elems bool) diagKey {
	if a > b {
		a, b = b, a
	}
	return diagKey{elems, a, b}
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"sort"

	"github.com/pkg/errors"
)

// State is the state of the simulation driver.
//
type State int

// Driver states.
//
const (
	Idle State = iota
	Seeding
	Draining
	ContentionCheck
	Halted
)

var stateNames = [...]string{"idle", "seeding", "draining", "contention-check", "halted"}

func (s State) String() string { return stateNames[s] }

// HaltReason indicates how a pass ended.
//
type HaltReason int

// Halt reasons.
//
const (
	HaltClean HaltReason = iota
	HaltCycleLimit
	HaltFatal
)

func (h HaltReason) String() string {
	switch h {
	case HaltClean:
		return "clean"
	case HaltCycleLimit:
		return "cycle_limit"
	}
	return "fatal"
}

// PassResult is the outcome of a simulation pass.
//
type PassResult struct {
	Steps       int          // number of queue items processed
	Reset       bool         // true if the pass started with a full reset
	Halt        HaltReason   // how the pass ended
	Diagnostics []Diagnostic // errors detected during the pass
	Err         error        // fatal error, if any
}

// State returns the state of the simulation driver.
//
func (c *Circuit) State() State { return c.state }

// Fatal returns the pending fatal error, if any.
//
func (c *Circuit) Fatal() error { return c.fatal }

// ClearFatal clears the fatal error flag. The next pass will run a full reset.
//
func (c *Circuit) ClearFatal() {
	c.fatal = nil
	c.forceReset = true
}

// Fail sets the fatal error flag. A pass in progress is aborted after the
// current step and further passes are refused until ClearFatal is called.
//
func (c *Circuit) Fail(err error) {
	if c.fatal == nil {
		c.fatal = err
	}
	c.forceReset = true
}

// RunPass runs the simulation until the circuit is stable.
//
// If forceFullReset is true, or if the circuit was modified in a way that
// requires it, all node values are cleared first. All signal sources and the
// nodes touched by new wires are then scheduled and the queue is drained.
//
// RunPass returns an error wrapping ErrFatalPending without doing anything if
// a previous fatal error has not been cleared. If the pass itself ends with a
// fatal error, that error is returned together with the pass result.
//
func (c *Circuit) RunPass(forceFullReset bool) (*PassResult, error) {
	if c.fatal != nil {
		return nil, errors.Wrap(ErrFatalPending, c.fatal.Error())
	}
	r := &PassResult{}

	c.state = Seeding
	c.queue.Reset()
	if forceFullReset || c.forceReset {
		c.reset()
		r.Reset = true
	}
	c.pending.Clear()
	c.reported.Clear()
	c.diags = nil
	for _, e := range c.elems {
		if e == nil {
			continue
		}
		if b := e.base(); b.source || b.alwaysResolve {
			c.queue.addElement(e)
		}
	}
	for _, id := range c.dirty {
		if n := c.node(id); n != nil {
			c.queue.addNode(n)
		}
	}
	c.dirty = c.dirty[:0]

	c.state = Draining
	for !c.queue.IsEmpty() && c.fatal == nil {
		it := c.queue.pop()
		r.Steps++
		if r.Steps > c.stepLimit {
			c.queue.Reset()
			r.Halt = HaltCycleLimit
			c.raise(&CycleLimitError{Circuit: c.name, Steps: r.Steps - 1})
			break
		}
		switch {
		case it.node != nil:
			c.resolveNode(it.node)
		case it.elem.IsResolvable(c):
			// inputs may have been retracted since it was queued
			it.elem.Resolve(c)
		}
	}
	if c.fatal != nil && r.Halt == HaltClean {
		c.queue.Reset()
		r.Halt = HaltFatal
	}

	if r.Halt == HaltClean {
		c.state = ContentionCheck
		if c.pending.Cardinality() > 0 {
			ids := make([]ElementID, 0, c.pending.Cardinality())
			for _, v := range c.pending.ToSlice() {
				ids = append(ids, v.(ElementID))
			}
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
			r.Halt = HaltFatal
			c.raise(&TriStateContentionError{Circuit: c.name, Elements: ids})
		}
	}

	c.state = Halted
	r.Diagnostics = c.diags
	c.diags = nil
	if r.Halt != HaltClean {
		r.Err = c.fatal
	}
	c.log.Debug("pass done", "steps", r.Steps, "halt", r.Halt.String(), "diagnostics", len(r.Diagnostics))
	for _, o := range c.observers {
		o.PassDone(c, r)
	}
	return r, r.Err
}

// Tick toggles every clock in the circuit and runs a pass.
//
func (c *Circuit) Tick() (*PassResult, error) {
	for _, e := range c.elems {
		if t, ok := e.(Ticker); ok {
			t.Tick()
		}
	}
	return c.RunPass(false)
}

func (c *Circuit) reset() {
	for _, n := range c.nodes {
		if n != nil {
			n.clear()
		}
	}
	for _, e := range c.elems {
		if r, ok := e.(Resetter); ok {
			r.Reset()
		}
	}
	c.forceReset = false
}

// PendContention marks a tri-state element as possibly conflicting with
// another driver. The mark is resolved by ClearContention or reported as a
// TriStateContentionError at the end of the pass.
//
func (c *Circuit) PendContention(id ElementID) { c.pending.Add(id) }

// ClearContention removes a contention mark set on an element.
//
func (c *Circuit) ClearContention(id ElementID) { c.pending.Remove(id) }

// ContentionPending returns true if the element has a contention mark.
//
func (c *Circuit) ContentionPending(id ElementID) bool { return c.pending.Contains(id) }

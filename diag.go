// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"fmt"
	"strconv"
)

// DiagnosticKind is the category of a Diagnostic.
//
type DiagnosticKind int

// Diagnostic kinds.
//
const (
	KindContention DiagnosticKind = iota
	KindBitWidth
	KindCycleLimit
	KindTriStateContention
)

var diagKindNames = [...]string{"contention", "bitwidth", "cycle_limit", "tristate_contention"}

func (k DiagnosticKind) String() string {
	if k < 0 || int(k) >= len(diagKindNames) {
		return "DiagnosticKind(" + strconv.Itoa(int(k)) + ")"
	}
	return diagKindNames[k]
}

// A Diagnostic is an error detected during a simulation pass. Fatal
// diagnostics abort the pass and block further passes until the circuit's
// fatal flag is cleared.
//
type Diagnostic interface {
	error
	Kind() DiagnosticKind
	Fatal() bool
}

// ContentionError is reported when a node tries to overwrite an output port
// holding a different value.
//
type ContentionError struct {
	Circuit        string
	A, B           NodeID
	ValueA, ValueB Value
	Element        string // kind of the element owning B
}

func (e *ContentionError) Error() string {
	return fmt.Sprintf("contention error: %s and %s at %s in %s", e.ValueA, e.ValueB, e.Element, e.Circuit)
}

// Kind implements Diagnostic.
//
func (e *ContentionError) Kind() DiagnosticKind { return KindContention }

// Fatal implements Diagnostic.
//
func (e *ContentionError) Fatal() bool { return false }

// BitWidthError is reported when connected nodes have different bit widths.
//
type BitWidthError struct {
	Circuit        string
	A, B           NodeID
	WidthA, WidthB int
}

func (e *BitWidthError) Error() string {
	return fmt.Sprintf("bit width error: %d and %d in %s", e.WidthA, e.WidthB, e.Circuit)
}

// Kind implements Diagnostic.
//
func (e *BitWidthError) Kind() DiagnosticKind { return KindBitWidth }

// Fatal implements Diagnostic.
//
func (e *BitWidthError) Fatal() bool { return false }

// CycleLimitError is reported when a pass exceeds the step limit, usually
// because of an oscillating loop.
//
type CycleLimitError struct {
	Circuit string
	Steps   int
}

func (e *CycleLimitError) Error() string {
	return fmt.Sprintf("simulation stack limit exceeded in %s after %d steps: maybe due to cyclic paths or contention", e.Circuit, e.Steps)
}

// Kind implements Diagnostic.
//
func (e *CycleLimitError) Kind() DiagnosticKind { return KindCycleLimit }

// Fatal implements Diagnostic.
//
func (e *CycleLimitError) Fatal() bool { return true }

// TriStateContentionError is reported at the end of a pass when enabled
// tri-state buffers still conflict with other drivers.
//
type TriStateContentionError struct {
	Circuit  string
	Elements []ElementID
}

func (e *TriStateContentionError) Error() string {
	return fmt.Sprintf("contention at tri-state buffers %v in %s", e.Elements, e.Circuit)
}

// Kind implements Diagnostic.
//
func (e *TriStateContentionError) Kind() DiagnosticKind { return KindTriStateContention }

// Fatal implements Diagnostic.
//
func (e *TriStateContentionError) Fatal() bool { return true }

// An Observer receives diagnostics and pass results from a circuit.
//
type Observer interface {
	Diagnostic(c *Circuit, d Diagnostic)
	PassDone(c *Circuit, r *PassResult)
}

func (c *Circuit) raise(d Diagnostic) {
	c.diags = append(c.diags, d)
	if d.Fatal() || c.strict {
		c.log.Error("simulation error", "kind", d.Kind().String(), "err", d)
		c.Fail(d)
	} else {
		c.log.Warn("simulation error", "kind", d.Kind().String(), "err", d)
	}
	for _, o := range c.observers {
		o.Diagnostic(c, d)
	}
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package waveform records the values of watched nets after each simulation
// pass.
//
// A Recorder is installed as a circuit observer:
//
//	st := waveform.NewMemStore()
//	rec := waveform.NewRecorder(st, "clk", "q")
//	c := logicsim.New("top", logicsim.WithObserver(rec))
//
// Each completed pass appends one Sample to the store. Names are resolved with
// Circuit.Probe, so they can be net names or element labels.
//
package waveform

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/db47h/logicsim"
)

// A Sample is the state of the watched nets after a pass.
//
type Sample struct {
	Pass        uint64                    `json:"pass"`
	Halt        string                    `json:"halt"`
	Steps       int                       `json:"steps"`
	Diagnostics int                       `json:"diagnostics,omitempty"`
	Values      map[string]logicsim.Value `json:"values"`
}

// Store is the interface for sample storage backends. Samples must be
// returned in pass order.
//
type Store interface {
	Append(s *Sample) error
	Samples() ([]*Sample, error)
	Close() error
}

// Recorder is a logicsim.Observer that appends a Sample to a Store after every
// pass.
//
type Recorder struct {
	st    Store
	names []string
	pass  uint64
	err   error
}

// NewRecorder returns a new recorder watching the given names.
//
func NewRecorder(st Store, names ...string) *Recorder {
	return &Recorder{st: st, names: append([]string(nil), names...)}
}

// Diagnostic implements logicsim.Observer.
//
func (r *Recorder) Diagnostic(c *logicsim.Circuit, d logicsim.Diagnostic) {}

// PassDone implements logicsim.Observer.
//
func (r *Recorder) PassDone(c *logicsim.Circuit, res *logicsim.PassResult) {
	r.pass++
	s := &Sample{
		Pass:        r.pass,
		Halt:        res.Halt.String(),
		Steps:       res.Steps,
		Diagnostics: len(res.Diagnostics),
		Values:      make(map[string]logicsim.Value, len(r.names)),
	}
	for _, n := range r.names {
		v, err := c.Probe(n)
		if err != nil {
			// unknown names read as floating
			c.Logger().Debug("waveform probe", "name", n, "error", err)
		}
		s.Values[n] = v
	}
	if err := r.st.Append(s); err != nil {
		c.Logger().Error("waveform append failed", "pass", r.pass, "error", err)
		if r.err == nil {
			r.err = err
		}
	}
}

// Err returns the first storage error encountered by the recorder.
//
func (r *Recorder) Err() error { return r.err }

// Names returns the watched names.
//
func (r *Recorder) Names() []string { return r.names }

// Trace extracts the successive values of a single name from samples.
//
func Trace(samples []*Sample, name string) []logicsim.Value {
	vs := make([]logicsim.Value, len(samples))
	for i, s := range samples {
		vs[i] = s.Values[name]
	}
	return vs
}

// MemStore is an in-memory Store. It is safe for concurrent use.
//
type MemStore struct {
	mu      sync.Mutex
	samples []*Sample
	closed  bool
}

// NewMemStore returns an empty MemStore.
//
func NewMemStore() *MemStore { return &MemStore{} }

// ErrClosed is returned by stores after Close.
//
var ErrClosed = errors.New("waveform store closed")

// Append implements Store.
//
func (m *MemStore) Append(s *Sample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.samples = append(m.samples, s)
	return nil
}

// Samples implements Store.
//
func (m *MemStore) Samples() ([]*Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	return append([]*Sample(nil), m.samples...), nil
}

// Close implements Store.
//
func (m *MemStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.samples = nil
	m.mu.Unlock()
	return nil
}

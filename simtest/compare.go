// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simtest

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

func sortedKeys(v Vector) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same input and output ports.
//
// The parts are first tested with all inputs set to 0, then all bits set to 1,
// then with iterations sets of random values.
//
func ComparePart(t *testing.T, spec1, spec2 *logicsim.PartSpec, iterations int) {
	t.Helper()

	h1, h2 := NewHarness(t, spec1), NewHarness(t, spec2)

	// compare interfaces
	if err := samePorts(h1, h2); err != nil {
		t.Fatal(err)
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	inputs := make(Vector)
	check := func() {
		t.Helper()
		for _, n := range h1.Inputs() {
			h1.Set(n, inputs[n])
			h2.Set(n, inputs[n])
		}
		h1.Run(t)
		h2.Run(t)
		for _, o := range h1.Outputs() {
			if v1, v2 := h1.Get(o), h2.Get(o); !v1.Equal(v2) {
				t.Fatalf("\nExpected %v => %s=%v\nGot %v", inputs, o, v1, v2)
			}
		}
	}

	start := time.Now()

	// try all 0
	for _, n := range h1.Inputs() {
		inputs[n] = 0
	}
	check()

	// try all 1
	for _, n := range h1.Inputs() {
		inputs[n] = logicsim.Mask(h1.C.Width(h1.E.Port(n)))
	}
	check()

	for i := 0; i < iterations; i++ {
		for _, n := range h1.Inputs() {
			inputs[n] = rnd.Uint64() & logicsim.Mask(h1.C.Width(h1.E.Port(n)))
		}
		check()
	}

	t.Logf("%s vs %s: %d passes in %v", spec1.Kind, spec2.Kind, iterations+2, time.Since(start))
}

func samePorts(h1, h2 *Harness) error {
	p1, p2 := h1.E.Ports(), h2.E.Ports()
	desc := func(h *Harness) string {
		var b strings.Builder
		for _, p := range h.E.Ports() {
			fmt.Fprintf(&b, " %s:%s/%d", p.Kind, p.Name, h.C.Width(p.Node))
		}
		return b.String()
	}
	if len(p1) != len(p2) {
		return errors.Errorf("port mismatch:\n%s\n%s", desc(h1), desc(h2))
	}
	byName := make(map[string]logicsim.Port, len(p2))
	for _, p := range p2 {
		byName[p.Name] = p
	}
	for _, p := range p1 {
		q, ok := byName[p.Name]
		if !ok || q.Kind != p.Kind || h1.C.Width(p.Node) != h2.C.Width(q.Node) {
			return errors.Errorf("port mismatch:\n%s\n%s", desc(h1), desc(h2))
		}
	}
	return nil
}

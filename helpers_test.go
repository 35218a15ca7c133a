// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simlib"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

// place mounts a new element in c and returns it.
func place(t *testing.T, c *sim.Circuit, fn sim.NewPartFn, p sim.Params, conns string) sim.Element {
	t.Helper()
	spec, err := fn(p)
	require.NoError(t, err)
	id, err := c.Place(spec, conns)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	return c.Element(id)
}

func input(t *testing.T, c *sim.Circuit, net string, width int, v uint64) *simlib.Input {
	t.Helper()
	return place(t, c, simlib.NewInput, sim.Params{"width": width, "value": int(v)}, "out="+net).(*simlib.Input)
}

func run(t *testing.T, c *sim.Circuit) *sim.PassResult {
	t.Helper()
	r, err := c.RunPass(false)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	return r
}

func net(c *sim.Circuit, name string) sim.Value { return c.Get(c.Net(name)) }

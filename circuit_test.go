// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simlib"
)

func TestCircuit_Connect(t *testing.T) {
	c := sim.New("connect")
	a, b := c.NewJunction(1), c.NewJunction(1)

	w, err := c.Connect(a, b)
	require.NoError(t, err)
	w2, err := c.Connect(b, a)
	require.NoError(t, err)
	assert.Equal(t, w, w2, "connecting twice must return the existing wire")
	assert.Len(t, c.Wires(), 1)
	assert.Equal(t, []sim.NodeID{b}, c.Node(a).Connections())
	assert.Equal(t, []sim.NodeID{a}, c.Node(b).Connections())

	_, err = c.Connect(a, a)
	assert.Error(t, err)
	_, err = c.Connect(a, 1234)
	assert.Equal(t, sim.ErrNoSuchNode, errors.Cause(err))
}

func TestCircuit_RemoveWire(t *testing.T) {
	c := sim.New("remove")
	in := input(t, c, "x", 1, 1)
	j := c.Net("x")
	require.Len(t, c.Wires(), 1)

	require.NoError(t, c.Disconnect(in.Out, j))
	assert.Nil(t, c.Node(j), "orphaned junction must be deleted")
	assert.NotNil(t, c.Node(in.Out), "ports are never deleted with wires")
	assert.Empty(t, c.Wires())
	assert.Error(t, c.Disconnect(in.Out, j))

	// a new net with the same name is a new node
	assert.NotEqual(t, j, c.Net("x"))
}

func TestCircuit_SplitWire(t *testing.T) {
	c := sim.New("split")
	in := input(t, c, "x", 2, 2)
	not := place(t, c, simlib.NewNot, sim.Params{"width": 2}, "")
	w, err := c.Connect(in.Out, not.Port("in"))
	require.NoError(t, err)

	j, err := c.SplitWire(w)
	require.NoError(t, err)
	assert.Equal(t, sim.Intermediate, c.Node(j).Kind())
	assert.ElementsMatch(t, []sim.NodeID{in.Out, not.Port("in")}, c.Node(j).Connections())

	run(t, c)
	assert.Equal(t, sim.Of(2), c.Get(j))
	assert.Equal(t, sim.Of(1), c.Get(not.Port("out")))
}

func TestCircuit_Remove(t *testing.T) {
	c := sim.New("remove")
	a := input(t, c, "a", 1, 1)
	n := place(t, c, simlib.NewNot, nil, "in=a, out=b")
	out := place(t, c, simlib.NewOutput, nil, "in=b")
	run(t, c)
	require.Equal(t, sim.Of(0), out.(*simlib.Output).Value(c))

	ports := n.Ports()
	require.NoError(t, c.Remove(n.ID()))
	assert.Nil(t, c.Element(n.ID()))
	for _, p := range ports {
		assert.Nil(t, c.Node(p.Node), "port %s", p.Name)
	}
	// nets a and b are still connected to a and out
	assert.NotNil(t, c.Node(c.Net("a")))
	assert.Equal(t, sim.ErrNoSuchElement, errors.Cause(c.Remove(n.ID())))

	r := run(t, c)
	assert.True(t, r.Reset, "removing an element must force a full reset")
	assert.Equal(t, sim.Of(1), c.Get(a.Out))
	assert.False(t, out.(*simlib.Output).Value(c).Defined())
}

func TestCircuit_Place(t *testing.T) {
	c := sim.New("place")
	spec, err := simlib.NewAnd(sim.Params{"inputs": 4})
	require.NoError(t, err)

	_, err = c.Place(spec, "in[0..3]=x, out=y")
	require.NoError(t, err)
	x := c.Node(c.Net("x"))
	assert.Len(t, x.Connections(), 4)

	_, err = c.Place(spec, "in[0..1]=a[0..2]")
	assert.Error(t, err)
	_, err = c.Place(spec, "foo=bar")
	assert.Error(t, err)
	_, err = c.Place(spec, "in[0]=")
	assert.Error(t, err)
	assert.Len(t, c.Elements(), 1, "failed placements must not leave elements behind")
}

func TestCircuit_SetWidth(t *testing.T) {
	c := sim.New("width")
	add := place(t, c, simlib.NewAdder, sim.Params{"width": 4}, "a=a, b=b, sum=s, cout=co")
	require.NoError(t, c.SetWidth(add.ID(), 8))
	assert.Equal(t, 8, add.Width())
	assert.Equal(t, 8, c.Width(add.Port("a")))
	assert.Equal(t, 8, c.Width(add.Port("sum")))
	assert.Equal(t, 1, c.Width(add.Port("cout")))
	assert.Error(t, c.SetWidth(add.ID(), 65))

	led := place(t, c, simlib.NewDigitalLED, nil, "in=co")
	assert.Equal(t, sim.ErrFixedWidth, errors.Cause(c.SetWidth(led.ID(), 2)))

	rec, err := c.Record(add.ID())
	require.NoError(t, err)
	assert.Equal(t, 8, rec.Params.Int("width", 0))
}

func TestCircuit_Check(t *testing.T) {
	c := sim.New("check")
	input(t, c, "x", 1, 1)
	input(t, c, "x", 1, 0)
	place(t, c, simlib.NewTriState, nil, "in=x, out=x")
	place(t, c, simlib.NewNot, sim.Params{"width": 2}, "in=x")
	c.NewJunction(1)

	errs := c.Check()
	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	assert.Contains(t, msgs, "pin TriState#e3.en not connected to any output")
	assert.Contains(t, msgs, "junction n9 not connected")
	assert.Len(t, msgs, 4)
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simlib"
	"github.com/db47h/logicsim/simtest"
)

// nandXor returns a XOR gate made of four NAND gates.
func nandXor() *sim.Circuit {
	c := sim.New("NandXor")
	nand := simlib.Must(simlib.NewNand(nil))
	c.MustPlace(simlib.Must(simlib.NewInput(sim.Params{"label": "in[0]"})), "out=a")
	c.MustPlace(simlib.Must(simlib.NewInput(sim.Params{"label": "in[1]"})), "out=b")
	c.MustPlace(nand, "in[0]=a, in[1]=b, out=n1")
	c.MustPlace(nand, "in[0]=a, in[1]=n1, out=n2")
	c.MustPlace(nand, "in[0]=b, in[1]=n1, out=n3")
	c.MustPlace(nand, "in[0]=n2, in[1]=n3, out=x")
	c.MustPlace(simlib.Must(simlib.NewOutput(sim.Params{"label": "out"})), "in=x")
	return c
}

func TestComparePart(t *testing.T) {
	xor := simlib.Must(simlib.NewXor(nil))
	sub := simlib.Must(simlib.NewSubCircuit(sim.Params{simlib.ParamCircuit: nandXor()}))
	simtest.ComparePart(t, xor, sub, 8)
}

func TestTruthTable(t *testing.T) {
	simtest.TruthTable(t, simlib.Must(simlib.NewAnd(sim.Params{"width": 2})), []simtest.Case{
		{In: simtest.Vector{"in[0]": 0, "in[1]": 0}, Out: simtest.Vector{"out": 0}},
		{In: simtest.Vector{"in[0]": 3, "in[1]": 1}, Out: simtest.Vector{"out": 1}},
		{In: simtest.Vector{"in[1]": 2}, Out: simtest.Vector{"out": 2}},
		{In: simtest.Vector{"in[1]": 3}, Out: simtest.Vector{"out": 3}},
	})
}

func TestHarness(t *testing.T) {
	h := simtest.NewHarness(t, simlib.Must(simlib.NewNot(sim.Params{"width": 4})))
	assert.Equal(t, []string{"in"}, h.Inputs())
	assert.Equal(t, []string{"out"}, h.Outputs())

	h.Run(t)
	assert.False(t, h.Get("out").Defined())
	h.Set("in", 5)
	h.Run(t)
	assert.Equal(t, sim.Of(10), h.Get("out"))
	h.Float("in")
	h.Run(t)
	assert.False(t, h.Get("out").Defined())

	assert.Panics(t, func() { h.Set("out", 1) })
	assert.Panics(t, func() { h.Get("nope") })
}

func TestVector_String(t *testing.T) {
	assert.Equal(t, "a=1, b=2", simtest.Vector{"b": 2, "a": 1}.String())
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simlib_test

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"

	sim "github.com/db47h/logicsim"
	sl "github.com/db47h/logicsim/simlib"
	"github.com/db47h/logicsim/simtest"
)

type vec = simtest.Vector

func TestAdder(t *testing.T) {
	simtest.TruthTable(t, sl.Must(sl.NewAdder(sim.Params{"width": 8})), []simtest.Case{
		{In: vec{"a": 1, "b": 2, "cin": 0}, Out: vec{"sum": 3, "cout": 0}},
		{In: vec{"cin": 1}, Out: vec{"sum": 4, "cout": 0}},
		{In: vec{"a": 255, "b": 1, "cin": 0}, Out: vec{"sum": 0, "cout": 1}},
		{In: vec{"a": 200, "b": 100, "cin": 1}, Out: vec{"sum": 45, "cout": 1}},
	})

	h := simtest.NewHarness(t, sl.Must(sl.NewAdder(sim.Params{"width": 64})))
	h.Set("a", ^uint64(0))
	h.Set("b", 2)
	h.Run(t)
	assert.Equal(t, sim.Of(1), h.Get("sum"))
	assert.Equal(t, sim.Of(1), h.Get("cout"))
}

func TestAdder_floatingCarry(t *testing.T) {
	h := simtest.NewHarness(t, sl.Must(sl.NewAdder(sim.Params{"width": 4})))
	h.Set("a", 3)
	h.Run(t)
	assert.False(t, h.Get("sum").Defined(), "b is floating")
	h.Set("b", 4)
	h.Run(t)
	assert.Equal(t, sim.Of(7), h.Get("sum"))
}

func TestALU(t *testing.T) {
	spec := sl.Must(sl.NewALU(sim.Params{"width": 4}))
	simtest.TruthTable(t, spec, []simtest.Case{
		{In: vec{"a": 0xc, "b": 0xa, "ctrl": sl.ALUAnd}, Out: vec{"out": 0x8, "cout": 0}},
		{In: vec{"ctrl": sl.ALUOr}, Out: vec{"out": 0xe, "cout": 0}},
		{In: vec{"ctrl": sl.ALUAdd}, Out: vec{"out": 0x6, "cout": 1}},
		{In: vec{"ctrl": sl.ALUNop, "a": 1}, Out: vec{"out": 0x6, "cout": 1}},
		{In: vec{"ctrl": sl.ALUAndNot}, Out: vec{"out": 0x1, "cout": 0}},
		{In: vec{"ctrl": sl.ALUOrNot}, Out: vec{"out": 0x5, "cout": 0}},
		{In: vec{"ctrl": sl.ALUSub, "a": 3, "b": 5}, Out: vec{"out": 0xe, "cout": 0}},
		{In: vec{"ctrl": sl.ALULess}, Out: vec{"out": 1}},
		{In: vec{"a": 5}, Out: vec{"out": 0}},
	})
}

func TestComparator(t *testing.T) {
	simtest.TruthTable(t, sl.Must(sl.NewUnsignedComparator(sim.Params{"width": 4})), []simtest.Case{
		{In: vec{"a": 1, "b": 2}, Out: vec{"lt": 1, "eq": 0, "gt": 0}},
		{In: vec{"a": 2}, Out: vec{"lt": 0, "eq": 1, "gt": 0}},
		{In: vec{"a": 0xf}, Out: vec{"lt": 0, "eq": 0, "gt": 1}},
	})
	simtest.TruthTable(t, sl.Must(sl.NewSignedComparator(sim.Params{"width": 4})), []simtest.Case{
		{In: vec{"a": 1, "b": 2}, Out: vec{"lt": 1, "eq": 0, "gt": 0}},
		{In: vec{"a": 0xf}, Out: vec{"lt": 1, "eq": 0, "gt": 0}},
		{In: vec{"b": 0x8}, Out: vec{"lt": 0, "eq": 0, "gt": 1}},
		{In: vec{"a": 0x8}, Out: vec{"lt": 0, "eq": 1, "gt": 0}},
	})
}

func TestComparator_quick(t *testing.T) {
	h := simtest.NewHarness(t, sl.Must(sl.NewSignedComparator(sim.Params{"width": 16})))
	f := func(a, b int16) bool {
		h.Set("a", uint64(uint16(a)))
		h.Set("b", uint64(uint16(b)))
		h.Run(t)
		return h.Get("lt").Equal(sim.Bool(a < b)) && h.Get("gt").Equal(sim.Bool(a > b)) && h.Get("eq").Equal(sim.Bool(a == b))
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestShift(t *testing.T) {
	simtest.TruthTable(t, sl.Must(sl.NewShiftLeft(sim.Params{"width": 8})), []simtest.Case{
		{In: vec{"in": 0x81, "shift": 1}, Out: vec{"out": 0x02}},
		{In: vec{"shift": 7}, Out: vec{"out": 0x80}},
		{In: vec{"shift": 200}, Out: vec{"out": 0}},
	})
	simtest.TruthTable(t, sl.Must(sl.NewShiftRight(sim.Params{"width": 8, "outputWidth": 4})), []simtest.Case{
		{In: vec{"in": 0xf0, "shift": 2}, Out: vec{"out": 0xc}},
		{In: vec{"shift": 4}, Out: vec{"out": 0xf}},
	})
}

func TestMSB(t *testing.T) {
	simtest.TruthTable(t, sl.Must(sl.NewMSB(sim.Params{"width": 8})), []simtest.Case{
		{In: vec{"in": 0}, Out: vec{"out": 0, "en": 0}},
		{In: vec{"in": 1}, Out: vec{"out": 0, "en": 1}},
		{In: vec{"in": 0x51}, Out: vec{"out": 6, "en": 1}},
	})
}

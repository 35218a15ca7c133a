// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simlib"
)

func TestValue(t *testing.T) {
	assert.False(t, sim.Floating.Defined())
	assert.Equal(t, "x", sim.Floating.String())
	assert.Equal(t, "42", sim.Of(42).String())
	assert.Equal(t, sim.Of(0xa), sim.Of(0xfa).Mask(4))
	assert.Equal(t, sim.Floating, sim.Floating.Mask(4))
	assert.True(t, sim.Of(1).Equal(sim.Bool(true)))
	assert.False(t, sim.Of(0).Equal(sim.Floating))
	assert.Equal(t, ^uint64(0), sim.Mask(64))
	assert.Equal(t, uint64(7), sim.Mask(3))
}

func TestParseValue(t *testing.T) {
	td := []struct {
		in  string
		out sim.Value
		err bool
	}{
		{"x", sim.Floating, false},
		{"X", sim.Floating, false},
		{"0", sim.Of(0), false},
		{" 42 ", sim.Of(42), false},
		{"0x2a", sim.Of(42), false},
		{"0b101", sim.Of(5), false},
		{"18446744073709551615", sim.Of(^uint64(0)), false},
		{"-1", sim.Floating, true},
		{"z", sim.Floating, true},
		{"", sim.Floating, true},
	}
	for _, d := range td {
		v, err := sim.ParseValue(d.in)
		if d.err {
			assert.Error(t, err, d.in)
			continue
		}
		require.NoError(t, err, d.in)
		assert.True(t, d.out.Equal(v), "%q: got %s, want %s", d.in, v, d.out)
	}
}

func TestValue_text(t *testing.T) {
	m := map[string]sim.Value{"a": sim.Of(3), "b": sim.Floating}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"3","b":"x"}`, string(b))

	var got map[string]sim.Value
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, m, got)

	var v sim.Value
	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &v))
}

func TestCircuit_Probe(t *testing.T) {
	c := sim.New("probe")
	in := input(t, c, "a", 4, 9)
	require.NoError(t, c.SetLabel(in.ID(), "A"))
	out := place(t, c, simlib.NewOutput, sim.Params{"width": 4}, "in=a")
	require.NoError(t, c.SetLabel(out.ID(), "Q"))
	run(t, c)

	for _, name := range []string{"a", "A", "Q"} {
		v, err := c.Probe(name)
		require.NoError(t, err, name)
		assert.Equal(t, sim.Of(9), v, name)
	}
	_, err := c.Probe("nope")
	assert.Error(t, err)

	_, ok := c.LookupNet("a")
	assert.True(t, ok)
	_, ok = c.LookupNet("nope")
	assert.False(t, ok)
	_, ok = c.LookupNet("nope")
	assert.False(t, ok, "lookup must not create nets")
}

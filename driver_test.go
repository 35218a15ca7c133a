// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simlib"
)

func TestRunPass_adder(t *testing.T) {
	c := sim.New("adder")
	a := input(t, c, "a", 4, 3)
	b := input(t, c, "b", 4, 5)
	place(t, c, simlib.NewAdder, sim.Params{"width": 4}, "a=a, b=b, sum=s, cout=co")

	r := run(t, c)
	assert.Empty(t, r.Diagnostics)
	assert.Equal(t, sim.HaltClean, r.Halt)
	assert.Equal(t, sim.Of(8), net(c, "s"))
	assert.Equal(t, sim.Of(0), net(c, "co"))

	a.Set(15)
	b.Set(1)
	r = run(t, c)
	assert.Empty(t, r.Diagnostics)
	assert.Equal(t, sim.Of(0), net(c, "s"))
	assert.Equal(t, sim.Of(1), net(c, "co"))
	assert.Equal(t, sim.Halted, c.State())
}

func TestRunPass_floatingInput(t *testing.T) {
	c := sim.New("and")
	input(t, c, "a", 1, 1)
	place(t, c, simlib.NewInput, sim.Params{"floating": true}, "out=b")
	place(t, c, simlib.NewAnd, nil, "in[0]=a, in[1]=b, out=strict")
	place(t, c, simlib.NewAnd, sim.Params{"floatingAsZero": true}, "in[0]=a, in[1]=b, out=lenient")

	run(t, c)
	assert.False(t, net(c, "b").Defined())
	assert.False(t, net(c, "strict").Defined())
	assert.Equal(t, sim.Of(0), net(c, "lenient"))
}

func TestRunPass_contention(t *testing.T) {
	c := sim.New("contention")
	in1 := input(t, c, "x", 1, 1)
	in2 := input(t, c, "x", 1, 0)

	r, err := c.RunPass(false)
	require.NoError(t, err, "contention is not fatal")
	assert.Equal(t, sim.HaltClean, r.Halt)
	require.Len(t, r.Diagnostics, 1)
	d, ok := r.Diagnostics[0].(*sim.ContentionError)
	require.True(t, ok, "got %T", r.Diagnostics[0])
	assert.False(t, d.Fatal())
	assert.Equal(t, "contention", d.Kind().String())
	assert.True(t, c.Node(d.A).Highlighted())
	assert.True(t, c.Node(d.B).Highlighted())
	// neither driver is silently overwritten
	assert.Equal(t, sim.Of(1), c.Get(in1.Out))
	assert.Equal(t, sim.Of(0), c.Get(in2.Out))
	assert.Nil(t, c.Fatal())

	// a stable circuit reports nothing new
	r = run(t, c)
	assert.Empty(t, r.Diagnostics)
	r, err = c.RunPass(true)
	require.NoError(t, err)
	assert.Len(t, r.Diagnostics, 1)
}

func TestRunPass_strict(t *testing.T) {
	c := sim.New("strict", sim.WithStrict(true))
	input(t, c, "x", 1, 1)
	input(t, c, "x", 1, 0)

	r, err := c.RunPass(false)
	require.Error(t, err)
	assert.Equal(t, sim.HaltFatal, r.Halt)
	assert.True(t, c.Queue().IsEmpty())
	_, err = c.RunPass(false)
	assert.Equal(t, sim.ErrFatalPending, errors.Cause(err))
}

func TestRunPass_bitWidth(t *testing.T) {
	c := sim.New("width")
	input(t, c, "x", 4, 5)
	place(t, c, simlib.NewNot, nil, "in=x, out=y")

	r := run(t, c)
	require.Len(t, r.Diagnostics, 1)
	d, ok := r.Diagnostics[0].(*sim.BitWidthError)
	require.True(t, ok, "got %T", r.Diagnostics[0])
	assert.ElementsMatch(t, []int{4, 1}, []int{d.WidthA, d.WidthB})
	assert.True(t, c.Node(d.A).Highlighted())
	assert.True(t, c.Node(d.B).Highlighted())
	assert.False(t, net(c, "y").Defined())
}

func tristateCircuit(t *testing.T, tristateFirst bool) (*sim.Circuit, *simlib.Input) {
	c := sim.New("tristate")
	var en *simlib.Input
	if tristateFirst {
		place(t, c, simlib.NewTriState, nil, "in=one, en=en, out=bus")
		input(t, c, "one", 1, 1)
		en = input(t, c, "en", 1, 1)
		input(t, c, "bus", 1, 0)
	} else {
		input(t, c, "bus", 1, 0)
		input(t, c, "one", 1, 1)
		en = input(t, c, "en", 1, 1)
		place(t, c, simlib.NewTriState, nil, "in=one, en=en, out=bus")
	}
	return c, en
}

func TestRunPass_tristateContention(t *testing.T) {
	for _, first := range []bool{false, true} {
		c, en := tristateCircuit(t, first)
		r, err := c.RunPass(false)
		require.Error(t, err, "tri-state first: %v", first)
		assert.Equal(t, sim.HaltFatal, r.Halt)
		require.NotEmpty(t, r.Diagnostics)
		d, ok := r.Diagnostics[len(r.Diagnostics)-1].(*sim.TriStateContentionError)
		require.True(t, ok, "got %T", r.Diagnostics[len(r.Diagnostics)-1])
		assert.True(t, d.Fatal())
		assert.Len(t, d.Elements, 1)
		for _, d := range r.Diagnostics {
			assert.IsType(t, (*sim.TriStateContentionError)(nil), d, "tri-state conflicts are not plain contention")
		}

		_, err = c.RunPass(false)
		assert.Equal(t, sim.ErrFatalPending, errors.Cause(err))

		en.Set(0)
		c.ClearFatal()
		r = run(t, c)
		assert.True(t, r.Reset)
		assert.Empty(t, r.Diagnostics)
		assert.Equal(t, sim.Of(0), net(c, "bus"))
	}
}

func TestRunPass_tristateBus(t *testing.T) {
	c := sim.New("bus")
	place(t, c, simlib.NewTriState, sim.Params{"width": 4}, "in=a, en=ea, out=bus")
	place(t, c, simlib.NewTriState, sim.Params{"width": 4}, "in=b, en=eb, out=bus")
	input(t, c, "a", 4, 3)
	input(t, c, "b", 4, 9)
	ea := input(t, c, "ea", 1, 1)
	eb := input(t, c, "eb", 1, 0)

	r := run(t, c)
	assert.Empty(t, r.Diagnostics)
	assert.Equal(t, sim.Of(3), net(c, "bus"))

	ea.Set(0)
	eb.Set(1)
	r = run(t, c)
	assert.Empty(t, r.Diagnostics)
	assert.Equal(t, sim.Of(9), net(c, "bus"))

	ea.Set(1)
	_, err := c.RunPass(false)
	require.Error(t, err)
	assert.IsType(t, (*sim.TriStateContentionError)(nil), err)
}

// ring builds an oscillator: a force gate seeded by a constant 0 feeding a
// ring of three inverters looping back into the force gate.
func ring(t *testing.T, opts ...sim.Option) *sim.Circuit {
	c := sim.New("ring", opts...)
	input(t, c, "zero", 1, 0)
	place(t, c, simlib.NewForceGate, nil, "in1=zero, in2=loop, out=a")
	place(t, c, simlib.NewNot, nil, "in=a, out=b")
	place(t, c, simlib.NewNot, nil, "in=b, out=c")
	place(t, c, simlib.NewNot, nil, "in=c, out=loop")
	return c
}

func TestRunPass_cycleLimit(t *testing.T) {
	c := ring(t)
	r, err := c.RunPass(false)
	require.Error(t, err)
	assert.Equal(t, sim.HaltCycleLimit, r.Halt)
	assert.Equal(t, sim.DefaultStepLimit+1, r.Steps)
	d, ok := err.(*sim.CycleLimitError)
	require.True(t, ok, "got %T", err)
	assert.Equal(t, sim.DefaultStepLimit, d.Steps)
	assert.True(t, c.Queue().IsEmpty(), "queue must be reset after abort")

	_, err = c.RunPass(false)
	assert.Equal(t, sim.ErrFatalPending, errors.Cause(err))

	c.ClearFatal()
	r, err = c.RunPass(false)
	require.Error(t, err)
	assert.True(t, r.Reset)
}

// Without a defined value to start from, inverter loops never oscillate: a
// Not with a floating input is not resolvable, so every node stays floating
// and the pass only visits the new nodes.
func TestRunPass_unseededLoop(t *testing.T) {
	c := sim.New("self")
	place(t, c, simlib.NewNot, nil, "in=l, out=l")
	r := run(t, c)
	assert.Equal(t, sim.HaltClean, r.Halt)
	assert.Equal(t, 3, r.Steps)
	assert.Empty(t, r.Diagnostics)
	assert.False(t, net(c, "l").Defined())

	c = sim.New("ring3")
	place(t, c, simlib.NewNot, nil, "in=a, out=b")
	place(t, c, simlib.NewNot, nil, "in=b, out=c")
	place(t, c, simlib.NewNot, nil, "in=c, out=a")
	r = run(t, c)
	assert.Equal(t, sim.HaltClean, r.Halt)
	assert.Equal(t, 9, r.Steps)
	assert.Empty(t, r.Diagnostics)
	for _, n := range []string{"a", "b", "c"} {
		assert.False(t, net(c, n).Defined(), n)
	}
}

func TestRunPass_stepLimitOption(t *testing.T) {
	c := ring(t, sim.WithStepLimit(100))
	r, err := c.RunPass(false)
	require.Error(t, err)
	assert.Equal(t, 101, r.Steps)
}

func TestRunPass_retraction(t *testing.T) {
	c := sim.New("retract")
	a := input(t, c, "a", 1, 1)
	place(t, c, simlib.NewNot, nil, "in=a, out=b")
	place(t, c, simlib.NewNot, nil, "in=b, out=c")
	run(t, c)
	require.Equal(t, sim.Of(1), net(c, "c"))

	a.SetValue(sim.Floating)
	run(t, c)
	for _, n := range []string{"a", "b", "c"} {
		assert.False(t, net(c, n).Defined(), "net %s", n)
	}

	a.Set(0)
	run(t, c)
	assert.Equal(t, sim.Of(0), net(c, "c"))
}

func adderChain(t *testing.T) *sim.Circuit {
	c := sim.New("chain")
	input(t, c, "a", 8, 200)
	input(t, c, "b", 8, 100)
	input(t, c, "cin", 1, 1)
	place(t, c, simlib.NewAdder, sim.Params{"width": 8}, "a=a, b=b, cin=cin, sum=s, cout=co")
	place(t, c, simlib.NewAdder, sim.Params{"width": 8}, "a=s, b=a, cin=co, sum=s2, cout=co2")
	place(t, c, simlib.NewUnsignedComparator, sim.Params{"width": 8}, "a=s, b=s2, lt=lt, eq=eq, gt=gt")
	return c
}

func snapshot(c *sim.Circuit) map[string]string {
	m := make(map[string]string)
	for _, n := range c.Nodes() {
		m[n.ID().String()+"/"+n.Label()] = n.Value().String()
	}
	return m
}

func TestRunPass_deterministic(t *testing.T) {
	c1, c2 := adderChain(t), adderChain(t)
	r1, r2 := run(t, c1), run(t, c2)
	assert.Equal(t, r1.Steps, r2.Steps)
	if diff := cmp.Diff(snapshot(c1), snapshot(c2)); diff != "" {
		t.Errorf("circuits differ (-c1 +c2):\n%s", diff)
	}
	assert.Equal(t, c1.Queue().Inserted(), c2.Queue().Inserted())
	assert.Equal(t, sim.Of(45), net(c1, "s"))
	assert.Equal(t, sim.Of(1), net(c1, "co"))
	assert.Equal(t, sim.Of(246), net(c1, "s2"))
}

func TestElement_idempotentResolve(t *testing.T) {
	c := adderChain(t)
	run(t, c)
	n := c.Queue().Inserted()
	for i := 0; i < 2; i++ {
		for _, e := range c.Elements() {
			if e.IsResolvable(c) {
				e.Resolve(c)
			}
		}
	}
	assert.Equal(t, n, c.Queue().Inserted())
	assert.True(t, c.Queue().IsEmpty())
}

func TestRunPass_symmetry(t *testing.T) {
	c := adderChain(t)
	r := run(t, c)
	require.Empty(t, r.Diagnostics)
	for _, w := range c.Wires() {
		a, b := c.Node(w.A), c.Node(w.B)
		assert.Equal(t, a.Value(), b.Value(), "wire %s", w.ID)
		assert.Equal(t, a.Width(), b.Width(), "wire %s", w.ID)
	}
}

func TestRunPass_incremental(t *testing.T) {
	c := adderChain(t)
	r := run(t, c)
	full := r.Steps
	r = run(t, c)
	assert.Equal(t, 3, r.Steps, "only the inputs should be visited")
	assert.Greater(t, full, r.Steps)
	assert.False(t, r.Reset)
	r, err := c.RunPass(true)
	require.NoError(t, err)
	assert.True(t, r.Reset)
	assert.Greater(t, r.Steps, 3)
	assert.Equal(t, sim.Of(246), net(c, "s2"))
}

func TestCircuit_Tick(t *testing.T) {
	c := sim.New("tick")
	place(t, c, simlib.NewClock, nil, "out=clk")
	k := place(t, c, simlib.NewCounter, sim.Params{"width": 2}, "clk=clk, out=count, zero=z").(*simlib.Counter)
	run(t, c)
	assert.Equal(t, sim.Of(0), net(c, "count"))

	want := []uint64{1, 1, 2, 2, 3, 3, 0, 0, 1}
	for i, w := range want {
		_, err := c.Tick()
		require.NoError(t, err)
		assert.Equal(t, sim.Of(w), net(c, "count"), "tick %d", i+1)
		assert.Equal(t, w, k.Value())
		// zero is set while the clock is high and the count is 0
		assert.Equal(t, sim.Bool(i%2 == 0 && w == 0), net(c, "z"), "tick %d", i+1)
	}
}

type recorder struct {
	diags  []sim.Diagnostic
	passes []*sim.PassResult
}

func (r *recorder) Diagnostic(c *sim.Circuit, d sim.Diagnostic) { r.diags = append(r.diags, d) }
func (r *recorder) PassDone(c *sim.Circuit, p *sim.PassResult)  { r.passes = append(r.passes, p) }

func TestObserver(t *testing.T) {
	var o recorder
	c := sim.New("observed", sim.WithObserver(&o))
	input(t, c, "x", 1, 1)
	input(t, c, "x", 1, 0)
	run(t, c)
	_, err := c.RunPass(true)
	require.NoError(t, err)
	assert.Len(t, o.passes, 2)
	assert.Len(t, o.diags, 2)
}

func TestCircuit_Observe(t *testing.T) {
	var a, b recorder
	c := sim.New("observed", sim.WithObserver(&a))
	input(t, c, "x", 1, 1)
	run(t, c)
	c.Observe(&b)
	run(t, c)
	assert.Len(t, a.passes, 2)
	assert.Len(t, b.passes, 1)
}

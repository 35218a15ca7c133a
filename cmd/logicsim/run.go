// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuitfile"
	"github.com/db47h/logicsim/simlib"
	"github.com/db47h/logicsim/waveform"
)

type runOptions struct {
	set   []string
	reset bool
	ticks int
	watch []string
}

func newRunCmd(a *app) *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a circuit and print its labelled values",
		Long: `Run loads a circuit, applies the --set assignments to its labelled inputs
and runs a simulation pass, followed by one pass per clock tick.

Without --watch, the final value of every labelled element is printed. With
--watch, or if the configuration lists watched names, one row per pass is
printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.OutOrStdout(), args[0], &o)
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&o.set, "set", nil, "set a labelled input: `label=value` (value in Go syntax, or x for floating)")
	f.BoolVar(&o.reset, "reset", false, "force a full reset before the first pass")
	f.IntVar(&o.ticks, "ticks", 0, "number of clock ticks to run after the first pass")
	f.StringArrayVar(&o.watch, "watch", nil, "record a net or element label after each pass")
	return cmd
}

// assignment is a parsed --set flag.
//
type assignment struct {
	label string
	value logicsim.Value
}

func parseAssignments(set []string) ([]assignment, error) {
	as := make([]assignment, 0, len(set))
	for _, s := range set {
		i := strings.IndexByte(s, '=')
		if i <= 0 {
			return nil, errors.Errorf("invalid assignment %q: expected label=value", s)
		}
		v, err := logicsim.ParseValue(s[i+1:])
		if err != nil {
			return nil, errors.Wrap(err, s)
		}
		as = append(as, assignment{strings.TrimSpace(s[:i]), v})
	}
	return as, nil
}

func apply(c *logicsim.Circuit, as []assignment) error {
	for _, x := range as {
		e := c.Find(x.label)
		if e == nil {
			return errors.Errorf("no element labelled %q", x.label)
		}
		in, ok := e.(*simlib.Input)
		if !ok {
			return errors.Errorf("element %q is a %s, not an Input", x.label, e.Kind())
		}
		in.SetValue(x.value)
	}
	return nil
}

// openStore returns the waveform store selected by the configuration.
//
func (a *app) openStore() (waveform.Store, error) {
	if a.cfg.Waveform.Dir == "" {
		return waveform.NewMemStore(), nil
	}
	st, err := waveform.OpenLevelStore(a.cfg.Waveform.Dir)
	if err != nil {
		return nil, err
	}
	if err = st.Truncate(); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

func (a *app) run(w io.Writer, path string, o *runOptions) error {
	lib, err := a.library(path)
	if err != nil {
		return err
	}
	return a.runWith(w, path, lib, o)
}

func (a *app) runWith(w io.Writer, path string, lib *circuitfile.Library, o *runOptions) error {
	as, err := parseAssignments(o.set)
	if err != nil {
		return err
	}
	c, err := a.open(path, lib)
	if err != nil {
		return err
	}
	if err = apply(c, as); err != nil {
		return err
	}

	watch := append(append([]string(nil), a.cfg.Waveform.Watch...), o.watch...)
	var (
		st  waveform.Store
		rec *waveform.Recorder
	)
	if len(watch) > 0 {
		if st, err = a.openStore(); err != nil {
			return err
		}
		defer st.Close()
		rec = waveform.NewRecorder(st, watch...)
		c.Observe(rec)
	}

	r, err := c.RunPass(o.reset)
	printDiagnostics(w, r)
	for i := 0; err == nil && i < o.ticks; i++ {
		r, err = c.Tick()
		printDiagnostics(w, r)
	}

	if rec != nil {
		if rerr := rec.Err(); rerr != nil && err == nil {
			err = rerr
		}
		ss, serr := st.Samples()
		if serr != nil {
			return serr
		}
		printSamples(w, ss, rec.Names())
	} else {
		printValues(w, c)
	}
	if err != nil {
		return errors.Wrap(err, "simulation failed")
	}
	return nil
}

// summary returns a one line description of a pass result.
//
func summary(r *logicsim.PassResult) string {
	return fmt.Sprintf("%s after %d steps, %d diagnostics", r.Halt, r.Steps, len(r.Diagnostics))
}

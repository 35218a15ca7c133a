// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/waveform"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
)

// printDiagnostics prints the diagnostics of a pass. r may be nil if the pass
// was refused.
//
func printDiagnostics(w io.Writer, r *logicsim.PassResult) {
	if r == nil {
		return
	}
	for _, d := range r.Diagnostics {
		if d.Fatal() {
			errColor.Fprintf(w, "error: %s: %v\n", d.Kind(), d)
		} else {
			warnColor.Fprintf(w, "warning: %s: %v\n", d.Kind(), d)
		}
	}
}

// printValues prints a table of the labelled elements of c, sorted by label.
//
func printValues(w io.Writer, c *logicsim.Circuit) {
	type row struct{ label, kind, value string }
	var rows []row
	for _, e := range c.Elements() {
		if e.Label() == "" {
			continue
		}
		v, err := c.Probe(e.Label())
		if err != nil {
			continue
		}
		rows = append(rows, row{e.Label(), e.Kind(), v.String()})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].label < rows[j].label })

	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Label", "Kind", "Value"})
	for _, r := range rows {
		t.Append([]string{r.label, r.kind, r.value})
	}
	t.Render()
}

// printSamples prints one row per recorded pass.
//
func printSamples(w io.Writer, ss []*waveform.Sample, names []string) {
	t := tablewriter.NewWriter(w)
	t.SetHeader(append([]string{"Pass", "Halt"}, names...))
	for _, s := range ss {
		r := []string{strconv.FormatUint(s.Pass, 10), s.Halt}
		for _, n := range names {
			r = append(r, s.Values[n].String())
		}
		t.Append(r)
	}
	t.Render()
}

// printFindings prints static check findings.
//
func printFindings(w io.Writer, errs []error) {
	if len(errs) == 0 {
		okColor.Fprintln(w, "wiring ok")
		return
	}
	for _, err := range errs {
		warnColor.Fprintf(w, "wiring: %v\n", err)
	}
}

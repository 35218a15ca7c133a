// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Check the wiring of a circuit and run one pass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) check(w io.Writer, path string) error {
	lib, err := a.library(path)
	if err != nil {
		return err
	}
	c, err := a.open(path, lib)
	if err != nil {
		return err
	}
	printFindings(w, c.Check())
	r, err := c.RunPass(false)
	printDiagnostics(w, r)
	if err != nil {
		return errors.Wrap(err, "simulation failed")
	}
	fmt.Fprintf(w, "pass: %s\n", summary(r))
	return nil
}

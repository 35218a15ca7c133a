// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim runs circuit files.
//
//	logicsim run adder.yaml --set a=3 --set b=5
//	logicsim run counter.yaml --ticks 8 --watch clk --watch count
//	logicsim check adder.yaml
//	logicsim watch adder.yaml
//	logicsim kinds
//
// Circuit files are YAML or JSON documents as described in package
// circuitfile. Sub-circuits are resolved from the directory of the file.
//
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuitfile"
	"github.com/db47h/logicsim/internal/config"
	"github.com/db47h/logicsim/internal/logging"
	"github.com/db47h/logicsim/metrics"
)

var version = "0.1.0-dev"

// app holds the state shared by all subcommands.
//
type app struct {
	cfgFile  string
	logLevel string

	cfg     *config.Config
	log     *slog.Logger
	reg     *prometheus.Registry
	metrics *metrics.Collector
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.cfgFile != "" {
		var err error
		if cfg, err = config.Load(a.cfgFile); err != nil {
			return err
		}
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	l, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = l
	a.reg = prometheus.NewRegistry()
	a.metrics = metrics.New(a.reg)
	return nil
}

// library returns a library rooted at the directory of path.
//
func (a *app) library(path string) (*circuitfile.Library, error) {
	return circuitfile.NewLibrary(filepath.Dir(path), 0)
}

// open loads the circuit file at path. Sub-circuits are resolved with lib.
//
func (a *app) open(path string, lib *circuitfile.Library) (*logicsim.Circuit, error) {
	doc, err := circuitfile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	opts := append(a.cfg.Options(), logicsim.WithLogger(a.log), logicsim.WithObserver(a.metrics))
	return circuitfile.Load(doc, lib, opts...)
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "logicsim",
		Short: "Event driven logic circuit simulator",
		Long: `logicsim loads circuit files and runs simulation passes over them.

Circuits are described in YAML or JSON, either as an index based node and
element graph or as a list of parts wired by net names.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "configuration file (YAML or TOML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newRunCmd(a),
		newCheckCmd(a),
		newWatchCmd(a),
		newKindsCmd(),
		newVersionCmd(),
	)
	return root
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List element kinds",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ks := logicsim.Kinds()
			sort.Strings(ks)
			for _, k := range ks {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "logicsim version %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-run a circuit whenever its file changes",
		Long: `Watch runs a circuit like run, then runs it again each time the file or a
sibling sub-circuit file changes. If metrics.addr is configured, Prometheus
metrics are served at /metrics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, cmd.OutOrStdout(), args[0], &o)
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&o.set, "set", nil, "set a labelled input: `label=value`")
	f.IntVar(&o.ticks, "ticks", 0, "number of clock ticks to run after the first pass")
	f.StringArrayVar(&o.watch, "watch", nil, "record a net or element label after each pass")
	return cmd
}

// debounce is the delay between a file event and the next run. Editors often
// write a file in several steps.
//
const debounce = 100 * time.Millisecond

func (a *app) serveMetrics(ctx context.Context) {
	if a.cfg.Metrics.Addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: a.cfg.Metrics.Addr, Handler: mux}
	go func() {
		a.log.Info("serving metrics", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("metrics server", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
}

func (a *app) watch(ctx context.Context, w io.Writer, path string, o *runOptions) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "file watcher")
	}
	defer fw.Close()
	// watch the directory: editors replace files by renaming
	dir := filepath.Dir(path)
	if err = fw.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}
	lib, err := a.library(path)
	if err != nil {
		return err
	}
	a.serveMetrics(ctx)

	runOnce := func() {
		lib.Invalidate("")
		fmt.Fprintf(w, "--- %s\n", path)
		if err := a.runWith(w, path, lib, o); err != nil {
			errColor.Fprintf(w, "%v\n", err)
		}
	}
	runOnce()

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !isCircuitFile(ev.Name) {
				continue
			}
			a.log.Debug("file changed", "name", ev.Name, "op", ev.Op.String())
			timer = time.After(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("file watcher", "error", err)
		case <-timer:
			timer = nil
			runOnce()
		}
	}
}

func isCircuitFile(name string) bool {
	switch filepath.Ext(name) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

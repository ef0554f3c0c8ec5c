// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kraklabs/kt2uml/internal/errors"
	"github.com/kraklabs/kt2uml/internal/output"
	"github.com/kraklabs/kt2uml/internal/ui"
	"github.com/kraklabs/kt2uml/internal/watcher"
	"github.com/kraklabs/kt2uml/pkg/pipeline"
	"github.com/kraklabs/kt2uml/pkg/uml"
)

// watchEvent is one state change in watch --json mode.
type watchEvent struct {
	Path    string       `json:"path"`
	State   string       `json:"state"`
	Diagram string       `json:"diagram,omitempty"`
	Targets []uml.Target `json:"targets,omitempty"`
	Error   string       `json:"error,omitempty"`
}

const watchUsage = `Usage: kt2uml watch [options] <file>

Description:
  Render a Kotlin file, then render it again every time it is saved. Each
  save supersedes a render still in progress. Diagrams go to stdout; state
  changes (generating, generated, invalid) go to stderr, or to stdout as
  one JSON object per line with --json.

Examples:
  kt2uml watch Main.kt
  kt2uml watch --json Main.kt
  kt2uml watch --metrics-addr 127.0.0.1:9091 Main.kt
`

// runWatch executes the 'watch' command. It returns when ctx is done.
func (a *app) runWatch(ctx context.Context, args []string) error {
	fs := a.newFlagSet("watch", watchUsage)
	metricsAddr := fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")
	debounce := fs.Duration("debounce", 0, "Delay before re-rendering after a save (default from config)")
	wrap := fs.Bool("wrap", false, "Wrap the diagram in @startuml/@enduml")

	if done, err := a.parseCommand("watch", fs, args); done || err != nil {
		return err
	}
	if fs.Changed("debounce") {
		a.cfg.Watch.Debounce = *debounce
	}
	if fs.Changed("wrap") {
		a.cfg.Output.Wrap = *wrap
	}
	if err := a.cfg.Validate(); err != nil {
		return errors.NewInputError("Invalid option", err.Error(), "Run 'kt2uml watch --help' for usage")
	}

	if fs.NArg() != 1 {
		return errors.NewInputError("watch needs exactly one file", fmt.Sprintf("got %d arguments", fs.NArg()), "Run 'kt2uml watch <file>'")
	}
	path := fs.Arg(0)
	if _, err := os.Stat(path); err != nil {
		return errors.FromFileError(path, err)
	}

	var metrics *pipeline.Metrics
	if *metricsAddr != "" {
		metrics = pipeline.DefaultMetrics()
		_, stop, err := a.serveMetrics(*metricsAddr)
		if err != nil {
			return errors.NewNetworkError(
				"Cannot start metrics endpoint",
				err.Error(),
				"Pick a free address with --metrics-addr",
				err,
			)
		}
		defer stop()
	}

	session := pipeline.NewSession(a.newPipeline(a.cfg.Output.Wrap, metrics), a.watchPublisher(path))
	defer session.Close()

	render := func(string) {
		data, err := os.ReadFile(path)
		if err != nil {
			a.logger.Warn("watch.read.failed", "path", path, "error", err)
			return
		}
		session.Update(ctx, string(data))
	}

	w, err := watcher.New(path, a.cfg.Watch.Debounce, a.logger, render)
	if err != nil {
		return errors.NewIOError(fmt.Sprintf("Cannot watch %s", path), err.Error(), "", err)
	}
	defer w.Close()

	if !a.globals.Quiet {
		ui.Info(a.stderr, "Watching %s (Ctrl+C to stop)", ui.DimText(w.Path()))
	}
	render(path)

	return w.Run(ctx)
}

// watchPublisher returns the session callback printing each state change.
func (a *app) watchPublisher(path string) func(pipeline.Result) {
	if a.globals.JSON {
		stream := output.NewStream(a.stdout)
		return func(res pipeline.Result) {
			ev := watchEvent{
				Path:    path,
				State:   res.State.String(),
				Diagram: res.Text,
				Targets: res.Targets,
				Error:   causeText(res.Err),
			}
			if err := stream.Write(ev); err != nil {
				a.logger.Error("watch.output.failed", "error", err)
			}
		}
	}

	return func(res pipeline.Result) {
		switch res.State {
		case pipeline.Generating:
			if !a.globals.Quiet {
				ui.Info(a.stderr, "%s: %s", path, ui.StateText(res.State.String()))
			}
		case pipeline.Generated:
			if !a.globals.Quiet {
				ui.Success(a.stderr, "%s: %s, %s functions", path, ui.StateText(res.State.String()), ui.CountText(len(res.Targets)))
				for _, s := range res.Report.Skipped {
					ui.Warning(a.stderr, "%s:%s: skipped function: %v", path, s.Pos, s.Err)
				}
			}
			if res.Text != "" {
				_, _ = io.WriteString(a.stdout, strings.TrimSuffix(res.Text, "\n")+"\n\n")
			}
		case pipeline.Invalid:
			ui.Failure(a.stderr, "%s: %s: %s", path, ui.StateText(res.State.String()), causeText(res.Err))
		}
	}
}

// serveMetrics exposes the default Prometheus registry on addr/metrics.
// It returns the bound address and a function stopping the server.
func (a *app) serveMetrics(addr string) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	bound := ln.Addr().String()
	a.logger.Info("metrics.http.start", "addr", bound, "path", "/metrics")
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			a.logger.Warn("metrics.http.error", "err", err)
		}
	}()

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	return bound, stop, nil
}

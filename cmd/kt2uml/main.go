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

// Package main implements the kt2uml CLI, which turns Kotlin top-level
// functions into PlantUML diagrams.
//
// Usage:
//
//	kt2uml render [files...]      Render files (or stdin) to PlantUML
//	kt2uml watch <file>           Re-render a file on every save
//	kt2uml version                Show version information
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/kt2uml/internal/config"
	"github.com/kraklabs/kt2uml/internal/errors"
	"github.com/kraklabs/kt2uml/internal/logging"
	"github.com/kraklabs/kt2uml/internal/output"
	"github.com/kraklabs/kt2uml/internal/ui"
	"github.com/kraklabs/kt2uml/pkg/grammar"
	"github.com/kraklabs/kt2uml/pkg/pipeline"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags are accepted before or after the command name.
type GlobalFlags struct {
	Config  string
	JSON    bool
	Quiet   bool
	NoColor bool
	Verbose int
}

// app holds the streams and settings shared by all commands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// workDir is where .kt2uml.yaml is looked up.
	workDir string

	globals  GlobalFlags
	globalFS *flag.FlagSet
	cfg      *config.Config
	logger   *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if wd, err := os.Getwd(); err == nil {
		a.workDir = wd
	}

	err := a.run(ctx, os.Args[1:])
	stop()
	errors.FatalError(err, a.globals.JSON)
}

// globalFlagSet defines the global flags once. Command flag sets share its
// flags, so values parsed before the command name survive.
func (a *app) globalFlagSet() *flag.FlagSet {
	if a.globalFS != nil {
		return a.globalFS
	}
	fs := flag.NewFlagSet("kt2uml", flag.ContinueOnError)
	fs.StringVar(&a.globals.Config, "config", "", "Path to .kt2uml.yaml (default: ./"+config.FileName+")")
	fs.BoolVar(&a.globals.JSON, "json", false, "Machine-readable JSON output (implies --quiet)")
	fs.BoolVarP(&a.globals.Quiet, "quiet", "q", false, "Suppress progress and status messages")
	fs.BoolVar(&a.globals.NoColor, "no-color", false, "Disable colored output")
	fs.CountVarP(&a.globals.Verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	a.globalFS = fs
	return fs
}

// newFlagSet creates a command flag set that also accepts the global flags.
func (a *app) newFlagSet(name string, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.AddFlagSet(a.globalFlagSet())
	fs.Usage = func() {
		fmt.Fprint(a.stderr, usage)
		fmt.Fprintln(a.stderr, "\nOptions:")
		fs.PrintDefaults()
	}
	return fs
}

func (a *app) usage() {
	fmt.Fprintf(a.stderr, `kt2uml - Kotlin top-level functions to PlantUML

Every top-level function becomes a PlantUML interface with a single invoke
member, stereotyped with the function's annotations. Classes, properties
and extension functions are left out.

Usage:
  kt2uml [global options] <command> [options]

Commands:
  render    Render Kotlin files (or stdin) to PlantUML
  watch     Re-render a file every time it is saved
  version   Show version information

Global Options:
  --config      Path to %s
  --json        Machine-readable JSON output
  -q, --quiet   Suppress progress and status messages
  --no-color    Disable colored output
  -v, --verbose Increase log verbosity (repeatable)

Examples:
  kt2uml render Main.kt
  kt2uml render --wrap src/*.kt > functions.puml
  cat Main.kt | kt2uml render --format json
  kt2uml watch Main.kt --metrics-addr :9091

For detailed command help: kt2uml <command> --help
`, config.FileName)
}

func (a *app) run(ctx context.Context, args []string) error {
	fs := a.globalFlagSet()
	fs.SetOutput(a.stderr)
	fs.SetInterspersed(false)
	fs.Usage = a.usage
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return errors.NewInputError("Invalid arguments", err.Error(), "Run 'kt2uml --help' for usage")
	}

	rest := fs.Args()
	if len(rest) == 0 {
		a.usage()
		return errors.NewInputError("No command given", "", "Run 'kt2uml render <file>'")
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "render":
		return a.runRender(ctx, cmdArgs)
	case "watch":
		return a.runWatch(ctx, cmdArgs)
	case "version":
		return a.runVersion(cmdArgs)
	case "help":
		a.usage()
		return nil
	}
	return errors.NewInputError(
		fmt.Sprintf("Unknown command %q", cmd),
		"",
		"Run 'kt2uml --help' to list commands",
	)
}

// parseCommand parses command flags, then loads configuration and builds
// the logger. It reports done when --help was requested.
func (a *app) parseCommand(name string, fs *flag.FlagSet, args []string) (done bool, err error) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return true, nil
		}
		return false, errors.NewInputError("Invalid arguments", err.Error(), fmt.Sprintf("Run 'kt2uml %s --help' for usage", name))
	}

	if a.globals.JSON {
		a.globals.Quiet = true
	}
	ui.InitColors(a.globals.NoColor || !isTerminal(a.stderr))

	cfg, path, err := config.Resolve(a.globals.Config, a.workDir)
	if err != nil {
		return false, errors.NewConfigError(
			"Cannot load configuration",
			err.Error(),
			fmt.Sprintf("Fix %s or pass --config with another file", configName(path, a.globals.Config)),
			err,
		)
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return false, errors.NewConfigError("Invalid log level", err.Error(), "Use debug, info, warn or error", err)
	}
	switch {
	case a.globals.Verbose >= 2:
		level = slog.LevelDebug
	case a.globals.Verbose == 1 && level > slog.LevelInfo:
		level = slog.LevelInfo
	case a.globals.Quiet && level < slog.LevelError:
		level = slog.LevelError
	}
	a.logger = logging.New(a.stderr, logging.Options{Level: level, NoColor: a.globals.NoColor})
	if path != "" {
		a.logger.Debug("config.loaded", "path", path)
	}
	return false, nil
}

func configName(resolved, explicit string) string {
	switch {
	case resolved != "":
		return resolved
	case explicit != "":
		return explicit
	}
	return config.FileName
}

// newPipeline builds a pipeline from the loaded configuration.
func (a *app) newPipeline(wrap bool, metrics *pipeline.Metrics) *pipeline.Pipeline {
	return pipeline.New(pipeline.Options{
		Limits: grammar.Limits{
			MaxSourceBytes: a.cfg.Limits.MaxSourceBytes,
			MaxDepth:       a.cfg.Limits.MaxDepth,
		},
		Wrap:    wrap,
		Metrics: metrics,
		Logger:  a.logger,
	})
}

func (a *app) runVersion(args []string) error {
	fs := a.newFlagSet("version", "Usage: kt2uml version\n")
	if done, err := a.parseCommand("version", fs, args); done || err != nil {
		return err
	}

	if a.globals.JSON {
		return output.JSONTo(a.stdout, map[string]string{
			"version": version,
			"commit":  commit,
			"date":    date,
		})
	}
	fmt.Fprintf(a.stdout, "kt2uml version %s\n", version)
	fmt.Fprintf(a.stdout, "commit: %s\n", commit)
	fmt.Fprintf(a.stdout, "built: %s\n", date)
	return nil
}

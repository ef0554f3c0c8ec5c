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
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kraklabs/kt2uml/internal/config"
	"github.com/kraklabs/kt2uml/internal/errors"
	"github.com/kraklabs/kt2uml/internal/output"
	"github.com/kraklabs/kt2uml/internal/ui"
	"github.com/kraklabs/kt2uml/pkg/pipeline"
	"github.com/kraklabs/kt2uml/pkg/uml"
)

// stdinName is the argument that reads the source from standard input.
const stdinName = "-"

// fileResult is the render outcome of one input.
type fileResult struct {
	Path string
	pipeline.Result
}

// skippedJSON is one declaration left out of a diagram.
type skippedJSON struct {
	Position string `json:"position"`
	Error    string `json:"error"`
}

// fileJSON is the --format json rendering of one input.
type fileJSON struct {
	Path    string        `json:"path"`
	State   string        `json:"state"`
	Diagram string        `json:"diagram,omitempty"`
	Targets []uml.Target  `json:"targets"`
	Skipped []skippedJSON `json:"skipped,omitempty"`
	Error   string        `json:"error,omitempty"`
}

const renderUsage = `Usage: kt2uml render [options] [files...]

Description:
  Render the top-level functions of each Kotlin file as PlantUML. With no
  files, or with -, the source is read from stdin. Diagrams are written to
  stdout in argument order, separated by a blank line.

  A file that does not parse produces no diagram and makes the command
  fail. Functions whose types cannot be resolved are skipped with a
  warning; the rest of the file still renders.

Examples:
  kt2uml render Main.kt
  kt2uml render --wrap src/*.kt > functions.puml
  kt2uml render --keep-going a.kt b.kt
  cat Main.kt | kt2uml render --format json
`

// runRender executes the 'render' command.
func (a *app) runRender(ctx context.Context, args []string) error {
	fs := a.newFlagSet("render", renderUsage)
	format := fs.String("format", "", "Output format: plantuml or json (default from config)")
	wrap := fs.Bool("wrap", false, "Wrap each diagram in @startuml/@enduml")
	keepGoing := fs.Bool("keep-going", false, "Render every file even when some are invalid")
	jobs := fs.IntP("jobs", "j", 0, "Files rendered in parallel (default from config)")

	if done, err := a.parseCommand("render", fs, args); done || err != nil {
		return err
	}

	if fs.Changed("format") {
		a.cfg.Output.Format = strings.ToLower(*format)
	}
	if fs.Changed("wrap") {
		a.cfg.Output.Wrap = *wrap
	}
	if fs.Changed("jobs") {
		a.cfg.Render.Jobs = *jobs
	}
	if err := a.cfg.Validate(); err != nil {
		return errors.NewInputError("Invalid option", err.Error(), "Run 'kt2uml render --help' for usage")
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{stdinName}
	}

	results, err := a.renderAll(ctx, paths)
	if err != nil {
		return err
	}

	if a.cfg.Output.Format == config.FormatJSON {
		if err := output.JSONTo(a.stdout, toJSON(results)); err != nil {
			return errors.NewInternalError("Cannot encode results", err.Error(), "", err)
		}
	}

	invalid := a.reportResults(results, *keepGoing)
	if len(invalid) > 0 && !*keepGoing {
		first := invalid[0]
		return errors.NewInputError(
			fmt.Sprintf("Cannot render %s", first.Path),
			causeText(first.Err),
			"Fix the Kotlin source, or pass --keep-going to render the other files",
		)
	}

	if a.cfg.Output.Format == config.FormatPlantUML {
		if err := a.writeDiagrams(results); err != nil {
			return errors.NewIOError("Cannot write output", err.Error(), "", err)
		}
	}

	if len(invalid) > 0 {
		return errors.NewInputError(
			fmt.Sprintf("%d of %d files produced no diagram", len(invalid), len(results)),
			"",
			"Fix the files reported above",
		)
	}
	return nil
}

// renderAll renders every path, at most cfg.Render.Jobs at a time. Results
// keep argument order. Only unreadable files are errors; invalid sources
// come back as Invalid results.
func (a *app) renderAll(ctx context.Context, paths []string) ([]fileResult, error) {
	stdin, err := a.readStdinOnce(paths)
	if err != nil {
		return nil, err
	}

	p := a.newPipeline(a.cfg.Output.Wrap, nil)
	results := make([]fileResult, len(paths))

	progress := NewProgressConfig(a.globals, a.stderr)
	progress.Enabled = progress.Enabled && len(paths) > 1
	bar := NewProgressBar(progress, int64(len(paths)), "Rendering")
	defer progressFinish(bar)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Render.Jobs)
	for i, path := range paths {
		g.Go(func() error {
			src := stdin
			if path != stdinName {
				data, err := os.ReadFile(path)
				if err != nil {
					return errors.FromFileError(path, err)
				}
				src = string(data)
			}

			results[i] = fileResult{Path: path, Result: p.Render(gctx, src)}
			progressAdd(bar)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *app) readStdinOnce(paths []string) (string, error) {
	for _, path := range paths {
		if path != stdinName {
			continue
		}
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", errors.NewIOError("Cannot read stdin", err.Error(), "", err)
		}
		return string(data), nil
	}
	return "", nil
}

// reportResults prints skipped declarations and invalid files on stderr,
// plus a summary for multi-file runs, and returns the invalid results.
func (a *app) reportResults(results []fileResult, keepGoing bool) []fileResult {
	var invalid []fileResult
	functions, skipped := 0, 0

	for _, r := range results {
		if r.State == pipeline.Invalid {
			invalid = append(invalid, r)
			if keepGoing && !a.globals.Quiet {
				ui.Failure(a.stderr, "%s: %s", displayName(r.Path), causeText(r.Err))
			}
			continue
		}
		functions += len(r.Targets)
		skipped += len(r.Report.Skipped)
		if a.globals.Quiet {
			continue
		}
		for _, s := range r.Report.Skipped {
			ui.Warning(a.stderr, "%s:%s: skipped function: %v", displayName(r.Path), s.Pos, s.Err)
		}
	}

	if len(results) > 1 && !a.globals.Quiet {
		fmt.Fprintln(a.stderr)
		ui.Header(a.stderr, "Summary")
		fmt.Fprintf(a.stderr, "%s %s\n", ui.Label("Files:    "), ui.CountText(len(results)))
		fmt.Fprintf(a.stderr, "%s %s\n", ui.Label("Invalid:  "), ui.CountText(len(invalid)))
		fmt.Fprintf(a.stderr, "%s %s\n", ui.Label("Skipped:  "), ui.CountText(skipped))
		ui.Success(a.stderr, "Rendered %s files, %s functions",
			ui.CountText(len(results)-len(invalid)), ui.CountText(functions))
	}
	return invalid
}

// writeDiagrams writes every non-empty diagram to stdout. With several
// inputs each diagram is preceded by a PlantUML comment naming its file.
func (a *app) writeDiagrams(results []fileResult) error {
	var blocks []string
	for _, r := range results {
		if r.State != pipeline.Generated || r.Text == "" {
			continue
		}
		text := strings.TrimSuffix(r.Text, "\n")
		if len(results) > 1 {
			text = "' " + displayName(r.Path) + "\n" + text
		}
		blocks = append(blocks, text)
	}
	if len(blocks) == 0 {
		return nil
	}
	_, err := io.WriteString(a.stdout, strings.Join(blocks, "\n\n")+"\n")
	return err
}

func toJSON(results []fileResult) []fileJSON {
	out := make([]fileJSON, 0, len(results))
	for _, r := range results {
		f := fileJSON{
			Path:    displayName(r.Path),
			State:   r.State.String(),
			Diagram: r.Text,
			Targets: r.Targets,
		}
		if f.Targets == nil {
			f.Targets = []uml.Target{}
		}
		for _, s := range r.Report.Skipped {
			f.Skipped = append(f.Skipped, skippedJSON{Position: s.Pos.String(), Error: s.Err.Error()})
		}
		if r.Err != nil {
			f.Error = causeText(r.Err)
		}
		out = append(out, f)
	}
	return out
}

// causeText drops the no-result marker from a pipeline error.
func causeText(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if stderrors.Is(err, pipeline.ErrNoResult) {
		msg = strings.TrimPrefix(msg, pipeline.ErrNoResult.Error()+": ")
	}
	return msg
}

func displayName(path string) string {
	if path == stdinName {
		return "<stdin>"
	}
	return path
}

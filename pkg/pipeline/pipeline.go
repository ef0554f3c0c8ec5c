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

// Package pipeline runs Kotlin source through parsing, transformation and
// printing.
//
// Failures come at two granularities. A document that does not parse (or
// any stage that panics) yields no result at all: callers get an error
// wrapping ErrNoResult and never a partial target list. A single function
// declaration that cannot be resolved is skipped and reported, and the
// rest of the document still renders.
//
// Usage:
//
//	p := pipeline.New(pipeline.Options{Logger: logger})
//	res := p.Render(ctx, src)
//	switch res.State {
//	case pipeline.Generated:
//		fmt.Println(res.Text)
//	case pipeline.Invalid:
//		log.Println(res.Err)
//	}
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kraklabs/kt2uml/pkg/grammar"
	"github.com/kraklabs/kt2uml/pkg/printer"
	"github.com/kraklabs/kt2uml/pkg/transform"
	"github.com/kraklabs/kt2uml/pkg/uml"
)

// ErrNoResult marks a document that produced no targets at all, as opposed
// to a document with zero functions.
var ErrNoResult = errors.New("no result")

// State is the consumer-visible status of a render.
type State int

const (
	// Generating means a render is in flight.
	Generating State = iota
	// Generated means Text holds the latest diagram.
	Generated
	// Invalid means the latest source produced no result.
	Invalid
)

func (s State) String() string {
	switch s {
	case Generating:
		return "generating"
	case Generated:
		return "generated"
	case Invalid:
		return "invalid"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of one Render call.
type Result struct {
	State   State            `json:"state"`
	Text    string           `json:"text"`
	Targets []uml.Target     `json:"targets"`
	Report  transform.Report `json:"-"`
	Err     error            `json:"-"`
}

// Options configures New.
type Options struct {
	Limits grammar.Limits
	// Wrap surrounds printed output with @startuml/@enduml.
	Wrap bool
	// Metrics records runs. Nil disables metrics.
	Metrics *Metrics
	Logger  *slog.Logger
}

// Pipeline wires a parser, a transformer and a printer. The zero value is
// not usable; fill every stage or use New. A Pipeline holds no per-call
// state and is safe for concurrent use.
type Pipeline struct {
	Parser      grammar.Parser
	Transformer *transform.Transformer
	Printer     printer.Printer
	Metrics     *Metrics
	Logger      *slog.Logger
}

// New creates a Pipeline backed by the tree-sitter Kotlin grammar and the
// PlantUML printer.
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Parser:      grammar.NewKotlinParser(opts.Limits, logger),
		Transformer: transform.New(logger),
		Printer:     printer.PlantUML{Wrap: opts.Wrap},
		Metrics:     opts.Metrics,
		Logger:      logger,
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// Transform parses src once and builds its targets in source order. When
// the document does not parse, or a stage panics, the returned error wraps
// ErrNoResult and targets is nil.
func (p *Pipeline) Transform(ctx context.Context, src string) ([]uml.Target, error) {
	targets, _, err := p.transform(ctx, src)
	return targets, err
}

func (p *Pipeline) transform(ctx context.Context, src string) (targets []uml.Target, report transform.Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger().Error("pipeline.transform.panic", "panic", r)
			targets, report = nil, transform.Report{}
			err = fmt.Errorf("%w: panic: %v", ErrNoResult, r)
		}
	}()

	root, err := p.Parser.Parse(ctx, src)
	if err != nil {
		p.logger().Info("pipeline.parse.failed", "error", err)
		return nil, transform.Report{}, fmt.Errorf("%w: %w", ErrNoResult, err)
	}

	targets, report = p.Transformer.Transform(root)
	return targets, report, nil
}

func (p *Pipeline) print(targets []uml.Target) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger().Error("pipeline.print.panic", "panic", r)
			text = ""
			err = fmt.Errorf("%w: panic: %v", ErrNoResult, r)
		}
	}()
	return p.Printer.PrintAll(targets), nil
}

// Render transforms and prints src. The result is either Generated, with
// Text holding the diagram (empty when the document has no functions), or
// Invalid, with Err wrapping ErrNoResult.
func (p *Pipeline) Render(ctx context.Context, src string) Result {
	start := time.Now()

	res := p.render(ctx, src)

	elapsed := time.Since(start)
	p.Metrics.observe(res, elapsed)
	p.logger().Debug("pipeline.render.done",
		"state", res.State,
		"targets", len(res.Targets),
		"skipped", len(res.Report.Skipped),
		"duration", elapsed,
	)
	return res
}

func (p *Pipeline) render(ctx context.Context, src string) Result {
	targets, report, err := p.transform(ctx, src)
	if err != nil {
		return Result{State: Invalid, Err: err}
	}

	text, err := p.print(targets)
	if err != nil {
		return Result{State: Invalid, Err: err}
	}

	return Result{
		State:   Generated,
		Text:    text,
		Targets: targets,
		Report:  report,
	}
}

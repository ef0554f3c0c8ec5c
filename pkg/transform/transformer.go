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

package transform

import (
	"log/slog"

	"github.com/kraklabs/kt2uml/pkg/syntree"
	"github.com/kraklabs/kt2uml/pkg/uml"
)

// Skipped is a function declaration that produced no target.
type Skipped struct {
	Pos syntree.Position
	Err *ResolutionError
}

// Report summarizes what Transform left out.
type Report struct {
	// Skipped lists fun declarations that failed to resolve.
	Skipped []Skipped
	// DroppedParams counts parameters left out of built functions.
	DroppedParams int
	// Ignored counts declarations that are not diagram targets (classes,
	// properties, extension functions).
	Ignored int
}

// Transformer builds uml targets from a whole syntax tree. It holds no
// per-call state and is safe for concurrent use.
type Transformer struct {
	logger *slog.Logger
}

// New creates a Transformer. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Transformer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transformer{logger: logger}
}

// Transform builds one target per top-level fun declaration under root,
// in source order. Declarations that fail to resolve are skipped and
// logged; they never affect the others.
func (t *Transformer) Transform(root *syntree.Node) ([]uml.Target, Report) {
	var report Report
	targets := make([]uml.Target, 0)

	for _, decl := range Declarations(root) {
		if decl.Keyword != KeywordFun {
			report.Ignored++
			continue
		}
		if isExtension(decl.Node) {
			t.logger.Debug("transform.function.extension_ignored", "position", decl.Node.Start)
			report.Ignored++
			continue
		}

		fn, err := buildFunction(decl.Node, func(e *ResolutionError) {
			report.DroppedParams++
			t.logger.Debug("transform.parameter.dropped",
				"position", e.Pos,
				"error", e,
			)
		})
		if err != nil {
			re, ok := err.(*ResolutionError)
			if !ok {
				re = resolutionError("function", decl.Node, "unexpected failure", err)
			}
			t.logger.Warn("transform.function.skipped",
				"position", decl.Node.Start,
				"error", re,
			)
			report.Skipped = append(report.Skipped, Skipped{Pos: decl.Node.Start, Err: re})
			continue
		}
		targets = append(targets, fn)
	}

	return targets, report
}

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
	"bytes"
	"testing"
)

func TestNewProgressConfig(t *testing.T) {
	tests := []struct {
		name            string
		globals         GlobalFlags
		expectedNoColor bool
	}{
		{name: "default flags", globals: GlobalFlags{}},
		{name: "quiet mode", globals: GlobalFlags{Quiet: true}},
		{name: "JSON mode", globals: GlobalFlags{JSON: true, Quiet: true}},
		{name: "verbose mode", globals: GlobalFlags{Verbose: 1}},
		{name: "noColor flag propagates to config", globals: GlobalFlags{NoColor: true}, expectedNoColor: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := NewProgressConfig(tt.globals, &buf)
			// A buffer is never a terminal.
			if cfg.Enabled {
				t.Error("NewProgressConfig().Enabled = true for a non-terminal writer")
			}
			if cfg.NoColor != tt.expectedNoColor {
				t.Errorf("NewProgressConfig().NoColor = %v, want %v", cfg.NoColor, tt.expectedNoColor)
			}
			if cfg.Writer != &buf {
				t.Error("NewProgressConfig().Writer should be the given writer")
			}
		})
	}
}

func TestNewProgressBar(t *testing.T) {
	t.Run("disabled config returns nil", func(t *testing.T) {
		bar := NewProgressBar(ProgressConfig{Enabled: false}, 100, "Rendering")
		if bar != nil {
			t.Error("NewProgressBar() should return nil when disabled")
		}
	})

	t.Run("enabled config returns a usable bar", func(t *testing.T) {
		var buf bytes.Buffer
		bar := NewProgressBar(ProgressConfig{Enabled: true, Writer: &buf}, 3, "Rendering")
		if bar == nil {
			t.Fatal("NewProgressBar() should return non-nil when enabled")
		}
		progressAdd(bar)
		progressAdd(bar)
		progressAdd(bar)
		progressFinish(bar)
	})

	t.Run("noColor option is respected", func(t *testing.T) {
		var buf bytes.Buffer
		bar := NewProgressBar(ProgressConfig{Enabled: true, Writer: &buf, NoColor: true}, 10, "Rendering")
		if bar == nil {
			t.Fatal("NewProgressBar() should return non-nil")
		}
		progressFinish(bar)
	})
}

func TestProgressHelpers_NilBar(t *testing.T) {
	// Disabled progress hands nil bars to the helpers.
	progressAdd(nil)
	progressFinish(nil)
}

func TestIsTerminal(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}

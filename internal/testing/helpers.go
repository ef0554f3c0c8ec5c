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

package testing

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kraklabs/kt2uml/pkg/grammar"
	"github.com/kraklabs/kt2uml/pkg/syntree"
)

// Logger returns a debug-level logger writing to t.Log, so log lines only
// show up for failing or verbose tests.
//
// Example:
//
//	p := pipeline.New(pipeline.Options{Logger: kttest.Logger(t)})
func Logger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ParseKotlin parses src with the default limits and fails the test when
// it is not a valid compilation unit.
//
// Example:
//
//	root := kttest.ParseKotlin(t, "@Annotation\nprotected fun f(x: Int): String {}\n")
func ParseKotlin(t *testing.T, src string) *syntree.Node {
	t.Helper()

	root, err := grammar.NewKotlinParser(grammar.Limits{}, Logger(t)).Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("source should parse: %v\n%s", err, src)
	}
	return root
}

// WriteFile writes content to dir/name and returns the path.
//
// Example:
//
//	path := kttest.WriteFile(t, t.TempDir(), "Main.kt", "fun f() {}\n")
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

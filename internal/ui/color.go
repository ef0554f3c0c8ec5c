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

// Package ui provides colored status output for the kt2uml CLI.
//
// Diagrams go to stdout, so every helper here takes the writer to print
// to, normally os.Stderr. Colors respect the --no-color flag and the
// NO_COLOR environment variable.
//
// Color usage:
//   - Red: invalid documents, failures
//   - Yellow: skipped declarations, warnings
//   - Green: generated diagrams
//   - Cyan: renders in progress, counts
//   - Bold: headers and labels
//   - Dim: paths
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
	Green  = color.New(color.FgGreen)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
	Dim    = color.New(color.Faint)
)

// InitColors turns color output off when noColor is set. Call it once
// after parsing flags.
func InitColors(noColor bool) {
	color.NoColor = noColor
}

// Success prints a green line prefixed with a check mark.
//
// Example output: "✓ Main.kt: 3 functions"
func Success(w io.Writer, format string, args ...any) {
	_, _ = Green.Fprintf(w, "✓ "+format+"\n", args...)
}

// Warning prints a yellow line prefixed with a warning sign.
func Warning(w io.Writer, format string, args ...any) {
	_, _ = Yellow.Fprintf(w, "⚠ "+format+"\n", args...)
}

// Failure prints a red line prefixed with a cross.
func Failure(w io.Writer, format string, args ...any) {
	_, _ = Red.Fprintf(w, "✗ "+format+"\n", args...)
}

// Info prints a cyan line prefixed with an info sign.
func Info(w io.Writer, format string, args ...any) {
	_, _ = Cyan.Fprintf(w, "ℹ "+format+"\n", args...)
}

// Header prints a bold header underlined with '='.
func Header(w io.Writer, text string) {
	_, _ = Bold.Fprintln(w, text)
	_, _ = fmt.Fprintln(w, strings.Repeat("=", len(text)))
}

// Label returns text in bold for inline use.
func Label(text string) string {
	return Bold.Sprint(text)
}

// DimText returns text dimmed, for paths and details.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText returns a count in cyan.
func CountText(count int) string {
	return Cyan.Sprint(count)
}

// StateText colors a render state name: generated green, generating
// cyan, invalid red. Other names are returned unchanged.
func StateText(state string) string {
	switch state {
	case "generated":
		return Green.Sprint(state)
	case "generating":
		return Cyan.Sprint(state)
	case "invalid":
		return Red.Sprint(state)
	}
	return state
}

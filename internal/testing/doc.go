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

// Package testing provides test helpers for kt2uml package tests.
//
// # Quick Start
//
// Parse a Kotlin fixture into the generic syntax tree:
//
//	func TestMyFeature(t *testing.T) {
//	    root := kttest.ParseKotlin(t, "fun f(x: Int) {}\n")
//
//	    // root is a source_file node...
//	}
//
// # Fixtures
//
//   - ParseKotlin: parse source, failing the test on syntax errors
//   - WriteFile: write a fixture file into a test directory
//   - Logger: a slog.Logger that writes to the test log
package testing

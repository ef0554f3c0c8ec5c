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

// Package transform turns a Kotlin syntax tree into uml targets.
//
// The package works on syntree nodes labeled with tree-sitter Kotlin rule
// names (see labels.go) and is split into three stages:
//
//   - Declarations collects the top-level declarations of a file together
//     with their keyword (fun, class, val, ...).
//   - ResolveType recursively interprets a type node into a uml.Type,
//     including function types nested to any depth.
//   - BuildFunction assembles one uml.Function from a fun declaration.
//
// Transformer ties the stages together over a whole tree.
//
// # Failure granularity
//
// Every stage fails locally. A type that cannot be resolved makes the
// enclosing type fail as a whole: a function type with an unresolvable
// parameter is never returned with that parameter missing. A declaration
// whose name or return type cannot be resolved is skipped by Transformer
// and reported in Report; the rest of the file is unaffected.
//
// A top-level function parameter that cannot be resolved is dropped and the
// function is still built, so a target can have fewer parameters than its
// source. Report.DroppedParams counts these.
//
// # Example
//
//	root, err := grammar.NewKotlinParser(grammar.Limits{}, nil).Parse(ctx, src)
//	if err != nil {
//		return err
//	}
//	targets, report := transform.New(nil).Transform(root)
//	for _, s := range report.Skipped {
//		fmt.Println("skipped:", s.Err)
//	}
package transform

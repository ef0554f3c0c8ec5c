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

// Package uml holds the diagram model extracted from Kotlin sources.
//
// Target, Parameter and Type are closed variant sets: each is an interface
// with an unexported marker method, so only this package can add variants
// and consumers dispatch with exhaustive type switches. All values are
// plain immutable data built fresh for every transformation.
package uml

import "encoding/json"

// Target is one renderable unit extracted from source. Function is the only
// variant today; classes and properties would be added next to it.
type Target interface {
	isTarget()
}

// Function is a top-level function declaration.
type Function struct {
	Name            string
	AnnotationNames []string
	Params          []TypeAndName
	ReturnType      Type
	Visibility      Visibility
}

func (Function) isTarget() {}

// MarshalJSON encodes the function with a "kind" discriminator.
func (f Function) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind            string        `json:"kind"`
		Name            string        `json:"name"`
		AnnotationNames []string      `json:"annotation_names"`
		Params          []TypeAndName `json:"params"`
		ReturnType      Type          `json:"return_type"`
		Visibility      Visibility    `json:"visibility"`
	}{
		Kind:            "function",
		Name:            f.Name,
		AnnotationNames: nonNilStrings(f.AnnotationNames),
		Params:          nonNilNamed(f.Params),
		ReturnType:      f.ReturnType,
		Visibility:      f.Visibility,
	})
}

// FunctionEqual reports whether two functions are structurally equal.
func FunctionEqual(a, b Function) bool {
	if a.Name != b.Name || a.Visibility != b.Visibility {
		return false
	}
	if len(a.AnnotationNames) != len(b.AnnotationNames) || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.AnnotationNames {
		if a.AnnotationNames[i] != b.AnnotationNames[i] {
			return false
		}
	}
	for i := range a.Params {
		if !ParameterEqual(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return TypeEqual(a.ReturnType, b.ReturnType)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilNamed(p []TypeAndName) []TypeAndName {
	if p == nil {
		return []TypeAndName{}
	}
	return p
}

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

// Package printer renders uml targets as text diagrams.
//
// Printers are pure: they never perform IO and never modify their input,
// so printing the same target twice yields identical text.
package printer

import (
	"fmt"
	"strings"

	"github.com/kraklabs/kt2uml/pkg/uml"
)

// Printer renders targets.
type Printer interface {
	// Print renders one target.
	Print(target uml.Target) string
	// PrintAll renders targets in order, separated by a blank line.
	PrintAll(targets []uml.Target) string
}

// Ensure implementations satisfy the interface
var _ Printer = PlantUML{}

// TopLevelFunctionStereotype marks interfaces that stand for top-level functions.
const TopLevelFunctionStereotype = "top-level function"

// PlantUML renders each function as a stereotyped PlantUML interface:
//
//	interface f <<@Annotation top-level function>> {
//	  # invoke: (x: Int) -> String
//	}
//
// When Wrap is set, PrintAll surrounds the output with @startuml/@enduml.
type PlantUML struct {
	Wrap bool
}

// Print renders one target.
func (p PlantUML) Print(target uml.Target) string {
	switch t := target.(type) {
	case uml.Function:
		return printFunction(t)
	}
	panic(fmt.Sprintf("printer: unsupported target %T", target))
}

// PrintAll renders targets separated by a blank line. An empty list yields
// an empty string, or an empty @startuml/@enduml block when wrapping.
func (p PlantUML) PrintAll(targets []uml.Target) string {
	blocks := make([]string, 0, len(targets))
	for _, t := range targets {
		blocks = append(blocks, p.Print(t))
	}
	body := strings.Join(blocks, "\n\n")
	if !p.Wrap {
		return body
	}
	if body == "" {
		return "@startuml\n@enduml\n"
	}
	return "@startuml\n" + body + "\n@enduml\n"
}

func printFunction(f uml.Function) string {
	var b strings.Builder

	b.WriteString("interface ")
	b.WriteString(f.Name)
	b.WriteString(" <<")
	for _, a := range f.AnnotationNames {
		b.WriteString("@")
		b.WriteString(a)
		b.WriteString(" ")
	}
	b.WriteString(TopLevelFunctionStereotype)
	b.WriteString(">> {\n  ")

	b.WriteString(VisibilitySymbol(f.Visibility))
	b.WriteString(" invoke: (")
	for i, param := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		writeParameter(&b, param)
	}
	b.WriteString(") -> ")
	writeType(&b, f.ReturnType)
	b.WriteString("\n}")

	return b.String()
}

// VisibilitySymbol returns the PlantUML member visibility glyph. Unspecified
// renders like Public, the Kotlin default.
func VisibilitySymbol(v uml.Visibility) string {
	switch v {
	case uml.Private:
		return "-"
	case uml.Protected:
		return "#"
	case uml.Internal:
		return "~"
	case uml.Public, uml.Unspecified:
		return "+"
	}
	return "+"
}

// FormatType renders a type the way it appears in an invoke signature.
func FormatType(t uml.Type) string {
	var b strings.Builder
	writeType(&b, t)
	return b.String()
}

func writeType(b *strings.Builder, t uml.Type) {
	switch t := t.(type) {
	case uml.Reference:
		b.WriteString(t.TypeName)
	case uml.FunctionType:
		b.WriteString("(")
		for i, param := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			writeParameter(b, param)
		}
		b.WriteString(") -> ")
		writeType(b, t.ReturnType)
	default:
		panic(fmt.Sprintf("printer: unsupported type %T", t))
	}
}

func writeParameter(b *strings.Builder, p uml.Parameter) {
	switch p := p.(type) {
	case uml.TypeAndName:
		b.WriteString(p.Name)
		b.WriteString(": ")
		writeType(b, p.Type)
	case uml.JustType:
		writeType(b, p.Type)
	default:
		panic(fmt.Sprintf("printer: unsupported parameter %T", p))
	}
}

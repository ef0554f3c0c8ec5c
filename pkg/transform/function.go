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
	"strings"

	"github.com/kraklabs/kt2uml/pkg/syntree"
	"github.com/kraklabs/kt2uml/pkg/uml"
)

// BuildFunction builds a uml.Function from a function_declaration node.
//
// The name and, when present, the return type must resolve or the whole
// declaration fails with *ResolutionError. A missing return type is
// uml.Unit. Unreadable annotations and unresolvable parameters are left out.
func BuildFunction(n *syntree.Node) (uml.Function, error) {
	return buildFunction(n, nil)
}

// buildFunction is BuildFunction with a hook that observes every dropped
// parameter.
func buildFunction(n *syntree.Node, onDrop func(*ResolutionError)) (uml.Function, error) {
	if n == nil || n.Label != labelFunctionDecl {
		return uml.Function{}, resolutionError("function", n, "not a "+labelFunctionDecl, nil)
	}

	ident := n.Child(labelIdentifier)
	if ident == nil || ident.Text == "" {
		return uml.Function{}, resolutionError("function name", n, "missing "+labelIdentifier, nil)
	}

	returnType, err := functionReturnType(n)
	if err != nil {
		return uml.Function{}, resolutionError("function "+ident.Text, n, "return type", err)
	}

	modifiers := n.Child(labelModifiers)
	return uml.Function{
		Name:            ident.Text,
		AnnotationNames: annotationNames(modifiers),
		Params:          functionParams(n.Child(labelValueParams), onDrop),
		ReturnType:      returnType,
		Visibility:      uml.VisibilityFromKeywords(modifierKeywords(modifiers)),
	}, nil
}

// functionReturnType resolves the type after the value parameters, or
// returns uml.Unit when the declaration has none.
func functionReturnType(n *syntree.Node) (uml.Type, error) {
	typ := typeNodeAfter(n, labelValueParams)
	if typ == nil {
		return uml.Unit, nil
	}
	return ResolveType(typ)
}

func functionParams(n *syntree.Node, onDrop func(*ResolutionError)) []uml.TypeAndName {
	nodes := n.Labeled(labelParameter)
	params := make([]uml.TypeAndName, 0, len(nodes))
	for _, p := range nodes {
		param, err := resolveNamedParameter(p)
		if err != nil {
			if onDrop != nil {
				if re, ok := err.(*ResolutionError); ok {
					onDrop(re)
				}
			}
			continue
		}
		params = append(params, param)
	}
	return params
}

// annotationNames returns the annotation names of a modifiers node in
// source order. Arguments are ignored: @Foo(1) yields "Foo", and a
// multi-annotation @[A B] yields "A" then "B".
func annotationNames(modifiers *syntree.Node) []string {
	annotations := modifiers.Labeled(labelAnnotation)
	names := make([]string, 0, len(annotations))
	for _, a := range annotations {
		names = append(names, annotationEntries(a)...)
	}
	return names
}

func annotationEntries(a *syntree.Node) []string {
	var names []string
	for _, entry := range a.Labeled(labelUserType, labelConstructor) {
		userType := entry
		if entry.Label == labelConstructor {
			userType = entry.Child(labelUserType)
		}
		if name := qualifiedName(userType); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func qualifiedName(userType *syntree.Node) string {
	var segments []string
	for _, id := range userType.Labeled(labelTypeIdentifier) {
		segments = append(segments, id.Text)
	}
	return strings.Join(segments, ".")
}

// modifierKeywords returns the text of every non-annotation modifier.
func modifierKeywords(modifiers *syntree.Node) []string {
	var keywords []string
	for _, m := range modifiers.NamedChildren() {
		if m.Label == labelAnnotation {
			continue
		}
		keywords = append(keywords, strings.TrimSpace(m.Text))
	}
	return keywords
}

// isExtension reports whether a function_declaration has a receiver type,
// i.e. a type node before its name.
func isExtension(n *syntree.Node) bool {
	for _, c := range n.NamedChildren() {
		if c.Label == labelIdentifier {
			return false
		}
		if typeLabels[c.Label] {
			return true
		}
	}
	return false
}

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

// ResolveType interprets a type node.
//
// Reference types (user_type) become uml.Reference named after their
// identifiers, qualified segments joined with ".". Type arguments are not
// part of the name. Function types become uml.FunctionType with their
// parameters and return type resolved recursively; anonymous parameters
// become uml.JustType and named ones uml.TypeAndName.
//
// Any failure inside a function type fails the whole function type.
func ResolveType(n *syntree.Node) (uml.Type, error) {
	if n == nil {
		return nil, resolutionError("type", nil, "no type node", nil)
	}

	switch n.Label {
	case labelUserType:
		return resolveReference(n)

	case labelNullableType:
		inner := typeNode(n)
		t, err := ResolveType(inner)
		if err != nil {
			return nil, resolutionError("nullable type", n, "inner type", err)
		}
		ref, ok := t.(uml.Reference)
		if !ok {
			return nil, resolutionError("nullable type", n, "nullable function types are not supported", nil)
		}
		return uml.Reference{TypeName: ref.TypeName + "?"}, nil

	case labelParenType:
		return ResolveType(typeNode(n))

	case labelFunctionType:
		return resolveFunctionType(n)
	}

	return nil, resolutionError("type", n, "unsupported type shape "+n.Label, nil)
}

func resolveReference(n *syntree.Node) (uml.Type, error) {
	var segments []string
	for _, id := range n.Labeled(labelTypeIdentifier) {
		if id.Text == "" {
			return nil, resolutionError("type reference", id, "empty identifier", nil)
		}
		segments = append(segments, id.Text)
	}
	if len(segments) == 0 {
		return nil, resolutionError("type reference", n, "missing "+labelTypeIdentifier, nil)
	}
	return uml.Reference{TypeName: strings.Join(segments, ".")}, nil
}

func resolveFunctionType(n *syntree.Node) (uml.Type, error) {
	paramsNode := n.Child(labelFunctionParams)
	if paramsNode == nil {
		return nil, resolutionError("function type", n, "missing "+labelFunctionParams, nil)
	}

	returnType, err := ResolveType(typeNodeAfter(n, labelFunctionParams))
	if err != nil {
		return nil, resolutionError("function type", n, "return type", err)
	}

	entries := paramsNode.NamedChildren()
	params := make([]uml.Parameter, 0, len(entries))
	for _, entry := range entries {
		switch {
		case entry.Label == labelTypeModifiers:
			// suspend and annotations on a parameter type: (suspend () -> Unit)
			continue

		case entry.Label == labelParameter:
			p, err := resolveNamedParameter(entry)
			if err != nil {
				return nil, resolutionError("function type", n, "parameter", err)
			}
			params = append(params, p)

		case typeLabels[entry.Label]:
			t, err := ResolveType(entry)
			if err != nil {
				return nil, resolutionError("function type", n, "parameter", err)
			}
			params = append(params, uml.JustType{Type: t})

		default:
			return nil, resolutionError("function type", entry, "unexpected parameter shape "+entry.Label, nil)
		}
	}

	return uml.FunctionType{Params: params, ReturnType: returnType}, nil
}

// resolveNamedParameter resolves a parameter node (name: Type) wherever it
// appears: in a function's value parameters or inside a function type.
func resolveNamedParameter(n *syntree.Node) (uml.TypeAndName, error) {
	ident := n.Child(labelIdentifier)
	if ident == nil || ident.Text == "" {
		return uml.TypeAndName{}, resolutionError("parameter name", n, "missing "+labelIdentifier, nil)
	}
	t, err := ResolveType(typeNode(n))
	if err != nil {
		return uml.TypeAndName{}, resolutionError("parameter "+ident.Text, n, "type", err)
	}
	return uml.TypeAndName{Type: t, Name: ident.Text}, nil
}

// typeNode returns the first named child of n standing in a type position.
func typeNode(n *syntree.Node) *syntree.Node {
	for _, c := range n.NamedChildren() {
		if typeLabels[c.Label] {
			return c
		}
	}
	return nil
}

// typeNodeAfter returns the first type child of n that follows the child
// labeled after, or nil when there is none.
func typeNodeAfter(n *syntree.Node, after string) *syntree.Node {
	seen := false
	for _, c := range n.NamedChildren() {
		if c.Label == after {
			seen = true
			continue
		}
		if seen && typeLabels[c.Label] {
			return c
		}
	}
	return nil
}

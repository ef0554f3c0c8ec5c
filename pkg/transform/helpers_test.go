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

import "github.com/kraklabs/kt2uml/pkg/syntree"

// Builders for hand-written Kotlin syntax trees, shaped the way the
// tree-sitter grammar shapes them.

func ident(name string) *syntree.Node {
	return syntree.Leaf(labelIdentifier, name)
}

func userType(segments ...string) *syntree.Node {
	var children []*syntree.Node
	for i, s := range segments {
		if i > 0 {
			children = append(children, syntree.Token("."))
		}
		children = append(children, syntree.Leaf(labelTypeIdentifier, s))
	}
	return syntree.New(labelUserType, children...)
}

func nullable(inner *syntree.Node) *syntree.Node {
	return syntree.New(labelNullableType, inner, syntree.Token("?"))
}

func parens(inner *syntree.Node) *syntree.Node {
	return syntree.New(labelParenType, syntree.Token("("), inner, syntree.Token(")"))
}

func param(name string, typ *syntree.Node) *syntree.Node {
	return syntree.New(labelParameter, ident(name), syntree.Token(":"), typ)
}

func fnType(ret *syntree.Node, params ...*syntree.Node) *syntree.Node {
	children := []*syntree.Node{syntree.Token("(")}
	for i, p := range params {
		if i > 0 {
			children = append(children, syntree.Token(","))
		}
		children = append(children, p)
	}
	children = append(children, syntree.Token(")"))
	return syntree.New(labelFunctionType,
		syntree.New(labelFunctionParams, children...),
		syntree.Token("->"),
		ret,
	)
}

func annotation(segments ...string) *syntree.Node {
	return syntree.New(labelAnnotation, syntree.Token("@"), userType(segments...))
}

func visibility(keyword string) *syntree.Node {
	n := syntree.New("visibility_modifier", syntree.Token(keyword))
	n.Text = keyword
	return n
}

func modifiers(mods ...*syntree.Node) *syntree.Node {
	return syntree.New(labelModifiers, mods...)
}

// funDecl builds a function_declaration. mods may be nil and ret may be nil
// for a function without a declared return type.
func funDecl(mods *syntree.Node, name *syntree.Node, ret *syntree.Node, params ...*syntree.Node) *syntree.Node {
	var children []*syntree.Node
	if mods != nil {
		children = append(children, mods)
	}
	children = append(children, syntree.Token(KeywordFun))
	if name != nil {
		children = append(children, name)
	}
	values := []*syntree.Node{syntree.Token("(")}
	for i, p := range params {
		if i > 0 {
			values = append(values, syntree.Token(","))
		}
		values = append(values, p)
	}
	values = append(values, syntree.Token(")"))
	children = append(children, syntree.New(labelValueParams, values...))
	if ret != nil {
		children = append(children, syntree.Token(":"), ret)
	}
	children = append(children, syntree.New("function_body", syntree.Token("{"), syntree.Token("}")))
	return syntree.New(labelFunctionDecl, children...)
}

func sourceFile(decls ...*syntree.Node) *syntree.Node {
	return syntree.New("source_file", decls...)
}

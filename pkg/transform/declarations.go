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

// Declaration is a top-level declaration and the keyword that introduced it.
type Declaration struct {
	Keyword string
	Node    *syntree.Node
}

// Declarations returns the top-level declarations under root in source
// order. Every kind of declaration is returned; callers filter by Keyword.
// Declarations nested in class or object bodies are not visited.
func Declarations(root *syntree.Node) []Declaration {
	var decls []Declaration
	for _, child := range root.NamedChildren() {
		if kw := declarationKeyword(child); kw != "" {
			decls = append(decls, Declaration{Keyword: kw, Node: child})
		}
	}
	return decls
}

// declarationKeyword returns the keyword for a declaration node, or "" when
// n is not a declaration.
func declarationKeyword(n *syntree.Node) string {
	switch n.Label {
	case labelFunctionDecl:
		return KeywordFun
	case labelClassDecl:
		// "fun interface" carries both tokens; interface wins.
		if n.HasChild(KeywordInterface) {
			return KeywordInterface
		}
		return KeywordClass
	case labelObjectDecl:
		return KeywordObject
	case labelPropertyDecl:
		if kind := n.Child(labelBindingKind); kind != nil && kind.Text == KeywordVar {
			return KeywordVar
		}
		return KeywordVal
	case labelTypeAlias:
		return KeywordTypeAlias
	}
	return ""
}

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

// Package syntree is a parser-independent ordered, labeled syntax tree.
//
// Grammar adapters convert whatever their parser produces into *Node values;
// everything downstream (declaration filtering, type resolution) navigates
// the tree only through the label queries defined here, so it never depends
// on a particular parser library.
//
// # Queries
//
// All queries inspect direct children only and return nil (or false) instead
// of failing when nothing matches:
//
//	ident := decl.Terminal("simple_identifier")     // leaf with that label
//	params := decl.Child("function_value_parameters")
//	name := typ.Path("user_type", "type_identifier") // fixed chain descent
//
// A nil receiver is accepted by every query, which lets callers chain lookups
// and check for nil once at the end.
package syntree

import (
	"fmt"
	"strings"
)

// Position is a zero-based line/column location in the source text.
type Position struct {
	Line   int
	Column int
}

// String renders the position 1-based, the way editors show it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Node is one labeled node of a syntax tree.
//
// Named distinguishes grammar rules from anonymous tokens such as keywords
// and punctuation. Text is the exact source slice covered by the node.
type Node struct {
	Label    string
	Text     string
	Named    bool
	Start    Position
	Children []*Node
}

// New returns a named inner node with the given children.
func New(label string, children ...*Node) *Node {
	return &Node{Label: label, Named: true, Children: children}
}

// Leaf returns a named terminal node carrying text.
func Leaf(label, text string) *Node {
	return &Node{Label: label, Text: text, Named: true}
}

// Token returns an anonymous terminal whose label and text are the token itself.
func Token(text string) *Node {
	return &Node{Label: text, Text: text}
}

// IsTerminal reports whether the node has no children.
func (n *Node) IsTerminal() bool {
	return n != nil && len(n.Children) == 0
}

// HasChild reports whether any direct child carries label.
func (n *Node) HasChild(label string) bool {
	return n.Child(label) != nil
}

// Child returns the first direct child labeled label, or nil.
func (n *Node) Child(label string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Label == label {
			return c
		}
	}
	return nil
}

// Labeled returns the named direct children whose label is one of labels,
// in source order.
func (n *Node) Labeled(labels ...string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if !c.Named {
			continue
		}
		for _, l := range labels {
			if c.Label == l {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// NamedChildren returns all named direct children in source order.
func (n *Node) NamedChildren() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Named {
			out = append(out, c)
		}
	}
	return out
}

// Terminal returns the first direct child labeled label that is a leaf.
func (n *Node) Terminal(label string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Label == label && c.IsTerminal() {
			return c
		}
	}
	return nil
}

// Path descends a fixed chain of labels, taking the first matching child at
// every step. It returns nil as soon as one step is missing.
func (n *Node) Path(labels ...string) *Node {
	cur := n
	for _, l := range labels {
		cur = cur.Child(l)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Walk visits n and its descendants depth-first in source order. Returning
// false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Depth returns the number of levels in the tree rooted at n.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	max := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// String renders the tree as an S-expression of named nodes, e.g.
// (parameter (simple_identifier "x") (user_type (type_identifier "Int"))).
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		b.WriteString("()")
		return
	}
	b.WriteString("(")
	b.WriteString(n.Label)
	named := n.NamedChildren()
	if len(named) == 0 && n.Text != "" {
		fmt.Fprintf(b, " %q", n.Text)
	}
	for _, c := range named {
		b.WriteString(" ")
		c.write(b)
	}
	b.WriteString(")")
}

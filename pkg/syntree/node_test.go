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

package syntree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleParameter() *Node {
	return New("parameter",
		Leaf("simple_identifier", "x"),
		Token(":"),
		New("user_type", Leaf("type_identifier", "Int")),
	)
}

func TestNode_Child(t *testing.T) {
	p := sampleParameter()

	require.NotNil(t, p.Child("user_type"))
	assert.Equal(t, "user_type", p.Child("user_type").Label)
	assert.True(t, p.HasChild(":"))
	assert.False(t, p.HasChild("function_type"))
	assert.Nil(t, p.Child("function_type"))
}

func TestNode_NilReceiver(t *testing.T) {
	var n *Node

	assert.Nil(t, n.Child("x"))
	assert.False(t, n.HasChild("x"))
	assert.Nil(t, n.Labeled("x"))
	assert.Nil(t, n.NamedChildren())
	assert.Nil(t, n.Terminal("x"))
	assert.Nil(t, n.Path("a", "b"))
	assert.Equal(t, 0, n.Depth())
	assert.False(t, n.IsTerminal())
}

func TestNode_Path(t *testing.T) {
	p := sampleParameter()

	leaf := p.Path("user_type", "type_identifier")
	require.NotNil(t, leaf)
	assert.Equal(t, "Int", leaf.Text)

	assert.Nil(t, p.Path("user_type", "type_arguments"), "missing step yields nil")
	assert.Same(t, p, p.Path(), "empty chain returns the receiver")
}

func TestNode_LabeledSkipsAnonymousTokens(t *testing.T) {
	params := New("function_type_parameters",
		Token("("),
		New("user_type", Leaf("type_identifier", "A")),
		Token(","),
		sampleParameter(),
		Token(")"),
	)

	got := params.Labeled("user_type", "parameter")
	require.Len(t, got, 2)
	assert.Equal(t, "user_type", got[0].Label)
	assert.Equal(t, "parameter", got[1].Label)

	assert.Len(t, params.NamedChildren(), 2)
}

func TestNode_Terminal(t *testing.T) {
	n := New("annotation",
		New("simple_identifier", Leaf("x", "inner")),
		Leaf("simple_identifier", "Leaf"),
	)

	term := n.Terminal("simple_identifier")
	require.NotNil(t, term)
	assert.Equal(t, "Leaf", term.Text, "non-leaf children with the label are skipped")
}

func TestNode_WalkAndDepth(t *testing.T) {
	p := sampleParameter()

	var labels []string
	p.Walk(func(n *Node) bool {
		if n.Named {
			labels = append(labels, n.Label)
		}
		return true
	})
	assert.Equal(t, []string{"parameter", "simple_identifier", "user_type", "type_identifier"}, labels)
	assert.Equal(t, 3, p.Depth())

	var visited int
	p.Walk(func(n *Node) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}

func TestNode_String(t *testing.T) {
	assert.Equal(t,
		`(parameter (simple_identifier "x") (user_type (type_identifier "Int")))`,
		sampleParameter().String())
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "3:1", Position{Line: 2, Column: 0}.String())
}

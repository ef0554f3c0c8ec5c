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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/kt2uml/pkg/syntree"
	"github.com/kraklabs/kt2uml/pkg/uml"
)

func TestBuildFunction_AnnotatedProtected(t *testing.T) {
	// @Annotation protected fun f(x: Int): String {}
	decl := funDecl(
		modifiers(annotation("Annotation"), visibility("protected")),
		ident("f"),
		userType("String"),
		param("x", userType("Int")),
	)

	fn, err := BuildFunction(decl)
	require.NoError(t, err)

	assert.Equal(t, uml.Function{
		Name:            "f",
		AnnotationNames: []string{"Annotation"},
		Params:          []uml.TypeAndName{{Type: uml.Reference{TypeName: "Int"}, Name: "x"}},
		ReturnType:      uml.Reference{TypeName: "String"},
		Visibility:      uml.Protected,
	}, fn)
}

func TestBuildFunction_HigherOrderParameter(t *testing.T) {
	// fun f(x: ((String) -> Int) -> Unit) {}
	decl := funDecl(nil, ident("f"), nil,
		param("x", fnType(userType("Unit"), fnType(userType("Int"), userType("String")))),
	)

	fn, err := BuildFunction(decl)
	require.NoError(t, err)

	want := uml.Function{
		Name:            "f",
		AnnotationNames: []string{},
		Params: []uml.TypeAndName{{
			Name: "x",
			Type: uml.FunctionType{
				Params: []uml.Parameter{
					uml.JustType{Type: uml.FunctionType{
						Params:     []uml.Parameter{uml.JustType{Type: uml.Reference{TypeName: "String"}}},
						ReturnType: uml.Reference{TypeName: "Int"},
					}},
				},
				ReturnType: uml.Reference{TypeName: "Unit"},
			},
		}},
		ReturnType: uml.Reference{TypeName: "Unit"},
		Visibility: uml.Unspecified,
	}
	assert.True(t, uml.FunctionEqual(want, fn), "got %+v", fn)
}

func TestBuildFunction_Visibility(t *testing.T) {
	tests := []struct {
		name string
		mods *syntree.Node
		want uml.Visibility
	}{
		{"no modifiers", nil, uml.Unspecified},
		{"only annotation", modifiers(annotation("A")), uml.Unspecified},
		{"private", modifiers(visibility("private")), uml.Private},
		{"protected", modifiers(visibility("protected")), uml.Protected},
		{"internal", modifiers(visibility("internal")), uml.Internal},
		{"public", modifiers(visibility("public")), uml.Public},
		{"private wins over public", modifiers(visibility("public"), visibility("private")), uml.Private},
		{"other modifiers ignored", modifiers(withLabel("function_modifier", "suspend"), visibility("internal")), uml.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := BuildFunction(funDecl(tt.mods, ident("f"), nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, fn.Visibility)
		})
	}
}

func TestBuildFunction_MissingReturnTypeIsUnit(t *testing.T) {
	fn, err := BuildFunction(funDecl(nil, ident("noReturn"), nil))
	require.NoError(t, err)
	require.NotNil(t, fn.ReturnType)
	assert.Equal(t, uml.Unit, fn.ReturnType)
}

func TestBuildFunction_Annotations(t *testing.T) {
	withArgs := syntree.New(labelAnnotation,
		syntree.Token("@"),
		syntree.New(labelConstructor, userType("Deprecated"), syntree.New("value_arguments")),
	)
	unreadable := syntree.New(labelAnnotation, syntree.Token("@"))
	multi := syntree.New(labelAnnotation,
		syntree.Token("@"),
		syntree.Token("["),
		userType("A"),
		syntree.New(labelConstructor, userType("B"), syntree.New("value_arguments")),
		syntree.Token("]"),
	)

	decl := funDecl(
		modifiers(annotation("First"), unreadable, withArgs, multi, annotation("kotlin", "jvm", "JvmStatic")),
		ident("f"), nil,
	)

	fn, err := BuildFunction(decl)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Deprecated", "A", "B", "kotlin.jvm.JvmStatic"}, fn.AnnotationNames)
}

func TestBuildFunction_DropsUnresolvableParameters(t *testing.T) {
	decl := funDecl(nil, ident("f"), nil,
		param("a", userType("A")),
		param("broken", syntree.New(labelUserType)),
		syntree.New(labelParameter, syntree.Token(":"), userType("C")),
		param("d", nullable(userType("D"))),
	)

	var dropped []*ResolutionError
	fn, err := buildFunction(decl, func(e *ResolutionError) { dropped = append(dropped, e) })
	require.NoError(t, err)

	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "d", fn.Params[1].Name)
	assert.Equal(t, uml.Reference{TypeName: "D?"}, fn.Params[1].Type)
	assert.Len(t, dropped, 2)
}

func TestBuildFunction_Failures(t *testing.T) {
	tests := []struct {
		name string
		node *syntree.Node
	}{
		{"nil", nil},
		{"not a function", syntree.New(labelClassDecl)},
		{"missing name", funDecl(nil, nil, nil)},
		{"empty name", funDecl(nil, ident(""), nil)},
		{"unresolvable return type", funDecl(nil, ident("f"), syntree.New(labelUserType))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFunction(tt.node)
			require.Error(t, err)
			assert.IsType(t, &ResolutionError{}, err)
		})
	}
}

func TestIsExtension(t *testing.T) {
	plain := funDecl(nil, ident("f"), userType("Int"))
	assert.False(t, isExtension(plain), "return type after the name is not a receiver")

	ext := syntree.New(labelFunctionDecl,
		syntree.Token("fun"),
		userType("String"),
		syntree.Token("."),
		ident("shout"),
		syntree.New(labelValueParams, syntree.Token("("), syntree.Token(")")),
	)
	assert.True(t, isExtension(ext))
}

func withLabel(label, text string) *syntree.Node {
	n := syntree.New(label, syntree.Token(text))
	n.Text = text
	return n
}

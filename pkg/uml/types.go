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

package uml

import "encoding/json"

// Type is either a Reference or a FunctionType. Nesting is unbounded.
type Type interface {
	isType()
}

// Reference names a type. TypeName is never empty.
type Reference struct {
	TypeName string
}

// FunctionType is a callable type such as (String) -> Int.
type FunctionType struct {
	Params     []Parameter
	ReturnType Type
}

func (Reference) isType()    {}
func (FunctionType) isType() {}

// Unit is the canonical return type of functions that declare none.
var Unit = Reference{TypeName: "Unit"}

// Parameter is either JustType (anonymous, only inside function types) or
// TypeAndName.
type Parameter interface {
	ParamType() Type
	isParameter()
}

// JustType is an anonymous positional parameter of a function type.
type JustType struct {
	Type Type
}

// TypeAndName is a named parameter.
type TypeAndName struct {
	Type Type
	Name string
}

func (p JustType) ParamType() Type    { return p.Type }
func (p TypeAndName) ParamType() Type { return p.Type }
func (JustType) isParameter()         {}
func (TypeAndName) isParameter()      {}

// TypeEqual reports whether two types are structurally equal.
func TypeEqual(a, b Type) bool {
	switch x := a.(type) {
	case Reference:
		y, ok := b.(Reference)
		return ok && x.TypeName == y.TypeName
	case FunctionType:
		y, ok := b.(FunctionType)
		if !ok || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if !ParameterEqual(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return TypeEqual(x.ReturnType, y.ReturnType)
	case nil:
		return b == nil
	}
	return false
}

// ParameterEqual reports whether two parameters are structurally equal.
func ParameterEqual(a, b Parameter) bool {
	switch x := a.(type) {
	case JustType:
		y, ok := b.(JustType)
		return ok && TypeEqual(x.Type, y.Type)
	case TypeAndName:
		y, ok := b.(TypeAndName)
		return ok && x.Name == y.Name && TypeEqual(x.Type, y.Type)
	case nil:
		return b == nil
	}
	return false
}

// MarshalJSON encodes the reference with a "kind" discriminator.
func (r Reference) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string `json:"kind"`
		TypeName string `json:"type_name"`
	}{"reference", r.TypeName})
}

// MarshalJSON encodes the function type with a "kind" discriminator.
func (f FunctionType) MarshalJSON() ([]byte, error) {
	params := f.Params
	if params == nil {
		params = []Parameter{}
	}
	return json.Marshal(struct {
		Kind       string      `json:"kind"`
		Params     []Parameter `json:"params"`
		ReturnType Type        `json:"return_type"`
	}{"function_type", params, f.ReturnType})
}

// MarshalJSON encodes the parameter with a "kind" discriminator.
func (p JustType) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Type Type   `json:"type"`
	}{"just_type", p.Type})
}

// MarshalJSON encodes the parameter with a "kind" discriminator.
func (p TypeAndName) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
		Type Type   `json:"type"`
	}{"type_and_name", p.Name, p.Type})
}

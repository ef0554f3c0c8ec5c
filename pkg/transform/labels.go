// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package transform

// Node labels of the tree-sitter Kotlin grammar used by this package.
const (
	labelFunctionDecl   = "function_declaration"
	labelClassDecl      = "class_declaration"
	labelObjectDecl     = "object_declaration"
	labelPropertyDecl   = "property_declaration"
	labelTypeAlias      = "type_alias"
	labelBindingKind    = "binding_pattern_kind"
	labelModifiers      = "modifiers"
	labelAnnotation     = "annotation"
	labelConstructor    = "constructor_invocation"
	labelIdentifier     = "simple_identifier"
	labelValueParams    = "function_value_parameters"
	labelParameter      = "parameter"
	labelUserType       = "user_type"
	labelTypeIdentifier = "type_identifier"
	labelNullableType   = "nullable_type"
	labelParenType      = "parenthesized_type"
	labelFunctionType   = "function_type"
	labelFunctionParams = "function_type_parameters"
	labelTypeModifiers  = "type_modifiers"
)

// Declaration keywords reported by Declarations.
const (
	KeywordFun       = "fun"
	KeywordClass     = "class"
	KeywordInterface = "interface"
	KeywordObject    = "object"
	KeywordVal       = "val"
	KeywordVar       = "var"
	KeywordTypeAlias = "typealias"
)

// typeLabels are the node kinds that can stand in a type position.
var typeLabels = map[string]bool{
	labelUserType:       true,
	labelNullableType:   true,
	labelParenType:      true,
	labelFunctionType:   true,
	"non_nullable_type": true,
}

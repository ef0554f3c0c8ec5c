// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package uml

import "fmt"

// Visibility is the access modifier classification of a declaration.
//
// Unspecified means no visibility keyword was written in source. It is kept
// apart from Public so a caller can apply its own default later (compiler
// plugins can make declarations private by default).
type Visibility int

const (
	Unspecified Visibility = iota
	Private
	Protected
	Internal
	Public
)

var visibilityNames = map[Visibility]string{
	Unspecified: "unspecified",
	Private:     "private",
	Protected:   "protected",
	Internal:    "internal",
	Public:      "public",
}

// VisibilityPrecedence lists the keyword visibilities from strongest to
// weakest. The first one present in a modifier set wins.
var VisibilityPrecedence = []Visibility{Private, Protected, Internal, Public}

func (v Visibility) String() string {
	if s, ok := visibilityNames[v]; ok {
		return s
	}
	return fmt.Sprintf("Visibility(%d)", int(v))
}

// MarshalText encodes the visibility as its lower-case name.
func (v Visibility) MarshalText() ([]byte, error) {
	if _, ok := visibilityNames[v]; !ok {
		return nil, fmt.Errorf("unknown visibility %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText decodes a lower-case visibility name.
func (v *Visibility) UnmarshalText(text []byte) error {
	for k, name := range visibilityNames {
		if name == string(text) {
			*v = k
			return nil
		}
	}
	return fmt.Errorf("unknown visibility %q", text)
}

// VisibilityFromKeywords picks the visibility for a set of modifier
// keywords using VisibilityPrecedence. Keywords that are not visibility
// modifiers are ignored.
func VisibilityFromKeywords(keywords []string) Visibility {
	present := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		present[k] = true
	}
	for _, v := range VisibilityPrecedence {
		if present[v.String()] {
			return v
		}
	}
	return Unspecified
}

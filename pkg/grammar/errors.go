// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package grammar

import (
	"fmt"

	"github.com/kraklabs/kt2uml/pkg/syntree"
)

// SyntaxError means no syntax tree could be produced for the document.
type SyntaxError struct {
	Pos    syntree.Position
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Reason)
}

// LimitError means the document exceeded a configured bound.
type LimitError struct {
	Limit string
	Value int
	Max   int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s limit exceeded: %d > %d", e.Limit, e.Value, e.Max)
}

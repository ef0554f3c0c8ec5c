// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package transform

import (
	"fmt"

	"github.com/kraklabs/kt2uml/pkg/syntree"
)

// ResolutionError means one declaration, parameter or type could not be
// interpreted. It never invalidates more than the declaration it belongs to.
type ResolutionError struct {
	// What names the construct being resolved ("function name", "type", ...).
	What string
	// Label is the label of the node resolution stopped at.
	Label  string
	Pos    syntree.Position
	Reason string
	// Err is the nested failure that caused this one, if any.
	Err error
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("cannot resolve %s at %s: %s", e.What, e.Pos, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func resolutionError(what string, n *syntree.Node, reason string, cause error) *ResolutionError {
	e := &ResolutionError{What: what, Reason: reason, Err: cause}
	if n != nil {
		e.Label = n.Label
		e.Pos = n.Start
	}
	return e
}

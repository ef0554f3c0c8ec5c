// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package output writes machine-readable CLI output.
//
// It complements the ui package (human-readable output) and the errors
// package (error reporting). render --format json writes one indented
// document with JSON; watch --json streams one compact object per state
// change with a Stream.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// JSON writes data as indented JSON to stdout.
func JSON(data any) error {
	return JSONTo(os.Stdout, data)
}

// JSONTo writes data as JSON indented by two spaces, followed by a newline.
func JSONTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// Stream writes newline-delimited JSON. It is safe for concurrent use and
// never interleaves two values.
type Stream struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewStream returns a Stream writing to w.
func NewStream(w io.Writer) *Stream {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Stream{enc: enc}
}

// Write encodes v on a single line.
func (s *Stream) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(v); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

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

package pipeline

import (
	"context"
	"sync"
)

// Session renders successive versions of one document. Each Update
// supersedes the previous one: the in-flight render is cancelled and its
// result is never published.
//
// Publish is called with the session lock held, so results arrive in
// order. It must not call back into the Session.
type Session struct {
	pipeline *Pipeline
	publish  func(Result)

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewSession creates a Session that reports every state change to publish.
func NewSession(p *Pipeline, publish func(Result)) *Session {
	return &Session{pipeline: p, publish: publish}
}

// Update publishes Generating, then renders src in the background and
// publishes the final state unless another Update arrived first. Updates
// after Close are ignored.
func (s *Session) Update(ctx context.Context, src string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}

	s.gen++
	gen := s.gen
	renderCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.publish(Result{State: Generating})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		res := s.pipeline.Render(renderCtx, src)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen || s.closed {
			s.pipeline.logger().Debug("pipeline.session.superseded", "generation", gen)
			return
		}
		s.publish(res)
	}()
}

// Wait blocks until every render started so far has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels the in-flight render and waits for it. Its result is not
// published.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

/*
 * Copyright (C) 2026 Mustafa Naseer (Mustafa Gaeed)
 *
 * This file is part of sentrywatch.
 *
 * sentrywatch is free software: you can redistribute it and/or modify
 * it under the terms of the MIT License as described in the
 * LICENSE file distributed with this project.
 *
 * sentrywatch is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * MIT License for more details.
 *
 * You should have received a copy of the MIT License
 * along with sentrywatch. If not, see the LICENSE file in the project root.
 */

package state

import "sync"

// Store holds the single live ViewState. Publish is the only writer.
type Store struct {
	mu      sync.RWMutex
	current ViewState
	subs    map[int]chan ViewState
	nextSub int
	dropped uint64
}

func NewStore() *Store {
	return &Store{
		current: Initial(),
		subs:    make(map[int]chan ViewState),
	}
}

// Current returns the live snapshot.
func (s *Store) Current() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Publish replaces the live state when vs.Seq is newer than the last
// published sequence number. It reports whether vs was accepted.
func (s *Store) Publish(vs ViewState) bool {
	vs = vs.clone()

	s.mu.Lock()
	if vs.Seq <= s.current.Seq {
		s.dropped++
		s.mu.Unlock()
		return false
	}
	s.current = vs
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		// Subscribers only care about the newest state; replace a pending
		// value instead of blocking the publisher.
		select {
		case ch <- vs:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- vs:
			default:
			}
		}
	}
	return true
}

// Dropped counts publishes rejected as stale.
func (s *Store) Dropped() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dropped
}

// Subscribe returns a channel that receives every accepted state (or at least
// the latest one when the reader is slow) and a cancel func.
func (s *Store) Subscribe() (<-chan ViewState, func()) {
	ch := make(chan ViewState, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

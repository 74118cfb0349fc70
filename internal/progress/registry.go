// BSD 2-Clause License
//
// Copyright (c) 2020, Andrea Giacomo Baldan
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
//
// * Redistributions of source code must retain the above copyright notice, this
//   list of conditions and the following disclaimer.
//
// * Redistributions in binary form must reproduce the above copyright notice,
//   this list of conditions and the following disclaimer in the documentation
//   and/or other materials provided with the distribution.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
// FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
// DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
// CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
// OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

// Package progress fans submission ProgressEvents out to every websocket
// session a user has open, and relays them to sibling instances holding a
// connection this instance doesn't.
package progress

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/codepr/judge-core/internal/model"
)

// Registry tracks every live session, keyed by the userId it authenticated
// as. A user may hold more than one session (multiple tabs, devices).
type Registry struct {
	mu       sync.Mutex
	sessions map[string][]*Session
	logger   *log.Logger
}

// NewRegistry builds an empty Registry.
func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{sessions: map[string][]*Session{}, logger: logger}
}

// add registers sess under userId.
func (r *Registry) add(userId string, sess *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[userId] = append(r.sessions[userId], sess)
}

// remove drops sess from userId's session list.
func (r *Registry) remove(userId string, sess *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.sessions[userId]
	for i, s := range list {
		if s == sess {
			r.sessions[userId] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(r.sessions[userId]) == 0 {
		delete(r.sessions, userId)
	}
}

// HasLocal reports whether userId has at least one session on this
// instance. The coordinator does not consult it: it always both publishes
// locally and broadcasts to peers.
func (r *Registry) HasLocal(userId string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions[userId]) > 0
}

// frame is the wire envelope every message sent down a Session carries: a
// type discriminator so a client can dispatch on msg.type before touching
// msg.data.
type frame struct {
	Type         string              `json:"type"`
	SubmissionId string              `json:"submissionId"`
	Data         model.ProgressEvent `json:"data"`
}

// Publish delivers event to every local session belonging to userId.
func (r *Registry) Publish(userId string, event model.ProgressEvent) {
	r.mu.Lock()
	sessions := append([]*Session(nil), r.sessions[userId]...)
	r.mu.Unlock()

	if len(sessions) == 0 {
		return
	}

	body, err := json.Marshal(frame{Type: "submission_update", SubmissionId: event.SubmissionId, Data: event})
	if err != nil {
		r.logger.Printf("progress: failed to marshal event for %s: %v", userId, err)
		return
	}
	for _, sess := range sessions {
		sess.send(body)
	}
}

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

package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/codepr/judge-core/internal/model"
)

// pushPayload is the body exchanged between coordinator instances on
// /internal/push.
type pushPayload struct {
	UserId string              `json:"userId"`
	Event  model.ProgressEvent `json:"event"`
}

// PushClient forwards a ProgressEvent to every other known coordinator
// instance, so a user whose websocket landed on a different instance than
// the one running their submission still receives live updates.
type PushClient struct {
	peers []string
	http  *http.Client
}

// NewPushClient builds a client that POSTs to each of peers (full base
// URLs, e.g. "http://coordinator-2:5001").
func NewPushClient(peers []string) *PushClient {
	return &PushClient{peers: peers, http: &http.Client{}}
}

// Broadcast sends event for userId to every peer. Failures are not fatal:
// a peer that isn't holding the user's session simply has nothing to do
// with it, and a genuinely unreachable peer shouldn't stall submission
// processing.
func (c *PushClient) Broadcast(userId string, event model.ProgressEvent) {
	body, err := json.Marshal(pushPayload{UserId: userId, Event: event})
	if err != nil {
		return
	}
	for _, peer := range c.peers {
		resp, err := c.http.Post(peer+"/internal/push", "application/json", bytes.NewReader(body))
		if err != nil {
			continue
		}
		resp.Body.Close()
	}
}

// Handler returns the /internal/push HTTP handler: it decodes the
// payload and republishes it to the local registry only, never
// re-broadcasting to peers, which would fan out indefinitely.
func Handler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var payload pushPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "invalid push payload: %v", err)
			return
		}
		reg.Publish(payload.UserId, payload.Event)
		w.WriteHeader(http.StatusOK)
	}
}

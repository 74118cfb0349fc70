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

package coordinator

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/codepr/judge-core/internal/authmw"
	"github.com/codepr/judge-core/internal/model"
	"github.com/codepr/judge-core/internal/problemclient"
	"github.com/codepr/judge-core/internal/store"
)

type createRequest struct {
	ProblemId  string         `json:"problemId"`
	SourceCode string         `json:"sourceCode"`
	Language   model.Language `json:"language"`
}

type createResponse struct {
	SubmissionId string `json:"submissionId"`
}

// writeJSONError writes the documented {"message": ...} error body.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// HandleCreate accepts POST /api/submissions/create, enqueueing a new
// submission on behalf of the authenticated user.
func HandleCreate(c *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		userId, ok := authmw.UserId(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if req.ProblemId == "" || req.SourceCode == "" || req.Language == "" {
			writeJSONError(w, http.StatusBadRequest, "problemId, sourceCode and language are required")
			return
		}

		id, err := c.Submit(userId, req.ProblemId, req.SourceCode, req.Language)
		if errors.Is(err, problemclient.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Problem not found")
			return
		}
		if err != nil {
			writeJSONError(w, http.StatusBadGateway, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(createResponse{SubmissionId: id})
	}
}

// HandleGet accepts GET /api/submissions/{id}, returning the submission's
// current state.
func HandleGet(c *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/submissions/")
		if id == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		sub, err := c.Get(id)
		if errors.Is(err, store.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sub)
	}
}

// HandleListByUser accepts GET /api/submissions/user, returning every
// submission belonging to the authenticated user.
func HandleListByUser(c *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		userId, ok := authmw.UserId(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		subs, err := c.ListByUser(userId)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(subs)
	}
}

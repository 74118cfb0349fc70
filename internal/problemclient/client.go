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

// Package problemclient fetches Problem definitions from the external
// problem catalog service.
package problemclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/codepr/judge-core/internal/model"
)

// ErrNotFound is returned by Fetch when the catalog service has no problem
// by the requested id, so callers can map it to a 404 without matching on
// the generic status-code error text.
var ErrNotFound = errors.New("problem not found")

// Client fetches Problems over HTTP from baseURL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client against baseURL (e.g. "http://localhost:4000/problems").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch retrieves the Problem identified by problemId.
func (c *Client) Fetch(problemId string) (model.Problem, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return model.Problem{}, err
	}
	u.Path = path.Join(u.Path, problemId)

	res, err := c.http.Get(u.String())
	if err != nil {
		return model.Problem{}, fmt.Errorf("problem service unreachable: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return model.Problem{}, ErrNotFound
	}
	if res.StatusCode != http.StatusOK {
		return model.Problem{}, fmt.Errorf("problem service returned status %d for %s", res.StatusCode, problemId)
	}

	var problem model.Problem
	if err := json.NewDecoder(res.Body).Decode(&problem); err != nil {
		return model.Problem{}, fmt.Errorf("decoding problem %s: %w", problemId, err)
	}
	return problem, nil
}

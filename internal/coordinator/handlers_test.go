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
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/codepr/judge-core/internal/authmw"
	"github.com/codepr/judge-core/internal/problemclient"
	"github.com/codepr/judge-core/internal/progress"
	"github.com/codepr/judge-core/internal/sandbox"
	"github.com/codepr/judge-core/internal/store"
)

func authedRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	claims := authmw.Claims{
		UserId:           "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("signing test token: %s", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHandleCreateRejectsMissingFields(t *testing.T) {
	c, _, srv := newTestCoordinator(t, nil)
	defer srv.Close()
	verifier := authmw.NewVerifier("secret")

	req := authedRequest(t, http.MethodPost, "/api/submissions/create", `{"sourceCode":"code","language":"PYTHON"}`)
	rec := httptest.NewRecorder()
	verifier.Middleware(HandleCreate(c)).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["message"] == "" {
		t.Errorf("expected a message explaining the missing field")
	}
}

func TestHandleCreateMapsProblemNotFoundTo404(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer catalog.Close()

	c := New(store.NewInMemoryStore(), problemclient.New(catalog.URL), &fakeQueue{}, &sandbox.FakeRunner{}, sandbox.DefaultLimits(), progress.NewRegistry(log.New(os.Stdout, "", 0)), nil, 1, log.New(os.Stdout, "", 0))
	verifier := authmw.NewVerifier("secret")

	body := `{"problemId":"does-not-exist","sourceCode":"code","language":"PYTHON"}`
	req := authedRequest(t, http.MethodPost, "/api/submissions/create", body)
	rec := httptest.NewRecorder()
	verifier.Middleware(HandleCreate(c)).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var got map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %s", err)
	}
	if got["message"] != "Problem not found" {
		t.Errorf("message = %q, want %q", got["message"], "Problem not found")
	}
}

func TestHandleCreateRejectsUnauthenticated(t *testing.T) {
	c, _, srv := newTestCoordinator(t, nil)
	defer srv.Close()
	verifier := authmw.NewVerifier("secret")

	req := httptest.NewRequest(http.MethodPost, "/api/submissions/create", bytes.NewBufferString(`{"problemId":"two-sum","sourceCode":"code","language":"PYTHON"}`))
	rec := httptest.NewRecorder()
	verifier.Middleware(HandleCreate(c)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

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

package authmw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret, userId string, expired bool) string {
	t.Helper()
	exp := time.Now().Add(time.Hour)
	if expired {
		exp = time.Now().Add(-time.Hour)
	}
	claims := Claims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %s", err)
	}
	return signed
}

func TestParseValidToken(t *testing.T) {
	v := NewVerifier("secret")
	tok := signToken(t, "secret", "user-1", false)

	userId, err := v.Parse(tok)
	if err != nil {
		t.Fatalf("Parse errored: %s", err)
	}
	if userId != "user-1" {
		t.Errorf("Parse userId = %q, want user-1", userId)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	v := NewVerifier("secret")
	tok := signToken(t, "other-secret", "user-1", false)

	if _, err := v.Parse(tok); err == nil {
		t.Errorf("Parse should reject a token signed with a different secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	v := NewVerifier("secret")
	tok := signToken(t, "secret", "user-1", true)

	if _, err := v.Parse(tok); err == nil {
		t.Errorf("Parse should reject an expired token")
	}
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	v := NewVerifier("secret")
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	v.Middleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if called {
		t.Errorf("next handler should not run without a valid token")
	}
}

func TestMiddlewareInjectsUserId(t *testing.T) {
	v := NewVerifier("secret")
	tok := signToken(t, "secret", "user-42", false)
	var gotUserId string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserId, _ = UserId(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	v.Middleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if gotUserId != "user-42" {
		t.Errorf("UserId in context = %q, want user-42", gotUserId)
	}
}

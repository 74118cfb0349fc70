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

package store

import (
	"testing"
	"time"

	"github.com/codepr/judge-core/internal/model"
)

func TestCreateAndGet(t *testing.T) {
	s := NewInMemoryStore()
	sub := &model.Submission{Id: "sub-1", SubmitterId: "user-1", Status: model.Pending}
	s.Create(sub)

	got, err := s.Get("sub-1")
	if err != nil {
		t.Errorf("Get failed to fetch the submission: %s", err)
	}
	if got.Id != "sub-1" {
		t.Errorf("Get returned wrong submission: %s", got.Id)
	}
}

func TestGetMissing(t *testing.T) {
	s := NewInMemoryStore()
	if _, err := s.Get("missing"); err != ErrNotFound {
		t.Errorf("Get on missing id should return ErrNotFound, got %v", err)
	}
}

func TestUpdateMissing(t *testing.T) {
	s := NewInMemoryStore()
	sub := &model.Submission{Id: "sub-1"}
	if err := s.Update(sub); err != ErrNotFound {
		t.Errorf("Update on missing id should return ErrNotFound, got %v", err)
	}
}

func TestListByUser(t *testing.T) {
	s := NewInMemoryStore()
	now := time.Unix(1000, 0)
	older := &model.Submission{Id: "sub-1", SubmitterId: "user-1", CreatedAt: now}
	newer := &model.Submission{Id: "sub-2", SubmitterId: "user-1", CreatedAt: now.Add(time.Minute)}
	other := &model.Submission{Id: "sub-3", SubmitterId: "user-2", CreatedAt: now}
	s.Create(older)
	s.Create(newer)
	s.Create(other)

	subs, err := s.ListByUser("user-1")
	if err != nil {
		t.Errorf("ListByUser errored: %s", err)
	}
	if len(subs) != 2 {
		t.Errorf("ListByUser returned %d submissions, want 2", len(subs))
	}
	if subs[0].Id != "sub-2" {
		t.Errorf("ListByUser didn't sort most-recent first, got %s first", subs[0].Id)
	}
}

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

// Package store persists the Submission aggregate. InMemoryStore, a
// mutex-guarded map, is the only SubmissionStore implementation; cmd/judge
// uses it as well, so submissions do not survive a process restart.
package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/codepr/judge-core/internal/model"
)

// ErrNotFound is returned when a submission id has no matching record.
var ErrNotFound = errors.New("submission not found")

// SubmissionStore is the persistence boundary the coordinator depends on.
type SubmissionStore interface {
	Create(s *model.Submission) error
	Get(id string) (*model.Submission, error)
	ListByUser(userId string) ([]*model.Submission, error)
	Update(s *model.Submission) error
}

// InMemoryStore keeps submissions in a map guarded by a mutex, the same
// shape as the commit store it generalizes.
type InMemoryStore struct {
	sync.Mutex
	submissions map[string]*model.Submission
}

// NewInMemoryStore builds an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{submissions: map[string]*model.Submission{}}
}

// Create inserts s, keyed by its Id. A submission with a duplicate id
// overwrites the previous record, matching the store's role as the
// coordinator's single point of truth for submission state.
func (s *InMemoryStore) Create(sub *model.Submission) error {
	s.Lock()
	defer s.Unlock()
	s.submissions[sub.Id] = sub
	return nil
}

// Get fetches a submission by id.
func (s *InMemoryStore) Get(id string) (*model.Submission, error) {
	s.Lock()
	defer s.Unlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sub, nil
}

// ListByUser returns every submission belonging to userId, most recent
// first.
func (s *InMemoryStore) ListByUser(userId string) ([]*model.Submission, error) {
	s.Lock()
	defer s.Unlock()
	out := make([]*model.Submission, 0)
	for _, sub := range s.submissions {
		if sub.SubmitterId == userId {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces the stored submission with s. Returns ErrNotFound if no
// record with s.Id exists yet.
func (s *InMemoryStore) Update(sub *model.Submission) error {
	s.Lock()
	defer s.Unlock()
	if _, ok := s.submissions[sub.Id]; !ok {
		return ErrNotFound
	}
	s.submissions[sub.Id] = sub
	return nil
}

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

package model

// Progress is the completed/total tuple carried on a ProgressEvent.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// ProgressEvent is the cumulative, append-only update the coordinator emits
// to the progress channel after every test-case completion. Results is the
// full result list produced so far, not a delta.
//
// Invariant: a submission in a terminal Status shall not emit further
// events; len(Results) <= Progress.Total at all times.
type ProgressEvent struct {
	SubmissionId string          `json:"submissionId"`
	Status       Status          `json:"status"`
	Progress     Progress        `json:"progress"`
	Percent      int             `json:"percent"`
	PassedCount  int             `json:"passedCount"`
	TotalCount   int             `json:"totalCount"`
	Results      []PerTestResult `json:"results"`
}

// NewProgressEvent builds a ProgressEvent from the submission's current
// state, mirroring its Counters onto the event's flattened fields.
func NewProgressEvent(s *Submission) ProgressEvent {
	return ProgressEvent{
		SubmissionId: s.Id,
		Status:       s.Status,
		Progress: Progress{
			Completed: len(s.Results),
			Total:     s.Counters.Total,
		},
		Percent:     s.Counters.Percent,
		PassedCount: s.Counters.Passed,
		TotalCount:  s.Counters.Total,
		Results:     s.Results,
	}
}

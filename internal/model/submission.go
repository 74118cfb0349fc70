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

// Package model holds the domain entities shared by the coordinator,
// executor and progress channel: the Submission aggregate, its per-test
// results and the job/event payloads that travel across the queue and the
// push channel.
package model

import (
	"math"
	"time"
)

// Status is the lifecycle state of a Submission.
type Status string

const (
	Pending Status = "Pending"
	Running Status = "Running"
	Success Status = "Success"
	WA      Status = "WA"
	RE      Status = "RE"
	TLE     Status = "TLE"
	Failed  Status = "Failed"
)

// IsTerminal reports whether s is a sink state in the submission state
// machine; no further progress events may be emitted once reached.
func (s Status) IsTerminal() bool {
	switch s {
	case Success, WA, RE, TLE, Failed:
		return true
	default:
		return false
	}
}

// Language is the closed (but extensible) set of languages a submission may
// be written in.
type Language string

const (
	Java   Language = "JAVA"
	Python Language = "PYTHON"
	Cpp    Language = "CPP"
)

// TestCase is one input/expected-output pair belonging to a Problem.
type TestCase struct {
	Id             string `json:"id"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
}

// PerTestResult records the outcome of running the user's solution against
// a single TestCase.
//
// Invariant: Passed == (Error == "" && strings.TrimRight(Output, " \t\r\n") ==
// strings.TrimRight(TestCase.ExpectedOutput, " \t\r\n")).
type PerTestResult struct {
	TestCase TestCase `json:"testCase"`
	Output   string   `json:"output"`
	Passed   bool     `json:"passed"`
	Error    string   `json:"error,omitempty"`
}

// Counters is the aggregate pass/fail tally carried on a Submission and on
// every ProgressEvent.
type Counters struct {
	Passed  int `json:"passed"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// ComputeCounters derives a Counters value from a slice of results against
// the declared total number of test cases, rounding the percentage the same
// way the judge's progress events do: round(100 * passed / total).
func ComputeCounters(results []PerTestResult, total int) Counters {
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	c := Counters{Passed: passed, Total: total}
	if total > 0 {
		c.Percent = int(math.Round(100 * float64(passed) / float64(total)))
	}
	return c
}

// Submission is the aggregate root persisted by the coordinator. It is
// created in Pending, transitions through at most one terminal state, and
// is immutable thereafter.
type Submission struct {
	Id          string          `json:"id"`
	SubmitterId string          `json:"submitterId"`
	ProblemId   string          `json:"problemId"`
	SourceCode  string          `json:"sourceCode"`
	Language    Language        `json:"language"`
	Status      Status          `json:"status"`
	Results     []PerTestResult `json:"results"`
	Counters    Counters        `json:"counters"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AppendResult appends r to the submission's result list and recomputes its
// aggregate counters against total test cases.
func (s *Submission) AppendResult(r PerTestResult, total int) {
	s.Results = append(s.Results, r)
	s.Counters = ComputeCounters(s.Results, total)
}

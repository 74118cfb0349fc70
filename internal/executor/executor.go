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

// Package executor orchestrates, for one (problem, userCode, language)
// triple, a sequential per-test-case run of the sandbox through the
// language harness, producing a deterministic list of per-test results.
package executor

import (
	"context"
	"strings"

	"github.com/codepr/judge-core/internal/harness"
	"github.com/codepr/judge-core/internal/model"
	"github.com/codepr/judge-core/internal/sandbox"
)

// TimeoutError is the error message attached to a PerTestResult whose
// container hit the wall-clock deadline; the Coordinator matches on it to
// classify a submission as TLE.
const TimeoutError = "time limit exceeded"

// Executor pairs a Sandbox Runner with the limits for its containers. It
// has no methods of its own; the package-level Execute runs test cases one
// at a time. The Coordinator is responsible for running multiple
// submissions concurrently.
type Executor struct {
	runner sandbox.Runner
	limits sandbox.Limits
}

// New builds an Executor over runner using limits for every container it
// launches.
func New(runner sandbox.Runner, limits sandbox.Limits) *Executor {
	return &Executor{runner: runner, limits: limits}
}

// OnResult is invoked after classifying every test case, letting the
// Coordinator emit a progress event without the Executor knowing about the
// progress channel.
type OnResult func(index int, result model.PerTestResult)

// Execute runs problem.TestCases in order against userCode written in
// language, calling onResult after each one. It implements the documented
// short-circuit policy: on RE or TLE it may stop launching containers and
// fill the remaining results with the same error; on WA it continues to
// the end.
func Execute(ctx context.Context, runner sandbox.Runner, limits sandbox.Limits, problem model.Problem, userCode string, language model.Language, onResult OnResult) ([]model.PerTestResult, error) {
	stub, ok := problem.Stub(language)
	if !ok {
		return nil, errStubNotFound
	}

	built, err := harness.Build(language, stub, userCode)
	if err != nil {
		return nil, err
	}

	results := make([]model.PerTestResult, 0, len(problem.TestCases))
	for i, tc := range problem.TestCases {
		res, err := runner.Run(ctx, built.Image, built.Cmd, tc.Input+"\n", limits)
		if err != nil {
			r := model.PerTestResult{TestCase: tc, Error: err.Error()}
			results = append(results, r)
			if onResult != nil {
				onResult(i, r)
			}
			fillRemaining(&results, problem.TestCases, r.Error)
			return results, nil
		}

		r := classify(tc, res)
		results = append(results, r)
		if onResult != nil {
			onResult(i, r)
		}

		if shortCircuits(r) {
			fillRemaining(&results, problem.TestCases, r.Error)
			return results, nil
		}
	}
	return results, nil
}

// classify turns a raw sandbox Result into a PerTestResult, attaching the
// most specific error: timeout, then non-empty stderr (compile or runtime),
// then a plain output mismatch.
func classify(tc model.TestCase, res sandbox.Result) model.PerTestResult {
	if res.TimedOut {
		return model.PerTestResult{TestCase: tc, Output: res.Stdout, Error: TimeoutError}
	}
	if strings.TrimSpace(res.Stderr) != "" || res.ExitCode != 0 {
		errMsg := strings.TrimSpace(res.Stderr)
		if errMsg == "" {
			errMsg = "non-zero exit status"
		}
		return model.PerTestResult{TestCase: tc, Output: res.Stdout, Error: errMsg}
	}

	expected := strings.TrimRight(tc.ExpectedOutput, " \t\r\n")
	actual := strings.TrimRight(res.Stdout, " \t\r\n")
	if actual != expected {
		return model.PerTestResult{TestCase: tc, Output: res.Stdout, Passed: false}
	}
	return model.PerTestResult{TestCase: tc, Output: res.Stdout, Passed: true}
}

// shortCircuits reports whether r is a fatal (non-WA) failure: an output
// mismatch is not itself sufficient — only a non-empty Error (RE/TLE)
// triggers the short-circuit; a bare mismatch (WA, Error == "") never does.
func shortCircuits(r model.PerTestResult) bool {
	return r.Error != ""
}

// fillRemaining pads results with placeholder entries carrying the same
// short-circuit error, without notifying onResult: the caller is
// responsible for emitting a single consolidated terminal event once
// grading has stopped, not one event per padded placeholder.
func fillRemaining(results *[]model.PerTestResult, testCases []model.TestCase, errMsg string) {
	for i := len(*results); i < len(testCases); i++ {
		*results = append(*results, model.PerTestResult{TestCase: testCases[i], Error: errMsg})
	}
}

type stubNotFoundError struct{}

func (stubNotFoundError) Error() string { return "stub not found" }

var errStubNotFound error = stubNotFoundError{}

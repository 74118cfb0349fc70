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

import "testing"

func TestComputeCounters(t *testing.T) {
	results := []PerTestResult{
		{Passed: true},
		{Passed: false, Error: "WA"},
		{Passed: true},
	}
	c := ComputeCounters(results, 4)
	if c.Passed != 2 {
		t.Errorf("ComputeCounters passed = %d, want 2", c.Passed)
	}
	if c.Total != 4 {
		t.Errorf("ComputeCounters total = %d, want 4", c.Total)
	}
	if c.Percent != 50 {
		t.Errorf("ComputeCounters percent = %d, want 50", c.Percent)
	}
}

func TestComputeCountersZeroTotal(t *testing.T) {
	c := ComputeCounters(nil, 0)
	if c.Percent != 0 {
		t.Errorf("ComputeCounters percent = %d, want 0 for zero total", c.Percent)
	}
}

func TestAppendResult(t *testing.T) {
	sub := Submission{Id: "sub-1"}
	sub.AppendResult(PerTestResult{Passed: true}, 2)
	sub.AppendResult(PerTestResult{Passed: false}, 2)

	if len(sub.Results) != 2 {
		t.Errorf("AppendResult len = %d, want 2", len(sub.Results))
	}
	if sub.Counters.Passed != 1 || sub.Counters.Total != 2 {
		t.Errorf("unexpected counters after AppendResult: %+v", sub.Counters)
	}
}

func TestStatusIsTerminal(t *testing.T) {
	terminal := []Status{Success, WA, RE, TLE, Failed}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	nonTerminal := []Status{Pending, Running}
	for _, s := range nonTerminal {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

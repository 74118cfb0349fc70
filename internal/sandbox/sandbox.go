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

// Package sandbox wraps a container runtime to launch one ephemeral,
// resource-constrained process per test case, feed it stdin, and collect
// its multiplexed stdout/stderr under a wall-clock deadline.
package sandbox

import (
	"context"
	"time"
)

// Limits bounds a single sandbox invocation.
type Limits struct {
	MemoryMB        int64
	CPUQuotaPercent int64
	Deadline        time.Duration
	Network         bool
}

// DefaultLimits mirrors the documented defaults: 512 MiB, 50% of one core,
// 4s wall clock, no network.
func DefaultLimits() Limits {
	return Limits{
		MemoryMB:        512,
		CPUQuotaPercent: 50,
		Deadline:        4 * time.Second,
		Network:         false,
	}
}

// Result is what a Runner invocation produces regardless of outcome.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
}

// Runner launches a container from image, running cmd, feeding stdin to
// it, and returns the captured output. It must guarantee the container is
// removed before returning, on every exit path.
type Runner interface {
	Run(ctx context.Context, image string, cmd []string, stdin string, limits Limits) (Result, error)
}

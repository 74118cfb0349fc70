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

// Package coordinator owns the submission lifecycle: accepting new
// submissions, pinning them to a queued Job, running a bounded pool of
// worker goroutines that drive the Executor, and keeping the Submission
// store and the progress channel in sync with every transition.
package coordinator

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/codepr/judge-core/internal/executor"
	"github.com/codepr/judge-core/internal/model"
	"github.com/codepr/judge-core/internal/problemclient"
	"github.com/codepr/judge-core/internal/progress"
	"github.com/codepr/judge-core/internal/queue"
	"github.com/codepr/judge-core/internal/sandbox"
	"github.com/codepr/judge-core/internal/store"
)

// Coordinator wires the submission store, job queue, sandbox runner and
// progress channel together, running Workers worker goroutines draining
// the queue.
type Coordinator struct {
	store    store.SubmissionStore
	problems *problemclient.Client
	jobs     queue.Queue
	runner   sandbox.Runner
	limits   sandbox.Limits
	registry *progress.Registry
	push     *progress.PushClient
	workers  int
	logger   *log.Logger

	jobCh chan model.Job
}

// New builds a Coordinator. Workers defaults to 1 if non-positive,
// matching the documented default concurrency of one submission at a time.
func New(st store.SubmissionStore, problems *problemclient.Client, jobs queue.Queue, runner sandbox.Runner, limits sandbox.Limits, registry *progress.Registry, push *progress.PushClient, workers int, logger *log.Logger) *Coordinator {
	if workers <= 0 {
		workers = 1
	}
	return &Coordinator{
		store:    st,
		problems: problems,
		jobs:     jobs,
		runner:   runner,
		limits:   limits,
		registry: registry,
		push:     push,
		workers:  workers,
		logger:   logger,
		jobCh:    make(chan model.Job, workers),
	}
}

// Submit fetches the problem, creates a Pending Submission, pins the job
// payload to the problem snapshot, and enqueues it for grading. It returns
// the new submission id.
func (c *Coordinator) Submit(userId, problemId, sourceCode string, language model.Language) (string, error) {
	problem, err := c.problems.Fetch(problemId)
	if err != nil {
		return "", err
	}

	sub := &model.Submission{
		Id:          uuid.NewString(),
		SubmitterId: userId,
		ProblemId:   problemId,
		SourceCode:  sourceCode,
		Language:    language,
		Status:      model.Pending,
		Counters:    model.Counters{Total: len(problem.TestCases)},
		CreatedAt:   time.Now(),
	}
	if err := c.store.Create(sub); err != nil {
		return "", err
	}

	job := model.Job{
		SubmissionId: sub.Id,
		UserId:       userId,
		ProblemId:    problemId,
		Language:     language,
		UserCode:     sourceCode,
		Problem:      problem,
	}
	body, err := json.Marshal(job)
	if err != nil {
		return "", err
	}
	if err := c.jobs.Produce(body); err != nil {
		return "", err
	}
	return sub.Id, nil
}

// Get fetches a submission by id.
func (c *Coordinator) Get(id string) (*model.Submission, error) {
	return c.store.Get(id)
}

// ListByUser fetches every submission belonging to userId.
func (c *Coordinator) ListByUser(userId string) ([]*model.Submission, error) {
	return c.store.ListByUser(userId)
}

// Run starts the queue consumer and the worker pool. It blocks until ctx is
// canceled.
func (c *Coordinator) Run(ctx context.Context) {
	go func() {
		raw := make(chan []byte)
		go func() {
			if err := c.jobs.Consume(raw); err != nil {
				c.logger.Printf("coordinator: queue consumer stopped: %v", err)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case body := <-raw:
				var job model.Job
				if err := json.Unmarshal(body, &job); err != nil {
					c.logger.Printf("coordinator: dropping malformed job: %v", err)
					continue
				}
				c.jobCh <- job
			}
		}
	}()

	for i := 0; i < c.workers; i++ {
		go c.work(ctx)
	}
	<-ctx.Done()
}

// work is one worker goroutine's loop: pull a job, grade it, persist and
// publish every transition.
func (c *Coordinator) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-c.jobCh:
			c.grade(ctx, job)
		}
	}
}

// grade runs one job end to end. It is idempotent: a submission already in
// a terminal state is skipped, tolerating the queue's at-least-once
// redelivery.
func (c *Coordinator) grade(ctx context.Context, job model.Job) {
	sub, err := c.store.Get(job.SubmissionId)
	if err != nil {
		c.logger.Printf("coordinator: job for unknown submission %s: %v", job.SubmissionId, err)
		return
	}
	if sub.Status.IsTerminal() {
		return
	}

	sub.Status = model.Running
	c.store.Update(sub)
	c.emit(job.UserId, sub)

	// A result is terminal either because it short-circuited (a non-empty
	// Error) or because it is the last test case the Problem declares;
	// either way the submission's status is folded into this same event
	// instead of leaving it "Running" for one more round trip.
	onResult := func(_ int, r model.PerTestResult) {
		sub.AppendResult(r, len(job.Problem.TestCases))
		if r.Error != "" || len(sub.Results) == len(job.Problem.TestCases) {
			sub.Status = terminalStatus(sub.Results)
		}
		c.store.Update(sub)
		c.emit(job.UserId, sub)
	}

	results, err := executor.Execute(ctx, c.runner, c.limits, job.Problem, job.UserCode, job.Language, onResult)
	if err != nil {
		sub.Status = model.Failed
		c.store.Update(sub)
		c.emit(job.UserId, sub)
		return
	}

	// A short-circuit pads results past the last onResult call; store the
	// padded list so every test case is accounted for in the terminal state.
	if len(results) > len(sub.Results) {
		sub.Results = results
		sub.Counters = model.ComputeCounters(results, len(job.Problem.TestCases))
		c.store.Update(sub)
	}

	// onResult already folded the verdict into sub.Status and emitted it
	// for every non-empty TestCases problem; this only covers the
	// zero-test-case edge case where the loop above never ran.
	if !sub.Status.IsTerminal() {
		sub.Status = terminalStatus(results)
		c.store.Update(sub)
		c.emit(job.UserId, sub)
	}
}

// terminalStatus derives the submission-level status from its per-test
// results: the first non-passing result's own failure mode wins, success
// otherwise.
func terminalStatus(results []model.PerTestResult) model.Status {
	for _, r := range results {
		if r.Passed {
			continue
		}
		switch r.Error {
		case "":
			return model.WA
		case executor.TimeoutError:
			return model.TLE
		default:
			return model.RE
		}
	}
	return model.Success
}

// emit publishes the submission's current state as a progress event, both
// to any local session and to sibling instances.
func (c *Coordinator) emit(userId string, sub *model.Submission) {
	event := model.NewProgressEvent(sub)
	c.registry.Publish(userId, event)
	if c.push != nil {
		c.push.Broadcast(userId, event)
	}
}

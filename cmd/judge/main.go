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

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/codepr/judge-core/internal/authmw"
	"github.com/codepr/judge-core/internal/config"
	"github.com/codepr/judge-core/internal/coordinator"
	"github.com/codepr/judge-core/internal/httpserver"
	"github.com/codepr/judge-core/internal/problemclient"
	"github.com/codepr/judge-core/internal/progress"
	"github.com/codepr/judge-core/internal/queue"
	"github.com/codepr/judge-core/internal/sandbox"
	"github.com/codepr/judge-core/internal/store"
)

var (
	configPath string
	peersFlag  string
)

func main() {
	flag.StringVar(&configPath, "config", "", "Path to an optional YAML config overlay")
	flag.StringVar(&peersFlag, "peers", "", "Comma-separated base URLs of sibling coordinator instances")
	flag.Parse()

	logger := log.New(os.Stdout, "[judge-core] ", log.LstdFlags)

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal(err)
	}

	runner, err := sandbox.NewDockerRunner(logger)
	if err != nil {
		logger.Fatal(err)
	}

	limits := sandbox.Limits{
		MemoryMB:        cfg.MemoryLimitMB,
		CPUQuotaPercent: cfg.CPUQuotaPercent,
		Deadline:        cfg.TestCaseDeadline,
	}

	submissionStore := store.NewInMemoryStore()
	problems := problemclient.New(cfg.ProblemServiceURL)
	jobs := queue.NewAmqpAdapter(cfg.AMQPUrl, cfg.SubmissionQueue, queue.WithDurable(true))
	registry := progress.NewRegistry(logger)

	var peers []string
	if peersFlag != "" {
		peers = strings.Split(peersFlag, ",")
	}
	push := progress.NewPushClient(peers)

	co := coordinator.New(submissionStore, problems, jobs, runner, limits, registry, push, cfg.WorkerConcurrency, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go co.Run(ctx)

	verifier := authmw.NewVerifier(cfg.JWTSecret)
	server := httpserver.New(":"+cfg.Port, logger, co, verifier, registry)
	if err := server.Run(); err != nil {
		logger.Fatal(err)
	}
}

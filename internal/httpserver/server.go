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

// Package httpserver assembles the coordinator's HTTP routes and runs them
// behind a standard library http.Server with signal-driven graceful
// shutdown.
package httpserver

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codepr/judge-core/internal/authmw"
	"github.com/codepr/judge-core/internal/coordinator"
	"github.com/codepr/judge-core/internal/progress"
)

// Server wraps an http.Server carrying every coordinator and progress
// route.
type Server struct {
	server *http.Server
	logger *log.Logger
}

func newRouter(c *coordinator.Coordinator, verifier *authmw.Verifier, reg *progress.Registry) *http.ServeMux {
	router := http.NewServeMux()
	router.Handle("/api/submissions/create", verifier.Middleware(coordinator.HandleCreate(c)))
	router.Handle("/api/submissions/user", verifier.Middleware(coordinator.HandleListByUser(c)))
	router.Handle("/api/submissions/", verifier.Middleware(coordinator.HandleGet(c)))
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if err := progress.Upgrade(reg, w, r); err != nil {
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	router.HandleFunc("/internal/push", progress.Handler(reg))
	return router
}

// New builds a Server listening on addr.
func New(addr string, l *log.Logger, c *coordinator.Coordinator, verifier *authmw.Verifier, reg *progress.Registry) *Server {
	return &Server{
		server: &http.Server{
			Addr:           addr,
			Handler:        logReq(l)(newRouter(c, verifier, reg)),
			ErrorLog:       l,
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   0, // websocket connections are long-lived
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		logger: l,
	}
}

// Run starts the server and blocks until a SIGINT/SIGTERM triggers a
// graceful shutdown.
func (s *Server) Run() error {
	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		s.logger.Println("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.server.SetKeepAlivesEnabled(false)
		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Println("graceful shutdown failed:", err)
		}
		close(done)
	}()

	s.logger.Println("listening on", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-done
	return nil
}

func logReq(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			l.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
		})
	}
}

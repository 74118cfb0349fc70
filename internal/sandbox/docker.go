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

package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

// DockerRunner is the production Runner, a thin generalization of the
// teacher's DockerPool.RunContainer: instead of pulling one fixed image and
// cloning a repository, it pulls an arbitrary per-language image (lazily,
// once) and runs an arbitrary command with CPU/memory/network limits,
// racing a wall-clock deadline against ContainerWait.
type DockerRunner struct {
	cli    *client.Client
	logger *log.Logger

	m      sync.Mutex
	pulled map[string]bool
}

// NewDockerRunner dials the docker daemon at the configured socket using
// the standard environment-derived client options.
func NewDockerRunner(logger *log.Logger) (*DockerRunner, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}
	return &DockerRunner{
		cli:    cli,
		logger: logger,
		pulled: map[string]bool{},
	}, nil
}

// ensurePulled pulls image once per runner lifetime and caches the result,
// matching the "pull lazily on first use" requirement.
func (r *DockerRunner) ensurePulled(ctx context.Context, image string) error {
	r.m.Lock()
	if r.pulled[image] {
		r.m.Unlock()
		return nil
	}
	r.m.Unlock()

	reader, err := r.cli.ImagePull(ctx, image, types.ImagePullOptions{})
	if err != nil {
		return fmt.Errorf("image unavailable: %w", err)
	}
	defer reader.Close()
	io.Copy(io.Discard, reader)

	r.m.Lock()
	r.pulled[image] = true
	r.m.Unlock()
	return nil
}

// Run implements Runner. It creates a container from image with the given
// cmd and resource limits, attaches stdin/stdout/stderr, starts it, feeds
// stdin, demultiplexes the combined log stream with stdcopy, and races the
// container's exit against limits.Deadline. The container is always
// removed before Run returns.
func (r *DockerRunner) Run(ctx context.Context, image string, cmd []string, stdin string, limits Limits) (Result, error) {
	pullCtx, cancelPull := context.WithTimeout(ctx, 60*time.Second)
	defer cancelPull()
	if err := r.ensurePulled(pullCtx, image); err != nil {
		return Result{Stderr: "image unavailable"}, err
	}

	deadline := limits.Deadline
	if deadline <= 0 {
		deadline = DefaultLimits().Deadline
	}
	runCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	networkMode := container.NetworkMode("none")
	if limits.Network {
		networkMode = "bridge"
	}

	containerConfig := &container.Config{
		Image:        image,
		Cmd:          cmd,
		AttachStdin:  true,
		AttachStdout: true,
		AttachStderr: true,
		OpenStdin:    true,
		StdinOnce:    true,
		Tty:          false,
	}
	hostConfig := &container.HostConfig{
		NetworkMode: networkMode,
		SecurityOpt: []string{"no-new-privileges"},
		Tmpfs:       map[string]string{"/tmp": "rw,nosuid,nodev,noexec,size=64m"},
		Resources: container.Resources{
			Memory:     limits.MemoryMB * 1024 * 1024,
			MemorySwap: limits.MemoryMB * 1024 * 1024,
			CPUPeriod:  100000,
			CPUQuota:   limits.CPUQuotaPercent * 1000,
		},
	}

	resp, err := r.cli.ContainerCreate(runCtx, containerConfig, hostConfig, nil, nil, "")
	if err != nil {
		return Result{Stderr: "image unavailable"}, fmt.Errorf("container create: %w", err)
	}
	id := resp.ID

	defer r.remove(id)

	attachResp, err := r.cli.ContainerAttach(runCtx, id, container.AttachOptions{
		Stream: true, Stdin: true, Stdout: true, Stderr: true,
	})
	if err != nil {
		return Result{Stderr: "image unavailable"}, fmt.Errorf("container attach: %w", err)
	}
	defer attachResp.Close()

	if err := r.cli.ContainerStart(runCtx, id, container.StartOptions{}); err != nil {
		return Result{Stderr: "image unavailable"}, fmt.Errorf("container start: %w", err)
	}

	go func() {
		defer attachResp.CloseWrite()
		io.WriteString(attachResp.Conn, stdin)
	}()

	var stdoutBuf, stderrBuf bytes.Buffer
	copyDone := make(chan error, 1)
	go func() {
		_, cerr := stdcopy.StdCopy(&stdoutBuf, &stderrBuf, attachResp.Reader)
		copyDone <- cerr
	}()

	statusCh, errCh := r.cli.ContainerWait(runCtx, id, container.WaitConditionNotRunning)

	result := Result{}
	select {
	case err := <-errCh:
		if runCtx.Err() == context.DeadlineExceeded {
			result.TimedOut = true
			r.kill(id)
		} else if err != nil {
			return result, fmt.Errorf("container wait: %w", err)
		}
	case status := <-statusCh:
		result.ExitCode = int(status.StatusCode)
	}

	waitCopyCtx, cancelCopy := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelCopy()
	select {
	case <-copyDone:
	case <-waitCopyCtx.Done():
	}

	result.Stdout = strings.TrimRight(stdoutBuf.String(), " \t\r\n")
	result.Stderr = stderrBuf.String()
	return result, nil
}

func (r *DockerRunner) kill(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	timeout := 0
	r.cli.ContainerStop(ctx, id, container.StopOptions{Timeout: &timeout})
}

func (r *DockerRunner) remove(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.cli.ContainerRemove(ctx, id, container.RemoveOptions{Force: true}); err != nil {
		r.logger.Printf("failed to remove container %s: %v", id, err)
	}
}

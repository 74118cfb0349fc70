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

// Package harness wraps a user's solution with a per-language driver that
// reads one test input line from stdin, dispatches to the user's method and
// prints one canonical result line. The host process never inspects user
// code structure beyond extracting the method identifier from the stub's
// signature line; all input parsing happens inside the generated source,
// never in this package.
package harness

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"text/template"

	"github.com/codepr/judge-core/internal/model"
)

// Built is the output of assembling a submission's full source for one
// test-case container invocation: the image to run it in and the command
// that compiles (if needed) and executes it.
type Built struct {
	Image string
	Cmd   []string
}

// Build renders the full compilable source for language from the problem's
// stub and the user's code, base64-encodes it to avoid shell-quoting
// hazards, and returns the image/command pair the Sandbox Runner should
// invoke. It receives only userCode and the stub; assembly happens
// entirely here, never in the Executor.
func Build(language model.Language, stub model.CodeStub, userCode string) (Built, error) {
	spec, ok := languageSpecs[language]
	if !ok {
		return Built{}, fmt.Errorf("unsupported language %q", language)
	}

	methodName, err := ExtractMethodName(stub.UserSnippet)
	if err != nil {
		return Built{}, err
	}

	source, err := spec.render(driverParams{
		StartSnippet: stub.StartSnippet,
		UserCode:     userCode,
		EndSnippet:   stub.EndSnippet,
		MethodName:   methodName,
	})
	if err != nil {
		return Built{}, err
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(source))
	return Built{
		Image: spec.Image,
		Cmd:   spec.commandFor(encoded),
	}, nil
}

type driverParams struct {
	StartSnippet string
	UserCode     string
	EndSnippet   string
	MethodName   string
}

type languageSpec struct {
	Image      string
	FileName   string
	Driver     *template.Template
	commandFor func(base64Source string) []string
}

func (s languageSpec) render(p driverParams) (string, error) {
	var buf bytes.Buffer
	if err := s.Driver.Execute(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// heredocCmd is the shared shape of every language's compile+run command:
// decode the base64 source into fileName via a base64 -d pipe, eliminating
// shell-quoting hazards entirely, then compile (if needed) and run.
func heredocCmd(fileName, base64Source, compileAndRun string) []string {
	script := fmt.Sprintf(
		"echo %s | base64 -d > %s && %s",
		base64Source, fileName, compileAndRun,
	)
	return []string{"sh", "-c", script}
}

var languageSpecs = map[model.Language]languageSpec{
	model.Python: {
		Image:    "python:3.9-slim",
		FileName: "main.py",
		Driver:   pythonDriver,
		commandFor: func(b64 string) []string {
			return heredocCmd("main.py", b64, "python main.py")
		},
	},
	model.Java: {
		Image:    "eclipse-temurin:17",
		FileName: "Main.java",
		Driver:   javaDriver,
		commandFor: func(b64 string) []string {
			return heredocCmd("Main.java", b64, "javac Main.java && java Main")
		},
	},
	model.Cpp: {
		Image:    "gcc:latest",
		FileName: "main.cpp",
		Driver:   cppDriver,
		commandFor: func(b64 string) []string {
			return heredocCmd("main.cpp", b64, "g++ -std=c++17 -O2 main.cpp -o main && ./main")
		},
	},
}

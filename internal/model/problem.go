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

// CodeStub is the problem-supplied boilerplate framing user code for one
// language: startSnippet opens the outer class/imports, userSnippet is the
// method signature line the caller fills with user code, endSnippet closes
// the class.
type CodeStub struct {
	Language     Language `json:"language"`
	StartSnippet string   `json:"startSnippet"`
	UserSnippet  string   `json:"userSnippet"`
	EndSnippet   string   `json:"endSnippet"`
}

// Problem is fetched read-only from the external problem catalog service
// once per submission. Its TestCases list must be non-empty and identical
// across every attempt of the submission's lifetime.
type Problem struct {
	Id        string     `json:"id"`
	Title     string     `json:"title"`
	TestCases []TestCase `json:"testCases"`
	CodeStubs []CodeStub `json:"codeStubs"`
}

// Stub returns the CodeStub matching lang, or false if the problem does not
// carry boilerplate for that language.
func (p *Problem) Stub(lang Language) (CodeStub, bool) {
	for _, s := range p.CodeStubs {
		if s.Language == lang {
			return s, true
		}
	}
	return CodeStub{}, false
}

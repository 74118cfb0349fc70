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

package harness

import (
	"fmt"
	"regexp"
)

// methodNamePattern matches the identifier immediately preceding an opening
// parenthesis, the one piece of structure the harness is allowed to infer
// from the stub's signature line (never from user code itself).
var methodNamePattern = regexp.MustCompile(`(\w+)\s*\(`)

// ExtractMethodName pulls the method identifier out of a stub's
// userSnippet, e.g. "def twoSum(self, nums, target):" -> "twoSum", or
// "public int[] twoSum(int[] nums, int target) {" -> "twoSum".
func ExtractMethodName(userSnippet string) (string, error) {
	matches := methodNamePattern.FindAllStringSubmatch(userSnippet, -1)
	if len(matches) == 0 {
		return "", fmt.Errorf("stub not found: no method signature in %q", userSnippet)
	}
	// The last identifier-before-"(" on the line is the method name itself;
	// earlier matches (if any) belong to a generic return type like
	// "List<Integer>(" never occurring in practice, or to no-op qualifiers.
	return matches[len(matches)-1][1], nil
}

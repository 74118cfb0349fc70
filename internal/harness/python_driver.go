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

import "text/template"

// pythonDriver renders a complete main.py: the problem's stub framing the
// user's method, followed by a generated driver that reads one stdin line,
// parses it into arguments per the fixed input convention table, invokes
// the method by name, and prints the canonical output line.
var pythonDriver = template.Must(template.New("python").Parse(`{{.StartSnippet}}
{{.UserCode}}
{{.EndSnippet}}

import sys


def _split_top_level(s):
    parts, depth, cur, in_str = [], 0, "", False
    for ch in s:
        if ch == '"' and not in_str:
            in_str = True
            cur += ch
        elif ch == '"' and in_str:
            in_str = False
            cur += ch
        elif in_str:
            cur += ch
        elif ch == "[":
            depth += 1
            cur += ch
        elif ch == "]":
            depth -= 1
            cur += ch
        elif ch == "," and depth == 0:
            parts.append(cur.strip())
            cur = ""
        else:
            cur += ch
    if cur.strip() != "":
        parts.append(cur.strip())
    return parts


def _parse_scalar(tok):
    tok = tok.strip()
    if tok == "true":
        return True
    if tok == "false":
        return False
    if len(tok) >= 2 and tok[0] == '"' and tok[-1] == '"':
        return tok[1:-1]
    try:
        if "." in tok:
            return float(tok)
        return int(tok)
    except ValueError:
        return tok


def _parse_list(tok):
    inner = tok.strip()[1:-1].strip()
    if inner == "":
        return []
    return [_parse_scalar(e) for e in _split_top_level(inner)]


def _parse_token(tok):
    tok = tok.strip()
    if tok.startswith("[") and tok.endswith("]"):
        return _parse_list(tok)
    return _parse_scalar(tok)


def _parse_args(line):
    line = line.strip()
    if line == "":
        return []
    return [_parse_token(tok) for tok in _split_top_level(line)]


def _canonical(value):
    if isinstance(value, bool):
        return "true" if value else "false"
    if isinstance(value, list):
        return "[" + ",".join(_canonical(v) for v in value) + "]"
    if isinstance(value, str):
        return value
    return str(value)


def _main():
    line = sys.stdin.readline()
    args = _parse_args(line)
    solver = Solution()
    result = getattr(solver, "{{.MethodName}}")(*args)
    print(_canonical(result))


if __name__ == "__main__":
    _main()
`))

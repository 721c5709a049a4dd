/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package errors gives every jayc failure path a numeric code, a message,
// an optional parent chain and a captured call site, while staying
// compatible with the standard errors.Is / errors.As.
package errors

import (
	"fmt"
	"strconv"
)

// CodeError classifies an error the way an HTTP status code classifies a
// response: a small numeric space, grouped by the taxonomy in spec.md §7.
type CodeError uint16

const (
	// UnknownError is the zero value: no code was attached.
	UnknownError CodeError = iota

	// CodeTransientIO covers EINTR, poll/recv/send timeouts: retry next tick.
	CodeTransientIO
	// CodePeerClosed covers recv==0, ECONNRESET, EPIPE: the session auto-closes.
	CodePeerClosed
	// CodeResourceExhausted covers malloc/fd-limit failures: the current op fails, process keeps running.
	CodeResourceExhausted
	// CodeInvariantViolation covers null session / wrong role calls: the current op fails, no state change.
	CodeInvariantViolation
	// CodeFatal marks a FATAL log emission: the process is about to exit.
	CodeFatal
)

var codeMessage = map[CodeError]string{
	UnknownError:           "unknown error",
	CodeTransientIO:        "transient I/O condition",
	CodePeerClosed:         "peer closed the connection",
	CodeResourceExhausted:  "resource exhausted",
	CodeInvariantViolation: "invariant violation",
	CodeFatal:              "fatal condition",
}

// String implements fmt.Stringer, returning the decimal code value.
func (c CodeError) String() string {
	return strconv.Itoa(int(c))
}

// Message returns the human-readable description registered for c, or the
// UnknownError message if c was never registered.
func (c CodeError) Message() string {
	if m, ok := codeMessage[c]; ok {
		return m
	}
	return codeMessage[UnknownError]
}

// Error returns a new Error carrying this code, the registered message, and
// the given parents (nil parents are ignored). The call site is captured at
// the caller of Error.
func (c CodeError) Error(parent ...error) Error {
	e := &jErr{code: c, msg: c.Message(), site: captureFrame(2)}
	e.Add(parent...)
	return e
}

// Errorf is like Error but formats msg with args first.
func (c CodeError) Errorf(msg string, args ...interface{}) Error {
	return &jErr{code: c, msg: fmt.Sprintf(msg, args...), site: captureFrame(2)}
}

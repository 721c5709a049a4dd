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

// Package procexit is the single process-wide exit hook of spec.md §4.G:
// a {handler, ctx} pair invoked immediately before the process terminates.
package procexit

import (
	"os"
	"sync"
)

// Handler is invoked with the exit code about to be used and the ctx
// passed to Register.
type Handler func(code int, ctx interface{})

var (
	mu  sync.Mutex
	hdl Handler
	ctx interface{}

	// osExit is the actual termination call; overridable in tests.
	osExit = os.Exit
)

// Register installs the single process-wide exit hook, replacing any
// previous registration.
func Register(h Handler, c interface{}) {
	mu.Lock()
	defer mu.Unlock()
	hdl = h
	ctx = c
}

// Exit invokes the registered hook (if any) with code, then terminates
// the process via os.Exit(code). This never returns.
func Exit(code int) {
	mu.Lock()
	h, c := hdl, ctx
	mu.Unlock()

	if h != nil {
		h(code, c)
	}
	osExit(code)
}

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

// Package signal is the process-wide signal table of spec.md §4.G: an
// array indexed by signal number, each slot holding a handler and its
// context, dispatched from a single os/signal relay goroutine. Grounded
// on the teacher's httpserver/run StartWaitNotify signal.Notify pattern.
package signal

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler is invoked with the OS signal that fired and the ctx passed to
// Register.
type Handler func(sig os.Signal, ctx interface{})

type entry struct {
	handler Handler
	ctx     interface{}
}

var (
	mu      sync.Mutex
	table   [32]entry
	relayCh chan os.Signal
	started bool
)

// sigIndex maps the signals jayc cares about to a stable table slot.
// spec.md §6: "SIGINT stops the supervisor cleanly. No other signals are
// trapped by the core" — SIGTERM/SIGQUIT are carried anyway as ambient
// process-glue, mirroring the teacher's three-signal relay.
func sigIndex(sig os.Signal) int {
	switch sig {
	case syscall.SIGINT:
		return 2
	case syscall.SIGTERM:
		return 15
	case syscall.SIGQUIT:
		return 3
	default:
		return -1
	}
}

// Register installs the process-wide relay (once) and sets the handler
// for sig, replacing any previous registration for the same signal.
func Register(sig os.Signal, ctx interface{}, h Handler) {
	idx := sigIndex(sig)
	if idx < 0 {
		return
	}

	mu.Lock()
	table[idx] = entry{handler: h, ctx: ctx}
	if !started {
		relayCh = make(chan os.Signal, 4)
		signal.Notify(relayCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		started = true
		go relay()
	}
	mu.Unlock()
}

// Unregister clears the handler for sig, if any.
func Unregister(sig os.Signal) {
	idx := sigIndex(sig)
	if idx < 0 {
		return
	}
	mu.Lock()
	table[idx] = entry{}
	mu.Unlock()
}

// Stop tears down the relay goroutine and OS notification. Intended for
// tests; production processes normally run until exit.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if !started {
		return
	}
	signal.Stop(relayCh)
	close(relayCh)
	started = false
	table = [32]entry{}
}

func relay() {
	for sig := range relayCh {
		idx := sigIndex(sig)
		if idx < 0 {
			continue
		}

		mu.Lock()
		e := table[idx]
		mu.Unlock()

		if e.handler != nil {
			e.handler(sig, e.ctx)
		}
	}
}

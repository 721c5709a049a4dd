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

// Package task is the generic periodic-loop primitive of spec.md §3/§4.F,
// shared by the worker (D) and control supervisor (E) components: a
// goroutine that repeatedly invokes a user function under a mutex the
// caller may also lock, sleeping a configurable interval between
// iterations, until told to stop or the function signals it is done.
package task

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jaycgo/jayc/logger"
)

// Func is invoked once per iteration while the task's mutex is held. It
// returns false to end the loop, equivalently to Stop being called.
type Func func(t *Task) bool

// Task is the thread-backed loop described in spec.md §4.F. The zero
// value is not usable; build one with New or NewShared.
type Task struct {
	lock  sync.Locker
	state sync.Mutex // guards done only; never held across a call to fn
	fn    Func
	log   logger.FuncLog
	sleep time.Duration

	running int32
	stop    int32
	done    chan struct{}
}

// New builds a Task with its own private mutex, calling fn once per
// iteration and sleeping interval between iterations. A nil log falls
// back to logger.GetDefault().
func New(fn Func, interval time.Duration, log logger.FuncLog) *Task {
	return NewShared(fn, interval, &sync.Mutex{}, log)
}

// NewShared is New, but the caller supplies the lock the loop uses to
// guard each call to fn. The control supervisor (E) uses this to put its
// accept loop and every worker's loop under the SAME mutex, per spec.md
// §3/§4.E's concurrency discipline.
func NewShared(fn Func, interval time.Duration, lock sync.Locker, log logger.FuncLog) *Task {
	if log == nil {
		log = logger.GetDefault
	}
	return &Task{fn: fn, sleep: interval, lock: lock, log: log}
}

// Lock and Unlock expose the task's mutex to the caller, so a related set
// of operations on a worker/supervisor can be performed atomically with
// respect to the task's own iterations (spec.md §4.F: "externally-
// lockable mutex"). The task itself holds this same lock across each call
// to fn.
func (t *Task) Lock()   { t.lock.Lock() }
func (t *Task) Unlock() { t.lock.Unlock() }

// IsRunning reports whether the loop goroutine is currently active.
func (t *Task) IsRunning() bool {
	return atomic.LoadInt32(&t.running) == 1
}

// Start spins up the loop goroutine and returns immediately. Idempotent:
// calling Start on an already-running Task is a no-op returning nil.
func (t *Task) Start() error {
	if !atomic.CompareAndSwapInt32(&t.running, 0, 1) {
		return nil
	}

	atomic.StoreInt32(&t.stop, 0)
	t.state.Lock()
	t.done = make(chan struct{})
	t.state.Unlock()

	go t.loop()
	return nil
}

// Stop sets the stop flag and joins the loop goroutine. Idempotent:
// calling Stop when not running is a no-op returning nil.
func (t *Task) Stop() error {
	if !atomic.CompareAndSwapInt32(&t.stop, 0, 1) {
		<-t.waitDone()
		return nil
	}
	if !t.IsRunning() {
		return nil
	}
	<-t.waitDone()
	return nil
}

// Free stops the loop (if running) and releases the Task. Equivalent to
// Stop, kept as a distinct name to mirror spec.md's free = stop + release.
func (t *Task) Free() error {
	return t.Stop()
}

func (t *Task) waitDone() <-chan struct{} {
	t.state.Lock()
	d := t.done
	t.state.Unlock()
	if d == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return d
}

func (t *Task) loop() {
	defer func() {
		atomic.StoreInt32(&t.running, 0)
		close(t.done)
	}()

	for {
		t.lock.Lock()
		cont := t.fn(t)
		t.lock.Unlock()

		if !cont || atomic.LoadInt32(&t.stop) == 1 {
			return
		}
		if t.sleep > 0 {
			time.Sleep(t.sleep)
		}
		if atomic.LoadInt32(&t.stop) == 1 {
			return
		}
	}
}

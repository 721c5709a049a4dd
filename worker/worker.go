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

// Package worker is the per-connection cooperative loop of spec.md §3/
// §4.D: one task.Task per accepted client, dispatching data/close
// callbacks to the user and detecting peer disconnection.
package worker

import (
	"sync"
	"time"

	"github.com/jaycgo/jayc/client"
	"github.com/jaycgo/jayc/logger"
	"github.com/jaycgo/jayc/task"
)

// Reason is why a worker invoked its close callback, per spec.md §4.D.
type Reason uint8

const (
	// ReasonInit is reported as the reason during worker creation, on
	// create_cb success.
	ReasonInit Reason = iota
	// ReasonInitFail marks a create_cb failure.
	ReasonInitFail
	// ReasonDisconnect marks the peer closing the connection.
	ReasonDisconnect
	// ReasonExtern marks a supervisor-requested forced shutdown.
	ReasonExtern
)

func (r Reason) String() string {
	switch r {
	case ReasonInit:
		return "INIT"
	case ReasonInitFail:
		return "INIT_FAIL"
	case ReasonDisconnect:
		return "DISCONNECT"
	case ReasonExtern:
		return "EXTERN"
	default:
		return "UNKNOWN"
	}
}

// DataFunc is invoked when NewData reports readable input. It is expected
// to perform exactly one Recv and any reply Send.
type DataFunc func(ref string, c client.Client)

// CreateFunc is invoked synchronously during Init, before the task starts,
// as create_cb(user_ctx, INIT, ref_string) per spec.md §4.D — reason is
// always ReasonInit at the call site. Its return reports success: false
// makes the worker emit ReasonInitFail immediately instead of starting.
type CreateFunc func(ref string, reason Reason) bool

// CloseFunc is invoked once, when the worker's loop terminates.
type CloseFunc func(ref string, reason Reason)

// Worker is the component D object: { client, task, callbacks }. It does
// not own its Client — the supervisor does — only the task.Task it drives.
type Worker struct {
	c    client.Client
	t    *task.Task
	log  logger.FuncLog

	dataCB  DataFunc
	closeCB CloseFunc

	closeOnce bool
	reason    Reason
}

// Init constructs a Worker driven by its own private mutex and
// synchronously invokes createCB before starting the underlying task, per
// spec.md §4.D.
func Init(c client.Client, loopSleep time.Duration, createCB CreateFunc, dataCB DataFunc, closeCB CloseFunc, log logger.FuncLog) *Worker {
	return initWorker(c, loopSleep, nil, createCB, dataCB, closeCB, log)
}

// InitShared is Init, but the worker's loop shares lock with its caller —
// the control supervisor (E) passes its own mutex so every worker and the
// accept loop serialise through the SAME lock, per spec.md §3/§4.E.
func InitShared(c client.Client, loopSleep time.Duration, lock sync.Locker, createCB CreateFunc, dataCB DataFunc, closeCB CloseFunc, log logger.FuncLog) *Worker {
	return initWorker(c, loopSleep, lock, createCB, dataCB, closeCB, log)
}

func initWorker(c client.Client, loopSleep time.Duration, lock sync.Locker, createCB CreateFunc, dataCB DataFunc, closeCB CloseFunc, log logger.FuncLog) *Worker {
	if log == nil {
		log = logger.GetDefault
	}

	w := &Worker{c: c, log: log, dataCB: dataCB, closeCB: closeCB}

	ref := c.RefString()
	ok := true
	if createCB != nil {
		ok = createCB(ref, ReasonInit)
	}

	if lock != nil {
		w.t = task.NewShared(w.iterate, loopSleep, lock, log)
	} else {
		w.t = task.New(w.iterate, loopSleep, log)
	}
	if ok {
		_ = w.t.Start()
	} else {
		w.emitClose(ReasonInitFail)
	}
	return w
}

// IsRunning reports whether the worker's loop is still active.
func (w *Worker) IsRunning() bool {
	return w.t.IsRunning()
}

// RefString is the connection's stable textual identity.
func (w *Worker) RefString() string {
	return w.c.RefString()
}

// Free stops the underlying task (joining its goroutine) then releases
// the wrapper. The client is NOT freed here — the supervisor owns it.
func (w *Worker) Free() error {
	return w.t.Stop()
}

// RequestClose performs a supervisor-requested shutdown: it stops the
// task, then invokes the close callback with ReasonExtern, unless the
// worker has already emitted a close reason.
func (w *Worker) RequestClose() error {
	err := w.t.Stop()
	w.t.Lock()
	w.emitClose(ReasonExtern)
	w.t.Unlock()
	return err
}

// iterate is the per-iteration body run under the task's mutex, per
// spec.md §4.D:
//  1. if client.NewData() → invoke dataCB.
//  2. if !client.IsConnected() → invoke closeCB(DISCONNECT) and stop.
func (w *Worker) iterate(*task.Task) bool {
	if w.reason == ReasonExtern {
		w.emitClose(ReasonExtern)
		return false
	}

	if w.c.NewData() {
		if w.dataCB != nil {
			w.dataCB(w.c.RefString(), w.c)
		}
	}

	if !w.c.IsConnected() {
		w.emitClose(ReasonDisconnect)
		return false
	}

	return true
}

func (w *Worker) emitClose(reason Reason) {
	if w.closeOnce {
		return
	}
	w.closeOnce = true
	w.reason = reason
	if w.closeCB != nil {
		w.closeCB(w.c.RefString(), reason)
	}
}

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

// Package supervisor is the control supervisor of spec.md §3/§4.E: a
// single accept loop that owns the set of worker tasks, serialising every
// mutation and every user callback under one mutex shared with every
// worker (spec.md's "Concurrency discipline").
package supervisor

import (
	"sync"
	"sync/atomic"
	"time"

	uuid "github.com/hashicorp/go-uuid"

	"github.com/jaycgo/jayc/client"
	"github.com/jaycgo/jayc/logger"
	"github.com/jaycgo/jayc/server"
	"github.com/jaycgo/jayc/task"
	"github.com/jaycgo/jayc/worker"
)

// record is the connection record of spec.md §3: { client, worker }.
type record struct {
	id string
	c  client.Client
	w  *worker.Worker
}

// Option configures a Supervisor at construction time.
type Option func(*Supervisor)

// WithLoopSleep overrides the accept-loop cadence (default 100ms, per
// spec.md §5).
func WithLoopSleep(d time.Duration) Option {
	return func(s *Supervisor) { s.loopSleep = d }
}

// WithLogger overrides the logger.FuncLog used by the supervisor and
// every worker it spawns.
func WithLogger(log logger.FuncLog) Option {
	return func(s *Supervisor) { s.log = log }
}

// WithMetrics attaches a Prometheus-backed metrics sink (see metrics.go).
func WithMetrics(m *Metrics) Option {
	return func(s *Supervisor) { s.metrics = m }
}

// Supervisor is the component E object of spec.md §3. Exactly one mutex
// (mu) is shared between the control task and every worker task it owns.
type Supervisor struct {
	mu  sync.Mutex
	srv server.Server

	conns []*record

	control   *task.Task
	loopSleep time.Duration
	log       logger.FuncLog
	metrics   *Metrics

	createCB worker.CreateFunc
	dataCB   worker.DataFunc
	closeCB  worker.CloseFunc

	controlRun int32
}

// New builds a Supervisor over the given (not-yet-bound) Server. start
// spins up the control task immediately; construction alone does not bind
// the listener — call Start.
func New(srv server.Server, createCB worker.CreateFunc, dataCB worker.DataFunc, closeCB worker.CloseFunc, opts ...Option) *Supervisor {
	s := &Supervisor{
		srv:       srv,
		loopSleep: 100 * time.Millisecond,
		log:       logger.GetDefault,
		createCB:  createCB,
		dataCB:    dataCB,
		closeCB:   closeCB,
	}
	for _, o := range opts {
		o(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	return s
}

// Start spins up the control task and returns immediately, per spec.md
// §4.E's start/stop contract. The server is bound by the control task's
// iterations (Server.Reset while it is not open), not by Start itself, so
// a bind failure is logged there rather than returned here.
func (s *Supervisor) Start() error {
	if !atomic.CompareAndSwapInt32(&s.controlRun, 0, 1) {
		return nil
	}

	s.control = task.NewShared(s.controlIterate, s.loopSleep, &s.mu, s.log)
	return s.control.Start()
}

// IsRunning reports whether the control loop is active.
func (s *Supervisor) IsRunning() bool {
	return atomic.LoadInt32(&s.controlRun) == 1
}

// ConnectionCount reports the number of live connection records. Intended
// for tests and metrics; takes the shared mutex briefly.
func (s *Supervisor) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Stop sets the stop flag, joins the control task, then drains every
// connection by freeing its worker (joining the worker's thread) and then
// its client, per spec.md §4.E. Stop is idempotent.
func (s *Supervisor) Stop() error {
	if !atomic.CompareAndSwapInt32(&s.controlRun, 1, 0) {
		return nil
	}

	if s.control != nil {
		_ = s.control.Stop()
	}

	s.mu.Lock()
	snap := s.conns
	s.conns = nil
	s.mu.Unlock()

	for _, r := range snap {
		s.teardown(r, worker.ReasonExtern)
	}
	return nil
}

// Free is Stop followed by closing the listener itself.
func (s *Supervisor) Free() error {
	if err := s.Stop(); err != nil {
		return err
	}
	return s.srv.Close()
}

func (s *Supervisor) teardown(r *record, _ worker.Reason) {
	_ = r.w.Free()
	_ = r.c.Close()
	s.metrics.connClosed()
}

// controlIterate is the control task's per-iteration body, executed while
// holding the shared mutex, per spec.md §4.E's state machine.
func (s *Supervisor) controlIterate(*task.Task) bool {
	if !s.srv.IsOpen() {
		if err := s.srv.Reset(); err != nil {
			s.log().Error("supervisor: server reset failed: %v", err)
			return true
		}
	}

	s.reap()
	s.accept()
	return true
}

func (s *Supervisor) reap() {
	kept := s.conns[:0]
	for _, r := range s.conns {
		if r.w.IsRunning() {
			kept = append(kept, r)
			continue
		}
		_ = r.w.Free()
		_ = r.c.Close()
		s.metrics.connClosed()
	}
	s.conns = kept
}

func (s *Supervisor) accept() {
	if !s.srv.NewConnection() {
		return
	}

	c, err := s.srv.AcceptConnection()
	if err != nil {
		s.log().Warn("supervisor: accept failed: %v", err)
		return
	}

	id, _ := uuid.GenerateUUID()
	s.log().Debug("supervisor: accepted %s (correlation %s)", c.RefString(), id)

	w := worker.InitShared(c, s.loopSleep, &s.mu, s.createCB, s.dataCB, s.closeCB, s.log)
	s.conns = append(s.conns, &record{id: id, c: c, w: w})
	s.metrics.connAccepted()
}

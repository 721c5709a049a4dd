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

// Package uds is the AF_UNIX, SOCK_STREAM variant of socket.Endpoint.
package uds

import (
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"syscall"

	"github.com/jaycgo/jayc/errors"
	"github.com/jaycgo/jayc/logger"
	"github.com/jaycgo/jayc/network/protocol"
	"github.com/jaycgo/jayc/socket"
)

// Endpoint is the uds.Endpoint: { path } plus the common fd/role/ref state
// described in spec.md §3.
type Endpoint struct {
	mu   sync.Mutex
	path string
	role socket.Role
	ref  string
	log  logger.FuncLog

	conn net.Conn
	ln   net.Listener
}

// New builds an unset uds.Endpoint bound to path once Connect or Bind is
// called. A nil log falls back to logger.GetDefault().
func New(path string, log logger.FuncLog) *Endpoint {
	if log == nil {
		log = logger.GetDefault
	}
	return &Endpoint{path: path, log: log}
}

// Connect implements socket.Endpoint.
func (e *Endpoint) Connect() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.role != socket.RoleUnset {
		return errors.New(errors.CodeInvariantViolation, "uds: connect requires RoleUnset")
	}

	conn, err := net.Dial("unix", e.path)
	if err != nil {
		return errors.New(errors.CodeTransientIO, "uds: dial failed", err)
	}

	e.conn = conn
	e.role = socket.RoleClient
	e.ref = refString(e.path)
	return nil
}

// Bind implements socket.Endpoint. The socket file is removed first if a
// stale one is left over from a prior, uncleanly-terminated run.
func (e *Endpoint) Bind() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.role != socket.RoleUnset {
		return errors.New(errors.CodeInvariantViolation, "uds: bind requires RoleUnset")
	}

	_ = os.Remove(e.path)

	ln, err := net.Listen("unix", e.path)
	if err != nil {
		return errors.New(errors.CodeTransientIO, "uds: listen failed", err)
	}

	e.ln = ln
	e.role = socket.RoleServer
	e.ref = refString(e.path)
	return nil
}

// Close implements socket.Endpoint; idempotent. When role is RoleServer,
// the pre-close hook removes the socket file (spec.md §4.A).
func (e *Endpoint) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	wasServer := e.role == socket.RoleServer

	var err error
	if e.conn != nil {
		err = e.conn.Close()
		e.conn = nil
	}
	if e.ln != nil {
		if e2 := e.ln.Close(); err == nil {
			err = e2
		}
		e.ln = nil
	}
	e.role = socket.RoleUnset

	if wasServer {
		_ = os.Remove(e.path)
	}

	if err != nil {
		return errors.New(errors.CodeTransientIO, "uds: close failed", err)
	}
	return nil
}

// PollForInput implements socket.Endpoint using unix.Poll over the raw fd
// of the connection (client role) or of the listener (server role), via
// socket.PollConn.
func (e *Endpoint) PollForInput(timeoutMs int) (socket.PollResult, error) {
	e.mu.Lock()
	conn, ln := e.conn, e.ln
	e.mu.Unlock()

	var src interface{}
	switch {
	case conn != nil:
		src = conn
	case ln != nil:
		src = ln
	default:
		return socket.PollError, errors.New(errors.CodeInvariantViolation, "uds: poll requires an open endpoint")
	}

	sc, ok := src.(syscall.Conn)
	if !ok {
		return socket.PollError, errors.New(errors.CodeInvariantViolation, "uds: connection has no raw fd")
	}
	rc, err := sc.SyscallConn()
	if err != nil {
		return socket.PollError, errors.New(errors.CodeTransientIO, "uds: SyscallConn failed", err)
	}

	res, perr := socket.PollConn(rc, timeoutMs)
	if perr == socket.ErrPollHangup {
		e.log().Debug("uds %s: poll observed hangup, closing", e.ref)
		_ = e.Close()
	}
	return res, perr
}

// Accept implements socket.Endpoint; server role only.
func (e *Endpoint) Accept() (socket.Endpoint, error) {
	e.mu.Lock()
	ln := e.ln
	e.mu.Unlock()

	if ln == nil {
		return nil, errors.New(errors.CodeInvariantViolation, "uds: accept requires RoleServer")
	}

	conn, err := ln.Accept()
	if err != nil {
		return nil, errors.New(errors.CodeTransientIO, "uds: accept failed", err)
	}

	child := &Endpoint{
		role: socket.RoleClient,
		conn: conn,
		ref:  refString(e.path),
		log:  e.log,
	}
	return child, nil
}

// Recv implements socket.Endpoint; client role only. A nil or empty buf
// consumes and discards up to 4096 bytes of pending input; the return
// value then counts the bytes discarded.
func (e *Endpoint) Recv(buf []byte) (int, error) {
	e.mu.Lock()
	conn := e.conn
	e.mu.Unlock()

	if conn == nil {
		return 0, errors.New(errors.CodeInvariantViolation, "uds: recv requires RoleClient")
	}
	if len(buf) == 0 {
		buf = make([]byte, 4096)
	}

	n, err := conn.Read(buf)
	if n > len(buf) {
		n = len(buf)
	}
	if err != nil {
		if isPeerClosed(err) {
			_ = e.Close()
			return 0, nil
		}
		return n, errors.New(errors.CodeTransientIO, "uds: recv failed", err)
	}
	if n == 0 {
		_ = e.Close()
	}
	return n, nil
}

// Send implements socket.Endpoint; client role only.
func (e *Endpoint) Send(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	e.mu.Lock()
	conn := e.conn
	e.mu.Unlock()

	if conn == nil {
		return 0, errors.New(errors.CodeInvariantViolation, "uds: send requires RoleClient")
	}

	n, err := conn.Write(buf)
	if err != nil {
		if isPeerClosed(err) {
			_ = e.Close()
		}
		return 0, nil
	}
	return n, nil
}

// Role implements socket.Endpoint.
func (e *Endpoint) Role() socket.Role {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.role
}

// RefString implements socket.Endpoint.
func (e *Endpoint) RefString() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ref
}

// Protocol implements socket.Endpoint.
func (e *Endpoint) Protocol() protocol.NetworkProtocol {
	return protocol.NetworkUnix
}

func refString(path string) string {
	return fmt.Sprintf("UDS:%s", path)
}

func isPeerClosed(err error) bool {
	return stderrors.Is(err, io.EOF) || stderrors.Is(err, syscall.ECONNRESET) || stderrors.Is(err, syscall.EPIPE)
}

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

// Package tcp is the AF_INET, SOCK_STREAM variant of socket.Endpoint.
package tcp

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"syscall"

	"github.com/jaycgo/jayc/errors"
	"github.com/jaycgo/jayc/logger"
	"github.com/jaycgo/jayc/network/protocol"
	"github.com/jaycgo/jayc/socket"
)

// Endpoint is the tcp.Endpoint: { host, port } plus the common fd/role/ref
// state described in spec.md §3.
type Endpoint struct {
	mu   sync.Mutex
	host string
	port int
	role socket.Role
	ref  string
	log  logger.FuncLog

	conn net.Conn
	ln   net.Listener
}

// New builds an unset tcp.Endpoint bound to host:port once Connect or Bind
// is called. A nil log falls back to logger.GetDefault().
func New(host string, port int, log logger.FuncLog) *Endpoint {
	if log == nil {
		log = logger.GetDefault
	}
	return &Endpoint{host: host, port: port, log: log}
}

func (e *Endpoint) addr() string {
	return net.JoinHostPort(e.host, strconv.Itoa(e.port))
}

// Connect implements socket.Endpoint.
func (e *Endpoint) Connect() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.role != socket.RoleUnset {
		return errors.New(errors.CodeInvariantViolation, "tcp: connect requires RoleUnset")
	}

	conn, err := net.Dial("tcp", e.addr())
	if err != nil {
		return errors.New(errors.CodeTransientIO, "tcp: dial failed", err)
	}

	e.conn = conn
	e.role = socket.RoleClient
	e.ref = refString(conn.RemoteAddr())
	return nil
}

// Bind implements socket.Endpoint: SO_REUSEADDR, bind, listen(backlog>=5).
func (e *Endpoint) Bind() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.role != socket.RoleUnset {
		return errors.New(errors.CodeInvariantViolation, "tcp: bind requires RoleUnset")
	}

	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var ctrlErr error
			err := c.Control(func(fd uintptr) {
				ctrlErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1)
			})
			if err != nil {
				return err
			}
			return ctrlErr
		},
	}

	ln, err := lc.Listen(context.Background(), "tcp", e.addr())
	if err != nil {
		return errors.New(errors.CodeTransientIO, "tcp: listen failed", err)
	}

	e.ln = ln
	e.role = socket.RoleServer
	e.ref = refString(ln.Addr())
	return nil
}

// Close implements socket.Endpoint; idempotent.
func (e *Endpoint) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closeLocked()
}

func (e *Endpoint) closeLocked() error {
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
	if err != nil {
		return errors.New(errors.CodeTransientIO, "tcp: close failed", err)
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
		return socket.PollError, errors.New(errors.CodeInvariantViolation, "tcp: poll requires an open endpoint")
	}

	sc, ok := src.(syscall.Conn)
	if !ok {
		return socket.PollError, errors.New(errors.CodeInvariantViolation, "tcp: connection has no raw fd")
	}
	rc, err := sc.SyscallConn()
	if err != nil {
		return socket.PollError, errors.New(errors.CodeTransientIO, "tcp: SyscallConn failed", err)
	}

	res, perr := socket.PollConn(rc, timeoutMs)
	if perr == socket.ErrPollHangup {
		e.log().Debug("tcp %s: poll observed hangup, closing", e.ref)
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
		return nil, errors.New(errors.CodeInvariantViolation, "tcp: accept requires RoleServer")
	}

	conn, err := ln.Accept()
	if err != nil {
		return nil, errors.New(errors.CodeTransientIO, "tcp: accept failed", err)
	}

	child := &Endpoint{
		role: socket.RoleClient,
		conn: conn,
		ref:  refString(conn.RemoteAddr()),
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
		return 0, errors.New(errors.CodeInvariantViolation, "tcp: recv requires RoleClient")
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
		return n, errors.New(errors.CodeTransientIO, "tcp: recv failed", err)
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
		return 0, errors.New(errors.CodeInvariantViolation, "tcp: send requires RoleClient")
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
	return protocol.NetworkTCP
}

func refString(addr net.Addr) string {
	return fmt.Sprintf("TCP:%s", addr.String())
}

func isPeerClosed(err error) bool {
	return stderrors.Is(err, io.EOF) || stderrors.Is(err, syscall.ECONNRESET) || stderrors.Is(err, syscall.EPIPE)
}

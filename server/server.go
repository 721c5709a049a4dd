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

// Package server is the polymorphic listener handle of spec.md §3/§4.C:
// pure dispatch over a socket.Endpoint in the server role.
package server

import (
	"github.com/jaycgo/jayc/client"
	"github.com/jaycgo/jayc/errors"
	"github.com/jaycgo/jayc/socket"
)

// Server mirrors Client for the listener role. AcceptConnection MUST
// return a Client whose lifetime is independent of the Server's.
type Server interface {
	// Reset (re)binds the listening endpoint. Idempotent: closes any
	// existing binding first.
	Reset() error
	// Close releases the listening endpoint. Idempotent.
	Close() error
	// IsOpen reports whether the endpoint is currently bound.
	IsOpen() bool
	// NewConnection reports whether AcceptConnection would return
	// immediately with a new peer, per socket.Endpoint.PollForInput(0).
	NewConnection() bool
	// AcceptConnection accepts one pending connection and wraps it as a
	// Client adopting the accepted socket.
	AcceptConnection() (client.Client, error)
}

type server struct {
	bind func() (socket.Endpoint, error)
	ep   socket.Endpoint
}

// New builds a Server whose Reset (and initial Bind) uses bind to create
// the listening endpoint — e.g. func() (socket.Endpoint, error) {
// e := tcp.New(host, port, log); return e, e.Bind() }.
func New(bind func() (socket.Endpoint, error)) Server {
	return &server{bind: bind}
}

func (s *server) Reset() error {
	if s.ep != nil {
		_ = s.ep.Close()
		s.ep = nil
	}
	ep, err := s.bind()
	if err != nil {
		return err
	}
	s.ep = ep
	return nil
}

func (s *server) Close() error {
	if s.ep == nil {
		return nil
	}
	err := s.ep.Close()
	s.ep = nil
	return err
}

func (s *server) IsOpen() bool {
	return s.ep != nil && s.ep.Role() == socket.RoleServer
}

func (s *server) NewConnection() bool {
	if !s.IsOpen() {
		return false
	}
	res, err := s.ep.PollForInput(0)
	return err == nil && res == socket.PollReadable
}

func (s *server) AcceptConnection() (client.Client, error) {
	if !s.IsOpen() {
		return nil, errors.New(errors.CodeInvariantViolation, "server: acceptConnection requires an open listener")
	}

	ep, err := s.ep.Accept()
	if err != nil {
		return nil, err
	}
	return client.New(ep, nil), nil
}

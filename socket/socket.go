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

// Package socket defines the Endpoint contract of spec.md §3/§4.A: a
// role-tagged stream-socket wrapper over TCP or Unix-domain transports.
// The tcp and uds subpackages are its two concrete variants.
package socket

import (
	"github.com/jaycgo/jayc/network/protocol"
)

// Role is an endpoint's place in the connection lifecycle.
type Role uint8

const (
	// RoleUnset is the zero value: neither connected nor bound.
	RoleUnset Role = iota
	// RoleClient means Connect succeeded; Recv/Send are valid.
	RoleClient
	// RoleServer means Bind succeeded; Accept is valid.
	RoleServer
)

func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleServer:
		return "server"
	default:
		return "unset"
	}
}

// PollResult is the outcome of PollForInput.
type PollResult int8

const (
	// PollTimeout means no data arrived before the deadline.
	PollTimeout PollResult = 0
	// PollReadable means POLLIN fired; a Recv or Accept will not block.
	PollReadable PollResult = 1
	// PollError means the syscall failed, or POLLERR/POLLHUP/POLLNVAL
	// was observed.
	PollError PollResult = -1
)

// Endpoint is the polymorphic stream-socket object of spec.md §4.A. Both
// the tcp and uds packages implement it; Server/Client (components B/C)
// are thin dispatchers over this interface.
type Endpoint interface {
	// Connect requires RoleUnset; on success Role becomes RoleClient and
	// RefString is regenerated.
	Connect() error
	// Bind requires RoleUnset; on success Role becomes RoleServer.
	Bind() error
	// Close is idempotent: runs the variant's pre-close hook (UDS removes
	// its socket file when Role is RoleServer), then releases the fd.
	Close() error

	// PollForInput polls the fd for readability. A negative timeoutMs
	// blocks indefinitely; zero returns immediately.
	PollForInput(timeoutMs int) (PollResult, error)

	// Accept is valid only for RoleServer; it returns a new Endpoint in
	// RoleClient wrapping the accepted connection.
	Accept() (Endpoint, error)

	// Recv is valid only for RoleClient. A return of 0 with a nil error
	// means the peer closed; the endpoint auto-closes in that case.
	Recv(buf []byte) (int, error)
	// Send is valid only for RoleClient. ECONNRESET/EPIPE auto-close and
	// return 0; other errors return 0 without closing.
	Send(buf []byte) (int, error)

	// Role reports the endpoint's current lifecycle state.
	Role() Role
	// RefString is the stable textual identity described in spec.md §6,
	// e.g. "TCP:127.0.0.1:9000" or "UDS:/tmp/jtest.sock".
	RefString() string
	// Protocol reports the endpoint's transport family.
	Protocol() protocol.NetworkProtocol
}

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

// Package client is the polymorphic connected-peer handle of spec.md
// §3/§4.B: pure dispatch over a socket.Endpoint, hiding the transport.
package client

import (
	"github.com/jaycgo/jayc/network/protocol"
	"github.com/jaycgo/jayc/socket"
)

// Client is the capability object described in spec.md §3: transport
// label, reference string and the four connected-peer operations. A
// Client whose Reset succeeds transitions from disconnected to connected;
// one whose IsConnected is false must not be sent to or received from.
type Client interface {
	// Reset re-establishes the connection using the same dial target
	// (only meaningful for client-initiated endpoints, not accepted
	// ones). Accepted connections return an error and keep their current
	// connection, since their lifetime is tied to the accept that created
	// them.
	Reset() error
	// Close releases the underlying endpoint. Idempotent.
	Close() error
	// IsConnected reports whether Recv/Send may currently be used.
	IsConnected() bool
	// NewData reports whether a Recv call would return immediately with
	// data, per socket.Endpoint.PollForInput(0).
	NewData() bool

	// Recv reads up to len(buf) bytes. 0, nil means the peer closed.
	Recv(buf []byte) (int, error)
	// Send writes buf with one write on the endpoint, which returns only
	// once all of buf is written or the write fails; a failed write
	// reports 0.
	Send(buf []byte) (int, error)

	// Label is the transport tag ("TCP" or "UDS").
	Label() string
	// RefString is the stable textual identity from spec.md §6.
	RefString() string
}

type client struct {
	ep      socket.Endpoint
	dial    func() (socket.Endpoint, error)
	adopted bool
}

// New wraps an already-connected endpoint (e.g. a fresh Connect, or one
// produced by Server.AcceptConnection) as a Client. dial, if non-nil, is
// the factory Reset will use to re-establish the connection; accepted
// connections pass nil since they have no independent dial target.
func New(ep socket.Endpoint, dial func() (socket.Endpoint, error)) Client {
	return &client{ep: ep, dial: dial, adopted: dial == nil}
}

func (c *client) Reset() error {
	if c.dial == nil {
		return errNoResetTarget
	}
	if c.ep != nil {
		_ = c.ep.Close()
	}
	ep, err := c.dial()
	if err != nil {
		return err
	}
	c.ep = ep
	return nil
}

func (c *client) Close() error {
	if c.ep == nil {
		return nil
	}
	return c.ep.Close()
}

func (c *client) IsConnected() bool {
	return c.ep != nil && c.ep.Role() == socket.RoleClient
}

func (c *client) NewData() bool {
	if !c.IsConnected() {
		return false
	}
	res, err := c.ep.PollForInput(0)
	return err == nil && res == socket.PollReadable
}

func (c *client) Recv(buf []byte) (int, error) {
	if !c.IsConnected() {
		return 0, nil
	}
	return c.ep.Recv(buf)
}

func (c *client) Send(buf []byte) (int, error) {
	if !c.IsConnected() {
		return 0, nil
	}
	return c.ep.Send(buf)
}

func (c *client) Label() string {
	if c.ep == nil {
		return ""
	}
	if c.ep.Protocol() == protocol.NetworkTCP {
		return "TCP"
	}
	return "UDS"
}

func (c *client) RefString() string {
	if c.ep == nil {
		return ""
	}
	return c.ep.RefString()
}

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

// Package protocol names the two stream-socket families jayc speaks, per
// spec.md's Non-goals: no UDP, no IPv6 framing, TCP (IPv4) and Unix-domain
// sockets only.
package protocol

import "strings"

// NetworkProtocol tags an endpoint's transport family.
type NetworkProtocol uint8

const (
	// NetworkUnknown is the zero value.
	NetworkUnknown NetworkProtocol = iota
	// NetworkTCP is AF_INET, SOCK_STREAM.
	NetworkTCP
	// NetworkUnix is AF_UNIX, SOCK_STREAM.
	NetworkUnix
)

// String implements fmt.Stringer.
func (n NetworkProtocol) String() string {
	switch n {
	case NetworkTCP:
		return "tcp"
	case NetworkUnix:
		return "unix"
	default:
		return "unknown"
	}
}

// Code returns the short reference-string prefix used in spec.md §6:
// "TCP:" or "UDS:".
func (n NetworkProtocol) Code() string {
	switch n {
	case NetworkTCP:
		return "TCP"
	case NetworkUnix:
		return "UDS"
	default:
		return ""
	}
}

// Network returns the dial/listen network name accepted by the standard
// net package ("tcp" or "unix").
func (n NetworkProtocol) Network() string {
	return n.String()
}

// Parse converts a case-insensitive protocol name to a NetworkProtocol.
// Unrecognized input returns NetworkUnknown.
func Parse(s string) NetworkProtocol {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tcp":
		return NetworkTCP
	case "unix", "uds", "unixsocket":
		return NetworkUnix
	default:
		return NetworkUnknown
	}
}

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

package socket

import (
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/jaycgo/jayc/errors"
)

// ErrPollHangup is returned by PollConn when POLLERR or POLLHUP fired;
// callers must close the session (spec.md §4.A).
var ErrPollHangup = errors.New(errors.CodePeerClosed, "poll: peer reset or hung up")

// ErrPollInvalid is returned by PollConn when POLLNVAL fired; callers must
// report the error WITHOUT auto-closing the session (spec.md §4.A).
var ErrPollInvalid = errors.New(errors.CodeInvariantViolation, "poll: invalid descriptor")

// PollConn polls a raw connection fd for POLLIN readability, shared by the
// tcp and uds variants so both sit on the same syscall.RawConn plumbing
// (spec.md §4.A pollForInput). POLLERR/POLLHUP are surfaced to the caller
// as PollError so it can run its own close hook; POLLNVAL is also
// PollError but the caller must NOT auto-close on it (spec.md §4.A).
func PollConn(rc syscall.RawConn, timeoutMs int) (PollResult, error) {
	var (
		res PollResult
		err error
	)

	ctrlErr := rc.Control(func(fd uintptr) {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, e := unix.Poll(fds, timeoutMs)
		if e != nil {
			if e == unix.EINTR {
				res, err = PollTimeout, nil
				return
			}
			res, err = PollError, e
			return
		}
		if n == 0 {
			res, err = PollTimeout, nil
			return
		}

		revents := fds[0].Revents
		switch {
		case revents&(unix.POLLERR|unix.POLLHUP) != 0:
			res, err = PollError, ErrPollHangup
		case revents&unix.POLLNVAL != 0:
			res, err = PollError, ErrPollInvalid
		case revents&unix.POLLIN != 0:
			res, err = PollReadable, nil
		default:
			res, err = PollTimeout, nil
		}
	})
	if ctrlErr != nil {
		return PollError, ctrlErr
	}
	return res, err
}

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

package tcp_test

import (
	"net"
	"strconv"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jaycgo/jayc/socket"
	"github.com/jaycgo/jayc/socket/tcp"
)

func TestTCP(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TCP Endpoint Suite")
}

func freePort(host string) int {
	l, err := net.Listen("tcp", net.JoinHostPort(host, "0"))
	Expect(err).NotTo(HaveOccurred())
	defer l.Close()
	_, p, _ := net.SplitHostPort(l.Addr().String())
	n, _ := strconv.Atoi(p)
	return n
}

var _ = Describe("tcp.Endpoint", func() {
	var host string
	var port int

	BeforeEach(func() {
		host = "127.0.0.1"
		port = freePort(host)
	})

	It("round-trips a byte stream between a server and a client", func() {
		srv := tcp.New(host, port, nil)
		Expect(srv.Bind()).To(Succeed())
		defer srv.Close()
		Expect(srv.Role()).To(Equal(socket.RoleServer))

		done := make(chan struct{})
		var accepted socket.Endpoint
		go func() {
			defer close(done)
			ep, err := srv.Accept()
			Expect(err).NotTo(HaveOccurred())
			accepted = ep
		}()

		clt := tcp.New(host, port, nil)
		Expect(clt.Connect()).To(Succeed())
		defer clt.Close()

		Eventually(done, time.Second).Should(BeClosed())
		Expect(accepted).NotTo(BeNil())
		defer accepted.Close()

		n, err := clt.Send([]byte("hello"))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(5))

		buf := make([]byte, 16)
		Eventually(func() (socket.PollResult, error) {
			return accepted.PollForInput(50)
		}, time.Second).Should(Equal(socket.PollReadable))

		n, err = accepted.Recv(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("hello"))
	})

	It("returns 0 from Recv and marks disconnected when the peer closes", func() {
		srv := tcp.New(host, port, nil)
		Expect(srv.Bind()).To(Succeed())
		defer srv.Close()

		acceptedCh := make(chan socket.Endpoint, 1)
		go func() {
			ep, _ := srv.Accept()
			acceptedCh <- ep
		}()

		clt := tcp.New(host, port, nil)
		Expect(clt.Connect()).To(Succeed())

		accepted := <-acceptedCh
		Expect(accepted).NotTo(BeNil())

		Expect(clt.Close()).To(Succeed())

		buf := make([]byte, 16)
		Eventually(func() int {
			n, _ := accepted.Recv(buf)
			return n
		}, time.Second).Should(Equal(0))
		Expect(accepted.Role()).To(Equal(socket.RoleUnset))
	})

	It("leaves role unset when Connect fails against a closed port", func() {
		clt := tcp.New(host, port, nil)
		Expect(clt.Connect()).To(HaveOccurred())
		Expect(clt.Role()).To(Equal(socket.RoleUnset))
	})
})

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

package server_test

import (
	"net"
	"strconv"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jaycgo/jayc/server"
	"github.com/jaycgo/jayc/socket"
	"github.com/jaycgo/jayc/socket/tcp"
)

func TestServer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Server Suite")
}

func freePort() int {
	l, _ := net.Listen("tcp", "127.0.0.1:0")
	defer l.Close()
	_, p, _ := net.SplitHostPort(l.Addr().String())
	n, _ := strconv.Atoi(p)
	return n
}

var _ = Describe("Server", func() {
	It("opens on Reset and accepts a connection independent of its own lifetime", func() {
		port := freePort()
		var ep socket.Endpoint
		s := server.New(func() (socket.Endpoint, error) {
			e := tcp.New("127.0.0.1", port, nil)
			if err := e.Bind(); err != nil {
				return nil, err
			}
			ep = e
			return e, nil
		})

		Expect(s.IsOpen()).To(BeFalse())
		Expect(s.Reset()).To(Succeed())
		Expect(s.IsOpen()).To(BeTrue())

		clt := tcp.New("127.0.0.1", port, nil)
		Expect(clt.Connect()).To(Succeed())
		defer clt.Close()

		Eventually(s.NewConnection, time.Second).Should(BeTrue())

		accepted, err := s.AcceptConnection()
		Expect(err).NotTo(HaveOccurred())
		Expect(accepted.IsConnected()).To(BeTrue())

		Expect(s.Close()).To(Succeed())
		Expect(s.IsOpen()).To(BeFalse())

		Expect(accepted.IsConnected()).To(BeTrue())
		_ = ep
	})

	It("fails AcceptConnection while closed", func() {
		port := freePort()
		s := server.New(func() (socket.Endpoint, error) {
			e := tcp.New("127.0.0.1", port, nil)
			return e, e.Bind()
		})
		_, err := s.AcceptConnection()
		Expect(err).To(HaveOccurred())
	})
})

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

package supervisor_test

import (
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jaycgo/jayc/client"
	"github.com/jaycgo/jayc/server"
	"github.com/jaycgo/jayc/socket"
	"github.com/jaycgo/jayc/socket/tcp"
	"github.com/jaycgo/jayc/supervisor"
	"github.com/jaycgo/jayc/worker"
)

func TestSupervisor(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Supervisor Suite")
}

func freePort() int {
	l, _ := net.Listen("tcp", "127.0.0.1:0")
	defer l.Close()
	_, p, _ := net.SplitHostPort(l.Addr().String())
	n, _ := strconv.Atoi(p)
	return n
}

func newTCPServer(host string, port int) server.Server {
	return server.New(func() (socket.Endpoint, error) {
		e := tcp.New(host, port, nil)
		return e, e.Bind()
	})
}

var _ = Describe("Supervisor", func() {
	It("echoes ACK for one connection and reports DISCONNECT on close", func() {
		host, port := "127.0.0.1", freePort()
		srv := newTCPServer(host, port)

		var createCalls, closeCalls int32
		var lastReason worker.Reason
		var mu sync.Mutex

		sup := supervisor.New(srv,
			func(ref string, reason worker.Reason) bool { atomic.AddInt32(&createCalls, 1); return true },
			func(ref string, c client.Client) {
				buf := make([]byte, 256)
				n, _ := c.Recv(buf)
				if n > 0 {
					_, _ = c.Send([]byte("ACK"))
				}
			},
			func(ref string, reason worker.Reason) {
				atomic.AddInt32(&closeCalls, 1)
				mu.Lock()
				lastReason = reason
				mu.Unlock()
			},
			supervisor.WithLoopSleep(5*time.Millisecond),
			supervisor.WithMetrics(supervisor.NewMetrics(prometheus.NewRegistry())),
		)

		Expect(sup.Start()).To(Succeed())
		defer sup.Free()

		dial := tcp.New(host, port, nil)
		Eventually(dial.Connect, time.Second).Should(Succeed())
		defer dial.Close()

		_, err := dial.Send([]byte("hello"))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 16)
		Eventually(func() (int, error) {
			res, _ := dial.PollForInput(20)
			if res != socket.PollReadable {
				return 0, nil
			}
			return dial.Recv(buf)
		}, 2*time.Second).Should(Equal(3))
		Expect(string(buf[:3])).To(Equal("ACK"))

		Expect(dial.Close()).To(Succeed())

		Eventually(func() int32 { return atomic.LoadInt32(&closeCalls) }, 2*time.Second).Should(Equal(int32(1)))
		mu.Lock()
		defer mu.Unlock()
		Expect(lastReason).To(Equal(worker.ReasonDisconnect))
		Expect(atomic.LoadInt32(&createCalls)).To(Equal(int32(1)))
	})

	It("handles many concurrent connections, one create_cb and close_cb per connection", func() {
		const n = 50
		host, port := "127.0.0.1", freePort()
		srv := newTCPServer(host, port)

		var creates, closes int32

		sup := supervisor.New(srv,
			func(ref string, reason worker.Reason) bool { atomic.AddInt32(&creates, 1); return true },
			func(ref string, c client.Client) {
				buf := make([]byte, 64)
				r, _ := c.Recv(buf)
				if r > 0 {
					_, _ = c.Send([]byte("ACK"))
				}
			},
			func(ref string, reason worker.Reason) { atomic.AddInt32(&closes, 1) },
			supervisor.WithLoopSleep(2*time.Millisecond),
			supervisor.WithMetrics(supervisor.NewMetrics(prometheus.NewRegistry())),
		)

		Expect(sup.Start()).To(Succeed())
		defer sup.Free()

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()

				c := tcp.New(host, port, nil)
				Eventually(c.Connect, 2*time.Second).Should(Succeed())
				defer c.Close()

				_, err := c.Send([]byte("ping"))
				Expect(err).NotTo(HaveOccurred())

				buf := make([]byte, 16)
				Eventually(func() (int, error) {
					res, _ := c.PollForInput(20)
					if res != socket.PollReadable {
						return 0, nil
					}
					return c.Recv(buf)
				}, 2*time.Second).Should(Equal(3))
			}()
		}
		wg.Wait()

		Eventually(func() int32 { return atomic.LoadInt32(&closes) }, 3*time.Second).Should(Equal(int32(n)))
		Expect(atomic.LoadInt32(&creates)).To(Equal(int32(n)))
	})

	It("leaves no worker goroutines and an empty connection set after Free (reap completeness)", func() {
		host, port := "127.0.0.1", freePort()
		srv := newTCPServer(host, port)

		sup := supervisor.New(srv,
			func(ref string, reason worker.Reason) bool { return true },
			func(ref string, c client.Client) {
				buf := make([]byte, 16)
				_, _ = c.Recv(buf)
			},
			func(ref string, reason worker.Reason) {},
			supervisor.WithLoopSleep(5*time.Millisecond),
			supervisor.WithMetrics(supervisor.NewMetrics(prometheus.NewRegistry())),
		)

		Expect(sup.Start()).To(Succeed())

		dial := tcp.New(host, port, nil)
		Eventually(dial.Connect, time.Second).Should(Succeed())

		Eventually(sup.ConnectionCount, time.Second).Should(Equal(1))

		Expect(sup.Free()).To(Succeed())
		Expect(sup.ConnectionCount()).To(Equal(0))
		Expect(sup.IsRunning()).To(BeFalse())

		_ = dial.Close()
	})
})

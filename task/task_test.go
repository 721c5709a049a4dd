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

package task_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jaycgo/jayc/task"
)

func TestTask(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Task Suite")
}

var _ = Describe("Task", func() {
	It("invokes the user function repeatedly until Stop", func() {
		var calls int32
		tk := task.New(func(*task.Task) bool {
			atomic.AddInt32(&calls, 1)
			return true
		}, time.Millisecond, nil)

		Expect(tk.Start()).To(Succeed())
		Eventually(func() int32 { return atomic.LoadInt32(&calls) }, time.Second).Should(BeNumerically(">=", 3))
		Expect(tk.IsRunning()).To(BeTrue())

		Expect(tk.Stop()).To(Succeed())
		Expect(tk.IsRunning()).To(BeFalse())
	})

	It("exits on its own when the user function returns false", func() {
		var calls int32
		tk := task.New(func(*task.Task) bool {
			n := atomic.AddInt32(&calls, 1)
			return n < 3
		}, time.Millisecond, nil)

		Expect(tk.Start()).To(Succeed())
		Eventually(tk.IsRunning, time.Second).Should(BeFalse())
		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(3)))
	})

	It("treats Start and Stop as idempotent", func() {
		tk := task.New(func(*task.Task) bool { return true }, time.Millisecond, nil)

		Expect(tk.Start()).To(Succeed())
		Expect(tk.Start()).To(Succeed())
		Expect(tk.Stop()).To(Succeed())
		Expect(tk.Stop()).To(Succeed())
	})

	It("exposes its mutex to callers via Lock/Unlock", func() {
		tk := task.New(func(*task.Task) bool { return true }, time.Millisecond, nil)
		tk.Lock()
		tk.Unlock()
	})

	It("serialises two tasks sharing one lock via NewShared", func() {
		var mu sync.Mutex
		var active int32
		var sawOverlap int32

		body := func(*task.Task) bool {
			if atomic.AddInt32(&active, 1) > 1 {
				atomic.StoreInt32(&sawOverlap, 1)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
			return true
		}

		t1 := task.NewShared(body, time.Millisecond, &mu, nil)
		t2 := task.NewShared(body, time.Millisecond, &mu, nil)

		Expect(t1.Start()).To(Succeed())
		Expect(t2.Start()).To(Succeed())
		time.Sleep(50 * time.Millisecond)
		Expect(t1.Stop()).To(Succeed())
		Expect(t2.Stop()).To(Succeed())

		Expect(atomic.LoadInt32(&sawOverlap)).To(Equal(int32(0)))
	})
})

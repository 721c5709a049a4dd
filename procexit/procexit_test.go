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

package procexit

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestProcExit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ProcExit Suite")
}

var _ = Describe("Exit", func() {
	It("invokes the registered hook with the exit code before terminating", func() {
		var gotCode int
		var gotCtx interface{}

		real := osExit
		defer func() { osExit = real }()

		var exitCalledWith int
		osExit = func(code int) { exitCalledWith = code }

		Register(func(code int, ctx interface{}) {
			gotCode = code
			gotCtx = ctx
		}, "marker")

		Exit(1)

		Expect(gotCode).To(Equal(1))
		Expect(gotCtx).To(Equal("marker"))
		Expect(exitCalledWith).To(Equal(1))
	})
})

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

package protocol_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libptc "github.com/jaycgo/jayc/network/protocol"
)

func TestProtocol(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Protocol Suite")
}

var _ = Describe("Parse", func() {
	It("parses tcp case-insensitively", func() {
		Expect(libptc.Parse("TCP")).To(Equal(libptc.NetworkTCP))
		Expect(libptc.Parse("tcp")).To(Equal(libptc.NetworkTCP))
	})

	It("parses unix and uds aliases", func() {
		Expect(libptc.Parse("unix")).To(Equal(libptc.NetworkUnix))
		Expect(libptc.Parse("uds")).To(Equal(libptc.NetworkUnix))
	})

	It("returns NetworkUnknown for garbage", func() {
		Expect(libptc.Parse("sctp")).To(Equal(libptc.NetworkUnknown))
	})
})

var _ = Describe("Code", func() {
	It("returns the reference-string prefix", func() {
		Expect(libptc.NetworkTCP.Code()).To(Equal("TCP"))
		Expect(libptc.NetworkUnix.Code()).To(Equal("UDS"))
	})
})

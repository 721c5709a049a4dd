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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jaycgo/jayc/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("Store", func() {
	var path string

	BeforeEach(func() {
		f, err := os.CreateTemp("", "jayc-config-*.properties")
		Expect(err).NotTo(HaveOccurred())
		path = f.Name()
		Expect(f.Close()).To(Succeed())
	})

	AfterEach(func() {
		_ = os.Remove(path)
	})

	It("round-trips save(load(file)) byte-for-byte when keys are unique", func() {
		original := "alpha=1\nbeta=2\ngamma=3\n"
		Expect(os.WriteFile(path, []byte(original), 0o644)).To(Succeed())

		s := config.New()
		Expect(s.Load(path)).To(Succeed())

		out := filepath.Join(filepath.Dir(path), "out.properties")
		Expect(s.Save(out)).To(Succeed())
		defer os.Remove(out)

		got, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(got)).To(Equal(original))
	})

	It("drops malformed lines instead of failing the whole load", func() {
		raw := "good=1\nnotakeyvalueline\n=noKey\nok=2\n"
		Expect(os.WriteFile(path, []byte(raw), 0o644)).To(Succeed())

		s := config.New()
		Expect(s.Load(path)).To(Succeed())

		v, ok := s.Get("good")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("1"))

		v, ok = s.Get("ok")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("2"))
	})

	It("rejects a key containing '='", func() {
		s := config.New()
		Expect(s.Set("bad=key", "value")).To(HaveOccurred())
	})

	It("rejects a value containing a newline", func() {
		s := config.New()
		Expect(s.Set("key", "line1\nline2")).To(HaveOccurred())
	})

	It("reports absence for an unset key", func() {
		s := config.New()
		_, ok := s.Get("missing")
		Expect(ok).To(BeFalse())
	})

	It("Load replaces the in-memory table rather than merging", func() {
		s := config.New()
		Expect(s.Set("stale", "value")).To(Succeed())

		Expect(os.WriteFile(path, []byte("fresh=1\n"), 0o644)).To(Succeed())
		Expect(s.Load(path)).To(Succeed())

		_, ok := s.Get("stale")
		Expect(ok).To(BeFalse())

		v, ok := s.Get("fresh")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("1"))
	})
})

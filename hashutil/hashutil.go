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

// Package hashutil is the bundled daemon's example payload transform
// (spec.md §6): none|md5|sha256|sha512, selected by --hash 0|1|2|3. Built
// directly on the standard library's crypto primitives — no idiomatic
// ecosystem replacement exists for these (see DESIGN.md).
package hashutil

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"github.com/jaycgo/jayc/errors"
)

// Algorithm selects the digest function applied to a connection's payload.
type Algorithm int

const (
	// None passes the payload through unmodified.
	None Algorithm = iota
	// MD5 is the default algorithm of the bundled daemon.
	MD5
	SHA256
	SHA512
)

// ParseAlgorithm maps the daemon's --hash flag value (0-3) to an Algorithm.
func ParseAlgorithm(flag int) (Algorithm, error) {
	switch flag {
	case 0:
		return None, nil
	case 1:
		return MD5, nil
	case 2:
		return SHA256, nil
	case 3:
		return SHA512, nil
	default:
		return None, errors.New(errors.CodeInvariantViolation, "hashutil: unknown --hash value")
	}
}

// String names the algorithm, matching the CLI's accepted spellings.
func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case MD5:
		return "md5"
	case SHA256:
		return "sha256"
	case SHA512:
		return "sha512"
	default:
		return "unknown"
	}
}

// Digest returns the lowercase hex digest of data under a, or data itself
// unmodified when a is None.
func Digest(a Algorithm, data []byte) []byte {
	switch a {
	case MD5:
		sum := md5.Sum(data)
		return []byte(hex.EncodeToString(sum[:]))
	case SHA256:
		sum := sha256.Sum256(data)
		return []byte(hex.EncodeToString(sum[:]))
	case SHA512:
		sum := sha512.Sum512(data)
		return []byte(hex.EncodeToString(sum[:]))
	default:
		return data
	}
}

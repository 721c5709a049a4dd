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

package logger

import (
	"sync"
	"sync/atomic"

	loglvl "github.com/jaycgo/jayc/logger/level"
)

var (
	defMu  sync.RWMutex
	defLog Logger = New(loglvl.InfoLevel, WithStdio())
	defSet int32
)

// GetDefault returns the process-wide default Logger. Components accept an
// explicit Logger (or FuncLog) first; this accessor exists only as the
// last-resort fallback described in spec.md's Design Notes, mirrored on
// the teacher's httpserver/run liblog.GetDefault() pattern.
func GetDefault() Logger {
	defMu.RLock()
	defer defMu.RUnlock()
	return defLog
}

// SetDefault replaces the process-wide default Logger, e.g. once the
// daemon's config/CLI has determined the requested level and sinks.
func SetDefault(l Logger) {
	defMu.Lock()
	defer defMu.Unlock()
	defLog = l
	atomic.AddInt32(&defSet, 1)
}

// Default is a FuncLog bound to GetDefault, for components that hold a
// lazily-resolved logger reference instead of a concrete Logger.
func Default() Logger {
	return GetDefault()
}

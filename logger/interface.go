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

// Package logger is the level-filtered log sink from spec.md §4.G: a
// session with a severity threshold, a set of pluggable sinks (logrus
// hooks), and a FATAL level whose documented post-condition is "does not
// return".
package logger

import (
	"io"

	"github.com/sirupsen/logrus"

	loglvl "github.com/jaycgo/jayc/logger/level"
)

// FuncLog returns a Logger lazily; components hold one of these instead of
// a concrete Logger so a caller can rebind the sink without touching every
// component that logs (spec.md Design Notes: "pass an explicit logger...
// the accessor only as a last-resort default").
type FuncLog func() Logger

// Logger is the log sink described in spec.md §4.G.
type Logger interface {
	// SetLevel changes the minimal severity that will be emitted.
	SetLevel(lvl loglvl.Level)
	// GetLevel returns the currently configured minimal severity.
	GetLevel() loglvl.Level

	// WithField returns a derived Logger that attaches key/val to every
	// subsequent message, without mutating the receiver.
	WithField(key string, val interface{}) Logger

	// Debug, Info, Warn, Error, Critical and Fatal each add an entry at
	// the matching severity. Fatal's post-condition is "does not return":
	// it invokes the configured exit hook with a failure status.
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Critical(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})

	// AddHook registers an additional logrus-compatible sink.
	AddHook(hook logrus.Hook)

	// Close releases any resource held by the configured sinks (e.g. a
	// syslog connection).
	Close() error
}

// Option configures a Logger at construction time.
type Option func(*lgr)

// WithExitHook overrides the function invoked by Fatal (and, if
// WithExitOnCritical is set, Critical) before the process would otherwise
// continue. Defaults to os.Exit.
func WithExitHook(fn func(code int)) Option {
	return func(l *lgr) { l.exit = fn }
}

// WithExitOnCritical makes CRITICAL behave like FATAL and also invoke the
// exit hook, per spec.md §4.G ("CRITICAL/ERROR may optionally do so if
// compiled in").
func WithExitOnCritical() Option {
	return func(l *lgr) { l.exitOnCrit = true }
}

// WithOutput overrides the underlying writer used when no hook claims a
// message (defaults to io.Discard — sinks are added via hooks).
func WithOutput(w io.Writer) Option {
	return func(l *lgr) { l.out.SetOutput(w) }
}

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

// Package level defines the severity scale used by the jayc logger:
// DEBUG < INFO < WARN < ERROR < CRITICAL < FATAL, per spec.md §4.G.
package level

import (
	"math"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is a log severity. Numerically, lower means more severe — FATAL is
// 0 — mirroring how logrus itself orders Panic/Fatal above Debug/Trace.
type Level uint8

const (
	// FatalLevel terminates the process: its documented post-condition is
	// "does not return" (spec.md Design Notes).
	FatalLevel Level = iota
	// CriticalLevel may optionally terminate the process if compiled in.
	CriticalLevel
	// ErrorLevel fails the current operation without crashing.
	ErrorLevel
	// WarnLevel signals a non-fatal, noteworthy condition.
	WarnLevel
	// InfoLevel is general informational output.
	InfoLevel
	// DebugLevel is verbose diagnostic output.
	DebugLevel
	// NilLevel disables logging entirely.
	NilLevel
)

// String returns the spec's upper-case name for the level.
func (l Level) String() string {
	switch l {
	case FatalLevel:
		return "FATAL"
	case CriticalLevel:
		return "CRITICAL"
	case ErrorLevel:
		return "ERROR"
	case WarnLevel:
		return "WARN"
	case InfoLevel:
		return "INFO"
	case DebugLevel:
		return "DEBUG"
	case NilLevel:
		return ""
	default:
		return "unknown"
	}
}

// Enabled reports whether a message at level l should be emitted given a
// configured threshold: more severe (or equal) messages always pass.
func (l Level) Enabled(threshold Level) bool {
	if threshold == NilLevel {
		return false
	}
	return l <= threshold
}

// ToStderr reports whether spec.md's stdio sink routes this level to
// stderr (WARN/ERROR/CRITICAL/FATAL) instead of stdout (DEBUG/INFO).
func (l Level) ToStderr() bool {
	return l <= WarnLevel
}

// Logrus maps a Level onto the equivalent logrus.Level, used by the hook
// based sinks. NilLevel maps to a value beyond logrus' own scale so it
// never matches a hook's Levels() filter.
func (l Level) Logrus() logrus.Level {
	switch l {
	case FatalLevel:
		return logrus.FatalLevel
	case CriticalLevel:
		return logrus.PanicLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	case DebugLevel:
		return logrus.DebugLevel
	default:
		return logrus.Level(math.MaxUint32)
	}
}

// Parse converts a case-insensitive level name to a Level. Unrecognized
// input returns InfoLevel, the package default.
func Parse(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FATAL":
		return FatalLevel
	case "CRITICAL", "CRIT":
		return CriticalLevel
	case "ERROR", "ERR":
		return ErrorLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "INFO":
		return InfoLevel
	case "DEBUG":
		return DebugLevel
	case "NIL", "NONE", "OFF":
		return NilLevel
	default:
		return InfoLevel
	}
}

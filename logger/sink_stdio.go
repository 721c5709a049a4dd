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
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"

	loglvl "github.com/jaycgo/jayc/logger/level"
)

// stdioHook writes each entry to stdout or stderr depending on
// loglvl.Level.ToStderr, per spec.md §4.G: WARN and above go to stderr,
// INFO/DEBUG go to stdout.
type stdioHook struct {
	colored bool
	stdout  io.Writer
	stderr  io.Writer
}

// WithStdio attaches a plain-text stdio sink splitting stdout/stderr by
// severity, grounded on the teacher's hookstdout writer split.
func WithStdio() Option {
	return func(l *lgr) {
		l.out.AddHook(newStdioHook(false))
	}
}

// WithStdioColor is WithStdio, but coloring each line by severity using
// fatih/color over a go-colorable writer so ANSI codes still render on
// Windows consoles (the teacher's hookstdout rationale for this pairing).
func WithStdioColor() Option {
	return func(l *lgr) {
		l.out.AddHook(newStdioHook(true))
	}
}

func newStdioHook(colored bool) *stdioHook {
	return &stdioHook{
		colored: colored,
		stdout:  colorable.NewColorable(os.Stdout),
		stderr:  colorable.NewColorable(os.Stderr),
	}
}

func (h *stdioHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *stdioHook) Fire(e *logrus.Entry) error {
	lvl := fromLogrus(e.Level)
	w := h.stdout
	if lvl.ToStderr() {
		w = h.stderr
	}

	line := fmt.Sprintf("%s [%s] %s\n", e.Time.Format("2006-01-02T15:04:05.000Z07:00"), lvl.String(), e.Message)
	if h.colored {
		line = colorFor(lvl).Sprint(line)
	}
	_, err := io.WriteString(w, line)
	return err
}

func colorFor(lvl loglvl.Level) *color.Color {
	switch {
	case lvl <= loglvl.CriticalLevel:
		return color.New(color.FgHiRed, color.Bold)
	case lvl == loglvl.ErrorLevel:
		return color.New(color.FgRed)
	case lvl == loglvl.WarnLevel:
		return color.New(color.FgYellow)
	case lvl == loglvl.InfoLevel:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgCyan)
	}
}

func fromLogrus(l logrus.Level) loglvl.Level {
	switch l {
	case logrus.FatalLevel:
		return loglvl.FatalLevel
	case logrus.PanicLevel:
		return loglvl.CriticalLevel
	case logrus.ErrorLevel:
		return loglvl.ErrorLevel
	case logrus.WarnLevel:
		return loglvl.WarnLevel
	case logrus.InfoLevel:
		return loglvl.InfoLevel
	default:
		return loglvl.DebugLevel
	}
}

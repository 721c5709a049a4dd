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

//go:build linux || darwin

package logger

import (
	"log/syslog"

	"github.com/sirupsen/logrus"

	loglvl "github.com/jaycgo/jayc/logger/level"
)

// syslogHook relays entries to the local syslog daemon, the daemon-mode
// sink named by spec.md's CLI --syslog flag. Grounded on the teacher's
// hooksyslog/sys_syslog.go, which is gated by the same linux||darwin tag
// since log/syslog has no Windows implementation.
type syslogHook struct {
	w *syslog.Writer
}

// WithSyslog attaches a syslog sink tagged with the given process name.
// It returns the Option and an error, since establishing the syslog
// connection can fail (daemon not running, socket unreachable).
func WithSyslog(tag string) (Option, error) {
	w, err := syslog.New(syslog.LOG_DAEMON|syslog.LOG_INFO, tag)
	if err != nil {
		return nil, err
	}

	hook := &syslogHook{w: w}
	return func(l *lgr) {
		l.out.AddHook(hook)
		l.registerCloser(w.Close)
	}, nil
}

func (h *syslogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *syslogHook) Fire(e *logrus.Entry) error {
	msg := e.Message
	switch fromLogrus(e.Level) {
	case loglvl.FatalLevel:
		return h.w.Emerg(msg)
	case loglvl.CriticalLevel:
		return h.w.Crit(msg)
	case loglvl.ErrorLevel:
		return h.w.Err(msg)
	case loglvl.WarnLevel:
		return h.w.Warning(msg)
	case loglvl.InfoLevel:
		return h.w.Info(msg)
	default:
		return h.w.Debug(msg)
	}
}

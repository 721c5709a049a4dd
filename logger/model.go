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
	"sync"

	"github.com/sirupsen/logrus"

	loglvl "github.com/jaycgo/jayc/logger/level"
)

type lgr struct {
	mu         sync.RWMutex
	lvl        loglvl.Level
	out        *logrus.Logger
	fields     logrus.Fields
	exit       func(code int)
	exitOnCrit bool
	closers    []func() error
}

// New builds a Logger at the given initial level with zero or more sinks
// already wired as logrus hooks (see WithStdio, WithSyslog). With no sink
// attached the logger is silent but still tracks level/fields state.
func New(lvl loglvl.Level, opts ...Option) Logger {
	l := &lgr{
		lvl:    lvl,
		out:    logrus.New(),
		fields: logrus.Fields{},
		exit:   os.Exit,
	}
	l.out.SetOutput(io.Discard)
	l.out.SetLevel(logrus.TraceLevel)

	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *lgr) SetLevel(lvl loglvl.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lvl = lvl
}

func (l *lgr) GetLevel() loglvl.Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lvl
}

func (l *lgr) WithField(key string, val interface{}) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = val

	return &lgr{
		lvl:        l.lvl,
		out:        l.out,
		fields:     fields,
		exit:       l.exit,
		exitOnCrit: l.exitOnCrit,
	}
}

func (l *lgr) AddHook(hook logrus.Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.AddHook(hook)
}

func (l *lgr) Close() error {
	l.mu.Lock()
	closers := l.closers
	l.closers = nil
	l.mu.Unlock()

	var last error
	for _, c := range closers {
		if e := c(); e != nil {
			last = e
		}
	}
	return last
}

func (l *lgr) registerCloser(fn func() error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closers = append(l.closers, fn)
}

func (l *lgr) log(lvl loglvl.Level, msg string, args ...interface{}) {
	l.mu.RLock()
	threshold := l.lvl
	fields := l.fields
	l.mu.RUnlock()

	if !lvl.Enabled(threshold) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.out.WithFields(fields).Log(lvl.Logrus(), msg)
}

func (l *lgr) Debug(msg string, args ...interface{})    { l.log(loglvl.DebugLevel, msg, args...) }
func (l *lgr) Info(msg string, args ...interface{})     { l.log(loglvl.InfoLevel, msg, args...) }
func (l *lgr) Warn(msg string, args ...interface{})     { l.log(loglvl.WarnLevel, msg, args...) }
func (l *lgr) Error(msg string, args ...interface{})    { l.log(loglvl.ErrorLevel, msg, args...) }

func (l *lgr) Critical(msg string, args ...interface{}) {
	func() {
		// CRITICAL maps onto logrus.PanicLevel, after which logrus panics
		// with the entry it has already handed to every hook.
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(*logrus.Entry); !ok {
					panic(r)
				}
			}
		}()
		l.log(loglvl.CriticalLevel, msg, args...)
	}()
	l.mu.RLock()
	doExit := l.exitOnCrit
	exit := l.exit
	l.mu.RUnlock()
	if doExit {
		exit(1)
	}
}

func (l *lgr) Fatal(msg string, args ...interface{}) {
	l.log(loglvl.FatalLevel, msg, args...)
	l.mu.RLock()
	exit := l.exit
	l.mu.RUnlock()
	exit(1)
}

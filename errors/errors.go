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

package errors

import (
	"fmt"
	"strings"
)

// Error extends the standard error with a code, a parent chain and the
// call site where it was created.
type Error interface {
	error

	// IsCode reports whether this error's own code equals code.
	IsCode(code CodeError) bool
	// HasCode reports whether this error or any parent carries code.
	HasCode(code CodeError) bool
	// GetCode returns this error's own code.
	GetCode() CodeError

	// Add appends parents to the error's hierarchy, skipping nils.
	Add(parent ...error)
	// HasParent reports whether any parent was attached.
	HasParent() bool
	// GetParent returns the parent chain, optionally including this error first.
	GetParent(withSelf bool) []error

	// Is implements compatibility with the standard errors.Is.
	Is(target error) bool
	// Unwrap implements compatibility with the standard errors.Unwrap / errors.As.
	Unwrap() error

	// GetFile, GetLine and GetFunc report the call site captured at creation.
	GetFile() string
	GetLine() int
	GetFunc() string
}

type jErr struct {
	code CodeError
	msg  string
	site frame
	next []error
}

// New creates an Error with the given code and message, and the given
// parents (nil parents are dropped). The call site is captured at the
// caller of New.
func New(code CodeError, msg string, parent ...error) Error {
	e := &jErr{
		code: code,
		msg:  msg,
		site: captureFrame(2),
	}
	e.Add(parent...)
	return e
}

// Newf is like New but formats msg with args via fmt.Sprintf.
func Newf(code CodeError, msg string, args ...interface{}) Error {
	e := &jErr{
		code: code,
		msg:  fmt.Sprintf(msg, args...),
		site: captureFrame(2),
	}
	return e
}

func (e *jErr) Error() string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(e.msg)

	for _, p := range e.next {
		if p == nil {
			continue
		}
		b.WriteString(": ")
		b.WriteString(p.Error())
	}

	return b.String()
}

func (e *jErr) IsCode(code CodeError) bool {
	return e != nil && e.code == code
}

func (e *jErr) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}
	for _, p := range e.next {
		if je, ok := p.(Error); ok && je.HasCode(code) {
			return true
		}
	}
	return false
}

func (e *jErr) GetCode() CodeError {
	if e == nil {
		return UnknownError
	}
	return e.code
}

func (e *jErr) Add(parent ...error) {
	for _, p := range parent {
		if p == nil {
			continue
		}
		e.next = append(e.next, p)
	}
}

func (e *jErr) HasParent() bool {
	return e != nil && len(e.next) > 0
}

func (e *jErr) GetParent(withSelf bool) []error {
	res := make([]error, 0, len(e.next)+1)
	if withSelf {
		res = append(res, e)
	}
	res = append(res, e.next...)
	return res
}

func (e *jErr) Is(target error) bool {
	if target == nil {
		return false
	}
	if o, ok := target.(*jErr); ok {
		return e.code == o.code && e.msg == o.msg
	}
	return strings.EqualFold(e.Error(), target.Error())
}

func (e *jErr) Unwrap() error {
	if len(e.next) == 0 {
		return nil
	}
	return e.next[0]
}

func (e *jErr) GetFile() string { return e.site.file }
func (e *jErr) GetLine() int    { return e.site.line }
func (e *jErr) GetFunc() string { return e.site.function }

// IfError returns a new Error for code/msg only if any of err is non-nil;
// otherwise it returns nil. Useful to collapse "no error happened" into a
// nil return without an explicit branch at the call site.
func IfError(code CodeError, msg string, err ...error) Error {
	for _, e := range err {
		if e != nil {
			return New(code, msg, e)
		}
	}
	return nil
}

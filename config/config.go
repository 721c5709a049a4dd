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

// Package config is the external key/value store collaborator named by
// spec.md §6: a flat line-oriented "key=value" file, loaded and saved
// through spf13/viper's properties codec.
package config

import (
	"bytes"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	libval "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jaycgo/jayc/errors"
	"github.com/jaycgo/jayc/logger"
)

var (
	// keyPattern/valPattern enforce the exact character classes from
	// spec.md §6 ("[^=\n]{1,2047}" / "[^\n]{0,2047}") — a raw newline or
	// '=' can't be spelled inside a validator struct tag, so the shape
	// check stays on regexp while validate below covers size/presence.
	keyPattern = regexp.MustCompile(`^[^=\n]{1,2047}$`)
	valPattern = regexp.MustCompile(`^[^\n]{0,2047}$`)

	validate = libval.New()
)

// pair is validated with go-playground/validator before Set accepts it,
// the way the teacher validates its own mapstructure-tagged configs.
type pair struct {
	Key   string `validate:"required,max=2047"`
	Value string `validate:"max=2047"`
}

// Store is the in-memory key/value table. Nested keys are flat dotted
// strings by convention (spec.md §6); Store does not interpret the dots.
type Store struct {
	mu  sync.RWMutex
	v   *viper.Viper
	log logger.FuncLog
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithLogger overrides the FuncLog used to report dropped lines during
// Load (default: logger.GetDefault).
func WithLogger(log logger.FuncLog) Option {
	return func(s *Store) { s.log = log }
}

// New builds an empty Store.
func New(opts ...Option) *Store {
	v := viper.New()
	v.SetConfigType("properties")
	s := &Store{v: v, log: logger.GetDefault}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads path and REPLACES the in-memory table (spec.md §6: "Loading
// replaces the in-memory table"). Lines that fail the key/value shape are
// skipped, per the Open Question resolution in DESIGN.md: malformed lines
// are dropped rather than failing the whole load.
func (s *Store) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.CodeTransientIO, "config: read failed", err)
	}

	clean := s.filterValidLines(raw)

	v := viper.New()
	v.SetConfigType("properties")
	if err := v.ReadConfig(bytes.NewReader(clean)); err != nil {
		return errors.New(errors.CodeInvariantViolation, "config: parse failed", err)
	}

	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
	return nil
}

// Save writes the in-memory table to path as "key=value" lines, sorted by
// key for a deterministic output. viper stores keys lower-cased, so
// save(load(file)) reproduces file byte-for-byte only when its keys are
// unique, lower-case and already sorted and it has no blank lines.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	keys := s.v.AllKeys()
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+s.v.GetString(k))
	}
	s.mu.RUnlock()

	sort.Strings(lines)

	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.New(errors.CodeTransientIO, "config: write failed", err)
	}
	return nil
}

// Set stores value under key, validating both against spec.md §6's shape
// constraints.
func (s *Store) Set(key, value string) error {
	if err := validate.Struct(pair{Key: key, Value: value}); err != nil {
		return errors.New(errors.CodeInvariantViolation, "config: invalid key/value", err)
	}
	if !keyPattern.MatchString(key) {
		return errors.New(errors.CodeInvariantViolation, "config: invalid key shape")
	}
	if !valPattern.MatchString(value) {
		return errors.New(errors.CodeInvariantViolation, "config: invalid value shape")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(key, value)
	return nil
}

// Get returns the string value for key and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.v.IsSet(key) {
		return "", false
	}
	return s.v.GetString(key), true
}

// filterValidLines drops blank lines and lines that don't match the
// key=value shape from spec.md §6, rather than failing the whole load.
// Dropped lines are reported at DEBUG — "silently" tightened to
// "silently but observable" per the Open Question resolution in
// DESIGN.md.
func (s *Store) filterValidLines(raw []byte) []byte {
	var out bytes.Buffer
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			s.log().Debug("config: dropping malformed line %q", line)
			continue
		}
		key, val := line[:idx], line[idx+1:]
		if !keyPattern.MatchString(key) || !valPattern.MatchString(val) {
			s.log().Debug("config: dropping malformed line %q", line)
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

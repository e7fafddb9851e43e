// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rewrite

import (
	"bufio"
	"os"

	"gitlab.com/tozd/go/errors"
)

// 🚨 ErrIntegrity is the base error for edit-count validation failures.
// A session raises it when the file no longer contains the markers its
// rule set expects, which means the scaffolding tool's output format
// has drifted and rewriting would corrupt the project.
var ErrIntegrity = errors.Base("rewrite integrity check failed")

// shadowSuffix is appended to the target path to form the shadow file.
const shadowSuffix = ".mkdroid.tmp"

// maxLineSize bounds a single input line (generated files are small,
// but a pathological line should fail loudly instead of truncating).
const maxLineSize = 1 << 20

// 🔄 sessionState tracks the lifecycle of a session: Open until the
// single transition to Committed or Aborted.
type sessionState int

const (
	stateOpen sessionState = iota
	stateCommitted
	stateAborted
)

// 📦 Session owns one file's atomic rewrite. It streams the original's
// lines through caller-supplied edit logic into a shadow file, counts
// structural edits, and publishes the result only via a single rename.
// If the observed edit count does not match the expected count at
// Commit time, the shadow is discarded and the original is untouched.
type Session struct {
	path     string
	shadow   string
	desc     string
	expected int
	observed int

	in      *os.File
	out     *os.File
	scanner *bufio.Scanner
	writer  *bufio.Writer

	state    sessionState
	writeErr error
}

// 🏭 Begin opens path for reading and creates the shadow file beside
// it. desc names the rule set for error messages; expected is the exact
// number of RecordEdit calls Commit will require.
func Begin(path, desc string, expected int) (*Session, error) {
	if expected < 0 {
		return nil, errors.Errorf("expected edit count must be non-negative, got %d", expected)
	}

	in, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening original file: %w", err)
	}

	shadow := path + shadowSuffix
	out, err := os.OpenFile(shadow, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		in.Close()
		return nil, errors.Errorf("creating shadow file: %w", err)
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Session{
		path:     path,
		shadow:   shadow,
		desc:     desc,
		expected: expected,
		in:       in,
		out:      out,
		scanner:  scanner,
		writer:   bufio.NewWriter(out),
	}, nil
}

// Path returns the target path the session will rewrite.
func (s *Session) Path() string {
	return s.path
}

// 📖 Scan advances to the next original line. It returns false at end
// of input; the lines are produced exactly once, in file order.
func (s *Session) Scan() bool {
	if s.state != stateOpen {
		return false
	}
	return s.scanner.Scan()
}

// Line returns the current input line without its trailing newline.
func (s *Session) Line() string {
	return s.scanner.Text()
}

// ✏️ Emit appends one line to the shadow output. It may be called zero
// or more times per input line, so a rule can drop a line outright or
// expand it into a block.
func (s *Session) Emit(line string) {
	if s.writeErr != nil || s.state != stateOpen {
		return
	}
	if _, err := s.writer.WriteString(line); err != nil {
		s.writeErr = errors.Errorf("writing shadow file: %w", err)
		return
	}
	if err := s.writer.WriteByte('\n'); err != nil {
		s.writeErr = errors.Errorf("writing shadow file: %w", err)
	}
}

// 🔢 RecordEdit notes that one structural edit succeeded. The caller
// invokes it exactly once per match that counts toward the rule set's
// expected total.
func (s *Session) RecordEdit() {
	s.observed++
}

// Observed reports the number of edits recorded so far.
func (s *Session) Observed() int {
	return s.observed
}

// ✅ Commit validates the edit count, flushes the shadow, and renames
// it over the original. On any failure the shadow is removed and the
// original file is left byte-identical to its pre-session state.
func (s *Session) Commit() error {
	if s.state != stateOpen {
		return errors.Errorf("commit on %s session", s.stateName())
	}

	if err := s.scanner.Err(); err != nil {
		s.Abort()
		return errors.Errorf("reading %s: %w", s.path, err)
	}
	if s.writeErr != nil {
		s.Abort()
		return s.writeErr
	}

	if s.observed != s.expected {
		missing := s.expected - s.observed
		s.Abort()
		return errors.Errorf("%w: %s (%d) not found in %s", ErrIntegrity, s.desc, missing, s.path)
	}

	if err := s.writer.Flush(); err != nil {
		s.Abort()
		return errors.Errorf("flushing shadow file: %w", err)
	}
	if err := s.out.Sync(); err != nil {
		s.Abort()
		return errors.Errorf("syncing shadow file: %w", err)
	}
	if err := s.out.Close(); err != nil {
		s.out = nil
		s.Abort()
		return errors.Errorf("closing shadow file: %w", err)
	}
	s.out = nil
	s.in.Close()
	s.in = nil

	// The rename is the single publication point: no other process can
	// ever observe a partially rewritten file.
	if err := os.Rename(s.shadow, s.path); err != nil {
		os.Remove(s.shadow)
		s.state = stateAborted
		return errors.Errorf("renaming shadow over original: %w", err)
	}

	s.state = stateCommitted
	return nil
}

// 🗑️ Abort discards the shadow file and closes the session. It is safe
// to call on an already-terminated session, so callers defer it
// unconditionally right after Begin.
func (s *Session) Abort() {
	if s.state != stateOpen {
		return
	}
	if s.out != nil {
		s.out.Close()
		s.out = nil
	}
	if s.in != nil {
		s.in.Close()
		s.in = nil
	}
	os.Remove(s.shadow)
	s.state = stateAborted
}

func (s *Session) stateName() string {
	switch s.state {
	case stateCommitted:
		return "committed"
	case stateAborted:
		return "aborted"
	default:
		return "open"
	}
}

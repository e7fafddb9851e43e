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
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎬 Action describes what a rule does to the line that fired it.
type Action int

const (
	// ReplaceLine emits the rule's Text instead of the matched line.
	ReplaceLine Action = iota
	// InsertBefore emits the rule's Text, then the matched line.
	InsertBefore
	// InsertAfter emits the matched line, then the rule's Text.
	InsertAfter
	// DropLine emits nothing for the matched line.
	DropLine
	// DropSpan drops the matched line and every following line through
	// the line matching the rule's End marker, inclusive. Both boundary
	// hits count as edits; interior lines are dropped without counting.
	DropSpan
	// SubstituteGroup rewrites the marker's capture group Group with
	// Repl and emits the result.
	SubstituteGroup
)

// 📐 Rule is one structural transformation applied during a session's
// line stream. Each rule fires at most once per file.
type Rule struct {
	Marker Marker
	Action Action
	Text   []string // lines for ReplaceLine / InsertBefore / InsertAfter
	End    Marker   // end boundary for DropSpan
	Group  int      // capture group for SubstituteGroup
	Repl   string   // replacement text for SubstituteGroup
}

// 📋 RuleSet is the ordered edit table for one target file. The
// expected edit count is derived from the rules, never supplied by the
// caller, so the count and the table cannot drift apart.
type RuleSet struct {
	// Desc names the transformation in integrity-failure messages,
	// e.g. "application tag" or "build.xml customization markers".
	Desc string

	// Ordered restricts matching to the first rule that has not fired
	// yet, so the table consumes its markers strictly in order.
	Ordered bool

	Rules []Rule
}

// ExpectedEdits returns the exact number of edits the set must observe:
// one per rule, except DropSpan which counts both of its boundaries.
func (rs RuleSet) ExpectedEdits() int {
	n := 0
	for _, r := range rs.Rules {
		if r.Action == DropSpan {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// 🏃 Apply rewrites path in a single pass over its lines. Every input
// line is forwarded verbatim, transformed, or dropped by an explicit
// rule action; at most one rule fires per line. The file is replaced
// atomically only if every rule fired, otherwise it is left untouched
// and an ErrIntegrity is returned.
func Apply(ctx context.Context, path string, rs RuleSet) error {
	logger := zerolog.Ctx(ctx)

	s, err := Begin(path, rs.Desc, rs.ExpectedEdits())
	if err != nil {
		return errors.Errorf("beginning rewrite of %s: %w", path, err)
	}
	defer s.Abort()

	fired := make([]bool, len(rs.Rules))

	for s.Scan() {
		line := s.Line()

		rule := -1
		for i := range rs.Rules {
			if fired[i] {
				continue
			}
			if rs.Rules[i].Marker.Match(line) {
				rule = i
				break
			}
			if rs.Ordered {
				// only the next unconsumed rule is eligible
				break
			}
		}

		if rule < 0 {
			s.Emit(line)
			continue
		}

		r := rs.Rules[rule]
		fired[rule] = true
		logger.Debug().Str("file", path).Str("line", line).Int("rule", rule).Msg("edit rule fired")

		switch r.Action {
		case ReplaceLine:
			for _, t := range r.Text {
				s.Emit(t)
			}
			s.RecordEdit()
		case InsertBefore:
			for _, t := range r.Text {
				s.Emit(t)
			}
			s.Emit(line)
			s.RecordEdit()
		case InsertAfter:
			s.Emit(line)
			for _, t := range r.Text {
				s.Emit(t)
			}
			s.RecordEdit()
		case DropLine:
			s.RecordEdit()
		case DropSpan:
			s.RecordEdit()
			for s.Scan() {
				if r.End.Match(s.Line()) {
					s.RecordEdit()
					break
				}
			}
		case SubstituteGroup:
			rewritten, ok := r.Marker.ReplaceGroup(line, r.Group, r.Repl)
			if !ok {
				// Match without a usable capture: treat as not fired so
				// the integrity check reports it.
				fired[rule] = false
				s.Emit(line)
				continue
			}
			s.Emit(rewritten)
			s.RecordEdit()
		default:
			return errors.Errorf("unknown rule action %d", r.Action)
		}
	}

	return s.Commit()
}

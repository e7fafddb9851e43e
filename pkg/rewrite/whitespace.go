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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🧹 StripWhitespace rewrites path with trailing blank characters
// removed from every line, blank lines before the first content line
// and after the last content line dropped entirely, and blank runs
// interior to content preserved as-is. The pass is pure formatting: it
// expects zero structural edits and therefore always commits. Applying
// it twice yields the same bytes as applying it once.
func StripWhitespace(ctx context.Context, path string) error {
	s, err := Begin(path, "whitespace cleanup", 0)
	if err != nil {
		return errors.Errorf("beginning whitespace cleanup of %s: %w", path, err)
	}
	defer s.Abort()

	pending := 0
	seenContent := false

	for s.Scan() {
		line := strings.TrimRight(s.Line(), " \t")
		if line == "" {
			// Buffered until the next content line; a run that never
			// reaches one is trailing and vanishes with the buffer.
			pending++
			continue
		}
		if seenContent {
			for ; pending > 0; pending-- {
				s.Emit("")
			}
		}
		pending = 0
		seenContent = true
		s.Emit(line)
	}

	return s.Commit()
}

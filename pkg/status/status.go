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

// Package status reports what the generator did to every file it
// touched: a colored console line for the operator plus a structured
// zerolog event for debugging.
package status

import (
	"context"
	"io"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// 📊 Outcome is what happened to one file.
type Outcome int

const (
	OutcomeScaffolded Outcome = iota // created by the scaffolding tool
	OutcomeRewritten                 // structurally edited and committed
	OutcomeFormatted                 // whitespace-only cleanup committed
	OutcomeLinked                    // replaced with a symlink
	OutcomeRemoved                   // deleted
	OutcomeFailed                    // a rewrite aborted on this file
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeScaffolded:
		return "scaffolded"
	case OutcomeRewritten:
		return "rewritten"
	case OutcomeFormatted:
		return "formatted"
	case OutcomeLinked:
		return "linked"
	case OutcomeRemoved:
		return "removed"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Entry is one tracked file outcome.
type Entry struct {
	Path    string  // path relative to the project root
	Outcome Outcome // what happened
	Detail  string  // optional extra, e.g. the rule set description
}

// 🔧 Manager tracks file outcomes for one generation run.
type Manager struct {
	baseDir   string
	console   io.Writer
	formatter Formatter

	mu      sync.Mutex
	entries []Entry
}

// 🏭 New creates a status manager rooted at baseDir. Console output is
// written to console; structured events go to the context logger.
func New(baseDir string, console io.Writer) *Manager {
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		console:   console,
		formatter: NewColorFormatter(),
	}
}

// 📝 Report records one file outcome and prints it.
func (m *Manager) Report(ctx context.Context, path string, outcome Outcome, detail string) {
	rel := path
	if r, err := filepath.Rel(m.baseDir, path); err == nil {
		rel = r
	}

	m.mu.Lock()
	m.entries = append(m.entries, Entry{Path: rel, Outcome: outcome, Detail: detail})
	m.mu.Unlock()

	io.WriteString(m.console, m.formatter.FormatEntry(rel, outcome, detail)+"\n")

	zerolog.Ctx(ctx).Info().
		Str("file", rel).
		Str("outcome", outcome.String()).
		Str("detail", detail).
		Msg("file outcome")
}

// Entries returns a copy of every recorded outcome, in report order.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// 📈 Summary prints the closing line for a run.
func (m *Manager) Summary(ctx context.Context, ok bool) {
	m.mu.Lock()
	n := len(m.entries)
	m.mu.Unlock()

	io.WriteString(m.console, m.formatter.FormatSummary(n, ok)+"\n")
	zerolog.Ctx(ctx).Info().Int("files", n).Bool("ok", ok).Msg("generation finished")
}

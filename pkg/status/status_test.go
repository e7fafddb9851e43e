package status

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Report(t *testing.T) {
	base := t.TempDir()
	var console bytes.Buffer
	m := New(base, &console)
	ctx := context.Background()

	m.Report(ctx, filepath.Join(base, "AndroidManifest.xml"), OutcomeRewritten, "application tag")
	m.Report(ctx, filepath.Join(base, "res", "values", "strings.xml"), OutcomeRewritten, "")
	m.Report(ctx, filepath.Join(base, "ant.properties"), OutcomeLinked, "")

	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "AndroidManifest.xml", entries[0].Path)
	assert.Equal(t, OutcomeRewritten, entries[0].Outcome)
	assert.Equal(t, filepath.Join("res", "values", "strings.xml"), entries[1].Path)
	assert.Equal(t, OutcomeLinked, entries[2].Outcome)

	out := console.String()
	assert.Contains(t, out, "AndroidManifest.xml")
	assert.Contains(t, out, "rewritten")
	assert.Contains(t, out, "(application tag)")
	assert.Contains(t, out, "linked")
}

func TestManager_Summary(t *testing.T) {
	var console bytes.Buffer
	m := New(t.TempDir(), &console)
	ctx := context.Background()

	m.Report(ctx, "a", OutcomeScaffolded, "")
	m.Summary(ctx, true)
	assert.Contains(t, console.String(), "1 files processed")

	console.Reset()
	m.Summary(ctx, false)
	assert.Contains(t, console.String(), "aborted after 1 files")
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeScaffolded, "scaffolded"},
		{OutcomeRewritten, "rewritten"},
		{OutcomeFormatted, "formatted"},
		{OutcomeLinked, "linked"},
		{OutcomeRemoved, "removed"},
		{OutcomeFailed, "failed"},
		{Outcome(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.outcome.String())
	}
}

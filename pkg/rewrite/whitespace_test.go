package rewrite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripWhitespace(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "trailing_blanks_on_lines",
			content: "<a>  \n<b>\t\n",
			want:    "<a>\n<b>\n",
		},
		{
			name:    "trailing_blank_lines_dropped",
			content: "<a>\n\n\n\n",
			want:    "<a>\n",
		},
		{
			name:    "interior_blank_line_kept",
			content: "<a>\n\n<b>\n",
			want:    "<a>\n\n<b>\n",
		},
		{
			name:    "interior_run_preserved",
			content: "<a>\n\n\n<b>\n",
			want:    "<a>\n\n\n<b>\n",
		},
		{
			name:    "leading_blank_lines_dropped",
			content: "\n\n<a>\n",
			want:    "<a>\n",
		},
		{
			name:    "whitespace_only_lines_count_as_blank",
			content: "<a>\n   \t\n<b>\n  \n",
			want:    "<a>\n\n<b>\n",
		},
		{
			name:    "already_clean",
			content: "<a>\n<b>\n",
			want:    "<a>\n<b>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "res.xml", tt.content)

			require.NoError(t, StripWhitespace(ctx, path))
			assert.Equal(t, tt.want, readBack(t, path))

			// The pass is idempotent: a second run is a no-op.
			require.NoError(t, StripWhitespace(ctx, path))
			assert.Equal(t, tt.want, readBack(t, path))
		})
	}
}

package hover_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/eds-lsp/pkg/eds"
	"github.com/walteh/eds-lsp/pkg/hover"
	"github.com/walteh/eds-lsp/pkg/position"
)

const device = "[DeviceInfo]\nVendorName = ACME Corp\nProductName=\nGranularity\n[Dummy]\n[Comments]\nLines=0\n"

func TestBuildHoverResponse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pos     position.Point
		want    string
		wantRow int
		wantOK  bool
	}{
		{
			name:    "section name",
			input:   device,
			pos:     position.Point{Row: 0, Column: 3},
			want:    "**[DeviceInfo]**\n\n3 statements",
			wantOK:  true,
			wantRow: 0,
		},
		{
			name:    "statement with value",
			input:   device,
			pos:     position.Point{Row: 1, Column: 14},
			want:    "`VendorName` = `ACME Corp`\n\nin section **[DeviceInfo]**",
			wantOK:  true,
			wantRow: 1,
		},
		{
			name:    "empty value",
			input:   device,
			pos:     position.Point{Row: 2, Column: 0},
			want:    "`ProductName` = _(empty)_\n\nin section **[DeviceInfo]**",
			wantOK:  true,
			wantRow: 2,
		},
		{
			name:    "bare key",
			input:   device,
			pos:     position.Point{Row: 3, Column: 11},
			want:    "`Granularity`\n\nno value assigned\n\nin section **[DeviceInfo]**",
			wantOK:  true,
			wantRow: 3,
		},
		{
			name:    "empty section",
			input:   device,
			pos:     position.Point{Row: 4, Column: 2},
			want:    "**[Dummy]**\n\nno statements",
			wantOK:  true,
			wantRow: 4,
		},
		{
			name:  "past the end of the outline",
			input: device,
			pos:   position.Point{Row: 6, Column: 1},
		},
		{
			name:  "on a bracket",
			input: "[A]\n",
			pos:   position.Point{Row: 0, Column: 3},
		},
		{
			name:  "on the closing bracket right after the name",
			input: "[A]\n",
			pos:   position.Point{Row: 0, Column: 2},
		},
		{
			name:  "just past the end of a statement",
			input: "[A]\nx=1\n",
			pos:   position.Point{Row: 1, Column: 3},
		},
		{
			name:    "last byte of a statement",
			input:   "[A]\nx=1\n",
			pos:     position.Point{Row: 1, Column: 2},
			want:    "`x` = `1`\n\nin section **[A]**",
			wantOK:  true,
			wantRow: 1,
		},
		{
			name:  "empty document",
			input: "",
			pos:   position.Point{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := eds.Parse(context.Background(), tt.input)
			require.NoError(t, err)

			got, ok := hover.BuildHoverResponse(context.Background(), doc, tt.pos)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got.Content)
			assert.Equal(t, tt.wantRow, got.Range.StartPoint.Row)
		})
	}
}

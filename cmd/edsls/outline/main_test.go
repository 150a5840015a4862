package outline

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/eds-lsp/pkg/config"
	"github.com/walteh/eds-lsp/pkg/eds"
)

func setupFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func TestOutline(t *testing.T) {
	fs := setupFs(t, map[string]string{
		"/work/a.eds":     "[A]\nx=1\n",
		"/work/sub/b.eds": "[B]\n[C]\ny=1\n",
		"/work/notes.txt": "[N]\n",
	})

	tests := []struct {
		name     string
		patterns []string
		want     string
	}{
		{
			name:     "config patterns",
			patterns: nil,
			want: "a.eds:1:2\tsection_name\tA\n" +
				"a.eds:2:1\tstatement\tx=1\n" +
				"sub/b.eds:1:2\tsection_name\tB\n",
		},
		{
			name:     "explicit pattern",
			patterns: []string{"sub/*.eds"},
			want:     "sub/b.eds:1:2\tsection_name\tB\n",
		},
		{
			name:     "overlapping patterns",
			patterns: []string{"*.eds", "**/a.eds"},
			want: "a.eds:1:2\tsection_name\tA\n" +
				"a.eds:2:1\tstatement\tx=1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			h := &Handler{fs: fs, root: "/work", patterns: tt.patterns, out: &out}

			ctx := config.WithContext(context.Background(), config.Default())
			require.NoError(t, h.Run(ctx))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestOutlineNoMatches(t *testing.T) {
	fs := setupFs(t, map[string]string{"/work/a.txt": ""})

	var out bytes.Buffer
	h := &Handler{fs: fs, root: "/work", out: &out}

	err := h.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoMatches)
	assert.Empty(t, out.String())
}

func TestOutlineKeepsGoingAfterBadFile(t *testing.T) {
	fs := setupFs(t, map[string]string{
		"/work/a.eds": "[\xff]\n",
		"/work/b.eds": "[B]\n",
	})

	var out bytes.Buffer
	h := &Handler{fs: fs, root: "/work", out: &out}

	err := h.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, eds.ErrDecode)
	assert.Contains(t, err.Error(), "a.eds")
	assert.Equal(t, "b.eds:1:2\tsection_name\tB\n", out.String())
}

func TestOutlineCommandFlags(t *testing.T) {
	cmd := NewOutlineCommand(afero.NewMemMapFs())

	root := cmd.Flags().Lookup("root")
	require.NotNil(t, root)
	assert.Equal(t, ".", root.DefValue)
}

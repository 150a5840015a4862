package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/eds-lsp/pkg/parser"
	"github.com/walteh/eds-lsp/pkg/position"
)

func parse(t *testing.T, text string) *parser.Tree {
	t.Helper()
	p, err := parser.Default()
	require.NoError(t, err)
	tree, err := p.Parse(context.Background(), text)
	require.NoError(t, err)
	require.NotNil(t, tree.RootNode())
	return tree
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty document",
			input: "",
			want:  "(source_file)",
		},
		{
			name:  "only comments and blank lines",
			input: "; generated\n\n;another\n",
			want:  "(source_file)",
		},
		{
			name:  "two sections",
			input: "[A]\nx=1\nx=2\n[B]\ny=3\n",
			want:  "(source_file (section (section_name) (statement (key) (value)) (statement (key) (value))) (section (section_name) (statement (key) (value))))",
		},
		{
			name:  "empty section",
			input: "[A]\n[B]\nz=1\n",
			want:  "(source_file (section (section_name)) (section (section_name) (statement (key) (value))))",
		},
		{
			name:  "header without a name",
			input: "[]\n",
			want:  "(source_file (section))",
		},
		{
			name:  "header without a closing bracket",
			input: "[A\nx=1\n",
			want:  "(source_file (section (section_name) (statement (key) (value))))",
		},
		{
			name:  "statement without a value",
			input: "[A]\nx=\ny\n",
			want:  "(source_file (section (section_name) (statement (key)) (statement (key))))",
		},
		{
			name:  "statement before the first section",
			input: "x=1\n[A]\n",
			want:  "(source_file (statement (key) (value)) (section (section_name)))",
		},
		{
			name:  "stray bracket becomes an error leaf",
			input: "[A]\nx=1\n]\n[B]\ny=2\n",
			want:  "(source_file (section (section_name) (statement (key) (value))) (ERROR) (section (section_name) (statement (key) (value))))",
		},
		{
			name:  "comments between statements are extras",
			input: "[A]\nx=1\n; note\nx=2\n",
			want:  "(source_file (section (section_name) (statement (key) (value)) (statement (key) (value))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.input)
			assert.Equal(t, tt.want, tree.RootNode().String())
		})
	}
}

func TestParseRanges(t *testing.T) {
	text := "[Device Info]\r\nVendorName = ACME Corp  \r\n"
	tree := parse(t, text)

	section := tree.RootNode().Child(0)
	require.NotNil(t, section)
	require.Equal(t, parser.KindSection, section.Kind())
	require.Equal(t, 4, section.ChildCount())

	name := section.Child(1)
	assert.Equal(t, parser.KindSectionName, name.Kind())
	assert.Equal(t, "Device Info", text[name.StartByte():name.EndByte()])

	stmt := section.Child(3)
	assert.Equal(t, parser.KindStatement, stmt.Kind())
	assert.Equal(t, "VendorName = ACME Corp", text[stmt.StartByte():stmt.EndByte()])
	assert.Equal(t, position.Point{Row: 1, Column: 0}, stmt.Range().StartPoint)
	assert.Equal(t, position.Point{Row: 1, Column: 22}, stmt.Range().EndPoint)

	value := stmt.Child(2)
	assert.Equal(t, parser.KindValue, value.Kind())
	assert.Equal(t, "ACME Corp", text[value.StartByte():value.EndByte()])

	assert.Equal(t, "[", section.Child(0).Kind())
	assert.False(t, section.Child(0).IsNamed())
	assert.Equal(t, "]", section.Child(2).Kind())
	assert.Equal(t, 0, section.StartByte())
	assert.Equal(t, stmt.EndByte(), section.EndByte())
	assert.Equal(t, len(text), tree.RootNode().EndByte())
}

func TestTreeCursor(t *testing.T) {
	tree := parse(t, "[A]\nx=1\n[B]\n")
	c := tree.Walk()

	assert.Equal(t, parser.KindSourceFile, c.Node().Kind())
	assert.False(t, c.GotoParent(), "root has no parent")
	assert.False(t, c.GotoNextSibling(), "root has no siblings")

	require.True(t, c.GotoFirstChild())
	assert.Equal(t, parser.KindSection, c.Node().Kind())
	require.True(t, c.GotoFirstChild())
	assert.Equal(t, "[", c.Node().Kind())
	require.True(t, c.GotoNextSibling())
	assert.Equal(t, parser.KindSectionName, c.Node().Kind())
	require.True(t, c.GotoNextSibling())
	assert.Equal(t, "]", c.Node().Kind())
	require.True(t, c.GotoNextSibling())
	assert.Equal(t, parser.KindStatement, c.Node().Kind())
	assert.False(t, c.GotoNextSibling())

	require.True(t, c.GotoParent())
	require.True(t, c.GotoNextSibling())
	assert.Equal(t, parser.KindSection, c.Node().Kind())
	assert.False(t, c.GotoNextSibling())

	c.Reset()
	assert.Equal(t, parser.KindSourceFile, c.Node().Kind())
}

func TestCursorStaysInSubtree(t *testing.T) {
	tree := parse(t, "[A]\nx=1\n[B]\n")
	section := tree.RootNode().Child(0)

	c := parser.NewTreeCursor(section)
	assert.False(t, c.GotoNextSibling())
	assert.False(t, c.GotoParent())
	require.True(t, c.GotoFirstChild())
	require.True(t, c.GotoParent())
	assert.Same(t, section, c.Node())
}

func TestTreeInspect(t *testing.T) {
	tree := parse(t, "[A]\nx=1\n[B]\ny=2\n")

	var kinds []string
	tree.Inspect(func(n *parser.Node) bool {
		if n.IsNamed() {
			kinds = append(kinds, n.Kind())
		}
		return n.Kind() != parser.KindStatement
	})

	assert.Equal(t, []string{
		"source_file",
		"section", "section_name", "statement",
		"section", "section_name", "statement",
	}, kinds)
}

func TestTreeComments(t *testing.T) {
	tree := parse(t, "; header\n[A]\n  ;indented\nx=1 ; not a comment\n")

	var got []string
	for _, r := range tree.Comments() {
		got = append(got, r.StartPoint.String()+"-"+r.EndPoint.String())
	}
	assert.Equal(t, []string{"0:0-0:8", "2:2-2:11"}, got)

	assert.Empty(t, parse(t, "[A]\n").Comments())
	assert.Nil(t, (*parser.Tree)(nil).Comments())
}

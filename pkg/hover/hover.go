// Package hover provides functionality for generating hover information.
package hover

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/walteh/eds-lsp/pkg/eds"
	"github.com/walteh/eds-lsp/pkg/parser"
	"github.com/walteh/eds-lsp/pkg/position"
)

// HoverInfo represents the information to be displayed in a hover tooltip
type HoverInfo struct {
	// Content is the markdown content to display
	Content string
	// Range is the range in the document that this hover applies to
	Range position.Range
}

// FormatHoverResponse formats a hover response for an outline item. sec is
// the section the item belongs to, if any.
func FormatHoverResponse(item eds.Item, sec *eds.Section) *HoverInfo {
	var sb strings.Builder

	switch item.Kind {
	case parser.KindSectionName:
		fmt.Fprintf(&sb, "**[%s]**\n\n", item.Text)
		n := 0
		if sec != nil {
			n = len(sec.Statements)
		}
		switch n {
		case 0:
			sb.WriteString("no statements")
		case 1:
			sb.WriteString("1 statement")
		default:
			fmt.Fprintf(&sb, "%d statements", n)
		}
	default:
		key, value, ok := item.KeyValue()
		switch {
		case !ok:
			fmt.Fprintf(&sb, "`%s`\n\nno value assigned", key)
		case value == "":
			fmt.Fprintf(&sb, "`%s` = _(empty)_", key)
		default:
			fmt.Fprintf(&sb, "`%s` = `%s`", key, value)
		}
		if sec != nil && sec.Header.Kind != "" {
			fmt.Fprintf(&sb, "\n\nin section **[%s]**", sec.Header.Text)
		}
	}

	return &HoverInfo{Content: sb.String(), Range: item.Range}
}

// BuildHoverResponse finds the outline item under pos. Content the outline
// never reaches gets no hover.
func BuildHoverResponse(ctx context.Context, doc *eds.Document, pos position.Point) (*HoverInfo, bool) {
	for _, sec := range eds.GroupSections(doc.Flatten()) {
		if sec.Header.Kind != "" && sec.Header.Range.Contains(pos) {
			zerolog.Ctx(ctx).Debug().Msgf("section %q at %s overlaps with %s", sec.Header.Text, sec.Header.Range, pos)
			return FormatHoverResponse(sec.Header, &sec), true
		}
		for _, st := range sec.Statements {
			if st.Range.Contains(pos) {
				zerolog.Ctx(ctx).Debug().Msgf("statement %q at %s overlaps with %s", st.Text, st.Range, pos)
				return FormatHoverResponse(st, &sec), true
			}
		}
	}

	return nil, false
}

package eds

import "github.com/walteh/eds-lsp/pkg/parser"

// Section is a section name together with the statements yielded after it.
type Section struct {
	Header     Item
	Statements []Item
}

// GroupSections rebuilds section nesting from a flat item sequence: every
// section_name owns the statements that follow it up to the next
// section_name. Statements that appear before any section_name are collected
// under a Section with a zero Header.
func GroupSections(items []Item) []Section {
	var out []Section
	for _, item := range items {
		switch item.Kind {
		case parser.KindSectionName:
			out = append(out, Section{Header: item})
		case parser.KindStatement:
			if len(out) == 0 {
				out = append(out, Section{})
			}
			last := &out[len(out)-1]
			last.Statements = append(last.Statements, item)
		}
	}
	return out
}

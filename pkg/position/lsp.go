package position

import (
	"go.lsp.dev/protocol"
)

// Tree rows and columns are zero based like LSP lines and characters, so the
// conversions below are field for field.

func ToLSPPosition(p Point) protocol.Position {
	return protocol.Position{
		Line:      uint32(p.Row),
		Character: uint32(p.Column),
	}
}

func FromLSPPosition(p protocol.Position) Point {
	return Point{
		Row:    int(p.Line),
		Column: int(p.Character),
	}
}

func ToLSPRange(r Range) protocol.Range {
	return protocol.Range{
		Start: ToLSPPosition(r.StartPoint),
		End:   ToLSPPosition(r.EndPoint),
	}
}

// NewRangeFromLSPRange resolves an LSP range against the text behind li.
func NewRangeFromLSPRange(li *LineIndex, r protocol.Range) Range {
	start := FromLSPPosition(r.Start)
	end := FromLSPPosition(r.End)
	return Range{
		StartByte:  li.Offset(start),
		EndByte:    li.Offset(end),
		StartPoint: start,
		EndPoint:   end,
	}
}

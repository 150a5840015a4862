package position

import (
	"fmt"
	"sort"
)

// Point is a zero-based row/column location in a document. Columns count
// bytes from the start of the row.
type Point struct {
	Row    int
	Column int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// Compare returns -1, 0 or 1 depending on whether p sits before, at, or after o.
func (p Point) Compare(o Point) int {
	switch {
	case p.Row < o.Row:
		return -1
	case p.Row > o.Row:
		return 1
	case p.Column < o.Column:
		return -1
	case p.Column > o.Column:
		return 1
	}
	return 0
}

// Range spans the bytes [StartByte, EndByte) of a document together with the
// matching points.
type Range struct {
	StartByte  int
	EndByte    int
	StartPoint Point
	EndPoint   Point
}

// Len returns the number of bytes covered by the range
func (r Range) Len() int {
	return r.EndByte - r.StartByte
}

// Intersects reports whether the two ranges share at least one point.
// Touching ranges intersect.
func (r Range) Intersects(o Range) bool {
	return r.StartPoint.Compare(o.EndPoint) <= 0 && o.StartPoint.Compare(r.EndPoint) <= 0
}

// Contains reports whether p lies in the half-open range [start, end).
func (r Range) Contains(p Point) bool {
	return r.StartPoint.Compare(p) <= 0 && p.Compare(r.EndPoint) < 0
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d) %s-%s", r.StartByte, r.EndByte, r.StartPoint, r.EndPoint)
}

// LineIndex converts byte offsets of a fixed text into points.
type LineIndex struct {
	starts []int
	size   int
}

func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts, size: len(text)}
}

// Point returns the point of a byte offset. Offsets outside the text are
// clamped to its bounds.
func (li *LineIndex) Point(offset int) Point {
	if offset < 0 {
		offset = 0
	}
	if offset > li.size {
		offset = li.size
	}
	// first row starting after offset, minus one
	row := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	return Point{Row: row, Column: offset - li.starts[row]}
}

// Offset returns the byte offset of a point. Rows past the end map to the end
// of the text; columns are not clamped to the row length.
func (li *LineIndex) Offset(p Point) int {
	if p.Row < 0 {
		return 0
	}
	if p.Row >= len(li.starts) {
		return li.size
	}
	off := li.starts[p.Row] + p.Column
	if off > li.size {
		return li.size
	}
	return off
}

func (li *LineIndex) Range(start, end int) Range {
	return Range{
		StartByte:  start,
		EndByte:    end,
		StartPoint: li.Point(start),
		EndPoint:   li.Point(end),
	}
}

// Lines returns the number of rows in the text
func (li *LineIndex) Lines() int {
	return len(li.starts)
}

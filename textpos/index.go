package textpos

import "sort"

// Position identifies a byte in some source text. Line and Column are
// 1-based, matching the convention of SAX-style scanners; Offset counts
// bytes from the start of the text.
type Position struct {
	Offset int
	Line   int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

// Index precomputes the offsets of all line breaks in a source text so
// (line, column) coordinates can be converted to byte offsets and back.
// An Index is immutable after construction.
type Index struct {
	size   int
	breaks []int
}

func NewIndex(src []byte) *Index {
	ix := &Index{size: len(src)}
	for i, b := range src {
		if b == '\n' {
			ix.breaks = append(ix.breaks, i)
		}
	}
	return ix
}

// LineCount reports the number of lines in the indexed text. Text with no
// trailing newline still counts its final partial line.
func (ix *Index) LineCount() int {
	return len(ix.breaks) + 1
}

func (ix *Index) lineStart(line int) int {
	if line == 1 {
		return 0
	}
	return ix.breaks[line-2] + 1
}

// Resolve converts a 1-based (line, column) coordinate to a byte offset.
// Offsets up to and including the text length are valid so that exclusive
// end coordinates resolve. Returns false for coordinates outside the text.
func (ix *Index) Resolve(line, column int) (int, bool) {
	if line < 1 || line > ix.LineCount() || column < 1 {
		return 0, false
	}
	offset := ix.lineStart(line) + column - 1
	if offset > ix.size {
		return 0, false
	}
	return offset, true
}

// Locate converts a byte offset to a full Position. Offsets are clamped to
// [0, len(text)]; the offset one past the end locates just after the final
// byte.
func (ix *Index) Locate(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > ix.size {
		offset = ix.size
	}
	line := sort.SearchInts(ix.breaks, offset) + 1
	return Position{
		Offset: offset,
		Line:   line,
		Column: offset - ix.lineStart(line) + 1,
	}
}

// Package mindiff computes a compressed line-oriented difference between
// two sequences of text lines. Instead of printing a deleted block followed
// by an inserted block when the two blocks are largely similar, it finds the
// most similar line pair inside the block and prints one annotated row per
// near-duplicate pair.
package mindiff

import "fmt"

// Tag classifies how an aligned region of two sequences relates.
type Tag int

// Region tags, in the order they naturally appear in an edit script.
const (
	TagEqual Tag = iota
	TagDelete
	TagInsert
	TagReplace
)

// String returns the conventional edit-script name of the tag.
func (t Tag) String() string {
	switch t {
	case TagEqual:
		return "equal"
	case TagDelete:
		return "delete"
	case TagInsert:
		return "insert"
	case TagReplace:
		return "replace"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Opcode describes one aligned region: a[ALo:AHi] relates to b[BLo:BHi]
// according to Tag. The full opcode list for a comparison covers both
// sequences exactly, with no gaps or overlaps, ordered by increasing
// ALo/BLo.
type Opcode struct {
	Tag Tag
	ALo int
	AHi int
	BLo int
	BHi int
}

// MatchingBlock records that a[A:A+Size] equals b[B:B+Size] element-wise.
// A Size of zero only appears as the sentinel terminating a matching-block
// list; it is never a real match.
type MatchingBlock struct {
	A    int
	B    int
	Size int
}

// Mark is the single-byte annotation at the start of an output row.
type Mark byte

// Row marks. MarkChanged annotates a line that replaced a similar line
// from the first sequence.
const (
	MarkSame    Mark = ' '
	MarkDelete  Mark = '-'
	MarkInsert  Mark = '+'
	MarkChanged Mark = '!'
)

// Row is one emitted output unit: a mark and the text of exactly one line.
// Text keeps its original line terminator, so rendered rows concatenate
// with no extra separator.
type Row struct {
	Mark Mark
	Text string
}

// String renders the row in its output form: mark, one space, line text.
func (r Row) String() string {
	return string(r.Mark) + " " + r.Text
}

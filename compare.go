package mindiff

import (
	"fmt"
	"iter"
)

// cutoff is the minimum character-level similarity ratio for two lines to
// be treated as a changed pair rather than an unrelated delete plus insert.
const cutoff = 0.75

// Compare returns the compressed diff between two line sequences as a lazy
// sequence of rows, in emission order. Equal, deleted, and inserted lines
// are dumped with their marks; replaced regions are recursively synchronized
// on their most similar line pairs, each pair collapsing into a single
// MarkChanged row carrying b's text.
//
// Stopping the iteration early stops the comparison.
func Compare(a, b []string) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		m := NewMatcher(a, b)
		for _, op := range m.Opcodes() {
			var more bool
			switch op.Tag {
			case TagEqual:
				more = dump(yield, MarkSame, a, op.ALo, op.AHi)
			case TagDelete:
				more = dump(yield, MarkDelete, a, op.ALo, op.AHi)
			case TagInsert:
				more = dump(yield, MarkInsert, b, op.BLo, op.BHi)
			case TagReplace:
				more = dumpReplace(yield, a, op.ALo, op.AHi, b, op.BLo, op.BHi)
			default:
				panic(fmt.Sprintf("mindiff: unknown opcode tag %q", op.Tag))
			}
			if !more {
				return
			}
		}
	}
}

// dump yields one row per line in lines[lo:hi], all with the same mark.
// It reports whether the consumer wants more rows.
func dump(yield func(Row) bool, mark Mark, lines []string, lo, hi int) bool {
	for i := lo; i < hi; i++ {
		if !yield(Row{Mark: mark, Text: lines[i]}) {
			return false
		}
	}
	return true
}

// dumpReplace renders a region where a[alo:ahi] was replaced by b[blo:bhi].
// One-sided regions degrade to plain dumps; when both sides are non-empty
// the region is synchronized on its best line pair.
func dumpReplace(yield func(Row) bool, a []string, alo, ahi int, b []string, blo, bhi int) bool {
	switch {
	case alo < ahi && blo < bhi:
		return syncReplace(yield, a, alo, ahi, b, blo, bhi)
	case alo < ahi:
		return dump(yield, MarkDelete, a, alo, ahi)
	case blo < bhi:
		return dump(yield, MarkInsert, b, blo, bhi)
	}
	return true
}

// syncReplace searches a[alo:ahi] x b[blo:bhi] for the most similar line
// pair, renders the sub-regions before it, the pair itself as a single row,
// and the sub-regions after it. Pairs below cutoff fall back to the first
// identical pair if one exists, and otherwise the whole region is rendered
// as deletes followed by inserts.
func syncReplace(yield func(Row) bool, a []string, alo, ahi int, b []string, blo, bhi int) bool {
	bestRatio := 0.0
	bestI, bestJ := -1, -1
	eqI, eqJ := -1, -1

	// The scan order (j outer, i inner) combined with the strict
	// comparisons below makes the earliest-scanned pair win all ties.
	m := NewMatcher[rune](nil, nil)
	for j := blo; j < bhi; j++ {
		bj := b[j]
		m.SetSeq2([]rune(bj))
		for i := alo; i < ahi; i++ {
			ai := a[i]
			if ai == bj {
				// Identical lines are not similarity candidates;
				// remember the first one as a fallback anchor.
				if eqI < 0 {
					eqI, eqJ = i, j
				}
				continue
			}
			// Ratio is expensive, so try its cheap upper bounds first:
			// only a pair that could beat the current best is worth
			// the exact computation.
			m.SetSeq1([]rune(ai))
			if m.RealQuickRatio() > bestRatio && m.QuickRatio() > bestRatio {
				if r := m.Ratio(); r > bestRatio {
					bestRatio = r
					bestI, bestJ = i, j
				}
			}
		}
	}

	exact := false
	if bestRatio < cutoff {
		if eqI < 0 {
			// No pair is similar enough and none are identical:
			// nothing to synchronize on.
			return dump(yield, MarkDelete, a, alo, ahi) &&
				dump(yield, MarkInsert, b, blo, bhi)
		}
		bestI, bestJ = eqI, eqJ
		exact = true
	}
	if bestI < 0 || bestJ < 0 {
		panic("mindiff: replace region has no synchronization point")
	}

	if !dumpReplace(yield, a, alo, bestI, b, blo, bestJ) {
		return false
	}

	// The pair collapses into one row carrying b's text; a's line is
	// consumed but never rendered.
	mark := MarkChanged
	if exact {
		mark = MarkSame
	}
	if !yield(Row{Mark: mark, Text: b[bestJ]}) {
		return false
	}

	return dumpReplace(yield, a, bestI+1, ahi, b, bestJ+1, bhi)
}

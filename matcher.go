package mindiff

// Matcher aligns two sequences of comparable elements by repeatedly finding
// the longest contiguous matching block and recursing on the pieces to the
// left and right of it. It is the line-level engine behind Compare and,
// instantiated with runes, the character-level engine behind the similarity
// ratios used to pair up replaced lines.
//
// The matcher computes and caches an index of the second sequence, so to
// compare one target against many candidates, call SetSeq2 once and SetSeq1
// per candidate.
type Matcher[T comparable] struct {
	a, b []T

	// b2j maps an element of b to the ordered list of its indices in b.
	// Popular elements are excluded when autoJunk applies.
	b2j      map[T][]int
	bPopular map[T]struct{}

	matchingBlocks []MatchingBlock
	opcodes        []Opcode
	fullBCount     map[T]int
}

// NewMatcher returns a matcher over a and b.
func NewMatcher[T comparable](a, b []T) *Matcher[T] {
	m := &Matcher[T]{}
	m.SetSeqs(a, b)
	return m
}

// SetSeqs sets both sequences to be compared.
func (m *Matcher[T]) SetSeqs(a, b []T) {
	m.SetSeq1(a)
	m.SetSeq2(b)
}

// SetSeq1 sets the first sequence. The index computed for the second
// sequence is retained.
func (m *Matcher[T]) SetSeq1(a []T) {
	m.a = a
	m.matchingBlocks = nil
	m.opcodes = nil
}

// SetSeq2 sets the second sequence and rebuilds its element index.
func (m *Matcher[T]) SetSeq2(b []T) {
	m.b = b
	m.matchingBlocks = nil
	m.opcodes = nil
	m.fullBCount = nil
	m.indexB()
}

// indexB builds the element -> positions index for b. For long sequences,
// elements occupying more than 1% of b are dropped from the index: they are
// too common to establish a useful synchronization and would make the inner
// matching loop quadratic. Such elements can still join a match by
// extension around a rarer neighbor.
func (m *Matcher[T]) indexB() {
	b2j := make(map[T][]int, len(m.b))
	for j, el := range m.b {
		b2j[el] = append(b2j[el], j)
	}

	popular := map[T]struct{}{}
	if n := len(m.b); n >= 200 {
		threshold := n/100 + 1
		for el, indices := range b2j {
			if len(indices) > threshold {
				popular[el] = struct{}{}
			}
		}
		for el := range popular {
			delete(b2j, el)
		}
	}

	m.bPopular = popular
	m.b2j = b2j
}

// FindLongestMatch returns the longest block matching between a[alo:ahi]
// and b[blo:bhi]. Of all maximal blocks it returns the one starting
// earliest in a, and among those, earliest in b. If nothing matches, the
// result is MatchingBlock{alo, blo, 0}.
//
// Stripping a common prefix or suffix first would be incorrect: for "ab"
// vs "acab" the longest block is "ab", but with the shared "a" stripped it
// degrades to a single element and the alignment loses its anchor.
func (m *Matcher[T]) FindLongestMatch(alo, ahi, blo, bhi int) MatchingBlock {
	bestI, bestJ, bestSize := alo, blo, 0

	// j2len[j] is the length of the longest match ending at a[i-1], b[j]
	// for the previous value of i.
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newJ2len := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestSize {
				bestI, bestJ, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}

	// Extend the match over equal elements on both ends. This is where
	// popular elements excluded from the index get to participate.
	for bestI > alo && bestJ > blo && m.a[bestI-1] == m.b[bestJ-1] {
		bestI, bestJ, bestSize = bestI-1, bestJ-1, bestSize+1
	}
	for bestI+bestSize < ahi && bestJ+bestSize < bhi &&
		m.a[bestI+bestSize] == m.b[bestJ+bestSize] {
		bestSize++
	}

	return MatchingBlock{A: bestI, B: bestJ, Size: bestSize}
}

// MatchingBlocks returns the full recursive partition of both sequences
// into matching blocks, monotonically increasing in A and B, with adjacent
// blocks merged. The list is terminated by the sentinel
// MatchingBlock{len(a), len(b), 0}, the only entry with Size zero.
func (m *Matcher[T]) MatchingBlocks() []MatchingBlock {
	if m.matchingBlocks != nil {
		return m.matchingBlocks
	}

	var collect func(alo, ahi, blo, bhi int, acc []MatchingBlock) []MatchingBlock
	collect = func(alo, ahi, blo, bhi int, acc []MatchingBlock) []MatchingBlock {
		match := m.FindLongestMatch(alo, ahi, blo, bhi)
		if match.Size == 0 {
			return acc
		}
		if alo < match.A && blo < match.B {
			acc = collect(alo, match.A, blo, match.B, acc)
		}
		acc = append(acc, match)
		if match.A+match.Size < ahi && match.B+match.Size < bhi {
			acc = collect(match.A+match.Size, ahi, match.B+match.Size, bhi, acc)
		}
		return acc
	}
	collected := collect(0, len(m.a), 0, len(m.b), nil)

	// The recursion can produce blocks that touch; merge them so adjacent
	// blocks never describe adjacent equal runs.
	var merged []MatchingBlock
	var cur MatchingBlock
	for _, block := range collected {
		if cur.A+cur.Size == block.A && cur.B+cur.Size == block.B {
			cur.Size += block.Size
			continue
		}
		if cur.Size > 0 {
			merged = append(merged, cur)
		}
		cur = block
	}
	if cur.Size > 0 {
		merged = append(merged, cur)
	}

	merged = append(merged, MatchingBlock{A: len(m.a), B: len(m.b)})
	m.matchingBlocks = merged
	return m.matchingBlocks
}

// Opcodes returns the edit script turning a into b as a list of tagged
// regions covering both sequences exactly. Consecutive opcodes never share
// a tag, and a replace never has an empty side.
func (m *Matcher[T]) Opcodes() []Opcode {
	if m.opcodes != nil {
		return m.opcodes
	}
	blocks := m.MatchingBlocks()
	opcodes := make([]Opcode, 0, len(blocks))
	i, j := 0, 0
	for _, block := range blocks {
		// Everything between the previous block and this one is a
		// delete, insert, or replace depending on which sides are
		// non-empty; the block itself is an equal region.
		switch {
		case i < block.A && j < block.B:
			opcodes = append(opcodes, Opcode{TagReplace, i, block.A, j, block.B})
		case i < block.A:
			opcodes = append(opcodes, Opcode{TagDelete, i, block.A, j, block.B})
		case j < block.B:
			opcodes = append(opcodes, Opcode{TagInsert, i, block.A, j, block.B})
		}
		i, j = block.A+block.Size, block.B+block.Size
		if block.Size > 0 {
			opcodes = append(opcodes, Opcode{TagEqual, block.A, i, block.B, j})
		}
	}
	m.opcodes = opcodes
	return m.opcodes
}

// Ratio measures the sequences' similarity as 2*M/T, where T is the total
// number of elements in both sequences and M the number of elements aligned
// by MatchingBlocks. It is 1 if the sequences are identical and 0 if they
// have nothing in common. Ratio is expensive; QuickRatio and RealQuickRatio
// give successively cheaper upper bounds.
func (m *Matcher[T]) Ratio() float64 {
	matches := 0
	for _, block := range m.MatchingBlocks() {
		matches += block.Size
	}
	return ratio(matches, len(m.a)+len(m.b))
}

// QuickRatio returns an upper bound on Ratio in linear time: it counts
// multiset-intersection matches, ignoring element order.
func (m *Matcher[T]) QuickRatio() float64 {
	if m.fullBCount == nil {
		m.fullBCount = make(map[T]int, len(m.b))
		for _, el := range m.b {
			m.fullBCount[el]++
		}
	}

	// avail[el] is how many occurrences of el remain in b after the ones
	// already consumed by earlier elements of a.
	avail := map[T]int{}
	matches := 0
	for _, el := range m.a {
		n, seen := avail[el]
		if !seen {
			n = m.fullBCount[el]
		}
		avail[el] = n - 1
		if n > 0 {
			matches++
		}
	}
	return ratio(matches, len(m.a)+len(m.b))
}

// RealQuickRatio returns an upper bound on Ratio in constant time, from the
// sequence lengths alone.
func (m *Matcher[T]) RealQuickRatio() float64 {
	la, lb := len(m.a), len(m.b)
	return ratio(min(la, lb), la+lb)
}

// ratio applies the 2*M/T similarity formula; two empty sequences count as
// identical.
func ratio(matches, length int) float64 {
	if length == 0 {
		return 1.0
	}
	return 2.0 * float64(matches) / float64(length)
}

package mindiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// replaceRows runs the replace refiner directly over full ranges and
// collects the rendered rows. The block matcher lifts identical lines into
// equal opcodes on small inputs, so some refiner branches are only
// reachable here.
func replaceRows(a, b []string) []string {
	var rows []string
	dumpReplace(func(r Row) bool {
		rows = append(rows, r.String())
		return true
	}, a, 0, len(a), b, 0, len(b))
	return rows
}

func TestSyncReplace_ExactEqualPromotion(t *testing.T) {
	t.Parallel()

	// No pair clears the cutoff, so the first identical pair becomes the
	// synchronization point and renders without a change marker.
	rows := replaceRows(
		[]string{"foo\n", "same\n"},
		[]string{"same\n", "bar\n"},
	)
	assert.Equal(t, []string{"- foo\n", "  same\n", "+ bar\n"}, rows)
}

func TestSyncReplace_SimilarityBeatsExactEqual(t *testing.T) {
	t.Parallel()

	// A pair above the cutoff wins even when an identical pair exists:
	// the identical lines fall into the recursive sub-regions and are
	// synchronized there on their own merits.
	rows := replaceRows(
		[]string{"abcdY\n", "same\n"},
		[]string{"abcdX\n", "same\n"},
	)
	assert.Equal(t, []string{"! abcdX\n", "  same\n"}, rows)
}

func TestSyncReplace_NoSynchronization(t *testing.T) {
	t.Parallel()

	// Nothing similar, nothing identical: the region is a terminal
	// delete-then-insert with no recursion.
	rows := replaceRows(
		[]string{"one\n", "two\n"},
		[]string{"x\n", "y\n"},
	)
	assert.Equal(t, []string{"- one\n", "- two\n", "+ x\n", "+ y\n"}, rows)
}

func TestSyncReplace_RecursesAroundSyncPoint(t *testing.T) {
	t.Parallel()

	rows := replaceRows(
		[]string{"aaaa1\n", "bbbb1\n", "cccc1\n"},
		[]string{"bbbb2\n", "dddd\n"},
	)
	assert.Equal(t, []string{
		"- aaaa1\n",
		"! bbbb2\n",
		"- cccc1\n",
		"+ dddd\n",
	}, rows)
}

func TestSyncReplace_EarlyStopPropagates(t *testing.T) {
	t.Parallel()

	var rows []string
	more := dumpReplace(func(r Row) bool {
		rows = append(rows, r.String())
		return false
	}, []string{"one\n", "two\n"}, 0, 2, []string{"x\n", "y\n"}, 0, 2)

	assert.False(t, more)
	assert.Equal(t, []string{"- one\n"}, rows)
}

package mindiff

import (
	"iter"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// CompareFiles reads both files and returns their compressed diff as a lazy
// sequence of rows. The files are read fully before the sequence is
// returned; a read or decode failure surfaces here, never mid-iteration.
func CompareFiles(file1, file2 string) (iter.Seq[Row], error) {
	var a, b []string

	var g errgroup.Group
	g.Go(func() error {
		var err error
		a, err = readLines(file1)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = readLines(file2)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Compare(a, b), nil
}

// readLines reads a file into its sequence of lines. The file must be
// UTF-8 encoded text.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if !utf8.Valid(data) {
		return nil, errors.Errorf("decoding %s: not valid UTF-8", path)
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits s into lines, each keeping its trailing newline. A
// final line without a terminator is kept as-is; an empty s yields no
// lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

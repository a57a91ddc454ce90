package engine

import (
	"iter"
	"strings"
)

// Lines yields the lines of doc without their terminators. Both "\n" and
// "\r\n" end a line; a final terminator does not open an extra empty line.
func Lines(doc string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(doc) > 0 {
			var line string
			if i := strings.IndexByte(doc, '\n'); i >= 0 {
				line, doc = doc[:i], doc[i+1:]
			} else {
				line, doc = doc, ""
			}
			line = strings.TrimSuffix(line, "\r")
			if !yield(line) {
				return
			}
		}
	}
}

// CountLines returns how many lines Lines(doc) yields.
func CountLines(doc string) int {
	n := 0
	for range Lines(doc) {
		n++
	}
	return n
}

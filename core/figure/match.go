package figure

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

// FindDigit scans seq in order and returns the first digit it recognises:
// either a numeric rune or the last rune of a spelled figure. ASCII digits
// yield their value; any other Unicode number ('٣', '½', 'Ⅻ') yields 0.
//
// The scan keeps a frontier of states, one per figure that could still be
// completed by the runes to come. Every rune advances the frontier and may
// also start a new figure, so overlapping spellings such as "eightwo" are
// found without backtracking. The first figure to complete wins.
func (t *Trie) FindDigit(seq iter.Seq[rune]) (int, bool) {
	var frontier, next []int32
	for r := range seq {
		if r >= '0' && r <= '9' {
			return int(r - '0'), true
		}
		if r >= alphabet && unicode.IsNumber(r) {
			return 0, true
		}

		next = next[:0]
		for _, s := range frontier {
			c := t.child(s, r)
			if c == 0 {
				continue
			}
			if d := t.nodes[c].digit; d != noDigit {
				return int(d), true
			}
			next = append(next, c)
		}

		// a new figure may start on any rune, even mid-match
		if c := t.child(0, r); c != 0 {
			if d := t.nodes[c].digit; d != noDigit {
				return int(d), true
			}
			next = append(next, c)
		}

		frontier, next = next, frontier
	}
	return 0, false
}

// Forward yields the runes of s from first to last.
func Forward(s string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s {
			if !yield(r) {
				return
			}
		}
	}
}

// Backward yields the runes of s from last to first.
func Backward(s string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for len(s) > 0 {
			r, size := utf8.DecodeLastRuneInString(s)
			if !yield(r) {
				return
			}
			s = s[:len(s)-size]
		}
	}
}

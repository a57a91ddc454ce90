package figure

import "fmt"

/*
Arena prefix tree over the figure vocabulary.

- Build(v) lays every word out as a path of states; state 0 is the root.
- Edges live in a per-state table indexed by ASCII rune; 0 means "no edge"
  (no edge can point back at the root, so 0 is free to mean absent).
- A state carries a digit only when a word ends on it.

The arena is never mutated after Build returns, so a *Trie can be shared by
any number of goroutines without locking.
*/

const alphabet = 128

// noDigit marks a state that no word ends on.
const noDigit int8 = -1

type node struct {
	next  [alphabet]int32
	digit int8
}

// Trie is an immutable prefix tree mapping figure spellings to digits.
type Trie struct {
	nodes []node
}

// Build constructs the trie for v. It panics if a word contains a non-ASCII
// rune or if two words end on the same state with different digits; the
// vocabulary is a compile-time constant, so both are programmer errors.
func Build(v Vocabulary) *Trie {
	t := &Trie{nodes: make([]node, 1, 1+4*len(v))}
	t.nodes[0].digit = noDigit

	for _, f := range v {
		cur := int32(0)
		for _, r := range f.Word {
			if r < 0 || r >= alphabet {
				panic(fmt.Sprintf("figure: non-ASCII rune %q in %q", r, f.Word))
			}
			if t.nodes[cur].next[r] == 0 {
				t.nodes = append(t.nodes, node{digit: noDigit})
				t.nodes[cur].next[r] = int32(len(t.nodes) - 1)
			}
			cur = t.nodes[cur].next[r]
		}
		if d := t.nodes[cur].digit; d != noDigit && int(d) != f.Digit {
			panic(fmt.Sprintf("figure: %q ends on a state already marked %d", f.Word, d))
		}
		t.nodes[cur].digit = int8(f.Digit)
	}
	return t
}

// Equal reports whether t and o have the same states, edges and digits.
func (t *Trie) Equal(o *Trie) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.nodes) != len(o.nodes) {
		return false
	}
	for i := range t.nodes {
		if t.nodes[i] != o.nodes[i] {
			return false
		}
	}
	return true
}

// child returns the state reached from s on r, or 0 when there is none.
func (t *Trie) child(s int32, r rune) int32 {
	if r < 0 || r >= alphabet {
		return 0
	}
	return t.nodes[s].next[r]
}

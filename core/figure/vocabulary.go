// core/figure/vocabulary.go
package figure

// Figure is one spelled-out digit word.
type Figure struct {
	Word  string
	Digit int
}

// Vocabulary is an ordered list of figures.
type Vocabulary []Figure

// Figures is the fixed English vocabulary, one..nine.
var Figures = Vocabulary{
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4},
	{"five", 5}, {"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9},
}

// Reversed returns a copy with every word spelled back to front
// ("one" -> "eno"). Scanning a line backwards through a trie built from the
// reversed vocabulary finds the last spelled figure of the line.
func (v Vocabulary) Reversed() Vocabulary {
	out := make(Vocabulary, len(v))
	for i, f := range v {
		out[i] = Figure{Word: reverseString(f.Word), Digit: f.Digit}
	}
	return out
}

func reverseString(s string) string {
	rs := []rune(s)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}

// core/engine/engine.go
package engine

import (
	"sync"

	"calib-core/figure"
)

// Engine holds the forward and reverse figure tries. It is immutable after
// New and safe for concurrent use.
type Engine struct {
	fwd *figure.Trie
	rev *figure.Trie
}

// New builds both tries for v.
func New(v figure.Vocabulary) *Engine {
	return &Engine{
		fwd: figure.Build(v),
		rev: figure.Build(v.Reversed()),
	}
}

// Default returns the process-wide engine for figure.Figures.
var Default = sync.OnceValue(func() *Engine { return New(figure.Figures) })

// First returns the first digit of line, literal or spelled.
func (e *Engine) First(line string) (int, bool) {
	return e.fwd.FindDigit(figure.Forward(line))
}

// Last returns the last digit of line, literal or spelled.
func (e *Engine) Last(line string) (int, bool) {
	return e.rev.FindDigit(figure.Backward(line))
}

// ScoreLine returns the calibration value of line: first digit times ten plus
// last digit. A line whose forward scan finds nothing scores 0 and the
// reverse scan is skipped.
func (e *Engine) ScoreLine(line string) int {
	first, ok := e.First(line)
	if !ok {
		return 0
	}
	last, _ := e.Last(line)
	return first*10 + last
}

// Sum scores every line of doc in order and returns the total.
func (e *Engine) Sum(doc string) uint64 {
	var total uint64
	for line := range Lines(doc) {
		total += uint64(e.ScoreLine(line))
	}
	return total
}

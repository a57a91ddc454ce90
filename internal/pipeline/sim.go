// internal/pipeline/sim.go
package pipeline

import "calib-core/engine"

// Scorer is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Scorer interface {
	ScoreLine(line string) int
}

var _ Scorer = (*engine.Engine)(nil)

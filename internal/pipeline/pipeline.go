// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"calib-core/engine"
)

// DefaultBatchSize is the number of lines handed to a worker at a time.
const DefaultBatchSize = 512

// Config controls the scoring pipeline.
type Config struct {
	Threads   int // number of worker goroutines (>=1)
	BatchSize int // lines per job; 0 => DefaultBatchSize
}

// LineScore is the calibration value of one line.
type LineScore struct {
	Index int // 0-based line number in the document
	Text  string
	Score int
}

type job struct {
	first int
	lines []string
}

type result struct {
	scores []LineScore // nil unless the caller wants per-line scores
	total  uint64
}

// ForEachLine scores every line of doc and calls visit once per line.
// Lines are scored concurrently and visit sees them in no particular order;
// visit itself is never called concurrently.
// It returns the first visit error, or ctx.Err() if the context ended first.
// A visit error cancels the workers; only batches already in flight finish.
func ForEachLine(ctx context.Context, cfg Config, doc string, sc Scorer, visit func(LineScore) error) error {
	_, err := run(ctx, cfg, doc, sc, true, func(r result) error {
		for _, ls := range r.scores {
			if err := visit(ls); err != nil {
				return err
			}
		}
		return nil
	})
	return err
}

// Sum scores every line of doc and returns the total. The reduction is
// order independent, so the result matches engine.Engine.Sum.
func Sum(ctx context.Context, cfg Config, doc string, sc Scorer) (uint64, error) {
	return run(ctx, cfg, doc, sc, false, nil)
}

func run(parent context.Context, cfg Config, doc string, sc Scorer, keep bool, collect func(result) error) (uint64, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = DefaultBatchSize
	}

	// canceled by the collector when collect fails
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	jobs := make(chan job, cfg.Threads*2)
	results := make(chan result, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok || ctx.Err() != nil {
						return
					}
					var r result
					if keep {
						r.scores = make([]LineScore, len(j.lines))
					}
					for i, line := range j.lines {
						s := sc.ScoreLine(line)
						r.total += uint64(s)
						if keep {
							r.scores[i] = LineScore{Index: j.first + i, Text: line, Score: s}
						}
					}
					select {
					case results <- r:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		total uint64
		cerr  error
		cwg   sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for r := range results {
			if cerr != nil {
				continue // drain
			}
			total += r.total
			if collect != nil {
				if cerr = collect(r); cerr != nil {
					cancel()
				}
			}
		}
	}()

	// Feed work
	batch := make([]string, 0, cfg.BatchSize)
	next := 0
feed:
	for line := range engine.Lines(doc) {
		batch = append(batch, line)
		if len(batch) < cfg.BatchSize {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{first: next, lines: batch}:
		}
		next += len(batch)
		batch = make([]string, 0, cfg.BatchSize)
	}
	if len(batch) > 0 && ctx.Err() == nil {
		select {
		case <-ctx.Done():
		case jobs <- job{first: next, lines: batch}:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return 0, cerr
	}
	if err := parent.Err(); err != nil {
		return 0, err
	}
	return total, nil
}

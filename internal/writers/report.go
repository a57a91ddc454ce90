package writers

import "time"

// Report is everything a writer needs to render one run.
type Report struct {
	RunID   string
	Total   uint64
	Docs    []DocReport
	Elapsed time.Duration
}

// DocReport is the result for one input document.
type DocReport struct {
	Source string
	Lines  int
	Sum    uint64
	Cached bool
	Scores []LineReport // nil unless per-line output was requested
}

// LineReport is one scored line; Index is 0-based.
type LineReport struct {
	Index int
	Text  string
	Score int
}

// Options control presentation only.
type Options struct {
	Timing bool // include elapsed time
	Color  bool // style text output with ANSI colors
}

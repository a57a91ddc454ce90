// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// WriteFunc renders a report in one format.
type WriteFunc func(w io.Writer, r Report, opt Options) error

// Writer registry (format -> handler).
// Formats register themselves in init() blocks of their own files.
var formats = map[string]WriteFunc{}

// Register adds or replaces a format (idempotent last-wins).
func Register(format string, fn WriteFunc) { formats[format] = fn }

// Formats lists registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(formats))
	for k := range formats {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Write dispatches r to the writer registered for format.
func Write(format string, w io.Writer, r Report, opt Options) error {
	fn, ok := formats[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, r, opt)
}

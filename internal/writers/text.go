package writers

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

func init() { Register("text", WriteText) }

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cachedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
)

// ColorEnabled reports whether w is a terminal that should get styled
// output. NO_COLOR and TERM=dumb turn styling off.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// WriteText renders r in the classic two-line form:
//
//	sum of calibration values: 885
//	took: 41 µs
//
// preceded by per-line rows and per-document sums when there is more than
// one document.
func WriteText(w io.Writer, r Report, opt Options) error {
	bw := bufio.NewWriter(w)
	paint := func(s lipgloss.Style, v string) string {
		if !opt.Color {
			return v
		}
		return s.Render(v)
	}

	for _, d := range r.Docs {
		for _, ls := range d.Scores {
			fmt.Fprintf(bw, "%s\t%s\t%s\n",
				paint(mutedStyle, fmt.Sprintf("%d", ls.Index+1)),
				fmt.Sprintf("%2d", ls.Score),
				ls.Text)
		}
	}
	if len(r.Docs) > 1 {
		for _, d := range r.Docs {
			line := fmt.Sprintf("%s: %d", d.Source, d.Sum)
			if d.Cached {
				line += " " + paint(cachedStyle, "(cached)")
			}
			fmt.Fprintln(bw, paint(labelStyle, line))
		}
	}
	fmt.Fprintf(bw, "%s %s\n", paint(labelStyle, "sum of calibration values:"), paint(totalStyle, fmt.Sprintf("%d", r.Total)))
	if opt.Timing {
		fmt.Fprintln(bw, paint(mutedStyle, fmt.Sprintf("took: %d µs", r.Elapsed.Microseconds())))
	}
	return bw.Flush()
}

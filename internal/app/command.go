// internal/app/command.go
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"calib/internal/config"
	"calib/internal/document"
	"calib/internal/version"
	"calib/internal/writers"
)

// flags holds raw command-line values before they are merged with the
// config file and environment.
type flags struct {
	docs      []string
	configDir string
	threads   int
	output    string
	lines     bool
	timing    bool
	cacheDir  string
	verbose   bool
	quiet     bool
}

func newCommand(r *runner) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "calib -c FILE [-c FILE]...",
		Short: "Sum the calibration values of a document",
		Long: `calib reads one or more calibration documents and prints the sum of their
calibration values.

A line's calibration value is its first digit times ten plus its last digit.
Digits may be literal (0-9) or spelled out (one..nine); spellings may overlap,
as in "eightwo". A line without any digit contributes 0.

Exit Codes:
  0   - Success
  1   - General error
  2   - Usage error (invalid flags or configuration)
  3   - Writing output failed
  4   - Calibration document not found
  5   - Calibration document unreadable
  6   - Calibration document is not valid UTF-8
  130 - Interrupted`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.docs = append(f.docs, args...)
			if len(f.docs) == 0 {
				return fmt.Errorf("%w: at least one --cal-doc is required", errUsage)
			}
			if err := checkStdin(f.docs); err != nil {
				return err
			}
			s, err := r.settings(cmd, f)
			if err != nil {
				return err
			}
			return r.run(cmd.Context(), s, f.docs, f.quiet, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("calib version {{.Version}} (%s)\n", version.Commit))
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	fl := cmd.Flags()
	fl.StringArrayVarP(&f.docs, "cal-doc", "c", nil, "calibration document (repeatable, '-' = stdin, .gz accepted)")
	fl.StringVar(&f.configDir, "config", "", "directory containing "+config.ConfigFileName+" [current directory]")
	fl.IntVar(&f.threads, "threads", 0, "number of worker threads (0 = all CPUs)")
	fl.StringVarP(&f.output, "output", "o", config.OutputText, "output format: "+strings.Join(writers.Formats(), " | "))
	fl.BoolVar(&f.lines, "lines", false, "report the score of every line")
	fl.BoolVar(&f.timing, "timing", true, "report elapsed scoring time")
	fl.StringVar(&f.cacheDir, "cache", "", "directory of the result cache (empty = no cache)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "only log warnings and errors")
	return cmd
}

// settings merges defaults, calib.yaml, .env, CALIB_* variables and finally
// the flags the user actually set, in that order of increasing precedence.
func (r *runner) settings(cmd *cobra.Command, f flags) (config.Settings, error) {
	dir := f.configDir
	if dir == "" {
		dir = "."
	}
	s, err := config.Load(r.fs, dir, config.Default())
	if err != nil {
		// Only an explicitly named config dir must hold a config file.
		if !(errors.Is(err, config.ErrConfigNotFound) && f.configDir == "") {
			return s, err
		}
	}
	if r.dotenv {
		if err := config.LoadDotEnv(); err != nil {
			return s, fmt.Errorf("%w: .env: %v", config.ErrInvalid, err)
		}
	}
	if s, err = config.ApplyEnv(s, r.getenv); err != nil {
		return s, err
	}

	fl := cmd.Flags()
	if fl.Changed("threads") {
		s.Threads = f.threads
	}
	if fl.Changed("output") {
		s.Output = f.output
	}
	if fl.Changed("lines") {
		s.Lines = f.lines
	}
	if fl.Changed("timing") {
		s.Timing = f.timing
	}
	if fl.Changed("cache") {
		s.CacheDir = f.cacheDir
	}
	if fl.Changed("verbose") {
		s.Verbose = f.verbose
	}
	return s, s.Validate(writers.Formats())
}

// checkStdin rejects naming stdin more than once; it can only be read once.
func checkStdin(docs []string) error {
	n := 0
	for _, d := range docs {
		if d == document.Stdin {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("%w: stdin (%q) may be given only once, got %d", errUsage, document.Stdin, n)
	}
	return nil
}

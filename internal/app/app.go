// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"calib-core/engine"
	"calib/internal/cache"
	"calib/internal/config"
	"calib/internal/document"
	"calib/internal/logging"
	"calib/internal/pipeline"
	"calib/internal/writers"
)

// runner carries the process dependencies so tests can swap them.
type runner struct {
	fs     billy.Filesystem // nil = host filesystem
	stdin  io.Reader
	getenv func(string) string
	dotenv bool // load .env from the working directory
	color  func(io.Writer) bool
	now    func() time.Time
}

func defaultRunner() *runner {
	return &runner{
		stdin:  os.Stdin,
		getenv: os.Getenv,
		dotenv: true,
		color:  writers.ColorEnabled,
		now:    time.Now,
	}
}

// RunContext runs calib with argv and returns the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return defaultRunner().exec(ctx, argv, stdout, stderr)
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func (r *runner) exec(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	cmd := newCommand(r)
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if ctx.Err() != nil {
		return ExitInterrupted
	}
	if writers.IsBrokenPipe(err) {
		return ExitSuccess
	}
	code := ExitCodeForError(err)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		if code == ExitUsageError {
			_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
		}
	}
	return code
}

// run loads every document, scores it (or takes its total from the cache)
// and writes one report.
func (r *runner) run(ctx context.Context, s config.Settings, paths []string, quiet bool, stdout, stderr io.Writer) error {
	log := logging.New(stderr, s.Verbose, quiet)

	threads := s.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	docs, err := r.loadAll(ctx, paths, threads)
	if err != nil {
		return err
	}

	var store *cache.Store
	if s.CacheDir != "" {
		if s.Lines {
			log.Debug("per-line report requested; result cache bypassed")
		} else if store, err = cache.Open(s.CacheDir, log); err != nil {
			log.Warn("result cache disabled", "dir", s.CacheDir, "err", err)
			store = nil
		}
	}
	if store != nil {
		defer func() {
			if cerr := store.Close(); cerr != nil {
				log.Warn("closing result cache", "err", cerr)
			}
		}()
	}

	eng := engine.Default()
	cfg := pipeline.Config{Threads: threads}
	rep := writers.Report{RunID: uuid.NewString(), Docs: make([]writers.DocReport, 0, len(docs))}

	t0 := r.now()
	for _, d := range docs {
		dr, err := scoreDocument(ctx, cfg, eng, d, s.Lines, store, log)
		if err != nil {
			return err
		}
		rep.Total += dr.Sum
		rep.Docs = append(rep.Docs, dr)
	}
	rep.Elapsed = r.now().Sub(t0)
	log.Debug("scored", "documents", len(docs), "total", rep.Total, "elapsed", rep.Elapsed)

	opt := writers.Options{Timing: s.Timing, Color: s.Output == config.OutputText && r.color(stdout)}
	if err := writers.Write(s.Output, stdout, rep, opt); err != nil {
		return fmt.Errorf("%w: %w", errOutput, err)
	}
	return nil
}

// loadAll reads every path concurrently; the first failure wins and the
// run produces no partial result.
func (r *runner) loadAll(ctx context.Context, paths []string, threads int) ([]document.Document, error) {
	loader := document.NewLoader(r.fs, r.stdin)
	docs := make([]document.Document, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := loader.Load(p)
			if err != nil {
				return err
			}
			docs[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func scoreDocument(
	ctx context.Context,
	cfg pipeline.Config,
	eng pipeline.Scorer,
	d document.Document,
	perLine bool,
	store *cache.Store,
	log *slog.Logger,
) (writers.DocReport, error) {
	dr := writers.DocReport{Source: d.Source, Lines: engine.CountLines(d.Text)}

	if perLine {
		dr.Scores = make([]writers.LineReport, dr.Lines)
		err := pipeline.ForEachLine(ctx, cfg, d.Text, eng, func(ls pipeline.LineScore) error {
			dr.Scores[ls.Index] = writers.LineReport{Index: ls.Index, Text: ls.Text, Score: ls.Score}
			dr.Sum += uint64(ls.Score)
			return nil
		})
		return dr, err
	}

	var key []byte
	if store != nil {
		key = cache.Key(d.Text)
		total, ok, err := store.Get(key)
		if err != nil {
			log.Warn("cache lookup failed", "source", d.Source, "err", err)
		} else if ok {
			log.Debug("cache hit", "source", d.Source, "total", total)
			dr.Sum, dr.Cached = total, true
			return dr, nil
		}
	}

	total, err := pipeline.Sum(ctx, cfg, d.Text, eng)
	if err != nil {
		return dr, err
	}
	dr.Sum = total

	if store != nil {
		if err := store.Put(key, total); err != nil {
			log.Warn("cache store failed", "source", d.Source, "err", err)
		}
	}
	log.Debug("document scored", "source", d.Source, "lines", dr.Lines, "sum", total)
	return dr, nil
}

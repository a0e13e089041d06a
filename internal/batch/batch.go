// Package batch drives a single pass over a folder of input files.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Phases reported by FileError.
const (
	PhaseDiscover = "discover"
	PhaseAnalyze  = "analyze"
)

// FileError wraps an error with the file and phase where it occurred.
type FileError struct {
	Path  string
	Phase string
	Err   error
}

func (e *FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Phase, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Phase, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Discover lists the regular files in dir whose name ends in ext, sorted
// by name. Subdirectories are not descended into.
func Discover(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FileError{Path: dir, Phase: PhaseDiscover, Err: err}
	}

	var files []string
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !isRegular(path, e) {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// isRegular reports whether the entry is a regular file, following symlinks.
// Dangling links are skipped.
func isRegular(path string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.Type().IsRegular()
	}
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

// Options tunes a Run.
type Options struct {
	// Workers bounds how many files are analyzed at once. Values below 2
	// process files one after another.
	Workers int
	// SkipInvalid logs and skips files whose analysis fails instead of
	// aborting the run.
	SkipInvalid bool
}

// Result holds the rows of a run in input order.
type Result[R any] struct {
	Rows     []R
	Skipped  []*FileError
	Duration time.Duration
}

// AnalyzeFunc turns one file into one row.
type AnalyzeFunc[R any] func(path string) (R, error)

// Run applies fn to every file. Each call owns its own state, so files may
// be processed concurrently; rows are always returned in the order of files.
// The first failure aborts the run unless opts.SkipInvalid is set.
func Run[R any](ctx context.Context, log zerolog.Logger, files []string, fn AnalyzeFunc[R], opts Options) (*Result[R], error) {
	start := time.Now()

	rows := make([]R, len(files))
	failed := make([]*FileError, len(files))

	g, ctx := errgroup.WithContext(ctx)
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fileStart := time.Now()
			row, err := fn(path)
			if err != nil {
				fe := &FileError{Path: path, Phase: PhaseAnalyze, Err: err}
				if !opts.SkipInvalid {
					return fe
				}
				log.Warn().Err(err).Str("file", filepath.Base(path)).Msg("skipping invalid file")
				failed[i] = fe
				return nil
			}
			rows[i] = row
			log.Debug().
				Str("file", filepath.Base(path)).
				Dur("duration", time.Since(fileStart)).
				Msg("file analyzed")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result[R]{Rows: make([]R, 0, len(files))}
	for i := range files {
		if failed[i] != nil {
			res.Skipped = append(res.Skipped, failed[i])
			continue
		}
		res.Rows = append(res.Rows, rows[i])
	}
	res.Duration = time.Since(start)
	return res, nil
}

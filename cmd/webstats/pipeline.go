package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/webstats/webstats/internal/batch"
	"github.com/webstats/webstats/internal/config"
	"github.com/webstats/webstats/internal/db"
	"github.com/webstats/webstats/internal/exitcode"
	"github.com/webstats/webstats/internal/logging"
	"github.com/webstats/webstats/internal/model"
	"github.com/webstats/webstats/internal/table"
)

// summaryRow is a row both the table writers and the COPY sink accept.
type summaryRow interface {
	table.Row
	db.Copyable
}

// pipeline describes one folder pass.
type pipeline[R summaryRow] struct {
	kind    string
	ext     string
	paths   config.Pipeline
	analyze func(path string, log zerolog.Logger) (R, error)
	load    func(ctx context.Context, c db.Copier, runID uuid.UUID, rows []R) (int64, error)
	// emptyEarlyReturn skips writing any table when no input files exist.
	emptyEarlyReturn bool
	report           func(cmd *cobra.Command, rows []R, sum *model.RunSummary)
}

func (p pipeline[R]) run(cmd *cobra.Command) error {
	totalStart := time.Now()
	log := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := cfg.ValidatePipeline(p.paths); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return exitWith(exitcode.UsageError, err)
	}
	format, _ := cfg.OutputFormat()

	runID := uuid.New()
	sum := &model.RunSummary{
		RunID:      runID.String(),
		Kind:       p.kind,
		InputDir:   p.paths.Dir,
		OutputPath: p.paths.Out,
	}
	log = log.With().Str("run_id", sum.RunID).Str("kind", sum.Kind).Logger()

	files, err := batch.Discover(p.paths.Dir, p.ext)
	if err != nil {
		if !(p.emptyEarlyReturn && errors.Is(err, fs.ErrNotExist)) {
			log.Error().Err(err).Msg("listing input folder failed")
			return exitWith(exitcode.InputError, err)
		}
		files = nil
	}
	sum.FilesSeen = len(files)

	if len(files) == 0 && p.emptyEarlyReturn {
		log.Warn().Str("dir", p.paths.Dir).Msgf("no %s files found", p.ext)
		fmt.Fprintf(cmd.OutOrStdout(), "No %s files found in %s\n", strings.ToUpper(strings.TrimPrefix(p.ext, ".")), p.paths.Dir)
		return nil
	}

	log.Info().Str("dir", p.paths.Dir).Int("files", len(files)).Msg("starting folder pass")
	analyze := func(path string) (R, error) { return p.analyze(path, log) }
	res, err := batch.Run(ctx, log, files, analyze, batch.Options{
		Workers:     cfg.Workers,
		SkipInvalid: cfg.SkipInvalid,
	})
	if err != nil {
		log.Error().Err(err).Msg("folder pass failed")
		return exitWith(exitcode.InputError, err)
	}
	sum.DurationScan = res.Duration
	sum.FilesSkipped = len(res.Skipped)

	if err := table.Write(p.paths.Out, format, res.Rows); err != nil {
		log.Error().Err(err).Str("out", p.paths.Out).Msg("writing output failed")
		return exitWith(exitcode.OutputError, err)
	}
	sum.RowsWritten = len(res.Rows)
	log.Info().Str("out", p.paths.Out).Str("format", string(format)).Int("rows", len(res.Rows)).Msg("table written")

	if cfg.DSN != "" {
		loadStart := time.Now()
		pool, err := db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			return exitWith(exitcode.DBConnError, err)
		}
		defer pool.Close()

		n, err := p.load(ctx, pool, runID, res.Rows)
		if err != nil {
			log.Error().Err(err).Msg("loading rows failed")
			return exitWith(exitcode.CopyError, err)
		}
		sum.RowsLoaded = n
		sum.DurationLoad = time.Since(loadStart)
		log.Info().Int64("rows", n).Dur("duration", sum.DurationLoad).Msg("rows loaded")
	}

	sum.DurationTotal = time.Since(totalStart)
	log.Info().
		Str("input_dir", sum.InputDir).
		Str("output", sum.OutputPath).
		Int("files_seen", sum.FilesSeen).
		Int("rows_written", sum.RowsWritten).
		Int("files_skipped", sum.FilesSkipped).
		Str("total_duration", sum.DurationTotal.String()).
		Msg("folder pass complete")

	p.report(cmd, res.Rows, sum)
	table.Preview(cmd.OutOrStdout(), res.Rows, cfg.Preview)

	if sum.FilesSkipped > 0 {
		return exitWith(exitcode.PartialSuccess,
			fmt.Errorf("%d of %d files skipped", sum.FilesSkipped, sum.FilesSeen))
	}
	return nil
}

package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/webstats/webstats/internal/model"
)

// Copier is the subset of *pgxpool.Pool used by the COPY helpers.
type Copier interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Copyable is a summary row that can be tagged with a run id for COPY.
type Copyable interface {
	CopyValues(runID uuid.UUID) []any
}

// RowSource implements pgx.CopyFromSource over a slice of summary rows,
// stamping each with the run id.
type RowSource[R Copyable] struct {
	rows  []R
	runID uuid.UUID
	idx   int
}

// NewRowSource creates a CopyFromSource over rows.
func NewRowSource[R Copyable](rows []R, runID uuid.UUID) *RowSource[R] {
	return &RowSource[R]{rows: rows, runID: runID, idx: -1}
}

// Next advances to the next row. Returns false after the last row.
func (s *RowSource[R]) Next() bool {
	s.idx++
	return s.idx < len(s.rows)
}

// Values returns the current row's values in COPY column order.
func (s *RowSource[R]) Values() ([]any, error) {
	return s.rows[s.idx].CopyValues(s.runID), nil
}

// Err returns any error encountered during iteration.
func (s *RowSource[R]) Err() error {
	return nil
}

// Compile-time check that RowSource satisfies the interface.
var _ pgx.CopyFromSource = (*RowSource[model.SiteSummary])(nil)

// CopySiteSummaries loads HAR summary rows into webstats.har_summaries.
func CopySiteSummaries(ctx context.Context, c Copier, runID uuid.UUID, rows []model.SiteSummary) (int64, error) {
	n, err := c.CopyFrom(ctx,
		pgx.Identifier{"webstats", "har_summaries"},
		model.SiteCopyColumns(),
		NewRowSource(rows, runID),
	)
	if err != nil {
		return n, fmt.Errorf("copy har summaries: %w", err)
	}
	return n, nil
}

// CopyReportSummaries loads audit summary rows into webstats.report_summaries.
func CopyReportSummaries(ctx context.Context, c Copier, runID uuid.UUID, rows []model.ReportSummary) (int64, error) {
	n, err := c.CopyFrom(ctx,
		pgx.Identifier{"webstats", "report_summaries"},
		model.ReportCopyColumns(),
		NewRowSource(rows, runID),
	)
	if err != nil {
		return n, fmt.Errorf("copy report summaries: %w", err)
	}
	return n, nil
}

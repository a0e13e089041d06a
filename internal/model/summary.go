package model

import "time"

// RunSummary captures metrics from a single folder pass.
type RunSummary struct {
	RunID         string
	Kind          string // "har" or "metrics"
	InputDir      string
	OutputPath    string
	FilesSeen     int
	RowsWritten   int
	FilesSkipped  int
	RowsLoaded    int64
	DurationScan  time.Duration
	DurationLoad  time.Duration
	DurationTotal time.Duration
}

package model

import (
	"strconv"

	"github.com/google/uuid"
)

// SiteSummary is one HAR file reduced to byte totals.
// CacheableBytes <= TotalBytes holds because both sums use the same
// per-entry size, but that size may come from either HAR size field.
type SiteSummary struct {
	Site              string  `parquet:"site"`
	TotalBytes        int64   `parquet:"total_bytes"`
	CacheableBytes    int64   `parquet:"cacheable_bytes"`
	CacheabilityRatio float64 `parquet:"cacheability_ratio"`

	// Provenance, not part of the tabular output.
	SourceFile   string `parquet:"-"`
	SourceSHA256 string `parquet:"-"`
}

var siteColumns = []string{"site", "total_bytes", "cacheable_bytes", "cacheability_ratio"}

// SiteColumns returns the output column names in order.
func SiteColumns() []string {
	return append([]string(nil), siteColumns...)
}

// Header implements the tabular row contract.
func (SiteSummary) Header() []string {
	return SiteColumns()
}

// Record returns the row's cells in SiteColumns order.
func (s SiteSummary) Record() []string {
	return []string{
		s.Site,
		strconv.FormatInt(s.TotalBytes, 10),
		strconv.FormatInt(s.CacheableBytes, 10),
		formatFloat(s.CacheabilityRatio),
	}
}

// SiteCopyColumns lists the columns of webstats.har_summaries filled by COPY.
func SiteCopyColumns() []string {
	return []string{"run_id", "source_file", "source_sha256", "site", "total_bytes", "cacheable_bytes", "cacheability_ratio"}
}

// CopyValues returns the row's values in SiteCopyColumns order.
func (s SiteSummary) CopyValues(runID uuid.UUID) []any {
	return []any{
		runID,
		s.SourceFile,
		s.SourceSHA256,
		s.Site,
		s.TotalBytes,
		s.CacheableBytes,
		s.CacheabilityRatio,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

func formatIntPtr(i *int64) string {
	if i == nil {
		return ""
	}
	return strconv.FormatInt(*i, 10)
}

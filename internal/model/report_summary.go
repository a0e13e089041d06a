package model

import (
	"strconv"

	"github.com/google/uuid"
)

// ReportSummary mirrors one audit report as a flat row. Pointer fields are
// nil when the report did not carry the value; resource buckets start at
// zero because an empty bucket is a real measurement.
type ReportSummary struct {
	URL string `parquet:"url"`

	TotalBytes      *float64 `parquet:"total_bytes,optional"`
	TotalMB         *float64 `parquet:"total_mb,optional"`
	Requests        int64    `parquet:"requests"`
	ThirdPartyBytes int64    `parquet:"third_party_bytes"`
	ThirdPartyMB    *float64 `parquet:"third_party_mb,optional"`

	FCPMs      *float64 `parquet:"fcp_ms,optional"`
	LCPMs      *float64 `parquet:"lcp_ms,optional"`
	TBTMs      *float64 `parquet:"tbt_ms,optional"`
	SpeedIndex *float64 `parquet:"speed_index,optional"`
	CLS        *float64 `parquet:"cls,optional"`

	JSBytes    int64 `parquet:"js_bytes"`
	CSSBytes   int64 `parquet:"css_bytes"`
	ImgBytes   int64 `parquet:"img_bytes"`
	FontBytes  int64 `parquet:"font_bytes"`
	HTMLBytes  int64 `parquet:"html_bytes"`
	OtherBytes int64 `parquet:"other_bytes"`
	JSCount    int64 `parquet:"js_count"`
	CSSCount   int64 `parquet:"css_count"`
	ImgCount   int64 `parquet:"img_count"`
	FontCount  int64 `parquet:"font_count"`
	HTMLCount  int64 `parquet:"html_count"`
	OtherCount int64 `parquet:"other_count"`

	DOMSize *int64 `parquet:"dom_size,optional"`

	SourceFile   string `parquet:"-"`
	SourceSHA256 string `parquet:"-"`
}

var reportColumns = []string{
	"url",
	"total_bytes", "total_mb", "requests", "third_party_bytes", "third_party_mb",
	"fcp_ms", "lcp_ms", "tbt_ms", "speed_index", "cls",
	"js_bytes", "css_bytes", "img_bytes", "font_bytes", "html_bytes", "other_bytes",
	"js_count", "css_count", "img_count", "font_count", "html_count", "other_count",
	"dom_size",
}

// ReportColumns returns the output column names in order.
func ReportColumns() []string {
	return append([]string(nil), reportColumns...)
}

// Header implements the tabular row contract.
func (ReportSummary) Header() []string {
	return ReportColumns()
}

// Record returns the row's cells in ReportColumns order. Absent values are
// empty cells.
func (r ReportSummary) Record() []string {
	i := func(v int64) string { return strconv.FormatInt(v, 10) }
	return []string{
		r.URL,
		formatFloatPtr(r.TotalBytes),
		formatFloatPtr(r.TotalMB),
		i(r.Requests),
		i(r.ThirdPartyBytes),
		formatFloatPtr(r.ThirdPartyMB),
		formatFloatPtr(r.FCPMs),
		formatFloatPtr(r.LCPMs),
		formatFloatPtr(r.TBTMs),
		formatFloatPtr(r.SpeedIndex),
		formatFloatPtr(r.CLS),
		i(r.JSBytes),
		i(r.CSSBytes),
		i(r.ImgBytes),
		i(r.FontBytes),
		i(r.HTMLBytes),
		i(r.OtherBytes),
		i(r.JSCount),
		i(r.CSSCount),
		i(r.ImgCount),
		i(r.FontCount),
		i(r.HTMLCount),
		i(r.OtherCount),
		formatIntPtr(r.DOMSize),
	}
}

// ReportCopyColumns lists the columns of webstats.report_summaries filled by COPY.
func ReportCopyColumns() []string {
	return append([]string{"run_id", "source_file", "source_sha256"}, reportColumns...)
}

// CopyValues returns the row's values in ReportCopyColumns order.
func (r ReportSummary) CopyValues(runID uuid.UUID) []any {
	return []any{
		runID,
		r.SourceFile,
		r.SourceSHA256,
		r.URL,
		r.TotalBytes,
		r.TotalMB,
		r.Requests,
		r.ThirdPartyBytes,
		r.ThirdPartyMB,
		r.FCPMs,
		r.LCPMs,
		r.TBTMs,
		r.SpeedIndex,
		r.CLS,
		r.JSBytes,
		r.CSSBytes,
		r.ImgBytes,
		r.FontBytes,
		r.HTMLBytes,
		r.OtherBytes,
		r.JSCount,
		r.CSSCount,
		r.ImgCount,
		r.FontCount,
		r.HTMLCount,
		r.OtherCount,
		r.DOMSize,
	}
}

package har

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/webstats/webstats/internal/cacheability"
	"github.com/webstats/webstats/internal/model"
	"github.com/webstats/webstats/internal/normalize"
)

// unknownSize is the HAR sentinel for a size the generator did not record.
const unknownSize = -1

// Totals is the byte accounting of one capture.
type Totals struct {
	Entries        int
	TotalBytes     int64
	CacheableBytes int64
	Ratio          float64
	// BytesByClass splits TotalBytes by the rule that classified each entry.
	BytesByClass map[cacheability.Class]int64
}

// EntrySize returns the entry's byte size. bodySize is preferred; when it
// is missing or -1 the content size is used, and a missing content size is
// 0. Negative results are clamped to 0.
//
// Generators disagree on which field they fill, so two captures of the same
// page may report different sizes. No correction is attempted.
func EntrySize(e Entry) int64 {
	size := float64(unknownSize)
	if e.Response.BodySize != nil {
		size = *e.Response.BodySize
	}
	if size == unknownSize {
		size = 0
		if e.Response.Content.Size != nil {
			size = *e.Response.Content.Size
		}
	}
	if size < 0 {
		return 0
	}
	return int64(math.Trunc(size))
}

// Analyze sums total and cacheable bytes across entries. Ratio is 0 when
// there are no bytes at all.
func Analyze(entries []Entry) Totals {
	t := Totals{
		Entries:      len(entries),
		BytesByClass: make(map[cacheability.Class]int64),
	}
	for _, e := range entries {
		size := EntrySize(e)
		t.TotalBytes += size

		class := cacheability.Classify(e.Response.HeaderMap())
		t.BytesByClass[class] += size
		if class.Cacheable() {
			t.CacheableBytes += size
		}
	}
	if t.TotalBytes > 0 {
		t.Ratio = float64(t.CacheableBytes) / float64(t.TotalBytes)
	}
	return t
}

// AnalyzeFile parses one HAR file and reduces it to a summary row.
func AnalyzeFile(path string, log zerolog.Logger) (model.SiteSummary, error) {
	f, err := ParseFile(path)
	if err != nil {
		return model.SiteSummary{}, err
	}

	t := Analyze(f.Entries())

	ev := log.Debug().
		Str("file", f.Name).
		Int("entries", t.Entries).
		Int64("total_bytes", t.TotalBytes).
		Int64("cacheable_bytes", t.CacheableBytes)
	for class, n := range t.BytesByClass {
		ev = ev.Int64("bytes_"+class.String(), n)
	}
	ev.Msg("har analyzed")

	sha, err := normalize.FileHash(path)
	if err != nil {
		return model.SiteSummary{}, err
	}

	return model.SiteSummary{
		Site:              f.Site(),
		TotalBytes:        t.TotalBytes,
		CacheableBytes:    t.CacheableBytes,
		CacheabilityRatio: t.Ratio,
		SourceFile:        f.Name,
		SourceSHA256:      sha,
	}, nil
}

// Package lighthouse flattens website audit reports into summary rows.
package lighthouse

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/webstats/webstats/internal/jsonpath"
	"github.com/webstats/webstats/internal/model"
	"github.com/webstats/webstats/internal/normalize"
)

// Ext is the file extension of audit reports.
const Ext = ".json"

// Audit ids read from the report's "audits" object.
const (
	AuditTotalByteWeight        = "total-byte-weight"
	AuditNetworkRequests        = "network-requests"
	AuditThirdPartySummary      = "third-party-summary"
	AuditFirstContentfulPaint   = "first-contentful-paint"
	AuditLargestContentfulPaint = "largest-contentful-paint"
	AuditTotalBlockingTime      = "total-blocking-time"
	AuditSpeedIndex             = "speed-index"
	AuditCumulativeLayoutShift  = "cumulative-layout-shift"
	AuditResourceSummary        = "resource-summary"
	AuditDOMSize                = "dom-size"
)

const bytesPerMB = 1024 * 1024

// ExtractFile reads and flattens the report at path. A file that is not
// well-formed JSON is an error.
func ExtractFile(path string) (model.ReportSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ReportSummary{}, fmt.Errorf("read report: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return model.ReportSummary{}, fmt.Errorf("decode report %s: invalid JSON", filepath.Base(path))
	}

	row := Extract(gjson.ParseBytes(data), filepath.Base(path))
	row.SourceFile = filepath.Base(path)
	row.SourceSHA256 = normalize.BytesHash(data)
	return row, nil
}

// Extract flattens a parsed report. fileName stands in for the URL when
// the report has no requestedUrl. Missing audits never cause an error; the
// matching fields stay nil.
func Extract(doc gjson.Result, fileName string) model.ReportSummary {
	audits, _ := jsonpath.Lookup(doc, "audits")

	row := model.ReportSummary{
		URL: jsonpath.GetOr(doc, fileName, "requestedUrl"),
	}

	row.TotalBytes = jsonpath.GetPtr[float64](audits, AuditTotalByteWeight, "numericValue")
	row.TotalMB = toMB(row.TotalBytes)

	row.Requests = int64(len(items(audits, AuditNetworkRequests)))

	for _, item := range items(audits, AuditThirdPartySummary) {
		row.ThirdPartyBytes += jsonpath.GetOr(item, int64(0), "transferSize")
	}
	if row.ThirdPartyBytes != 0 {
		mb := float64(row.ThirdPartyBytes) / bytesPerMB
		row.ThirdPartyMB = &mb
	}

	row.FCPMs = numericValue(audits, AuditFirstContentfulPaint)
	row.LCPMs = numericValue(audits, AuditLargestContentfulPaint)
	row.TBTMs = numericValue(audits, AuditTotalBlockingTime)
	row.SpeedIndex = numericValue(audits, AuditSpeedIndex)
	row.CLS = numericValue(audits, AuditCumulativeLayoutShift)

	addResources(&row, items(audits, AuditResourceSummary))

	if dom := items(audits, AuditDOMSize); len(dom) > 0 {
		row.DOMSize = jsonpath.GetPtr[int64](dom[0], "nodeCount")
	}

	return row
}

func addResources(row *model.ReportSummary, resources []gjson.Result) {
	for _, item := range resources {
		size := jsonpath.GetOr(item, int64(0), "transferSize")
		count := jsonpath.GetOr(item, int64(0), "requestCount")

		switch ClassifyResource(jsonpath.GetOr(item, "", "resourceType")) {
		case ResourceScript:
			row.JSBytes += size
			row.JSCount += count
		case ResourceImage:
			row.ImgBytes += size
			row.ImgCount += count
		case ResourceStylesheet:
			row.CSSBytes += size
			row.CSSCount += count
		case ResourceFont:
			row.FontBytes += size
			row.FontCount += count
		case ResourceDocument:
			row.HTMLBytes += size
			row.HTMLCount += count
		default:
			row.OtherBytes += size
			row.OtherCount += count
		}
	}
}

func items(audits gjson.Result, audit string) []gjson.Result {
	return jsonpath.GetOr[[]gjson.Result](audits, nil, audit, "details", "items")
}

func numericValue(audits gjson.Result, audit string) *float64 {
	return jsonpath.GetPtr[float64](audits, audit, "numericValue")
}

// toMB converts a byte count to megabytes. Absent and zero both yield nil.
func toMB(bytes *float64) *float64 {
	if bytes == nil || *bytes == 0 {
		return nil
	}
	mb := *bytes / bytesPerMB
	return &mb
}

// Info is what plan reports about a report without extracting it.
type Info struct {
	URL    string
	Audits int
}

// Inspect checks that the report at path is well-formed and counts its audits.
func Inspect(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("read report: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return Info{}, fmt.Errorf("decode report %s: invalid JSON", filepath.Base(path))
	}
	doc := gjson.ParseBytes(data)
	info := Info{URL: jsonpath.GetOr(doc, filepath.Base(path), "requestedUrl")}
	if audits, ok := jsonpath.Lookup(doc, "audits"); ok && audits.IsObject() {
		info.Audits = len(audits.Map())
	}
	return info, nil
}

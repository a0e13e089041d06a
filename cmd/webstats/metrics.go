package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/webstats/webstats/internal/db"
	"github.com/webstats/webstats/internal/lighthouse"
	"github.com/webstats/webstats/internal/model"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Extract performance metrics from Lighthouse JSON reports",
	Long: "Reads every .json report in --dir and writes one row per report with byte weights, " +
		"request counts, paint timings, resource-type buckets and DOM size.",
	Args: cobra.NoArgs,
	RunE: runMetrics,
}

func init() {
	f := metricsCmd.Flags()
	f.StringVar(&cfg.Metrics.Dir, "dir", cfg.Metrics.Dir, "Folder of Lighthouse .json reports")
	f.StringVar(&cfg.Metrics.Out, "out", cfg.Metrics.Out, "Output table path")
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	p := pipeline[model.ReportSummary]{
		kind:  "metrics",
		ext:   lighthouse.Ext,
		paths: cfg.Metrics,
		analyze: func(path string, log zerolog.Logger) (model.ReportSummary, error) {
			row, err := lighthouse.ExtractFile(path)
			if err == nil {
				log.Debug().Str("file", row.SourceFile).Str("url", row.URL).Msg("report extracted")
			}
			return row, err
		},
		load:             db.CopyReportSummaries,
		emptyEarlyReturn: true,
		report:           reportMetrics,
	}
	return p.run(cmd)
}

func reportMetrics(cmd *cobra.Command, rows []model.ReportSummary, sum *model.RunSummary) {
	var weight float64
	for _, r := range rows {
		if r.TotalBytes != nil {
			weight += *r.TotalBytes
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Extracted data from %d files (%s total byte weight).\n", len(rows), humanize.Bytes(uint64(weight)))
	fmt.Fprintf(out, "Saved summary to: %s\n", sum.OutputPath)
}

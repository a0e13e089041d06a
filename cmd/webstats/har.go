package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/webstats/webstats/internal/db"
	"github.com/webstats/webstats/internal/har"
	"github.com/webstats/webstats/internal/model"
)

var harCmd = &cobra.Command{
	Use:   "har",
	Short: "Summarize cacheable bytes per HAR capture",
	Long: "Reads every .har file in --dir and writes one row per file: site, total_bytes, " +
		"cacheable_bytes and cacheability_ratio. An empty folder yields a header-only table.",
	Args: cobra.NoArgs,
	RunE: runHAR,
}

func init() {
	f := harCmd.Flags()
	f.StringVar(&cfg.HAR.Dir, "dir", cfg.HAR.Dir, "Folder of .har files")
	f.StringVar(&cfg.HAR.Out, "out", cfg.HAR.Out, "Output table path")
	rootCmd.AddCommand(harCmd)
}

func runHAR(cmd *cobra.Command, args []string) error {
	p := pipeline[model.SiteSummary]{
		kind:    "har",
		ext:     har.Ext,
		paths:   cfg.HAR,
		analyze: har.AnalyzeFile,
		load:    db.CopySiteSummaries,
		report:  reportSites,
	}
	return p.run(cmd)
}

func reportSites(cmd *cobra.Command, rows []model.SiteSummary, sum *model.RunSummary) {
	var total, cacheable int64
	for _, r := range rows {
		total += r.TotalBytes
		cacheable += r.CacheableBytes
	}
	ratio := 0.0
	if total > 0 {
		ratio = float64(cacheable) / float64(total)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analyzed %d HAR files: %s total, %s cacheable (%.1f%%)\n",
		len(rows), humanize.Bytes(uint64(total)), humanize.Bytes(uint64(cacheable)), ratio*100)
	fmt.Fprintf(out, "Saved summary to: %s\n", sum.OutputPath)
}

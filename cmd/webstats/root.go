package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/webstats/webstats/internal/config"
)

var (
	cfg     = config.Defaults()
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "webstats",
	Short: "Batch web performance summaries from HAR captures and audit reports",
	Long: "Reads a folder of HAR files or Lighthouse JSON reports and writes one summary row per file " +
		"as CSV, Parquet or Markdown, optionally loading the rows into Postgres.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfigFile,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.ConfigFile, "config", "", "YAML config file (default $XDG_CONFIG_HOME/webstats/config.yaml if present)")
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("WEBSTATS_DB_URL"), "Postgres connection string to also load rows into (or set WEBSTATS_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log per-file details")
	pf.StringVar(&cfg.Format, "format", cfg.Format, "Output format: csv, parquet or markdown")
	pf.IntVar(&cfg.Workers, "workers", cfg.Workers, "Files analyzed concurrently")
	pf.BoolVar(&cfg.SkipInvalid, "skip-invalid", cfg.SkipInvalid, "Skip files that fail to parse instead of aborting")
	pf.IntVar(&cfg.Preview, "preview", cfg.Preview, "Rows to print after writing (0 disables)")
}

// loadConfigFile overlays the YAML config, leaving flags given on the
// command line untouched.
func loadConfigFile(cmd *cobra.Command, args []string) error {
	explicit := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if cfg.ConfigFile != "" {
		return cfg.LoadFromFile(cfg.ConfigFile, explicit)
	}
	return cfg.LoadDefaultFile(explicit)
}

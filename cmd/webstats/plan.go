package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/webstats/webstats/internal/batch"
	"github.com/webstats/webstats/internal/config"
	"github.com/webstats/webstats/internal/exitcode"
	"github.com/webstats/webstats/internal/har"
	"github.com/webstats/webstats/internal/lighthouse"
	"github.com/webstats/webstats/internal/logging"
	"github.com/webstats/webstats/internal/normalize"
)

var planDir string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run: list and validate input files (no writes)",
	Long: "Lists every input file of --kind in --dir with its size, SHA-256 and a parse check. " +
		"Nothing is written. Exits non-zero when any file fails to parse.",
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&cfg.PlanKind, "kind", cfg.PlanKind, "Input kind: har or metrics")
	f.StringVar(&planDir, "dir", "", "Input folder (default: the kind's configured folder)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, verbose)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		return exitWith(exitcode.UsageError, err)
	}

	var (
		paths   config.Pipeline
		ext     string
		inspect func(path string) (string, error)
	)
	switch cfg.PlanKind {
	case "har":
		paths, ext, inspect = cfg.HAR, har.Ext, inspectHAR
	case "metrics":
		paths, ext, inspect = cfg.Metrics, lighthouse.Ext, inspectReport
	default:
		err := fmt.Errorf("--kind must be har or metrics, got %q", cfg.PlanKind)
		log.Error().Err(err).Msg("config validation failed")
		return exitWith(exitcode.UsageError, err)
	}
	if planDir != "" {
		paths.Dir = planDir
	}

	files, err := batch.Discover(paths.Dir, ext)
	if err != nil {
		log.Error().Err(err).Msg("listing input folder failed")
		return exitWith(exitcode.InputError, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== webstats plan ===")
	fmt.Fprintf(out, "Kind:   %s\n", cfg.PlanKind)
	fmt.Fprintf(out, "Folder: %s\n", paths.Dir)
	fmt.Fprintf(out, "Output: %s (%s)\n", paths.Out, cfg.Format)
	fmt.Fprintf(out, "Files:  %d\n\n", len(files))

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "File", "Size", "SHA-256", "Check"})

	var total uint64
	invalid := 0
	for i, path := range files {
		name := filepath.Base(path)
		size, sha := "?", "?"
		if st, err := os.Stat(path); err == nil {
			total += uint64(st.Size())
			size = humanize.Bytes(uint64(st.Size()))
		}
		if h, err := normalize.FileHash(path); err == nil {
			sha = h[:12]
		}

		check, err := inspect(path)
		if err != nil {
			invalid++
			check = "INVALID: " + err.Error()
			log.Warn().Err(err).Str("file", name).Msg("file failed validation")
		}
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), name, size, sha, check})
	}
	tw.AppendFooter(table.Row{"", "total", humanize.Bytes(total), "", fmt.Sprintf("%d invalid", invalid)})
	if len(files) > 0 {
		tw.Render()
	}

	if invalid > 0 {
		return exitWith(exitcode.InputError, fmt.Errorf("%d of %d files failed validation", invalid, len(files)))
	}
	fmt.Fprintln(out, "Validation: OK")
	return nil
}

func inspectHAR(path string) (string, error) {
	f, err := har.ParseFile(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ok: %s, %d entries", f.Site(), len(f.Entries())), nil
}

func inspectReport(path string) (string, error) {
	info, err := lighthouse.Inspect(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ok: %s, %d audits", info.URL, info.Audits), nil
}

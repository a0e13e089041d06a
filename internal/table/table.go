// Package table writes summary rows as a single tabular file.
package table

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Row is a summary row with a fixed column set.
type Row interface {
	Header() []string
	Record() []string
}

// Format selects the output encoding.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatParquet  Format = "parquet"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatCSV, FormatParquet, FormatMarkdown}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want csv, parquet or markdown)", s)
}

// Write encodes rows in format and stores them at path. The table is
// staged in a sibling temp file and renamed into place, so a failure never
// leaves a partial table behind.
func Write[R Row](path string, format Format, rows []R) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	switch format {
	case FormatCSV:
		err = writeCSV(tmp, rows)
	case FormatParquet:
		err = writeParquet(tmp, rows)
	case FormatMarkdown:
		err = writeMarkdown(tmp, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), rows)
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}

// header returns the column set of R even when there are no rows.
func header[R Row]() []string {
	var zero R
	return zero.Header()
}

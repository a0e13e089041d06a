package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("format: parquet\nworkers: 4\nhar:\n  dir: captures\n  out: cache.parquet\n"), 0644)

	c := Defaults()
	if err := c.LoadFromFile(path, nil); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.Format != "parquet" {
		t.Errorf("Format: got %q, want parquet", c.Format)
	}
	if c.Workers != 4 {
		t.Errorf("Workers: got %d, want 4", c.Workers)
	}
	if c.HAR.Dir != "captures" || c.HAR.Out != "cache.parquet" {
		t.Errorf("unexpected har pipeline: %+v", c.HAR)
	}
	if c.Metrics.Dir != DefaultMetricsDir {
		t.Errorf("metrics dir should keep default, got %q", c.Metrics.Dir)
	}
	if c.Preview != DefaultPreviewRows {
		t.Errorf("Preview should keep default, got %d", c.Preview)
	}
}

func TestLoadFromFile_ExplicitFlagsWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("format: markdown\nworkers: 8\nskip_invalid: true\n"), 0644)

	c := Defaults()
	c.Format = "csv"
	explicit := func(flag string) bool { return flag == "format" }
	if err := c.LoadFromFile(path, explicit); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.Format != "csv" {
		t.Errorf("explicit --format overridden by file: %q", c.Format)
	}
	if c.Workers != 8 || !c.SkipInvalid {
		t.Errorf("file values not applied: workers=%d skip=%v", c.Workers, c.SkipInvalid)
	}
}

func TestLoadFromFile_ZeroValuesApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("preview: 0\n"), 0644)

	c := Defaults()
	if err := c.LoadFromFile(path, nil); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.Preview != 0 {
		t.Errorf("expected preview 0 from file, got %d", c.Preview)
	}
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("workers: [1, 2\n"), 0644)

	c := Defaults()
	if err := c.LoadFromFile(path, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	c := Defaults()
	err := c.LoadFromFile("/nonexistent/config.yaml", nil)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"parquet", func(c *Config) { c.Format = "parquet" }, false},
		{"unknown format", func(c *Config) { c.Format = "xlsx" }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative preview", func(c *Config) { c.Preview = -1 }, true},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Defaults()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePipeline(t *testing.T) {
	c := Defaults()
	if err := c.ValidatePipeline(c.HAR); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if err := c.ValidatePipeline(Pipeline{Out: "x.csv"}); err == nil {
		t.Error("expected error for empty dir")
	}
	if err := c.ValidatePipeline(Pipeline{Dir: "x"}); err == nil {
		t.Error("expected error for empty out")
	}
}

func TestValidateWithDSN(t *testing.T) {
	c := Defaults()
	if err := c.ValidateWithDSN(); err == nil {
		t.Fatal("expected error for missing DSN")
	}
	c.DSN = "postgres://localhost/webstats"
	if err := c.ValidateWithDSN(); err != nil {
		t.Errorf("ValidateWithDSN: %v", err)
	}
}

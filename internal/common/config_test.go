package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avencia/tika-batch/constants"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Tika.JavaPath != "java" || cfg.Tika.Encoding != "UTF-8" {
		t.Errorf("tika defaults = %+v", cfg.Tika)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure without TIKA_JAR_PATH")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TIKA_JAR_PATH", "/opt/tika.jar")
	t.Setenv("TIKA_OUTPUT_FORMAT", "html")
	t.Setenv("TIKA_METADATA_ONLY", "true")
	t.Setenv("TIKA_TIMEOUT", "90s")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg := LoadConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if !cfg.Tika.MetadataOnly || cfg.Tika.Timeout != 90*time.Second {
		t.Errorf("tika config = %+v", cfg.Tika)
	}

	extraction, err := cfg.Tika.Extraction()
	if err != nil {
		t.Fatal(err)
	}
	if extraction.OutputFormat != constants.FormatHTML {
		t.Errorf("OutputFormat = %q", extraction.OutputFormat)
	}
}

func TestLoadConfigFileOverlay(t *testing.T) {
	t.Setenv("TIKA_JAR_PATH", "/from/env.jar")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("tika:\n  jar_path: /from/file.jar\n  output_format: text\nstore:\n  dsn: sqlite:/var/lib/tikad/jobs.db\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig()
	if err := LoadConfigFile(cfg, path); err != nil {
		t.Fatal(err)
	}
	if cfg.Tika.JarPath != "/from/file.jar" {
		t.Errorf("file overlay lost: %q", cfg.Tika.JarPath)
	}
	if cfg.Store.DSN != "sqlite:/var/lib/tikad/jobs.db" {
		t.Errorf("store dsn = %q", cfg.Store.DSN)
	}
	// Keys absent from the file keep env/default values.
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}

	if err := LoadConfigFile(cfg, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTikaConfigExtractionRejectsBadFormat(t *testing.T) {
	tc := TikaConfig{JarPath: "t.jar", OutputFormat: "yaml"}
	if _, err := tc.Extraction(); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}

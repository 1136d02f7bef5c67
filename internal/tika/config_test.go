package tika

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/avencia/tika-batch/constants"
)

func TestConfigSet(t *testing.T) {
	var cfg Config

	sets := []struct {
		option, value string
	}{
		{OptJavaPath, "/usr/bin/java"},
		{OptJarPath, "/opt/tika.jar"},
		{OptOutputFormat, "html"},
		{OptEncoding, "ISO-8859-1"},
		{OptMetadataOnly, "true"},
		{OptRecordType, "joined"},
		{OptTimeout, "30s"},
		{OptStrictJSON, "1"},
	}
	for _, s := range sets {
		if err := cfg.Set(s.option, s.value); err != nil {
			t.Fatalf("Set(%s, %s): %v", s.option, s.value, err)
		}
	}

	want := Config{
		JavaPath:     "/usr/bin/java",
		JarPath:      "/opt/tika.jar",
		OutputFormat: constants.FormatHTML,
		Encoding:     "ISO-8859-1",
		MetadataOnly: true,
		RecordType:   RecordJoined,
		Timeout:      30 * time.Second,
		StrictJSON:   true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config after sets (-want +got):\n%s", diff)
	}
}

func TestConfigSetUnknownOption(t *testing.T) {
	cfg := Config{JarPath: "/opt/tika.jar"}
	before := cfg

	err := cfg.Set("no_such_option", "value")
	if !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("err = %v, want ErrUnknownOption", err)
	}
	if diff := cmp.Diff(before, cfg); diff != "" {
		t.Fatalf("config mutated by failed Set (-before +after):\n%s", diff)
	}
}

func TestConfigSetInvalidValueDoesNotMutate(t *testing.T) {
	tests := []struct {
		option, value string
	}{
		{OptOutputFormat, "yaml"},
		{OptMetadataOnly, "definitely"},
		{OptRecordType, "columnar"},
		{OptTimeout, "sometime"},
		{OptStrictJSON, "perhaps"},
	}
	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			cfg := Config{JarPath: "/opt/tika.jar", OutputFormat: constants.FormatXML}
			before := cfg
			if err := cfg.Set(tt.option, tt.value); err == nil {
				t.Fatalf("Set(%s, %s) succeeded, want error", tt.option, tt.value)
			}
			if diff := cmp.Diff(before, cfg); diff != "" {
				t.Fatalf("config mutated by failed Set (-before +after):\n%s", diff)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{JarPath: "t.jar"}
	cfg.defaults()
	if cfg.JavaPath != "java" {
		t.Errorf("JavaPath default = %q", cfg.JavaPath)
	}
	if cfg.OutputFormat != constants.FormatXML {
		t.Errorf("OutputFormat default = %q", cfg.OutputFormat)
	}
	if cfg.Encoding != "UTF-8" {
		t.Errorf("Encoding default = %q", cfg.Encoding)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Timeout default = %v", cfg.Timeout)
	}
}

func TestConfigValidate(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing jar path")
	}
	cfg.JarPath = "t.jar"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

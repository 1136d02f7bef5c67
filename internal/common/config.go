package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/avencia/tika-batch/constants"
	"github.com/avencia/tika-batch/internal/tika"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Tika   TikaConfig   `yaml:"tika"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig holds job-history persistence configuration
type StoreConfig struct {
	// DSN selects the backend: "sqlite:<path>" or a postgres:// URL.
	// Empty disables persistence.
	DSN string `yaml:"dsn"`
}

// TikaConfig holds the default extraction options for the daemon.
type TikaConfig struct {
	JavaPath     string        `yaml:"java_path"`
	JarPath      string        `yaml:"jar_path"`
	OutputFormat string        `yaml:"output_format"`
	Encoding     string        `yaml:"encoding"`
	MetadataOnly bool          `yaml:"metadata_only"`
	RecordType   string        `yaml:"record_type"`
	Timeout      time.Duration `yaml:"timeout"`
	StrictJSON   bool          `yaml:"strict_json"`
}

// Extraction converts the daemon defaults into a core tika.Config.
func (t TikaConfig) Extraction() (tika.Config, error) {
	cfg := tika.Config{
		JavaPath:     t.JavaPath,
		JarPath:      t.JarPath,
		Encoding:     t.Encoding,
		MetadataOnly: t.MetadataOnly,
		RecordType:   tika.RecordType(t.RecordType),
		Timeout:      t.Timeout,
		StrictJSON:   t.StrictJSON,
	}
	if t.OutputFormat != "" {
		f, err := constants.ParseOutputFormat(t.OutputFormat)
		if err != nil {
			return tika.Config{}, err
		}
		cfg.OutputFormat = f
	}
	return cfg, nil
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			DSN: getEnv("STORE_DSN", ""),
		},
		Tika: TikaConfig{
			JavaPath:     getEnv("TIKA_JAVA_PATH", "java"),
			JarPath:      getEnv("TIKA_JAR_PATH", ""),
			OutputFormat: getEnv("TIKA_OUTPUT_FORMAT", "xml"),
			Encoding:     getEnv("TIKA_ENCODING", "UTF-8"),
			MetadataOnly: getEnvAsBool("TIKA_METADATA_ONLY", false),
			RecordType:   getEnv("TIKA_RECORD_TYPE", "generic"),
			Timeout:      getEnvAsDuration("TIKA_TIMEOUT", 2*time.Minute),
			StrictJSON:   getEnvAsBool("TIKA_STRICT_JSON", false),
		},
	}
}

// LoadConfigFile overlays YAML file values onto cfg. Keys absent from the
// file keep their current values.
func LoadConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Tika.JarPath == "" {
		return NewAppError("CONFIG_ERROR", "TIKA_JAR_PATH is required", ErrInvalidInput)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}

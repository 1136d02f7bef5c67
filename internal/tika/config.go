package tika

import (
	"fmt"
	"strconv"
	"time"

	"github.com/avencia/tika-batch/constants"
)

// Config holds the extraction options shared by every document in a batch.
// Each option has exactly one current value; the zero value plus defaults()
// is a usable configuration except for JarPath.
type Config struct {
	JavaPath string // binary name or absolute path; if empty -> "java"
	JarPath  string // path to the tika-app jar (required)

	OutputFormat constants.OutputFormat // xml | html | text, default xml
	Encoding     string                 // output charset, default "UTF-8"

	MetadataOnly bool       // request only the JSON metadata object
	RecordType   RecordType // metadata sink implementation, default generic

	Timeout    time.Duration // per-invocation limit, default 2m
	StrictJSON bool          // validate metadata JSON against the flat-object schema
}

// Option names accepted by Set, for callers that carry options by name.
const (
	OptJavaPath     = "java_path"
	OptJarPath      = "jar_path"
	OptOutputFormat = "output_format"
	OptEncoding     = "encoding"
	OptMetadataOnly = "metadata_only"
	OptRecordType   = "record_type"
	OptTimeout      = "timeout"
	OptStrictJSON   = "strict_json"
)

func (c *Config) defaults() {
	if c.JavaPath == "" {
		c.JavaPath = "java"
	}
	if c.OutputFormat == "" {
		c.OutputFormat = constants.FormatXML
	}
	if c.Encoding == "" {
		c.Encoding = "UTF-8"
	}
	if c.RecordType == "" {
		c.RecordType = RecordGeneric
	}
	if c.Timeout <= 0 {
		c.Timeout = 2 * time.Minute
	}
}

// Set assigns one option by name. The value is validated before any field is
// written, so a failed Set never leaves the configuration partially mutated.
// Unknown names fail with ErrUnknownOption.
func (c *Config) Set(option, value string) error {
	switch option {
	case OptJavaPath:
		c.JavaPath = value
	case OptJarPath:
		c.JarPath = value
	case OptOutputFormat:
		f, err := constants.ParseOutputFormat(value)
		if err != nil {
			return err
		}
		c.OutputFormat = f
	case OptEncoding:
		c.Encoding = value
	case OptMetadataOnly:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("option %s: %w", option, err)
		}
		c.MetadataOnly = b
	case OptRecordType:
		switch RecordType(value) {
		case RecordGeneric, RecordJoined:
			c.RecordType = RecordType(value)
		default:
			return fmt.Errorf("option %s: unknown record type %q", option, value)
		}
	case OptTimeout:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("option %s: %w", option, err)
		}
		c.Timeout = d
	case OptStrictJSON:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("option %s: %w", option, err)
		}
		c.StrictJSON = b
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
	return nil
}

// Validate checks the options that have no usable default.
func (c *Config) Validate() error {
	if c.JarPath == "" {
		return fmt.Errorf("jar_path is required")
	}
	return nil
}

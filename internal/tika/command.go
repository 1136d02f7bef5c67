package tika

import (
	"strconv"
	"strings"
)

// BuildCommand turns a configuration into the base argv shared by every
// document in a batch: program, headless flag, jar, output-mode flag,
// encoding flag. Deterministic (same configuration, same argv) and safe to
// build once per pass. Per-document arguments are appended by the batch loop.
func BuildCommand(cfg Config) []string {
	cfg.defaults()

	args := []string{cfg.JavaPath, "-Djava.awt.headless=true", "-jar", cfg.JarPath}
	if cfg.MetadataOnly {
		// Metadata-only always asks for the JSON object, whatever the
		// configured output format says.
		args = append(args, "--json")
	} else {
		args = append(args, cfg.OutputFormat.Flag())
	}
	args = append(args, "--encoding="+cfg.Encoding)
	return args
}

// documentArgs returns the per-document tail of the argv: optional password
// flag plus the source path.
func documentArgs(d *Document) []string {
	var args []string
	if d.Password() != "" {
		args = append(args, "--password="+d.Password())
	}
	return append(args, d.SourcePath())
}

// CommandString renders an argv as a single loggable line, quoting arguments
// that contain whitespace or shell metacharacters.
func CommandString(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		if strings.ContainsAny(a, " \t\n\"'\\$&|;<>*?()") {
			parts[i] = strconv.Quote(a)
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}

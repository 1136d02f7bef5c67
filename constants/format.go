package constants

import (
	"fmt"
	"strings"
)

// OutputFormat selects how the extraction tool renders a document.
type OutputFormat string

// Stable values (these exact strings appear in config files and API requests).
const (
	FormatXML  OutputFormat = "xml"
	FormatHTML OutputFormat = "html"
	FormatText OutputFormat = "text"
)

// Flag returns the tika-app command line flag for the format.
func (f OutputFormat) Flag() string {
	return "--" + string(f)
}

// Structured reports whether the format produces a markup document
// (metadata tags plus a body element) rather than plain text.
func (f OutputFormat) Structured() bool {
	return f == FormatXML || f == FormatHTML
}

// ParseOutputFormat maps a string to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXML:
		return FormatXML, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", s)
	}
}

// AllowedExtensions holds the default allowed file extensions for directory ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"doc":  {},
	"docx": {},
	"odt":  {},
	"rtf":  {},
	"html": {},
	"htm":  {},
	"txt":  {},
	"xlsx": {},
	"pptx": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

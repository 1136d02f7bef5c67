package constants

import "testing"

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"xml", FormatXML, false},
		{" HTML ", FormatHTML, false},
		{"text", FormatText, false},
		{"json", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOutputFormatStructured(t *testing.T) {
	if !FormatXML.Structured() || !FormatHTML.Structured() {
		t.Error("markup formats should be structured")
	}
	if FormatText.Structured() {
		t.Error("text is not structured")
	}
}

func TestNormalizeExt(t *testing.T) {
	if got := NormalizeExt(".PDF"); got != "pdf" {
		t.Errorf("NormalizeExt(.PDF) = %q", got)
	}
	if got := NormalizeExt("docx"); got != "docx" {
		t.Errorf("NormalizeExt(docx) = %q", got)
	}
}

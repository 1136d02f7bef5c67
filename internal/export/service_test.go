package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/avencia/tika-batch/internal/tika"
)

func TestExportBatchXLSX(t *testing.T) {
	b := tika.NewBatch("invoices")

	d1 := tika.NewDocument("a.pdf", "/docs/a.pdf")
	d1.SetContent("Hello World")
	m := tika.NewMetadata()
	m.Add("title", "A")
	m.Add("keyword", "foo")
	m.Add("keyword", "bar")
	d1.SetMetadata(m)
	b.Add(d1)

	d2 := tika.NewDocument("b.pdf", "/docs/b.pdf")
	b.Add(d2)

	data, err := NewService(nil).ExportBatchXLSX(b)
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cell := func(sheet, ref string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}

	if got := cell("Documents", "A2"); got != "a.pdf" {
		t.Errorf("Documents!A2 = %q", got)
	}
	if got := cell("Documents", "C2"); got != "11" {
		t.Errorf("Documents!C2 = %q, want content byte count", got)
	}
	if got := cell("Documents", "A3"); got != "b.pdf" {
		t.Errorf("Documents!A3 = %q", got)
	}

	// Metadata rows: one per field-value pair, duplicates preserved.
	if got := cell("Metadata", "B2"); got != "title" {
		t.Errorf("Metadata!B2 = %q", got)
	}
	if got := cell("Metadata", "C3"); got != "foo" {
		t.Errorf("Metadata!C3 = %q", got)
	}
	if got := cell("Metadata", "C4"); got != "bar" {
		t.Errorf("Metadata!C4 = %q", got)
	}
}

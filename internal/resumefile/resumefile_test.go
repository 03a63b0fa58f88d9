package resumefile

import (
	"errors"
	"testing"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		filename    string
		contentType string
		expect      string
		wantErr     bool
	}{
		{name: "declared text", filename: "cv", contentType: "text/plain; charset=utf-8", expect: MimeText},
		{name: "declared pdf", filename: "cv.bin", contentType: MimePDF, expect: MimePDF},
		{name: "octet stream docx", filename: "CV.DOCX", contentType: "application/octet-stream", expect: MimeDocx},
		{name: "markdown by extension", filename: "cv.md", contentType: "", expect: MimeText},
		{name: "unsupported", filename: "cv.odt", contentType: "application/vnd.oasis.opendocument.text", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Detect(tt.filename, tt.contentType)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupported) {
					t.Fatalf("expected unsupported error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	got, err := Extract("cv.txt", "", []byte("  Jane   Doe \r\n\r\n\tPython,  SQL \n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Jane Doe\nPython, SQL" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestExtractErrors(t *testing.T) {
	t.Parallel()

	if _, err := Extract("cv.txt", "", []byte(" \n\t ")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected empty error, got %v", err)
	}
	if _, err := Extract("cv.txt", "", []byte{0xff, 0xfe, 0x00}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected unsupported error for invalid utf-8, got %v", err)
	}
	if _, err := Extract("cv.pdf", "", []byte("not a pdf")); err == nil {
		t.Fatal("expected error for broken pdf")
	}
	if _, err := Extract("cv.docx", "", []byte("not a zip")); err == nil {
		t.Fatal("expected error for broken docx")
	}
}

func TestDocxXMLToText(t *testing.T) {
	t.Parallel()

	xml := `<w:document><w:body><w:p><w:r><w:t>Jane &amp; Co</w:t></w:r></w:p><w:p><w:r><w:t>Go</w:t><w:tab/><w:t>SQL</w:t></w:r></w:p></w:body></w:document>`

	if got := cleanLines(docxXMLToText(xml)); got != "Jane & Co\nGo SQL" {
		t.Fatalf("unexpected text %q", got)
	}
}

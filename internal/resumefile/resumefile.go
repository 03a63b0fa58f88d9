// Package resumefile extracts plain text from uploaded resume files.
package resumefile

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/spigell/careerlens/internal/utils"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	ErrUnsupported = errors.New("unsupported file type")
	ErrEmpty       = errors.New("no text found in file")

	extensions = map[string]string{
		".txt":  MimeText,
		".md":   MimeText,
		".pdf":  MimePDF,
		".docx": MimeDocx,
	}

	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br/>`)
	tab          = regexp.MustCompile(`<w:tab/>`)
	xmlTag       = regexp.MustCompile(`<[^>]*>`)
)

// Detect resolves the resume format from the declared content type, falling
// back to the file extension for generic types such as application/octet-stream.
func Detect(filename, contentType string) (string, error) {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case MimeText, MimePDF, MimeDocx:
			return mediaType, nil
		}
	}

	if kind, ok := extensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return kind, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupported, firstNonEmpty(contentType, filepath.Ext(filename), filename))
}

// Extract returns the text of a resume file with whitespace collapsed per line.
func Extract(filename, contentType string, data []byte) (string, error) {
	kind, err := Detect(filename, contentType)
	if err != nil {
		return "", err
	}

	var text string
	switch kind {
	case MimeText:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: text file is not valid utf-8", ErrUnsupported)
		}
		text = string(data)
	case MimePDF:
		text, err = extractPDFText(data)
	case MimeDocx:
		text, err = extractDocxText(data)
	}
	if err != nil {
		return "", err
	}

	text = cleanLines(text)
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf parser panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(content)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText drops the WordprocessingML markup, keeping paragraph breaks.
func docxXMLToText(content string) string {
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = tab.ReplaceAllString(content, " ")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

func cleanLines(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = utils.CollapseSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return "unknown"
}

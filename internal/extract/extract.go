// Package extract converts uploaded document bytes into plain text.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	docx "github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"

	domain "github.com/mkkalpana/text-morph/internal/domain/analysis"
)

// Format enum over the supported document kinds.
type Format string

const (
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
)

var contentTypes = map[string]Format{
	"text/plain":      FormatText,
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDocx,
}

// DetectFormat picks the extractor for a file. The filename extension wins;
// the declared content type is only consulted when the filename carries no
// recognized extension (the two can diverge and the extension is the value
// the upload gate validated).
func DetectFormat(filename, contentType string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "txt":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDocx, nil
	}
	mime := contentType
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	if f, ok := contentTypes[strings.TrimSpace(mime)]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filename)
}

// Extract converts raw document bytes to plain text. Pure transformation,
// no side effects.
func Extract(data []byte, filename, contentType string) (string, error) {
	format, err := DetectFormat(filename, contentType)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatPDF:
		return extractPDF(data)
	case FormatDocx:
		return extractDocx(data)
	default:
		return extractText(data)
	}
}

func extractText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file is not valid UTF-8 text", domain.ErrExtractionFailed)
	}
	return string(data), nil
}

// extractPDF concatenates the plain text of every page in page order,
// separated by newlines.
func extractPDF(data []byte) (text string, err error) {
	// the pdf package panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", domain.ErrExtractionFailed, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", domain.ErrExtractionFailed, i, err)
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: PDF has no embedded text", domain.ErrEmptyDocument)
	}
	return b.String(), nil
}

// extractDocx concatenates paragraph text in document order, one per line.
func extractDocx(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			b.WriteString(p.String())
			b.WriteString("\n")
		}
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: DOCX has no paragraph text", domain.ErrEmptyDocument)
	}
	return b.String(), nil
}

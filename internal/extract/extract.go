// Package extract turns uploaded files into plain text for embedding.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// Format is the closed set of supported upload types.
type Format int

const (
	FormatUnknown Format = iota
	FormatText
	FormatMarkdown
	FormatCSV
	FormatJSON
	FormatPDF
	FormatDocx
)

// DetectFormat maps a filename extension to its format. Unrecognized
// extensions map to FormatUnknown.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return FormatText
	case ".md":
		return FormatMarkdown
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDocx
	default:
		return FormatUnknown
	}
}

// ExtractText returns the plain-text content of the file. Text-based
// formats pass through as-is; PDF and DOCX go through their parsers.
func ExtractText(filename string, data []byte) (string, error) {
	switch DetectFormat(filename) {
	case FormatText, FormatMarkdown, FormatCSV, FormatJSON:
		return string(data), nil
	case FormatPDF:
		return extractPDF(data)
	case FormatDocx:
		return extractDocx(data)
	default:
		return "", fmt.Errorf("Unsupported file type: %s", strings.ToLower(filepath.Ext(filename)))
	}
}

// extractPDF joins the plain text of every page with a blank line.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read PDF page %d: %w", i, err)
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n\n"), nil
}

// extractDocx concatenates the document body's paragraphs and tables.
func extractDocx(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX: %w", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph, *docx.Table:
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(fmt.Sprint(item))
		}
	}

	return sb.String(), nil
}

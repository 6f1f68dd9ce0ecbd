package services

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	mimeText = "text/plain"
	mimeHTML = "text/html"
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var extensionMIME = map[string]string{
	".txt":  mimeText,
	".md":   mimeText,
	".html": mimeHTML,
	".htm":  mimeHTML,
	".pdf":  mimePDF,
	".docx": mimeDOCX,
}

type TextExtractor interface {
	// ExtractText picks a decoder from the filename extension.
	ExtractText(filename string, data []byte) (string, error)
	ExtractFromMIME(mimeType string, data []byte) (string, error)
	Supports(filename string) bool
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

func (e *textExtractor) Supports(filename string) bool {
	_, ok := extensionMIME[strings.ToLower(filepath.Ext(filename))]
	return ok
}

func (e *textExtractor) ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mimeType, ok := extensionMIME[ext]
	if !ok {
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFileType, ext)
	}
	return e.ExtractFromMIME(mimeType, data)
}

func (e *textExtractor) ExtractFromMIME(mimeType string, data []byte) (string, error) {
	if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = parsed
	}

	var (
		text string
		err  error
	)
	switch mimeType {
	case mimeText:
		text = string(data)
	case mimeHTML:
		text, err = extractHTMLText(data)
	case mimePDF:
		text, err = extractPDFText(data)
	case mimeDOCX:
		text, err = extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, mimeType)
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// a broken page should not lose the rest of the document
			continue
		}
		textBuilder.WriteString(text)
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

	return docxPlainText(doc.Editable().GetContent()), nil
}

// docxPlainText turns the raw document XML into text, one line per paragraph.
func docxPlainText(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "</w:p>\n")
	content = strings.ReplaceAll(content, "<w:br/>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}
	return doc.Text()
}

func extractHTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, footer").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	// block elements end a line so headers stay on lines of their own
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6, section, article, dt, dd").AppendHtml("\n")

	return doc.Find("body").Text(), nil
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

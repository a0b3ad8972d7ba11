// Package extract turns uploaded contract documents into plain text.
// PDF and DOCX are the only supported formats; anything else is rejected
// before the bytes are touched.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MinTextLength is the shortest extraction output treated as real content.
// A scanned, image-only PDF extracts to almost nothing; that is an
// extraction failure, not valid empty text.
const MinTextLength = 50

// SupportedType reports whether the uploaded filename has an accepted extension.
func SupportedType(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".pdf") || strings.HasSuffix(lower, ".docx")
}

// Text extracts plain text from the document bytes. It fails predictably:
// unreadable input or near-empty output is an error, never a silent truncation.
func Text(filename string, data []byte) (string, error) {
	lower := strings.ToLower(filename)

	var text string
	var err error
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		text, err = pdfText(data)
	case strings.HasSuffix(lower, ".docx"):
		text, err = docxText(data)
	default:
		return "", fmt.Errorf("unsupported document type: %s", filename)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinTextLength {
		return "", fmt.Errorf("document yielded only %d characters of text", utf8.RuneCountInString(text))
	}
	return text, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return sb.String(), nil
}

// docxText reads word/document.xml out of the DOCX zip and collects the
// character data, one line per paragraph.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("docx has no word/document.xml")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open docx body: %w", err)
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse docx body: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String(), nil
}

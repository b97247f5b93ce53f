// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrUnsupportedType is returned for file extensions other than
	// .pdf, .docx and .txt.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrNoText is returned when a document yields no text after cleaning.
	ErrNoText = errors.New("no text could be extracted")
)

// Type is a supported document type, named by its extension.
type Type string

const (
	TypePDF  Type = ".pdf"
	TypeDOCX Type = ".docx"
	TypeTXT  Type = ".txt"
)

// SupportedTypes lists the accepted extensions.
var SupportedTypes = []Type{TypePDF, TypeDOCX, TypeTXT}

// TypeOf returns the document type for filename.
func TypeOf(filename string) (Type, error) {
	ext := Type(strings.ToLower(filepath.Ext(filename)))
	for _, t := range SupportedTypes {
		if ext == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: .pdf, .docx, .txt)", ErrUnsupportedType, filepath.Ext(filename))
}

// FromFile extracts cleaned text from the document at path.
func FromFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	return FromReader(f, info.Size(), filepath.Base(path))
}

// FromReader extracts cleaned text from a document held in r. filename
// selects the parser.
func FromReader(r io.ReaderAt, size int64, filename string) (string, error) {
	typ, err := TypeOf(filename)
	if err != nil {
		return "", err
	}

	var raw string
	switch typ {
	case TypePDF:
		raw, err = pdfText(r, size)
	case TypeDOCX:
		raw, err = docxText(r, size)
	case TypeTXT:
		raw, err = plainText(r, size)
	}
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", typ, err)
	}

	text := CleanText(raw)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func pdfText(r io.ReaderAt, size int64) (text string, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed PDF: %v", p)
		}
	}()

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return "", err
	}
	plain, err := doc.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func plainText(r io.ReaderAt, size int64) (string, error) {
	b, err := io.ReadAll(io.NewSectionReader(r, 0, size))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("text file is not valid UTF-8")
	}
	return string(b), nil
}

var (
	blankLines = regexp.MustCompile(`\n{3,}`)
	spaceRuns  = regexp.MustCompile(`[ \t\f\v]+`)
	trailingWS = regexp.MustCompile(`[ \t]+\n`)
	leadingWS  = regexp.MustCompile(`\n[ \t]+`)
)

// CleanText normalizes line endings and whitespace in extracted text.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = trailingWS.ReplaceAllString(s, "\n")
	s = leadingWS.ReplaceAllString(s, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

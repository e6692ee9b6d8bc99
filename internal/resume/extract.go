package resume

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"softskill-server/internal/apperr"
)

// ExtractText pulls plain text out of an uploaded PDF or DOCX resume.
// Unsupported extensions and empty documents fail with InvalidArgument.
func ExtractText(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	default:
		return "", apperr.InvalidArgumentf("unsupported file type %q, expected PDF or DOCX", filepath.Ext(filename))
	}
	if err != nil {
		return "", apperr.InvalidArgumentf("reading %s: %v", filename, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperr.InvalidArgumentf("no text could be extracted from %s", filename)
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// extractDOCX reads word/document.xml out of the docx archive and collects its
// character data, one line per paragraph.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var doc io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if doc == nil {
		return "", apperr.InvalidArgumentf("docx archive has no document part")
	}
	defer doc.Close()

	var (
		sb  strings.Builder
		dec = xml.NewDecoder(doc)
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String(), nil
}

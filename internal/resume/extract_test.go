package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softskill-server/internal/apperr"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractTextDOCX(t *testing.T) {
	doc := buildDOCX(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Senior Go Engineer</w:t></w:r></w:p>
    <w:p><w:r><w:t>Skills: Go, MongoDB</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := ExtractText("resume.docx", doc)
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Go Engineer")
	assert.Contains(t, text, "Skills: Go, MongoDB")
}

func TestExtractTextUnsupportedType(t *testing.T) {
	_, err := ExtractText("resume.txt", []byte("plain"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestExtractTextEmptyDocument(t *testing.T) {
	doc := buildDOCX(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body></w:body>
</w:document>`)

	_, err := ExtractText("resume.docx", doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestExtractTextCorruptDOCX(t *testing.T) {
	_, err := ExtractText("resume.docx", []byte("not a zip archive"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestParseKeySkills(t *testing.T) {
	cases := []struct {
		name     string
		analysis string
		want     string
	}{
		{"valid", `{"full_name":"A","key_skills":"Go, SQL"}`, "Go, SQL"},
		{"missing key", `{"full_name":"A"}`, ""},
		{"not json", "the model rambled instead", ""},
		{"wrong type", `{"key_skills":["Go","SQL"]}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseKeySkills(tc.analysis))
		})
	}
}

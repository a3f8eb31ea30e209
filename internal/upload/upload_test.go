package upload

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

func docxBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("<xml/>"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestChecker_AcceptsPDF(t *testing.T) {
	c := NewChecker(0)
	f, err := c.Check("resume.pdf", "", bytes.NewReader(pdfBytes))
	require.NoError(t, err)
	assert.Equal(t, TypePDF, f.ContentType)
	assert.Equal(t, "resume.pdf", f.Filename)
	assert.Equal(t, int64(len(pdfBytes)), f.Size())
}

func TestChecker_TrustsDeclaredType(t *testing.T) {
	c := NewChecker(0)
	f, err := c.Check("cv.docx", TypeDOCX+"; charset=binary", strings.NewReader("anything"))
	require.NoError(t, err)
	assert.Equal(t, TypeDOCX, f.ContentType)
}

func TestChecker_SniffsDOCX(t *testing.T) {
	c := NewChecker(0)
	f, err := c.Check("cv.docx", "application/octet-stream", bytes.NewReader(docxBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, TypeDOCX, f.ContentType)
}

func TestChecker_LegacyDOCByExtension(t *testing.T) {
	ole := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 504)...)
	c := NewChecker(0)
	f, err := c.Check("old.doc", "", bytes.NewReader(ole))
	require.NoError(t, err)
	assert.Equal(t, TypeDOC, f.ContentType)
}

func TestChecker_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		declared string
		data     []byte
		limit    int64
		reason   Reason
	}{
		{name: "plain text", filename: "notes.txt", data: []byte("hello world"), reason: ReasonType},
		{name: "declared image", filename: "photo.png", declared: "image/png", data: []byte("x"), reason: ReasonType},
		{name: "empty", filename: "resume.pdf", data: nil, reason: ReasonEmpty},
		{name: "too large", filename: "resume.pdf", data: pdfBytes, limit: 8, reason: ReasonSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChecker(tt.limit).Check(tt.filename, tt.declared, bytes.NewReader(tt.data))
			var rej *RejectionError
			require.True(t, errors.As(err, &rej), "got %v", err)
			assert.Equal(t, tt.reason, rej.Reason)
			assert.NotEmpty(t, rej.Error())
		})
	}
}

func TestAccepted(t *testing.T) {
	assert.True(t, Accepted(TypePDF))
	assert.True(t, Accepted("Application/PDF"))
	assert.True(t, Accepted(TypeDOC))
	assert.True(t, Accepted(TypeDOCX))
	assert.False(t, Accepted("text/plain"))
	assert.False(t, Accepted(""))
}

func TestSniff(t *testing.T) {
	assert.Equal(t, TypePDF, Sniff(pdfBytes))
	assert.True(t, strings.HasPrefix(Sniff([]byte("plain words")), "text/plain"))
}

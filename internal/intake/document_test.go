package intake

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

func TestNewDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fileName string
		data     []byte
		kind     Kind
		mime     string
	}{
		{
			name:     "pdf",
			fileName: "resume.pdf",
			data:     []byte(samplePDF),
			kind:     KindPDF,
			mime:     "application/pdf",
		},
		{
			name:     "pdf content wins over extension",
			fileName: "resume.txt",
			data:     []byte(samplePDF),
			kind:     KindPDF,
			mime:     "application/pdf",
		},
		{
			name:     "zip named docx",
			fileName: "resume.DOCX",
			data:     zipped(t),
			kind:     KindWord,
			mime:     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
		{
			name:     "plain zip",
			fileName: "resume.zip",
			data:     zipped(t),
			kind:     KindOther,
			mime:     "application/zip",
		},
		{
			name:     "text named docx",
			fileName: "resume.docx",
			data:     []byte("just some text"),
			kind:     KindOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := NewDocument(tt.fileName, tt.data)
			assert.Equal(t, tt.kind, doc.Kind, doc.MIME)
			assert.Equal(t, tt.fileName, doc.Name)
			assert.Equal(t, int64(len(tt.data)), doc.Size)
			assert.NotEqual(t, uuid.Nil, doc.ID)
			if tt.mime != "" {
				assert.Equal(t, tt.mime, doc.MIME)
			}
		})
	}
}

func TestOpenDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cv.pdf")
	require.NoError(t, os.WriteFile(path, []byte(samplePDF), 0o600))

	doc, err := OpenDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", doc.Name)
	assert.Equal(t, KindPDF, doc.Kind)
	assert.Equal(t, "pdf", doc.Kind.String())

	_, err = OpenDocument(filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)

	_, err = OpenDocument(dir)
	require.Error(t, err)
}

func TestDocumentIDsAreUnique(t *testing.T) {
	t.Parallel()

	a := NewDocument("a.pdf", []byte(samplePDF))
	b := NewDocument("a.pdf", []byte(samplePDF))
	assert.NotEqual(t, a.ID, b.ID)
}

func zipped(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("notes.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

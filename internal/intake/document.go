package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Kind is the coarse document class the analyzers accept.
type Kind int

const (
	KindOther Kind = iota
	KindPDF
	KindWord
)

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindWord:
		return "word"
	default:
		return "other"
	}
}

// Document is an uploaded resume file. Only its metadata is kept.
type Document struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Size int64     `json:"size"`
	MIME string    `json:"mime"`
	Kind Kind      `json:"kind"`
}

// OpenDocument detects the type of the file at path.
func OpenDocument(path string) (*Document, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("opening document: %q is a directory", path)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detecting type of %q: %w", path, err)
	}

	return newDocument(filepath.Base(path), stat.Size(), mime), nil
}

// NewDocument builds a document from in-memory content.
func NewDocument(name string, data []byte) *Document {
	return newDocument(name, int64(len(data)), mimetype.Detect(data))
}

func newDocument(name string, size int64, mime *mimetype.MIME) *Document {
	doc := &Document{
		ID:   uuid.New(),
		Name: name,
		Size: size,
		MIME: mime.String(),
	}
	doc.Kind = classify(doc.MIME, name)
	if doc.Kind == KindWord && !isWordMIME(doc.MIME) {
		doc.MIME = wordMIMEByExt[strings.ToLower(filepath.Ext(name))]
	}
	return doc
}

var wordMIMEByExt = map[string]string{
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
}

// Containers that hold Word documents but are not always recognized as such.
var wordContainers = map[string]struct{}{
	"application/zip":           {},
	"application/x-ole-storage": {},
}

func classify(mime, name string) Kind {
	switch {
	case strings.Contains(mime, "pdf"):
		return KindPDF
	case isWordMIME(mime):
		return KindWord
	}

	if _, ok := wordContainers[mime]; ok {
		if _, ok := wordMIMEByExt[strings.ToLower(filepath.Ext(name))]; ok {
			return KindWord
		}
	}
	return KindOther
}

func isWordMIME(mime string) bool {
	return strings.Contains(mime, "word") || strings.Contains(mime, "docx")
}

// Package upload decides whether an uploaded resume file is accepted.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxSize is the largest accepted resume, 10 MiB.
const MaxSize int64 = 10 << 20

// Accepted content types.
const (
	TypePDF  = "application/pdf"
	TypeDOC  = "application/msword"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var accepted = []string{TypePDF, TypeDOC, TypeDOCX}

// extensions maps a filename extension to its content type, used when the
// declared type and the sniffed type are both generic.
var extensions = map[string]string{
	".pdf":  TypePDF,
	".doc":  TypeDOC,
	".docx": TypeDOCX,
}

// Reason says why a file was rejected.
type Reason string

const (
	ReasonType  Reason = "type"
	ReasonSize  Reason = "size"
	ReasonEmpty Reason = "empty"
)

// RejectionError reports a file that cannot be used as a resume.
type RejectionError struct {
	Reason      Reason
	ContentType string
	Size        int64
	Limit       int64
}

func (e *RejectionError) Error() string {
	switch e.Reason {
	case ReasonSize:
		return fmt.Sprintf("resume rejected: %d bytes exceeds the %d byte limit", e.Size, e.Limit)
	case ReasonEmpty:
		return "resume rejected: file is empty"
	default:
		return fmt.Sprintf("resume rejected: unsupported content type %q (PDF, DOC or DOCX only)", e.ContentType)
	}
}

// File is an accepted upload.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the file length in bytes.
func (f *File) Size() int64 { return int64(len(f.Data)) }

// Checker validates uploads against a size limit.
type Checker struct {
	Limit int64
}

// NewChecker returns a Checker with limit, or MaxSize when limit <= 0.
func NewChecker(limit int64) *Checker {
	if limit <= 0 {
		limit = MaxSize
	}
	return &Checker{Limit: limit}
}

// Check reads r (at most Limit+1 bytes) and returns the accepted file.
// The declared content type is trusted when it names an accepted type;
// an empty or generic declaration falls back to content sniffing.
func (c *Checker) Check(filename, declared string, r io.Reader) (*File, error) {
	data, err := io.ReadAll(io.LimitReader(r, c.Limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, &RejectionError{Reason: ReasonEmpty, Limit: c.Limit}
	}
	if int64(len(data)) > c.Limit {
		return nil, &RejectionError{Reason: ReasonSize, Size: int64(len(data)), Limit: c.Limit}
	}

	ct := Resolve(filename, declared, data)
	if !Accepted(ct) {
		return nil, &RejectionError{Reason: ReasonType, ContentType: ct, Size: int64(len(data)), Limit: c.Limit}
	}
	return &File{Filename: filepath.Base(filename), ContentType: ct, Data: data}, nil
}

// Resolve picks the effective content type of an upload.
func Resolve(filename, declared string, data []byte) string {
	declared = normalize(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}

	sniffed := mimetype.Detect(data)
	for m := sniffed; m != nil; m = m.Parent() {
		if Accepted(m.String()) {
			return m.String()
		}
	}

	// Legacy .doc files sniff as a generic OLE container.
	if sniffed.Is("application/x-ole-storage") || sniffed.Is("application/zip") || sniffed.Is("application/octet-stream") {
		if ct, ok := extensions[strings.ToLower(filepath.Ext(filename))]; ok {
			return ct
		}
	}
	return normalize(sniffed.String())
}

// Accepted reports whether ct is a PDF, DOC or DOCX content type.
func Accepted(ct string) bool {
	return mimetype.EqualsAny(normalize(ct), accepted...)
}

// Sniff returns the detected content type of data.
func Sniff(data []byte) string {
	return normalize(mimetype.Detect(data).String())
}

// Reader returns a fresh reader over the file content.
func (f *File) Reader() io.Reader { return bytes.NewReader(f.Data) }

func normalize(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

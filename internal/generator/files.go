package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Ayash-Bera/goai/backend/internal/quality"
)

// File is one generated source file.
type File struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Type     string `json:"type"`
	Language string `json:"language"`
}

var (
	ErrMalformedResponse = errors.New("provider response is not a files document")
	ErrNoFiles           = errors.New("provider response contained no files")
)

var fencePattern = regexp.MustCompile("```json\\n?|```\\n?")

// StripFences removes markdown code fences and surrounding whitespace.
func StripFences(text string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))
}

type filesDocument struct {
	Files []File `json:"files"`
}

// ParseFiles decodes a {"files": [...]} document from provider text.
func ParseFiles(text string) ([]File, error) {
	var doc filesDocument
	if err := json.Unmarshal([]byte(StripFences(text)), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(doc.Files) == 0 {
		return nil, ErrNoFiles
	}
	return doc.Files, nil
}

// AuditFiles converts generated files for the quality auditor.
func AuditFiles(files []File) []quality.File {
	out := make([]quality.File, len(files))
	for i, f := range files {
		out[i] = quality.File{Path: f.Path, Content: f.Content, Language: f.Language}
	}
	return out
}

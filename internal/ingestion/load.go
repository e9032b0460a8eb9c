package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/schemas"
)

// Format is the kind of file a resume was loaded from.
type Format string

// Supported formats.
const (
	FormatPDF      Format = "pdf"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Source is resume text together with where it came from.
type Source struct {
	Path   string `json:"path"`
	Format Format `json:"format"`
	Text   string `json:"text"`
	Hash   string `json:"hash"` // sha256 of Text
}

// FormatForPath picks a Format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".txt", "":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported resume format %q", filepath.Ext(path))
	}
}

// LoadResumeText reads a resume in any supported format and returns its
// cleaned text. JSON files must hold ResumeData and are flattened with
// ResumeData.PlainText.
func LoadResumeText(path string) (*Source, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = ReadPDFText(path)
	case FormatJSON:
		data, derr := schemas.LoadResumeFile(path)
		if derr != nil {
			return nil, derr
		}
		text = data.PlainText()
	default:
		var raw []byte
		raw, err = os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		text = string(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resume %s: %w", path, err)
	}

	text = CleanText(text)
	return &Source{Path: path, Format: format, Text: text, Hash: computeHash(text)}, nil
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

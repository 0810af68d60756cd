package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gomutex/godocx"
)

// Exporter writes documents as .docx files into fresh temp files. Files are
// never removed here; each export supersedes the previous one for its caller.
type Exporter struct {
	tempDir string
}

// NewExporter uses tempDir for output, or the OS temp dir when empty.
func NewExporter(tempDir string) *Exporter {
	return &Exporter{tempDir: tempDir}
}

func (e *Exporter) Export(doc *Document) (*Metadata, error) {
	f, err := os.CreateTemp(e.tempDir, "planeacion-*"+Extension)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path) //nolint:errcheck
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	if err := writeDocx(doc, path); err != nil {
		os.Remove(path) //nolint:errcheck
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		Path:          path,
		Title:         doc.Title,
		Paragraphs:    len(doc.Paragraphs),
		WordCount:     doc.WordCount(),
		FileSizeBytes: info.Size(),
		CreatedAt:     time.Now(),
	}, nil
}

// writeDocx renders doc as a heading followed by one paragraph per line.
var writeDocx = func(doc *Document, path string) error {
	docx, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new docx: %w", err)
	}
	if _, err := docx.AddHeading(doc.Title, 0); err != nil {
		return fmt.Errorf("add heading: %w", err)
	}
	for _, p := range doc.Paragraphs {
		docx.AddParagraph(p)
	}
	if err := docx.SaveTo(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// SaveAs copies an exported file to dir/FileName and returns the new path.
func SaveAs(src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	dst := filepath.Join(dir, FileName)
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return dst, nil
}

package document

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Title is the fixed top-level heading of every lesson plan document.
	Title = "Planeación Didáctica"
	// FileName is the name offered to the user when saving or downloading.
	FileName  = "planeacion.docx"
	Extension = ".docx"
)

// Document is a heading followed by body paragraphs, in order.
type Document struct {
	Title      string
	Paragraphs []string
}

// Compose turns generated text into a Document with one paragraph per line
// that is non-blank after trimming. Blank lines produce no paragraph.
func Compose(text string) *Document {
	doc := &Document{Title: Title}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc.Paragraphs = append(doc.Paragraphs, line)
	}
	return doc
}

// WordCount counts whitespace-separated words across all paragraphs.
func (d *Document) WordCount() int {
	n := 0
	for _, p := range d.Paragraphs {
		n += len(strings.Fields(p))
	}
	return n
}

// Metadata describes an exported file
type Metadata struct {
	Path          string    `json:"path"`
	Title         string    `json:"title"`
	Paragraphs    int       `json:"paragraphs"`
	WordCount     int       `json:"word_count"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	CreatedAt     time.Time `json:"created_at"`
}

// FileSizeHuman returns human-readable file size
func (m Metadata) FileSizeHuman() string {
	bytes := m.FileSizeBytes
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}

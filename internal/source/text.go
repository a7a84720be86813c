package source

import (
	"context"
	"os"
	"strings"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/errors"
)

// TextSource reads pre-extracted plain text. Pages split on form feed,
// the page separator standard extractors emit. It serves offline runs and
// tests.
type TextSource struct {
	Path string
}

// NewTextSource creates a text source for the given file.
func NewTextSource(path string) *TextSource {
	return &TextSource{Path: path}
}

// Pages reads the file and splits it into pages.
func (s *TextSource) Pages(ctx context.Context) ([]Page, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading text file %s", s.Path)
	}
	return SplitPages(string(data)), nil
}

// SplitPages splits raw extracted text into pages on form-feed characters.
func SplitPages(text string) []Page {
	var pages []Page
	for _, chunk := range strings.Split(text, "\f") {
		chunk = strings.TrimSuffix(chunk, "\n")
		pages = append(pages, Page(strings.Split(chunk, "\n")))
	}
	return pages
}

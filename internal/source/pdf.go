package source

import (
	"context"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/errors"
)

// PDFSource extracts per-page plain text from a local PDF file, rows in
// reading order.
type PDFSource struct {
	Path string
}

// NewPDFSource creates a PDF source for the given file.
func NewPDFSource(path string) *PDFSource {
	return &PDFSource{Path: path}
}

// Pages extracts the text of every page.
func (s *PDFSource) Pages(ctx context.Context) ([]Page, error) {
	f, reader, err := pdf.Open(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening pdf %s", s.Path)
	}
	defer f.Close()

	var pages []Page
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := reader.Page(i)
		if p.V.IsNull() {
			pages = append(pages, Page{})
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, errors.Wrapf(err, "extracting text from page %d", i)
		}

		var page Page
		for _, row := range rows {
			var sb strings.Builder
			for _, word := range row.Content {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(strings.TrimSpace(word.S))
			}
			page = append(page, sb.String())
		}
		pages = append(pages, page)
	}
	return pages, nil
}

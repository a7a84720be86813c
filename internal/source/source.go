// Package source supplies per-page plain text from issuer documents: PDF
// extraction, pre-extracted text files and cached HTTP download.
package source

import (
	"context"
	"strings"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
)

// Page is one document page as plain-text lines.
type Page []string

// Source supplies the pages of one issuer document.
type Source interface {
	Pages(ctx context.Context) ([]Page, error)
}

// Lines flattens pages in page order into positioned raw lines, inserting
// one blank line between pages so ticker segments can be located across
// page boundaries. Lines are whitespace-trimmed.
func Lines(pages []Page) []models.RawLine {
	var out []models.RawLine
	for _, page := range pages {
		if len(out) > 0 {
			out = append(out, models.RawLine{Index: len(out), Text: ""})
		}
		for _, ln := range page {
			out = append(out, models.RawLine{Index: len(out), Text: strings.TrimSpace(ln)})
		}
	}
	return out
}

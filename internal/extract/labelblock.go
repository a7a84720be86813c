package extract

import (
	"strings"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/dates"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/errors"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
)

// Section labels of the label-block dialect.
const (
	labelDeclaration = "DECLARATION DATE:"
	labelExRecord    = "EX-DATE/RECORD DATE:"
	labelPay         = "PAY DATE:"
)

// blockState is the scanner state while accumulating labeled sections.
type blockState int

const (
	stateNone blockState = iota
	stateDeclaration
	stateExRecord
	statePay
)

// LabelTriple holds one positionally zipped declaration/ex/pay token triple.
type LabelTriple struct {
	Declaration string
	Ex          string
	Pay         string
}

// DefaultKeep is the retention cap on label-block triples. Documents keep
// stale history for reference; the cap limits output to the current plus
// upcoming distributions. Zero disables the cap.
const DefaultKeep = 3

// ParseLabelBlock scans a label-block segment. Text accumulates into the
// declaration, ex/record and pay sections as section-label lines switch the
// state; each section is then scanned for all D-Mon-YY shaped substrings
// and the sections are zipped positionally. Differing per-section date
// counts are a *errors.BlockMismatchError with no partial result. When more
// than keep triples are recovered, only the most recent keep are retained.
func ParseLabelBlock(lines []models.RawLine, keep int) ([]LabelTriple, error) {
	var decl, ex, pay strings.Builder
	state := stateNone

	appendTo := func(b *strings.Builder, s string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}

	for _, ln := range lines {
		text := ln.Text
		switch {
		case strings.HasPrefix(text, labelDeclaration):
			state = stateDeclaration
			appendTo(&decl, strings.TrimPrefix(text, labelDeclaration))
		case strings.HasPrefix(text, labelExRecord):
			state = stateExRecord
			appendTo(&ex, strings.TrimPrefix(text, labelExRecord))
		case strings.HasPrefix(text, labelPay):
			state = statePay
			appendTo(&pay, strings.TrimPrefix(text, labelPay))
		default:
			if strings.TrimSpace(text) == "" {
				continue
			}
			switch state {
			case stateDeclaration:
				appendTo(&decl, text)
			case stateExRecord:
				appendTo(&ex, text)
			case statePay:
				appendTo(&pay, text)
			}
		}
	}

	ds := dates.DatePattern.FindAllString(decl.String(), -1)
	es := dates.DatePattern.FindAllString(ex.String(), -1)
	ps := dates.DatePattern.FindAllString(pay.String(), -1)

	if len(ds) != len(es) || len(es) != len(ps) {
		return nil, errors.NewBlockMismatchError(len(ds), len(es), len(ps))
	}

	triples := make([]LabelTriple, len(ds))
	for i := range ds {
		triples[i] = LabelTriple{Declaration: ds[i], Ex: es[i], Pay: ps[i]}
	}
	if keep > 0 && len(triples) > keep {
		triples = triples[len(triples)-keep:]
	}
	return triples, nil
}

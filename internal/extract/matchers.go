// Package extract locates ticker segments in extracted document text and
// recognizes the per-issuer date-row dialects.
package extract

import (
	"regexp"
	"strings"
)

// RawRow holds the unparsed tokens recognized from one schedule row, in
// document column order.
type RawRow struct {
	PeriodLabel string
	Ex          string
	Record      string
	Pay         string
}

// RowMatcher recognizes one line of a date-row dialect.
type RowMatcher interface {
	TryMatch(line string) (RawRow, bool)
}

// ExciseLabel is the literal phrase marking the special excise/true-up
// distribution row that closes a month-row schedule.
const ExciseLabel = "Potential Excise Distribution"

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

const dateGroup = `(\d{1,2}/\d{1,2}/\d{4})`

var (
	monthRowRe = regexp.MustCompile(
		`^(` + strings.Join(monthNames, "|") + `)\s+` +
			dateGroup + `\s+` + dateGroup + `\s+` + dateGroup)
	footerRe = regexp.MustCompile(
		`^` + ExciseLabel + `\s+` + dateGroup + `\s+` + dateGroup + `\s+` + dateGroup)
)

// MonthRowMatcher recognizes lines beginning with a month name followed by
// three M/D/YYYY tokens in ex, record, payable order.
type MonthRowMatcher struct{}

func (MonthRowMatcher) TryMatch(line string) (RawRow, bool) {
	m := monthRowRe.FindStringSubmatch(line)
	if m == nil {
		return RawRow{}, false
	}
	return RawRow{PeriodLabel: m[1], Ex: m[2], Record: m[3], Pay: m[4]}, true
}

// FooterMatcher recognizes the excise-distribution footer row. It is
// structurally the month-row pattern with a synthetic period label, and it
// doubles as the segment's trusted end boundary.
type FooterMatcher struct{}

func (FooterMatcher) TryMatch(line string) (RawRow, bool) {
	m := footerRe.FindStringSubmatch(line)
	if m == nil {
		return RawRow{}, false
	}
	return RawRow{PeriodLabel: ExciseLabel, Ex: m[1], Record: m[2], Pay: m[3]}, true
}

package extract

import (
	"regexp"
	"strings"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/errors"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
)

// ScheduleHeader is the literal column-header line that opens a month-row
// schedule segment.
const ScheduleHeader = "Ex Date Record Date Payable Date"

// labelSegmentMarker is the literal that opens a label-block schedule
// segment ("... for Tax Purposes" headings precede each fund's block).
const labelSegmentMarker = "Purposes"

func tickerPattern(ticker string) *regexp.Regexp {
	// Whole-token match: SPY must not match inside SPYX.
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(ticker) + `\b`)
}

// lastTickerIndex returns the index of the last line containing the ticker
// as a whole word, or -1. Documents list the same ticker across amendments
// and the latest entry is the current schedule, so the last occurrence is
// authoritative.
func lastTickerIndex(lines []models.RawLine, ticker string) int {
	pattern := tickerPattern(ticker)
	last := -1
	for i, ln := range lines {
		if pattern.MatchString(ln.Text) {
			last = i
		}
	}
	return last
}

// Locate finds the half-open line range [start, end) of the month-row
// schedule segment for ticker: the last whole-word ticker occurrence, the
// nearest preceding header line, and the nearest following footer row. A
// missing boundary is an error, not a skip: a schedule without a verified
// footer cannot be trusted to be complete.
func Locate(lines []models.RawLine, ticker string) (start, end int, err error) {
	tickerIdx := lastTickerIndex(lines, ticker)
	if tickerIdx < 0 {
		return 0, 0, errors.ErrTickerNotFound
	}

	headerIdx := -1
	for i := tickerIdx; i >= 0; i-- {
		if strings.HasPrefix(lines[i].Text, ScheduleHeader) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return 0, 0, errors.ErrHeaderNotFound
	}

	footer := FooterMatcher{}
	footerIdx := -1
	for j := headerIdx + 1; j < len(lines); j++ {
		if _, ok := footer.TryMatch(lines[j].Text); ok {
			footerIdx = j
			break
		}
	}
	if footerIdx < 0 {
		return 0, 0, errors.ErrFooterNotFound
	}

	return headerIdx, footerIdx + 1, nil
}

// LocateLabelSegment finds the half-open line range [start, end) of the
// label-block segment for ticker: from the nearest segment marker line
// preceding the last whole-word ticker occurrence, up to the ticker line.
func LocateLabelSegment(lines []models.RawLine, ticker string) (start, end int, err error) {
	tickerIdx := lastTickerIndex(lines, ticker)
	if tickerIdx < 0 {
		return 0, 0, errors.ErrTickerNotFound
	}

	markerIdx := -1
	for i := tickerIdx - 1; i >= 0; i-- {
		if strings.Contains(lines[i].Text, labelSegmentMarker) {
			markerIdx = i
			break
		}
	}
	if markerIdx < 0 {
		return 0, 0, errors.ErrHeaderNotFound
	}

	return markerIdx, tickerIdx, nil
}

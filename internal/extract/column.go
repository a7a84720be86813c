package extract

import (
	"strings"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/dates"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
)

// ColumnRow holds the raw record, ex and payable date tokens of one
// column-position row.
type ColumnRow struct {
	Record string
	Ex     string
	Pay    string
}

// ColumnMatcher recognizes the column-position dialect: the ticker appears
// as a whole token in a whitespace-split line and the three tokens
// immediately after it are the record, ex and payable dates.
type ColumnMatcher struct {
	Ticker string
}

// Match scans lines for the ticker's row and consumes its continuation
// rows. A line carrying the ticker token is rejected unless all three
// following tokens parse as dates, because the ticker string also appears
// in unrelated prose. Continuation rows are consumed while their leading
// token parses as a date; the first non-conforming row ends the block.
func (m ColumnMatcher) Match(lines []models.RawLine) ([]ColumnRow, bool) {
	ticker := strings.ToUpper(m.Ticker)
	for i, ln := range lines {
		parts := strings.Fields(ln.Text)
		pos := -1
		for j, p := range parts {
			if strings.ToUpper(p) == ticker {
				pos = j
				break
			}
		}
		if pos < 0 || len(parts) < pos+4 {
			continue
		}
		rec, ex, pay := parts[pos+1], parts[pos+2], parts[pos+3]
		if !dates.IsDateToken(rec) || !dates.IsDateToken(ex) || !dates.IsDateToken(pay) {
			continue
		}

		rows := []ColumnRow{{Record: rec, Ex: ex, Pay: pay}}
		for _, extra := range lines[i+1:] {
			tok := strings.Fields(extra.Text)
			if len(tok) < 3 || !dates.IsDateToken(tok[0]) {
				break
			}
			rows = append(rows, ColumnRow{Record: tok[0], Ex: tok[1], Pay: tok[2]})
		}
		return rows, true
	}
	return nil, false
}

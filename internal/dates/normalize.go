// Package dates provides date-token normalization, quarter derivation and
// the holiday-aware business-day calendar.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/errors"
)

// Date is a canonical calendar date, independent of the textual dialect it
// was parsed from. No time zone, no clock.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Convention is a textual serialization convention for dates. Each source
// document dialect has its own and output preserves it per record type.
type Convention string

const (
	SlashYY   Convention = "M/D/YY"
	SlashYYYY Convention = "M/D/YYYY"
	ISO       Convention = "YYYY-MM-DD"
	DayMonYY  Convention = "D-Mon-YY"
)

// Quarter identifies a calendar quarter.
type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

var (
	// Matches M/D/YY, M/D/YYYY with slash or dash separators.
	monthFirstRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2}(?:\d{2})?)$`)
	// Matches YYYY/M/D with slash or dash separators.
	yearFirstRe = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})$`)
	// Matches D-Mon-YY and D-Mon-YYYY, e.g. 5-Jan-25.
	dayMonRe = regexp.MustCompile(`^(\d{1,2})-([A-Za-z]{3})-(\d{2}(?:\d{2})?)$`)
)

// DatePattern matches a date-shaped substring in the day-month-abbreviated
// dialect, for scanning free text.
var DatePattern = regexp.MustCompile(`\d{1,2}-[A-Za-z]{3}-\d{2,4}`)

// Normalize canonicalizes a single date token. Accepted dialects: M/D/YY,
// M/D/YYYY, YYYY/M/D (slash or dash separators) and D-Mon-YY[YY]. A first
// field of exactly four digits means year-first; otherwise month-first.
// Two-digit years are expanded by prefixing the current century.
// Unrecognized tokens return a *errors.FormatError.
func Normalize(token string) (Date, error) {
	tok := strings.TrimSpace(token)

	if m := yearFirstRe.FindStringSubmatch(tok); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]), tok)
	}
	if m := monthFirstRe.FindStringSubmatch(tok); m != nil {
		return makeDate(expandYear(m[3]), atoi(m[1]), atoi(m[2]), tok)
	}
	if m := dayMonRe.FindStringSubmatch(tok); m != nil {
		mon, ok := monthAbbrev(m[2])
		if !ok {
			return Date{}, errors.NewFormatError(token)
		}
		return makeDate(expandYear(m[3]), int(mon), atoi(m[1]), tok)
	}
	return Date{}, errors.NewFormatError(token)
}

// IsDateToken reports whether a token parses in any accepted dialect.
func IsDateToken(token string) bool {
	_, err := Normalize(token)
	return err == nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// expandYear prefixes the current century to two-digit years.
func expandYear(s string) int {
	y := atoi(s)
	if len(s) == 2 {
		return 2000 + y
	}
	return y
}

func makeDate(year, month, day int, token string) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, errors.NewFormatError(token)
	}
	// Round-trip through time.Date catches out-of-range days (2/30 etc).
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return Date{}, errors.NewFormatError(token)
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

func monthAbbrev(s string) (time.Month, bool) {
	abbr := strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	t, err := time.Parse("Jan", abbr)
	if err != nil {
		return 0, false
	}
	return t.Month(), true
}

// Time converts the date to a midnight-UTC time.Time.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// FromTime builds a Date from the calendar components of t.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// AddDays returns the date n calendar days after d (negative n steps back).
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// Weekday returns the day of week.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Format serializes the date in the given convention.
func (d Date) Format(c Convention) string {
	switch c {
	case SlashYY:
		return fmt.Sprintf("%d/%d/%02d", int(d.Month), d.Day, d.Year%100)
	case SlashYYYY:
		return fmt.Sprintf("%d/%d/%d", int(d.Month), d.Day, d.Year)
	case DayMonYY:
		return fmt.Sprintf("%d-%s-%02d", d.Day, d.Month.String()[:3], d.Year%100)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
	}
}

// String returns the ISO form.
func (d Date) String() string {
	return d.Format(ISO)
}

// Compact returns the YYYYMMDD form used by iCalendar DATE values.
func (d Date) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// QuarterOf maps a date to its calendar quarter from the date's own month,
// not any issuer's fiscal year.
func QuarterOf(d Date) Quarter {
	switch {
	case d.Month <= 3:
		return Q1
	case d.Month <= 6:
		return Q2
	case d.Month <= 9:
		return Q3
	default:
		return Q4
	}
}

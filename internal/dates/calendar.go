package dates

import (
	"sort"
	"time"
)

// Calendar is the process-wide business-day calendar: weekends plus the US
// federal holiday set, observed-shifted to the nearest workday. It is
// immutable after construction and safe for concurrent reads.
type Calendar struct {
	holidays map[Date]string
}

// NewCalendar builds a calendar centered on year. Backward walks from early
// January can leave the year, so holidays are materialized for the year and
// both neighbors. Extra ad-hoc non-business dates (market closures) may be
// appended from configuration.
func NewCalendar(year int, extra ...Date) *Calendar {
	c := &Calendar{holidays: make(map[Date]string)}
	for y := year - 1; y <= year+1; y++ {
		for _, h := range federalHolidays(y) {
			c.holidays[h.date] = h.name
		}
	}
	for _, d := range extra {
		c.holidays[d] = "Configured holiday"
	}
	return c
}

// IsHoliday reports whether d is a configured holiday.
func (c *Calendar) IsHoliday(d Date) bool {
	_, ok := c.holidays[d]
	return ok
}

// IsBusinessDay reports whether d is a weekday and not a holiday.
func (c *Calendar) IsBusinessDay(d Date) bool {
	wd := d.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !c.IsHoliday(d)
}

// BusinessDayBefore returns the last date strictly before d that is a
// business day. It walks backward one calendar day at a time: holiday
// clustering (a Friday holiday before a Monday holiday) can require
// stepping back more than one day, so a fixed offset is wrong.
func (c *Calendar) BusinessDayBefore(d Date) Date {
	prev := d.AddDays(-1)
	for !c.IsBusinessDay(prev) {
		prev = prev.AddDays(-1)
	}
	return prev
}

// Holiday is a named non-business date.
type Holiday struct {
	Date Date
	Name string
}

// Holidays returns the configured holidays within year, sorted by date.
func (c *Calendar) Holidays(year int) []Holiday {
	var out []Holiday
	for d, name := range c.holidays {
		if d.Year == year {
			out = append(out, Holiday{Date: d, Name: name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

type namedDate struct {
	date Date
	name string
}

// federalHolidays lists the US federal holidays for one year with fixed
// dates shifted to the nearest workday (Saturday observed Friday, Sunday
// observed Monday).
func federalHolidays(year int) []namedDate {
	return []namedDate{
		{observed(Date{year, time.January, 1}), "New Year's Day"},
		{nthWeekday(year, time.January, time.Monday, 3), "Martin Luther King Jr. Day"},
		{nthWeekday(year, time.February, time.Monday, 3), "Washington's Birthday"},
		{lastWeekday(year, time.May, time.Monday), "Memorial Day"},
		{observed(Date{year, time.June, 19}), "Juneteenth"},
		{observed(Date{year, time.July, 4}), "Independence Day"},
		{nthWeekday(year, time.September, time.Monday, 1), "Labor Day"},
		{nthWeekday(year, time.October, time.Monday, 2), "Columbus Day"},
		{observed(Date{year, time.November, 11}), "Veterans Day"},
		{nthWeekday(year, time.November, time.Thursday, 4), "Thanksgiving Day"},
		{observed(Date{year, time.December, 25}), "Christmas Day"},
	}
}

func observed(d Date) Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(-1)
	case time.Sunday:
		return d.AddDays(1)
	default:
		return d
	}
}

func nthWeekday(year int, month time.Month, wd time.Weekday, n int) Date {
	d := Date{year, month, 1}
	for d.Weekday() != wd {
		d = d.AddDays(1)
	}
	return d.AddDays(7 * (n - 1))
}

func lastWeekday(year int, month time.Month, wd time.Weekday) Date {
	// Last day of month = day before the first of the next month.
	d := FromTime(time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)).AddDays(-1)
	for d.Weekday() != wd {
		d = d.AddDays(-1)
	}
	return d
}

package dates

import (
	"testing"
	"time"
)

func TestBusinessDayBeforePlainWeek(t *testing.T) {
	cal := NewCalendar(2025)

	// Wednesday Jan 15 2025 -> Tuesday Jan 14.
	got := cal.BusinessDayBefore(Date{2025, time.January, 15})
	if want := (Date{2025, time.January, 14}); got != want {
		t.Errorf("BusinessDayBefore(Jan 15) = %v, want %v", got, want)
	}

	// Monday Mar 24 2025 -> Friday Mar 21 (weekend skipped).
	got = cal.BusinessDayBefore(Date{2025, time.March, 24})
	if want := (Date{2025, time.March, 21}); got != want {
		t.Errorf("BusinessDayBefore(Mon Mar 24) = %v, want %v", got, want)
	}
}

func TestBusinessDayBeforeSkipsHolidays(t *testing.T) {
	cal := NewCalendar(2025)

	// Jan 20 2025 is MLK Day (3rd Monday). The day after it steps over
	// both the holiday and the weekend to Friday Jan 17.
	got := cal.BusinessDayBefore(Date{2025, time.January, 21})
	if want := (Date{2025, time.January, 17}); got != want {
		t.Errorf("BusinessDayBefore(Jan 21) = %v, want %v", got, want)
	}
}

func TestBusinessDayBeforeHolidayCluster(t *testing.T) {
	// A Friday closure before a Monday holiday: the walk from Tuesday
	// must step back four calendar days, which no fixed offset does.
	friday := Date{2025, time.January, 17}
	cal := NewCalendar(2025, friday) // Mon Jan 20 is already MLK Day

	got := cal.BusinessDayBefore(Date{2025, time.January, 21})
	if want := (Date{2025, time.January, 16}); got != want {
		t.Errorf("BusinessDayBefore(Jan 21) = %v, want %v", got, want)
	}
}

func TestBusinessDayBeforeCrossesYear(t *testing.T) {
	cal := NewCalendar(2025)

	// Jan 2 2025 (Thursday): Jan 1 is a holiday, Dec 31 2024 is the
	// answer. Requires the neighbor year's holidays to be materialized.
	got := cal.BusinessDayBefore(Date{2025, time.January, 2})
	if want := (Date{2024, time.December, 31}); got != want {
		t.Errorf("BusinessDayBefore(Jan 2) = %v, want %v", got, want)
	}
}

func TestObservedShifts(t *testing.T) {
	// July 4 2026 is a Saturday, observed Friday July 3.
	cal := NewCalendar(2026)
	if !cal.IsHoliday(Date{2026, time.July, 3}) {
		t.Error("expected July 3 2026 to be the observed Independence Day")
	}
	if cal.IsHoliday(Date{2026, time.July, 4}) {
		t.Error("did not expect Saturday July 4 2026 itself to be marked")
	}

	// June 19 2027 is a Saturday, observed Friday June 18. January 1 2028
	// is a Saturday observed Friday Dec 31 2027 (neighbor-year coverage).
	cal = NewCalendar(2027)
	if !cal.IsHoliday(Date{2027, time.June, 18}) {
		t.Error("expected June 18 2027 to be the observed Juneteenth")
	}
	if !cal.IsHoliday(Date{2027, time.December, 31}) {
		t.Error("expected Dec 31 2027 to be the observed New Year's Day of 2028")
	}
}

func TestFloatingHolidays2025(t *testing.T) {
	cal := NewCalendar(2025)
	fixed := []Date{
		{2025, time.January, 20},   // MLK: 3rd Monday January
		{2025, time.February, 17},  // Washington: 3rd Monday February
		{2025, time.May, 26},       // Memorial: last Monday May
		{2025, time.September, 1},  // Labor: 1st Monday September
		{2025, time.October, 13},   // Columbus: 2nd Monday October
		{2025, time.November, 27},  // Thanksgiving: 4th Thursday November
	}
	for _, d := range fixed {
		if !cal.IsHoliday(d) {
			t.Errorf("expected %v to be a holiday", d)
		}
	}
}

func TestHolidaysListedSorted(t *testing.T) {
	cal := NewCalendar(2025, Date{2025, time.April, 18})
	holidays := cal.Holidays(2025)
	if len(holidays) != 12 {
		t.Fatalf("got %d holidays, want 12 (11 federal + 1 configured)", len(holidays))
	}
	for i := 1; i < len(holidays); i++ {
		if !holidays[i-1].Date.Before(holidays[i].Date) {
			t.Errorf("holidays not sorted at %d: %v !< %v", i, holidays[i-1].Date, holidays[i].Date)
		}
	}
}

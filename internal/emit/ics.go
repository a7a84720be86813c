package emit

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
)

// AlarmStyle selects the VALARM convention of an ICS artifact. Both
// conventions from the source documents are supported.
type AlarmStyle int

const (
	// AlarmAbsoluteNoon triggers at a fixed noon timestamp on the event
	// date. Events in this style also carry a RELATED-TO of their own UID.
	AlarmAbsoluteNoon AlarmStyle = iota
	// AlarmRelativeEvening triggers PT20H after the all-day event start,
	// an 8 PM reminder.
	AlarmRelativeEvening
)

const relativeTrigger = "PT20H"

// AlarmStyleFor returns the alarm convention an issuer dialect uses.
func AlarmStyleFor(format models.DocumentFormat) AlarmStyle {
	if format == models.FormatMonthRow {
		return AlarmAbsoluteNoon
	}
	return AlarmRelativeEvening
}

// ICSWriter generates iCalendar artifacts, one file per date field. Now is
// replaceable for tests.
type ICSWriter struct {
	Now func() time.Time
}

// NewICSWriter creates a writer stamped with the wall clock.
func NewICSWriter() *ICSWriter {
	return &ICSWriter{Now: time.Now}
}

// Write generates one ICS file for the given date field: one all-day
// VEVENT per schedule record carrying that field, each with a freshly
// generated UID and one VALARM. DTEND is the exclusive next day per the
// all-day convention. Returns the number of events written.
func (w *ICSWriter) Write(sched *models.Schedule, field models.DateField, path string) (int, error) {
	style := AlarmStyleFor(sched.Format)
	stamp := w.Now().UTC().Format("20060102T150405Z")

	cal := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		fmt.Sprintf("PRODID:-//divcal//%s Dividend Schedule//EN", sched.Ticker),
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}

	count := 0
	for _, r := range sched.Records {
		d := r.Field(field)
		if d.IsZero() {
			continue
		}
		uid := uuid.New().String()
		summary := fmt.Sprintf("%s %s %s", sched.Ticker, r.PeriodLabel, field)

		cal = append(cal,
			"BEGIN:VEVENT",
			"UID:"+uid,
			"DTSTAMP:"+stamp,
			"SUMMARY:"+summary,
			"DTSTART;VALUE=DATE:"+d.Compact(),
			"DTEND;VALUE=DATE:"+d.AddDays(1).Compact(),
		)
		if style == AlarmAbsoluteNoon {
			cal = append(cal,
				"RELATED-TO:"+uid,
				"BEGIN:VALARM",
				fmt.Sprintf("TRIGGER;VALUE=DATE-TIME:%sT120000Z", d.Compact()),
				"DESCRIPTION:Reminder",
				"ACTION:DISPLAY",
				"END:VALARM",
			)
		} else {
			cal = append(cal,
				"BEGIN:VALARM",
				"ACTION:DISPLAY",
				"DESCRIPTION:Reminder",
				"TRIGGER;RELATED=START:"+relativeTrigger,
				"END:VALARM",
			)
		}
		cal = append(cal, "END:VEVENT")
		count++
	}
	cal = append(cal, "END:VCALENDAR")

	err := writeFileAtomic(path, func(f *os.File) error {
		_, werr := f.WriteString(strings.Join(cal, "\r\n") + "\r\n")
		return werr
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

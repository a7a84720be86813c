package cli

import (
	"strings"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/dates"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
)

// FormatDate renders a date for display, or a dash when absent.
func FormatDate(d dates.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format(dates.ISO)
}

// FormatSelection renders a field selection as a comma-joined list.
func FormatSelection(sel models.FieldSelection) string {
	fields := sel.Fields()
	if len(fields) == 0 {
		return "none"
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// renderSchedule prints a schedule as a table.
func renderSchedule(output *Output, sched *models.Schedule) {
	table := NewTable(output, "Period", "Declaration", "Record", "Ex", "Ex -1", "Payable")
	for _, r := range sched.Records {
		table.AddRow(
			r.PeriodLabel,
			FormatDate(r.DeclarationDate),
			FormatDate(r.RecordDate),
			FormatDate(r.ExDate),
			FormatDate(r.ExDateMinusOne),
			FormatDate(r.PayableDate),
		)
	}
	table.Render()
}

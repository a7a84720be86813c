package extract

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/dates"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
)

// genScheduleDate generates dates away from month boundaries so that
// ex/record/pay offsets stay inside the same month.
func genScheduleDate() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(2020, 2030),
		gen.IntRange(1, 12),
		gen.IntRange(2, 24),
	).Map(func(vals []interface{}) dates.Date {
		return dates.Date{
			Year:  vals[0].(int),
			Month: time.Month(vals[1].(int)),
			Day:   vals[2].(int),
		}
	})
}

// A synthesized month-row segment always assembles into one record per
// data row, in document order, with the derived ex-1 strictly before ex.
func TestPropertyMonthRowRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("assembled records mirror the generated rows", prop.ForAll(
		func(ds []dates.Date) bool {
			doc := []models.RawLine{
				{Index: 0, Text: ScheduleHeader},
				{Index: 1, Text: "SPY SPDR S&P 500 ETF Trust"},
			}
			for _, d := range ds {
				doc = append(doc, models.RawLine{
					Index: len(doc),
					Text: fmt.Sprintf("%s %s %s %s",
						d.Month.String(),
						d.Format(dates.SlashYYYY),
						d.AddDays(1).Format(dates.SlashYYYY),
						d.AddDays(3).Format(dates.SlashYYYY)),
				})
			}
			doc = append(doc, models.RawLine{
				Index: len(doc),
				Text:  "Potential Excise Distribution 12/30/2030 12/31/2030 1/15/2031",
			})

			asm := NewAssembler(dates.NewCalendar(2025))
			sched, err := asm.Assemble(doc, "SPY", models.FormatMonthRow)
			if err != nil {
				t.Logf("Assemble failed: %v", err)
				return false
			}
			if len(sched.Records) != len(ds)+1 {
				t.Logf("got %d records, want %d", len(sched.Records), len(ds)+1)
				return false
			}
			for i, d := range ds {
				rec := sched.Records[i]
				if rec.ExDate != d || rec.RecordDate != d.AddDays(1) || rec.PayableDate != d.AddDays(3) {
					return false
				}
				if !rec.ExDateMinusOne.Before(rec.ExDate) {
					return false
				}
			}
			return sched.Records[len(ds)].PeriodLabel == ExciseLabel
		},
		gen.SliceOfN(3, genScheduleDate()),
	))

	properties.TestingRun(t)
}

// Segment location never returns a range that excludes the header or the
// footer it reports, regardless of surrounding noise.
func TestPropertyLocateBoundsContainSegment(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("located range is well-formed", prop.ForAll(
		func(noiseBefore, noiseAfter int) bool {
			var doc []models.RawLine
			add := func(text string) {
				doc = append(doc, models.RawLine{Index: len(doc), Text: text})
			}
			for i := 0; i < noiseBefore; i++ {
				add("prospectus boilerplate")
			}
			add(ScheduleHeader)
			add("SPY fund listing")
			add("January 1/15/2025 1/17/2025 1/31/2025")
			add("Potential Excise Distribution 12/30/2025 12/31/2025 1/15/2026")
			for i := 0; i < noiseAfter; i++ {
				add("trailing legal text")
			}

			start, end, err := Locate(doc, "SPY")
			if err != nil {
				t.Logf("Locate failed: %v", err)
				return false
			}
			return start == noiseBefore && end == noiseBefore+4 && start < end
		},
		gen.IntRange(0, 20),
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/dates"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
)

// FormatDate renders any set date in ISO form and only the zero date as a
// dash.
func TestPropertyFormatDate(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("set dates render as ISO, never as a dash", prop.ForAll(
		func(year, month, day int) bool {
			d := dates.Date{Year: year, Month: time.Month(month), Day: day}
			got := FormatDate(d)
			if got == "-" {
				return false
			}
			back, err := dates.Normalize(got)
			return err == nil && back == d
		},
		gen.IntRange(2000, 2099),
		gen.IntRange(1, 12),
		gen.IntRange(1, 28),
	))

	properties.TestingRun(t)

	if FormatDate(dates.Date{}) != "-" {
		t.Error("zero date must render as a dash")
	}
}

// FormatSelection lists exactly the enabled fields, in canonical order.
func TestPropertyFormatSelection(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("rendered list matches the enabled set", prop.ForAll(
		func(ex, exMinus1, record, payable, declaration bool) bool {
			sel := models.FieldSelection{
				ExDate:          ex,
				ExDateMinusOne:  exMinus1,
				RecordDate:      record,
				PayableDate:     payable,
				DeclarationDate: declaration,
			}
			got := FormatSelection(sel)
			if len(sel.Fields()) == 0 {
				return got == "none"
			}
			names := strings.Split(got, ", ")
			if len(names) != len(sel.Fields()) {
				t.Logf("rendered %q for %+v", got, sel)
				return false
			}
			for i, f := range sel.Fields() {
				if names[i] != string(f) {
					return false
				}
			}
			return true
		},
		gen.Bool(), gen.Bool(), gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}

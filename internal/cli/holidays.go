package cli

import (
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/dates"
)

func newHolidaysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "holidays [year]",
		Short: "Print the business-day calendar's holidays",
		Long: `Print the non-business days the ex-date-minus-one derivation walks
over: the US federal holidays (observed-shifted to the nearest workday)
plus any extra dates from [calendar] in the config.`,
		Example: `  divcal holidays
  divcal holidays 2026`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			year := time.Now().Year()
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					output.Error("Invalid year %q", args[0])
					return err
				}
				year = y
			}

			cal := dates.NewCalendar(year, app.Config.ExtraHolidayDates()...)
			holidays := cal.Holidays(year)

			if output.IsJSON() {
				return output.JSON(holidays)
			}

			bold := color.New(color.Bold)
			extra := color.New(color.FgYellow)
			bold.Fprintf(cmd.OutOrStdout(), "Holidays %d\n", year)
			for _, h := range holidays {
				day := h.Date.Weekday().String()[:3]
				line := h.Date.Format(dates.ISO) + "  " + day + "  " + h.Name
				if h.Name == "Configured holiday" {
					extra.Fprintln(cmd.OutOrStdout(), line)
				} else {
					output.Println(line)
				}
			}
			return nil
		},
	}
}

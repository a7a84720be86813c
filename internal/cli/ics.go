package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/emit"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/errors"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/pkg/utils"
)

func newICSCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ics <csv>",
		Short: "Generate ICS calendars from a previously written schedule CSV",
		Long: `Re-read a schedule CSV emitted by 'divcal extract' and generate ICS
calendar files from it. The CSV layout (and with it the issuer dialect and
alarm convention) is detected from the file's header.`,
		Example: `  divcal ics voo_vanguard_Schedule.csv --ticker VOO
  divcal ics spy.csv --ticker SPY --fields "Ex Date -1" "Payable Date"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			ticker, _ := cmd.Flags().GetString("ticker")
			outDir, _ := cmd.Flags().GetString("out")
			fieldNames, _ := cmd.Flags().GetStringSlice("fields")

			ticker = strings.ToUpper(strings.TrimSpace(ticker))
			if outDir == "" {
				outDir = app.Config.Output.Dir
			}

			sel := app.Config.ICSSelectionFor(ticker)
			if len(fieldNames) > 0 {
				var fields []models.DateField
				for _, name := range fieldNames {
					f, ok := models.ParseDateField(name)
					if !ok {
						output.Error("Unknown date field %q", name)
						return errors.ErrConfigInvalid
					}
					fields = append(fields, f)
				}
				sel = models.SelectionOf(fields...)
			}

			sched, err := emit.ReadScheduleCSV(args[0], ticker)
			if err != nil {
				output.Error("Reading schedule CSV failed: %v", err)
				return err
			}

			if !output.IsJSON() {
				renderSchedule(output, sched)
				output.Println()
			}

			writer := emit.NewICSWriter()
			var written []string
			for _, field := range sel.Fields() {
				path := filepath.Join(outDir, strings.ToLower(ticker)+"_"+emit.FileSafeField(field)+".ics")
				count, err := writer.Write(sched, field, path)
				if err != nil {
					output.Error("Writing %s failed: %v", path, err)
					return err
				}
				if count == 0 {
					output.Warning("%s: no %s dates in this schedule", path, field)
				}
				written = append(written, path)
				if !output.IsJSON() {
					output.Success("✓ %s (%s)", path, utils.Pluralize(count, "event", "events"))
				}
			}
			if output.IsJSON() {
				output.JSON(map[string]interface{}{"ticker": ticker, "files": written})
			}
			return nil
		},
	}

	cmd.Flags().String("ticker", "", "ticker symbol the CSV belongs to (required)")
	cmd.MarkFlagRequired("ticker")
	cmd.Flags().String("out", "", "output directory (default: output.dir from config)")
	cmd.Flags().StringSlice("fields", nil, "date fields to generate (default: [output.ics] from config)")

	return cmd
}

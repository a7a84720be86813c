// Package emit serializes assembled schedules to CSV and ICS artifacts.
// Writers go through a temp file renamed on success, so no partial or
// corrupt artifact is ever left behind.
package emit

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/dates"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/errors"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/pkg/utils"
)

// Each dialect keeps its own CSV layout and date convention; conventions
// are preserved per record type, never unified across dialects.

// MonthRowCSV is the month-row dialect layout, dates in M/D/YYYY.
type MonthRowCSV struct {
	Month       string `csv:"Month"`
	ExDate      string `csv:"Ex Date"`
	ExDateMin1  string `csv:"Ex Date -1"`
	RecordDate  string `csv:"Record Date"`
	PayableDate string `csv:"Payable Date"`
}

// QuarterCSV is the column-position dialect layout, dates in M/D/YY.
type QuarterCSV struct {
	Quarter     string `csv:"Quarter"`
	RecordDate  string `csv:"Record Date"`
	ExDateMin1  string `csv:"Ex-Dividend Date-1"`
	ExDate      string `csv:"Ex-Dividend Date"`
	PayableDate string `csv:"Payable Date"`
}

// LabelCSV is the label-block dialect layout, dates in ISO form.
type LabelCSV struct {
	DeclarationDate string `csv:"declaration_date"`
	ExDate          string `csv:"ex_date"`
	PayDate         string `csv:"pay_date"`
}

// ConventionFor returns the date serialization convention of a dialect.
func ConventionFor(format models.DocumentFormat) dates.Convention {
	switch format {
	case models.FormatMonthRow:
		return dates.SlashYYYY
	case models.FormatColumnPosition:
		return dates.SlashYY
	default:
		return dates.ISO
	}
}

func formatDate(d dates.Date, c dates.Convention) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(c)
}

// WriteScheduleCSV writes the full schedule in the layout of its dialect.
func WriteScheduleCSV(sched *models.Schedule, path string) error {
	conv := ConventionFor(sched.Format)
	var rows interface{}
	switch sched.Format {
	case models.FormatMonthRow:
		out := make([]*MonthRowCSV, 0, len(sched.Records))
		for _, r := range sched.Records {
			out = append(out, &MonthRowCSV{
				Month:       r.PeriodLabel,
				ExDate:      formatDate(r.ExDate, conv),
				ExDateMin1:  formatDate(r.ExDateMinusOne, conv),
				RecordDate:  formatDate(r.RecordDate, conv),
				PayableDate: formatDate(r.PayableDate, conv),
			})
		}
		rows = &out
	case models.FormatColumnPosition:
		out := make([]*QuarterCSV, 0, len(sched.Records))
		for _, r := range sched.Records {
			out = append(out, &QuarterCSV{
				Quarter:     string(r.Quarter),
				RecordDate:  formatDate(r.RecordDate, conv),
				ExDateMin1:  formatDate(r.ExDateMinusOne, conv),
				ExDate:      formatDate(r.ExDate, conv),
				PayableDate: formatDate(r.PayableDate, conv),
			})
		}
		rows = &out
	case models.FormatLabelBlock:
		out := make([]*LabelCSV, 0, len(sched.Records))
		for _, r := range sched.Records {
			out = append(out, &LabelCSV{
				DeclarationDate: formatDate(r.DeclarationDate, conv),
				ExDate:          formatDate(r.ExDate, conv),
				PayDate:         formatDate(r.PayableDate, conv),
			})
		}
		rows = &out
	default:
		return errors.ErrUnknownFormat
	}

	return writeFileAtomic(path, func(f *os.File) error {
		return gocsv.MarshalFile(rows, f)
	})
}

// WriteSplitCSVs writes one two-column CSV per enabled field, columns
// {period, field date}, under base + "_<field>.csv". Returns the paths
// written.
func WriteSplitCSVs(sched *models.Schedule, base string, sel models.FieldSelection) ([]string, error) {
	conv := ConventionFor(sched.Format)
	periodHeader := "Month"
	if sched.Format != models.FormatMonthRow {
		periodHeader = "Quarter"
	}

	var paths []string
	for _, field := range sel.Fields() {
		path := base + "_" + FileSafeField(field) + ".csv"
		err := writeFileAtomic(path, func(f *os.File) error {
			w := csv.NewWriter(f)
			if err := w.Write([]string{periodHeader, string(field)}); err != nil {
				return err
			}
			for _, r := range sched.Records {
				d := r.Field(field)
				if d.IsZero() {
					continue
				}
				if err := w.Write([]string{r.PeriodLabel, d.Format(conv)}); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		})
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FileSafeField makes a date field name usable in a file name.
func FileSafeField(field models.DateField) string {
	return utils.FileSafe(string(field))
}

// ReadScheduleCSV re-reads a previously emitted schedule CSV, detecting
// the layout from its header. This is the downstream path that generates
// ICS artifacts from an earlier run's CSV.
func ReadScheduleCSV(path, ticker string) (*models.Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	header, err := bufio.NewReader(f).ReadString('\n')
	if err != nil {
		return nil, errors.Wrapf(err, "reading header of %s", path)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	format, ok := detectLayout(header)
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "unrecognized CSV header in %s", path)
	}

	sched := &models.Schedule{Ticker: ticker, Format: format}
	switch format {
	case models.FormatMonthRow:
		var rows []*MonthRowCSV
		if err := gocsv.UnmarshalFile(f, &rows); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
		for _, row := range rows {
			rec := models.ScheduleRecord{PeriodLabel: row.Month}
			rec.ExDate, _ = dates.Normalize(row.ExDate)
			rec.ExDateMinusOne, _ = dates.Normalize(row.ExDateMin1)
			rec.RecordDate, _ = dates.Normalize(row.RecordDate)
			rec.PayableDate, _ = dates.Normalize(row.PayableDate)
			if !rec.ExDate.IsZero() {
				rec.Quarter = dates.QuarterOf(rec.ExDate)
			}
			sched.Records = append(sched.Records, rec)
		}
	case models.FormatColumnPosition:
		var rows []*QuarterCSV
		if err := gocsv.UnmarshalFile(f, &rows); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
		for _, row := range rows {
			rec := models.ScheduleRecord{
				PeriodLabel: row.Quarter,
				Quarter:     dates.Quarter(row.Quarter),
			}
			rec.RecordDate, _ = dates.Normalize(row.RecordDate)
			rec.ExDateMinusOne, _ = dates.Normalize(row.ExDateMin1)
			rec.ExDate, _ = dates.Normalize(row.ExDate)
			rec.PayableDate, _ = dates.Normalize(row.PayableDate)
			sched.Records = append(sched.Records, rec)
		}
	case models.FormatLabelBlock:
		var rows []*LabelCSV
		if err := gocsv.UnmarshalFile(f, &rows); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
		for _, row := range rows {
			var rec models.ScheduleRecord
			rec.DeclarationDate, _ = dates.Normalize(row.DeclarationDate)
			rec.ExDate, _ = dates.Normalize(row.ExDate)
			rec.PayableDate, _ = dates.Normalize(row.PayDate)
			if !rec.ExDate.IsZero() {
				rec.Quarter = dates.QuarterOf(rec.ExDate)
				rec.PeriodLabel = string(rec.Quarter)
			}
			sched.Records = append(sched.Records, rec)
		}
	}

	if len(sched.Records) == 0 {
		return nil, errors.ErrNoSchedule
	}
	return sched, nil
}

func detectLayout(header string) (models.DocumentFormat, bool) {
	switch {
	case strings.Contains(header, "declaration_date"):
		return models.FormatLabelBlock, true
	case strings.Contains(header, "Quarter"):
		return models.FormatColumnPosition, true
	case strings.Contains(header, "Month"):
		return models.FormatMonthRow, true
	}
	return "", false
}

// writeFileAtomic writes through a temp file in the target directory and
// renames it into place on success.
func writeFileAtomic(path string, write func(*os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

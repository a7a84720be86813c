package extract

import (
	"github.com/rs/zerolog"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/dates"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/errors"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
)

// Assembler drives segment location, dialect matching and date
// normalization into an ordered schedule for one security. It holds no
// cross-invocation mutable state: the calendar is read-only, so one
// assembler is safe to share across parallel per-ticker runs.
type Assembler struct {
	Calendar *dates.Calendar
	// Keep caps label-block triples to the most recent Keep; 0 disables.
	Keep   int
	Logger zerolog.Logger
}

// NewAssembler creates an assembler with the default retention cap.
func NewAssembler(cal *dates.Calendar) *Assembler {
	return &Assembler{
		Calendar: cal,
		Keep:     DefaultKeep,
		Logger:   zerolog.Nop(),
	}
}

// Assemble extracts the schedule for ticker from lines under the given
// document format. Lines matching no dialect are skipped silently: the
// documents interleave narrative text with tabular data. Record order is
// document order. Structural failures (missing boundaries, mismatched
// blocks) abort the ticker with no partial schedule.
func (a *Assembler) Assemble(lines []models.RawLine, ticker string, format models.DocumentFormat) (*models.Schedule, error) {
	var (
		records []models.ScheduleRecord
		err     error
	)
	switch format {
	case models.FormatMonthRow:
		records, err = a.assembleMonthRow(lines, ticker)
	case models.FormatColumnPosition:
		records, err = a.assembleColumnPosition(lines, ticker)
	case models.FormatLabelBlock:
		records, err = a.assembleLabelBlock(lines, ticker)
	default:
		return nil, errors.ErrUnknownFormat
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.ErrNoSchedule
	}
	return &models.Schedule{Ticker: ticker, Format: format, Records: records}, nil
}

func (a *Assembler) assembleMonthRow(lines []models.RawLine, ticker string) ([]models.ScheduleRecord, error) {
	start, end, err := Locate(lines, ticker)
	if err != nil {
		return nil, err
	}
	a.Logger.Debug().Str("ticker", ticker).Int("start", start).Int("end", end).Msg("Located segment")

	matchers := []RowMatcher{MonthRowMatcher{}, FooterMatcher{}}
	var records []models.ScheduleRecord
	for _, ln := range lines[start+1 : end] {
		for _, m := range matchers {
			row, ok := m.TryMatch(ln.Text)
			if !ok {
				continue
			}
			rec, ok := a.buildRow(row)
			if !ok {
				break // bad token inside a shaped row: drop the line
			}
			records = append(records, rec)
			break
		}
	}
	return records, nil
}

func (a *Assembler) assembleColumnPosition(lines []models.RawLine, ticker string) ([]models.ScheduleRecord, error) {
	rows, ok := ColumnMatcher{Ticker: ticker}.Match(lines)
	if !ok {
		return nil, errors.ErrTickerNotFound
	}

	var records []models.ScheduleRecord
	for _, row := range rows {
		rec, recErr := dates.Normalize(row.Record)
		ex, exErr := dates.Normalize(row.Ex)
		pay, payErr := dates.Normalize(row.Pay)
		if recErr != nil || exErr != nil || payErr != nil {
			continue
		}
		quarter := dates.QuarterOf(ex)
		records = append(records, models.ScheduleRecord{
			PeriodLabel:    string(quarter),
			Quarter:        quarter,
			RecordDate:     rec,
			ExDate:         ex,
			ExDateMinusOne: a.Calendar.BusinessDayBefore(ex),
			PayableDate:    pay,
		})
	}
	return records, nil
}

func (a *Assembler) assembleLabelBlock(lines []models.RawLine, ticker string) ([]models.ScheduleRecord, error) {
	start, end, err := LocateLabelSegment(lines, ticker)
	if err != nil {
		return nil, err
	}
	a.Logger.Debug().Str("ticker", ticker).Int("start", start).Int("end", end).Msg("Located segment")

	triples, err := ParseLabelBlock(lines[start:end], a.Keep)
	if err != nil {
		return nil, err
	}

	var records []models.ScheduleRecord
	for _, tr := range triples {
		decl, declErr := dates.Normalize(tr.Declaration)
		ex, exErr := dates.Normalize(tr.Ex)
		pay, payErr := dates.Normalize(tr.Pay)
		if declErr != nil || exErr != nil || payErr != nil {
			continue
		}
		quarter := dates.QuarterOf(ex)
		records = append(records, models.ScheduleRecord{
			PeriodLabel:     string(quarter),
			Quarter:         quarter,
			DeclarationDate: decl,
			// The document's combined EX-DATE/RECORD DATE section covers both.
			RecordDate:     ex,
			ExDate:         ex,
			ExDateMinusOne: a.Calendar.BusinessDayBefore(ex),
			PayableDate:    pay,
		})
	}
	return records, nil
}

// buildRow normalizes a month-row or footer row into a record. The ex-1
// date is always derived through the business-day calendar, never parsed.
func (a *Assembler) buildRow(row RawRow) (models.ScheduleRecord, bool) {
	ex, exErr := dates.Normalize(row.Ex)
	rec, recErr := dates.Normalize(row.Record)
	pay, payErr := dates.Normalize(row.Pay)
	if exErr != nil || recErr != nil || payErr != nil {
		return models.ScheduleRecord{}, false
	}
	return models.ScheduleRecord{
		PeriodLabel:    row.PeriodLabel,
		Quarter:        dates.QuarterOf(ex),
		RecordDate:     rec,
		ExDate:         ex,
		ExDateMinusOne: a.Calendar.BusinessDayBefore(ex),
		PayableDate:    pay,
	}, true
}

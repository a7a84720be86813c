// Package models provides domain models for schedule extraction.
package models

import (
	"strings"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/dates"
)

// DocumentFormat identifies an issuer document dialect.
type DocumentFormat string

const (
	// FormatMonthRow is the month-name row dialect with an excise footer
	// (SPDR-style schedules).
	FormatMonthRow DocumentFormat = "month-row"
	// FormatColumnPosition is the ticker-anchored column dialect with
	// continuation rows (Vanguard-style schedules).
	FormatColumnPosition DocumentFormat = "column-position"
	// FormatLabelBlock is the labeled multi-line section dialect
	// (iShares/BlackRock-style schedules).
	FormatLabelBlock DocumentFormat = "label-block"
)

// ParseDocumentFormat converts a configuration string to a DocumentFormat.
func ParseDocumentFormat(s string) (DocumentFormat, bool) {
	switch DocumentFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMonthRow:
		return FormatMonthRow, true
	case FormatColumnPosition:
		return FormatColumnPosition, true
	case FormatLabelBlock:
		return FormatLabelBlock, true
	}
	return "", false
}

// DateField enumerates the schedule date fields an output artifact can be
// generated for.
type DateField string

const (
	FieldExDate          DateField = "Ex Date"
	FieldExDateMinusOne  DateField = "Ex Date -1"
	FieldRecordDate      DateField = "Record Date"
	FieldPayableDate     DateField = "Payable Date"
	FieldDeclarationDate DateField = "Declaration Date"
)

// AllDateFields lists every selectable date field.
var AllDateFields = []DateField{
	FieldExDate,
	FieldExDateMinusOne,
	FieldRecordDate,
	FieldPayableDate,
	FieldDeclarationDate,
}

// ParseDateField converts a configuration string to a DateField. Matching
// is case-insensitive and tolerates underscores for spaces.
func ParseDateField(s string) (DateField, bool) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", " "))
	for _, f := range AllDateFields {
		if norm == strings.ToLower(string(f)) {
			return f, true
		}
	}
	return "", false
}

// FieldSelection enables output generation per date field. It replaces
// global enable flags: an explicit struct is passed into the emitter.
type FieldSelection struct {
	ExDate          bool `mapstructure:"ex_date"`
	ExDateMinusOne  bool `mapstructure:"ex_date_minus_1"`
	RecordDate      bool `mapstructure:"record_date"`
	PayableDate     bool `mapstructure:"payable_date"`
	DeclarationDate bool `mapstructure:"declaration_date"`
}

// Enabled reports whether the given field is selected.
func (s FieldSelection) Enabled(f DateField) bool {
	switch f {
	case FieldExDate:
		return s.ExDate
	case FieldExDateMinusOne:
		return s.ExDateMinusOne
	case FieldRecordDate:
		return s.RecordDate
	case FieldPayableDate:
		return s.PayableDate
	case FieldDeclarationDate:
		return s.DeclarationDate
	}
	return false
}

// Fields returns the selected fields in canonical order.
func (s FieldSelection) Fields() []DateField {
	var out []DateField
	for _, f := range AllDateFields {
		if s.Enabled(f) {
			out = append(out, f)
		}
	}
	return out
}

// SelectionOf builds a FieldSelection enabling exactly the given fields.
func SelectionOf(fields ...DateField) FieldSelection {
	var s FieldSelection
	for _, f := range fields {
		switch f {
		case FieldExDate:
			s.ExDate = true
		case FieldExDateMinusOne:
			s.ExDateMinusOne = true
		case FieldRecordDate:
			s.RecordDate = true
		case FieldPayableDate:
			s.PayableDate = true
		case FieldDeclarationDate:
			s.DeclarationDate = true
		}
	}
	return s
}

// RawLine is a single line of extracted text with its sequential position
// in the document. Produced once by the text extractor, never mutated.
type RawLine struct {
	Index int
	Text  string
}

// ScheduleRecord represents one distribution cycle for one security.
// Populated date fields always hold valid calendar dates; fields a dialect
// does not provide stay zero rather than defaulting to a sentinel.
// ExDateMinusOne is always derived from ExDate through the business-day
// calendar, never read from source text.
type ScheduleRecord struct {
	PeriodLabel     string
	Quarter         dates.Quarter
	DeclarationDate dates.Date
	RecordDate      dates.Date
	ExDate          dates.Date
	ExDateMinusOne  dates.Date
	PayableDate     dates.Date
}

// Field returns the record's value for the given date field. The zero Date
// means the dialect did not provide that field.
func (r ScheduleRecord) Field(f DateField) dates.Date {
	switch f {
	case FieldExDate:
		return r.ExDate
	case FieldExDateMinusOne:
		return r.ExDateMinusOne
	case FieldRecordDate:
		return r.RecordDate
	case FieldPayableDate:
		return r.PayableDate
	case FieldDeclarationDate:
		return r.DeclarationDate
	}
	return dates.Date{}
}

// Schedule is the ordered distribution schedule assembled for one security
// in one run. Record order is document order and the schedule is immutable
// once assembled.
type Schedule struct {
	Ticker  string
	Issuer  string
	Format  DocumentFormat
	Records []ScheduleRecord
}

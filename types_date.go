package tourbook

import "github.com/tourbook/tourbook/date"

// Aliases into the date package, so callers of the book rarely need a second
// import.

type (
	Date   = date.Date
	Period = date.Period
	Range  = date.Range
)

const (
	Daily     = date.Daily
	Weekly    = date.Weekly
	Monthly   = date.Monthly
	Quarterly = date.Quarterly
	Yearly    = date.Yearly
)

// Today returns the current date.
func Today() Date { return date.Today() }

// ParseDate parses a Date from a string, leniently.
func ParseDate(s string) (Date, error) { return date.Parse(s) }

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(s string) Date { return date.MustParse(s) }

// ParsePeriod parses a standard calendar period name.
func ParsePeriod(s string) (Period, error) { return date.ParsePeriod(s) }

// NewRange returns the standard period range containing d.
func NewRange(d Date, p Period) Range { return date.NewRange(d, p) }

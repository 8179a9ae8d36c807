package tourbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tourbook/tourbook/date"
)

// HomeCurrency is the single reporting currency every aggregate is
// normalized into.
const HomeCurrency = "TWD"

// Currencies lists the currency codes an entry or preparation item may use.
var Currencies = []string{"TWD", "JPY", "USD"}

// EntryType discriminates income from expense entries.
type EntryType string

const (
	Income  EntryType = "income"
	Expense EntryType = "expense"
)

// ParseEntryType parses a string into an EntryType.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case Income, Expense:
		return EntryType(s), nil
	default:
		return "", fmt.Errorf("unknown entry type: %q", s)
	}
}

// PrepCategory classifies a preparation item.
type PrepCategory string

const (
	Hotel     PrepCategory = "hotel"
	Flight    PrepCategory = "flight"
	Transport PrepCategory = "transport"
	Other     PrepCategory = "other"
)

// ParsePrepCategory parses a string into a PrepCategory.
func ParsePrepCategory(s string) (PrepCategory, error) {
	switch PrepCategory(s) {
	case Hotel, Flight, Transport, Other:
		return PrepCategory(s), nil
	default:
		return "", fmt.Errorf("unknown preparation category: %q", s)
	}
}

// PrepStatus is the completion status of a preparation item.
type PrepStatus string

const (
	Pending   PrepStatus = "pending"
	Completed PrepStatus = "completed"
)

// ParsePrepStatus parses a string into a PrepStatus.
func ParsePrepStatus(s string) (PrepStatus, error) {
	switch PrepStatus(s) {
	case Pending, Completed:
		return PrepStatus(s), nil
	default:
		return "", fmt.Errorf("unknown preparation status: %q", s)
	}
}

func validCurrency(c string) bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}

// Entry is a single income or expense record in a source currency.
// Its id is unique within its owning tour only; lookups must always be
// scoped by (tour, id).
type Entry struct {
	ID          int
	Date        date.Date
	Description string
	Type        EntryType
	Amount      Money
}

// Validate checks an entry draft for correctness. It sets the date to today
// if it's zero. The id is not checked: the book assigns it.
func (e *Entry) Validate() error {
	if e.Date.IsZero() {
		e.Date = date.Today()
	}
	if e.Description == "" {
		return errors.New("entry description is missing")
	}
	if _, err := ParseEntryType(string(e.Type)); err != nil {
		return err
	}
	if !validCurrency(e.Amount.Currency()) {
		return fmt.Errorf("unknown currency: %q", e.Amount.Currency())
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("entry amount must not be negative, got %s", e.Amount)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Entry.
func (e Entry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", e.ID)
	w.Append("date", e.Date)
	w.Append("description", e.Description)
	w.Append("type", e.Type)
	w.EmbedFrom(e.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Entry.
// It handles the structure where amount and currency are separate fields.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID          int             `json:"id"`
		Date        date.Date       `json:"date"`
		Description string          `json:"description"`
		Type        EntryType       `json:"type"`
		Amount      decimal.Decimal `json:"amount"`
		Currency    string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*e = Entry{
		ID:          temp.ID,
		Date:        temp.Date,
		Description: temp.Description,
		Type:        temp.Type,
		Amount:      M(temp.Amount, temp.Currency),
	}
	return nil
}

// PrepItem is a planned cost item (hotel, flight, ...) with a completion
// status. Its cost counts as expense regardless of status: the model is
// budgeted cost, not cash-basis spend.
type PrepItem struct {
	ID       int
	Category PrepCategory
	Name     string
	Status   PrepStatus
	Cost     Money
	Due      date.Date
	Notes    string
}

// Validate checks a preparation item draft for correctness. An empty status
// defaults to pending; a zero due date defaults to today.
func (p *PrepItem) Validate() error {
	if p.Due.IsZero() {
		p.Due = date.Today()
	}
	if p.Status == "" {
		p.Status = Pending
	}
	if p.Name == "" {
		return errors.New("preparation item name is missing")
	}
	if _, err := ParsePrepCategory(string(p.Category)); err != nil {
		return err
	}
	if _, err := ParsePrepStatus(string(p.Status)); err != nil {
		return err
	}
	if !validCurrency(p.Cost.Currency()) {
		return fmt.Errorf("unknown currency: %q", p.Cost.Currency())
	}
	if p.Cost.IsNegative() {
		return fmt.Errorf("preparation cost must not be negative, got %s", p.Cost)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for PrepItem.
func (p PrepItem) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("category", p.Category)
	w.Append("name", p.Name)
	w.Append("status", p.Status)
	w.Append("cost", p.Cost.Decimal())
	w.Append("currency", p.Cost.Currency())
	w.Append("due", p.Due)
	w.Optional("notes", p.Notes)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for PrepItem.
func (p *PrepItem) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       int             `json:"id"`
		Category PrepCategory    `json:"category"`
		Name     string          `json:"name"`
		Status   PrepStatus      `json:"status"`
		Cost     decimal.Decimal `json:"cost"`
		Currency string          `json:"currency"`
		Due      date.Date       `json:"due"`
		Notes    string          `json:"notes"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*p = PrepItem{
		ID:       temp.ID,
		Category: temp.Category,
		Name:     temp.Name,
		Status:   temp.Status,
		Cost:     M(temp.Cost, temp.Currency),
		Due:      temp.Due,
		Notes:    temp.Notes,
	}
	return nil
}

// Tour is a named, dated group owning its own entries and preparation items.
// Record ids are assigned from per-tour monotonic counters that are persisted
// with the tour and never derived from current list length, so a deleted id
// is never handed out again.
type Tour struct {
	ID      int
	Name    string
	Start   date.Date
	Entries []Entry
	Preps   []PrepItem

	nextEntryID int
	nextPrepID  int
}

// Entry returns the entry with this id, or nil if unknown.
func (t *Tour) Entry(id int) *Entry {
	for i := range t.Entries {
		if t.Entries[i].ID == id {
			return &t.Entries[i]
		}
	}
	return nil
}

// Prep returns the preparation item with this id, or nil if unknown.
func (t *Tour) Prep(id int) *PrepItem {
	for i := range t.Preps {
		if t.Preps[i].ID == id {
			return &t.Preps[i]
		}
	}
	return nil
}

// EntriesIn returns the entries whose date falls within r, preserving
// stored order.
func (t *Tour) EntriesIn(r date.Range) []Entry {
	var out []Entry
	for _, e := range t.Entries {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// SortedByDate returns a copy of the entries ordered by date. The sort is
// stable, so entries on the same day keep their stored order. Stored order
// itself never changes; listings and exports apply this themselves.
func SortedByDate(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case b.Date.Before(a.Date):
			return 1
		}
		return 0
	})
	return out
}

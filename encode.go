package tourbook

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// bookVersion is the schema version written into every encoded book. Readers
// accept any version up to the current one; an unknown newer version fails
// the decode so an old binary never silently mangles a newer file.
const bookVersion = 1

// tourRec is the persisted shape of a Tour, counters included.
type tourRec struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Start       Date       `json:"start"`
	NextEntryID int        `json:"nextEntryId"`
	NextPrepID  int        `json:"nextPrepId"`
	Entries     []Entry    `json:"entries"`
	Preps       []PrepItem `json:"preps"`
}

// bookRec is the single-slot envelope: version, book counter, tours.
type bookRec struct {
	Version    int       `json:"version"`
	NextTourID int       `json:"nextTourId"`
	Tours      []tourRec `json:"tours"`
}

// EncodeBook writes the whole book as one canonical JSON document.
func EncodeBook(w io.Writer, b *Book) error {
	decimal.MarshalJSONWithoutQuotes = true

	var obj jsonObjectWriter
	obj.Append("version", bookVersion)
	obj.Append("nextTourId", b.nextTourID)

	tours := make([]json.RawMessage, 0, len(b.tours))
	for _, t := range b.tours {
		raw, err := encodeTour(t)
		if err != nil {
			return fmt.Errorf("could not encode tour %d: %w", t.ID, err)
		}
		tours = append(tours, raw)
	}
	obj.Append("tours", tours)

	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode book: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("could not write book: %w", err)
	}
	return nil
}

func encodeTour(t *Tour) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("name", t.Name)
	w.Append("start", t.Start)
	w.Append("nextEntryId", t.nextEntryID)
	w.Append("nextPrepId", t.nextPrepID)
	if t.Entries == nil {
		w.Append("entries", []Entry{})
	} else {
		w.Append("entries", t.Entries)
	}
	if t.Preps == nil {
		w.Append("preps", []PrepItem{})
	} else {
		w.Append("preps", t.Preps)
	}
	return w.MarshalJSON()
}

// DecodeBook reads a book previously written by EncodeBook.
func DecodeBook(r io.Reader) (*Book, error) {
	var rec bookRec
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("could not decode book: %w", err)
	}
	if rec.Version > bookVersion {
		return nil, fmt.Errorf("book file has version %d, this build reads up to %d", rec.Version, bookVersion)
	}

	b := NewBook()
	if rec.NextTourID > 0 {
		b.nextTourID = rec.NextTourID
	}
	for _, tr := range rec.Tours {
		t := &Tour{
			ID:          tr.ID,
			Name:        tr.Name,
			Start:       tr.Start,
			Entries:     tr.Entries,
			Preps:       tr.Preps,
			nextEntryID: tr.NextEntryID,
			nextPrepID:  tr.NextPrepID,
		}
		// Files written before counters existed get one recomputed from the
		// highest id seen; from then on it is persisted and never derived.
		if t.nextEntryID <= 0 {
			t.nextEntryID = 1
			for _, e := range t.Entries {
				if e.ID >= t.nextEntryID {
					t.nextEntryID = e.ID + 1
				}
			}
		}
		if t.nextPrepID <= 0 {
			t.nextPrepID = 1
			for _, p := range t.Preps {
				if p.ID >= t.nextPrepID {
					t.nextPrepID = p.ID + 1
				}
			}
		}
		if t.ID >= b.nextTourID {
			b.nextTourID = t.ID + 1
		}
		b.tours = append(b.tours, t)
	}
	return b, nil
}

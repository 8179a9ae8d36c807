package tourbook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourbook/tourbook/date"
)

// ratesVersion is the schema version written into every encoded rates file.
const ratesVersion = 1

// rateRec is the persisted shape of one table rate.
type rateRec struct {
	Currency    string          `json:"currency"`
	Rate        decimal.Decimal `json:"rate"`
	LastUpdated time.Time       `json:"lastUpdated,omitempty"`
}

// seriesRec is the persisted fetch history of one currency.
type seriesRec struct {
	Currency string `json:"currency"`
	Series   []struct {
		Date Date    `json:"date"`
		Rate float64 `json:"rate"`
	} `json:"series"`
}

type ratesRec struct {
	Version int         `json:"version"`
	Rates   []rateRec   `json:"rates"`
	History []seriesRec `json:"history"`
}

// EncodeRates writes the provider's current table and fetch history as one
// canonical JSON document, so the last successful refresh outlives the
// process.
func EncodeRates(w io.Writer, p *Provider) error {
	decimal.MarshalJSONWithoutQuotes = true

	p.mu.RLock()
	defer p.mu.RUnlock()

	var obj jsonObjectWriter
	obj.Append("version", ratesVersion)

	rates := make([]json.RawMessage, 0, len(p.table.rates))
	for _, c := range p.table.Currencies() {
		if c == HomeCurrency {
			// Pinned at 1.0 by every table constructor, no point storing it.
			continue
		}
		r := p.table.rates[c]
		var rw jsonObjectWriter
		rw.Append("currency", r.Currency)
		rw.Append("rate", r.Rate)
		if !r.LastUpdated.IsZero() {
			rw.Append("lastUpdated", r.LastUpdated.UTC().Format(time.RFC3339))
		}
		raw, err := rw.MarshalJSON()
		if err != nil {
			return fmt.Errorf("could not encode rate for %s: %w", c, err)
		}
		rates = append(rates, raw)
	}
	obj.Append("rates", rates)

	histories := make([]json.RawMessage, 0, len(p.history))
	for _, c := range Currencies {
		h, ok := p.history[c]
		if !ok || h.Len() == 0 {
			continue
		}
		points := make([]json.RawMessage, 0, h.Len())
		for d, v := range h.Values() {
			var pw jsonObjectWriter
			pw.Append("date", d)
			pw.Append("rate", v)
			raw, err := pw.MarshalJSON()
			if err != nil {
				return fmt.Errorf("could not encode history point for %s: %w", c, err)
			}
			points = append(points, raw)
		}
		var hw jsonObjectWriter
		hw.Append("currency", c)
		hw.Append("series", points)
		raw, err := hw.MarshalJSON()
		if err != nil {
			return fmt.Errorf("could not encode history for %s: %w", c, err)
		}
		histories = append(histories, raw)
	}
	obj.Append("history", histories)

	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode rates: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("could not write rates: %w", err)
	}
	return nil
}

// DecodeRates reads a rates file previously written by EncodeRates and
// returns a provider seeded with it. A file without any rate yields the
// fallback table.
func DecodeRates(r io.Reader) (*Provider, error) {
	var rec ratesRec
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("could not decode rates: %w", err)
	}
	if rec.Version > ratesVersion {
		return nil, fmt.Errorf("rates file has version %d, this build reads up to %d", rec.Version, ratesVersion)
	}

	p := NewProvider()
	if len(rec.Rates) > 0 {
		rates := make([]Rate, 0, len(rec.Rates))
		for _, rr := range rec.Rates {
			rates = append(rates, Rate{Currency: rr.Currency, Rate: rr.Rate, LastUpdated: rr.LastUpdated})
		}
		p.table = NewRateTable(rates...)
	}
	for _, hr := range rec.History {
		h := &date.History[float64]{}
		for _, pt := range hr.Series {
			h.Append(pt.Date, pt.Rate)
		}
		if h.Len() > 0 {
			p.history[hr.Currency] = h
		}
	}
	return p, nil
}

// LoadRates reads the last fetched rates from their slot. Like LoadBook it
// never returns an error: a missing or undecodable file yields a provider
// seeded with the built-in fallback table.
func LoadRates(path string) *Provider {
	content, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("could not read rates file %q (using fallback rates): %v", path, err)
		}
		return NewProvider()
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return NewProvider()
	}
	p, err := DecodeRates(bytes.NewReader(content))
	if err != nil {
		log.Printf("could not decode rates file %q (using fallback rates): %v", path, err)
		return NewProvider()
	}
	return p
}

// SaveRates snapshots the provider into its slot, temp file and rename like
// SaveBook.
func SaveRates(path string, p *Provider) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for rates %q: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temp file for rates %q: %w", path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := EncodeRates(tmp, p); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temp file for rates %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not replace rates file %q: %w", path, err)
	}
	return nil
}

package tourbook

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourbook/tourbook/date"
)

// Rate is the multiplier converting 1 unit of a currency into the home
// currency (TWD).
type Rate struct {
	Currency    string
	Rate        decimal.Decimal
	LastUpdated time.Time
}

// RateTable is the current mapping from currency code to its rate into the
// home currency. A table is immutable once built; the provider replaces it
// wholesale on each successful refresh, never per-currency.
type RateTable struct {
	rates map[string]Rate
}

// NewRateTable builds a table from the given rates. The home currency is
// always pinned at 1.0, whatever the input says.
func NewRateTable(rates ...Rate) RateTable {
	t := RateTable{rates: make(map[string]Rate, len(rates)+1)}
	for _, r := range rates {
		t.rates[r.Currency] = r
	}
	t.rates[HomeCurrency] = Rate{Currency: HomeCurrency, Rate: decimal.NewFromInt(1)}
	return t
}

// DefaultRateTable returns the built-in fallback rates used until a refresh
// succeeds.
func DefaultRateTable() RateTable {
	return NewRateTable(
		Rate{Currency: "JPY", Rate: decimal.NewFromFloat(0.21)},
		Rate{Currency: "USD", Rate: decimal.NewFromFloat(31.5)},
	)
}

// Rate returns the rate for a currency and whether it is known.
func (t RateTable) Rate(currency string) (Rate, bool) {
	r, ok := t.rates[currency]
	return r, ok
}

// Currencies returns the currency codes present in the table, home currency
// included, in the canonical order of the Currencies list.
func (t RateTable) Currencies() []string {
	out := make([]string, 0, len(t.rates))
	for _, c := range Currencies {
		if _, ok := t.rates[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Convert normalizes a monetary value into the home currency. It is pure and
// applies no rounding; formatting is a presentation concern. A currency
// missing from the table converts at rate 1.0 rather than failing.
func (t RateTable) Convert(m Money) Money {
	rate := decimal.NewFromInt(1)
	if r, ok := t.rates[m.Currency()]; ok {
		rate = r.Rate
	}
	return M(m.Decimal().Mul(rate), HomeCurrency)
}

// Provider holds the process-wide current rate table and a per-currency
// history of fetched rates. Reads and the background refresher may touch it
// from different goroutines.
type Provider struct {
	mu      sync.RWMutex
	table   RateTable
	history map[string]*date.History[float64]
}

// NewProvider creates a provider seeded with the default fallback table.
func NewProvider() *Provider {
	return &Provider{
		table:   DefaultRateTable(),
		history: make(map[string]*date.History[float64]),
	}
}

// Table returns the current rate table.
func (p *Provider) Table() RateTable {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.table
}

// publish replaces the whole table and records each rate in the history.
func (p *Provider) publish(t RateTable) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.table = t
	today := date.Today()
	for c, r := range t.rates {
		h, ok := p.history[c]
		if !ok {
			h = &date.History[float64]{}
			p.history[c] = h
		}
		h.Append(today, r.Rate.InexactFloat64())
	}
}

// History returns the recorded rate series for a currency, or nil if none
// was ever fetched.
func (p *Provider) History(currency string) *date.History[float64] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.history[currency]
}

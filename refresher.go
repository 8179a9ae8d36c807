package tourbook

import (
	"context"
	"log"
	"net/http"
	"time"
)

// DefaultRefreshInterval is how often the background refresher re-fetches
// the bank rate board.
const DefaultRefreshInterval = 30 * time.Minute

// Refresh fetches the bank rates once and publishes them to the provider.
// On any fetch or parse failure the provider's previous table is left
// untouched. A fetch that completes after ctx is cancelled is dropped
// without publishing.
func (p *Provider) Refresh(ctx context.Context, client *http.Client) error {
	table, err := FetchRateTable(client)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		// The owner tore us down while the fetch was in flight.
		return ctx.Err()
	}
	p.publish(table)
	return nil
}

// Run refreshes immediately and then on every tick of the interval, until
// ctx is cancelled. Failures are logged and swallowed: readers keep the
// last known good table and the next tick retries.
func (p *Provider) Run(ctx context.Context, client *http.Client, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if err := p.Refresh(ctx, client); err != nil {
		log.Printf("rate refresh failed (keeping previous rates): %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Refresh(ctx, client); err != nil {
				log.Printf("rate refresh failed (keeping previous rates): %v", err)
			}
		}
	}
}

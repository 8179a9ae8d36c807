package tourbook

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// roundTripperFunc lets a test serve a canned rate board to any request.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func boardClient(status int, body string) *http.Client {
	return &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	})}
}

func TestProvider_Refresh(t *testing.T) {
	p := NewProvider()
	client := boardClient(http.StatusOK, `[
		{"currency": "USD", "buy": 32.0},
		{"currency": "JPY", "buy": 4.0}
	]`)

	if err := p.Refresh(context.Background(), client); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	usd, ok := p.Table().Rate("USD")
	if !ok || !usd.Rate.Equal(decimal.NewFromFloat(32.0)) {
		t.Errorf("USD rate after refresh = %v, want 32", usd.Rate)
	}
	h := p.History("USD")
	if h == nil || h.Len() != 1 {
		t.Fatalf("USD history after refresh = %v, want one sample", h)
	}
	if _, v := h.Latest(); v != 32.0 {
		t.Errorf("latest USD history sample = %v, want 32", v)
	}
}

func TestProvider_Refresh_FailureKeepsPreviousTable(t *testing.T) {
	p := NewProvider()
	before, _ := p.Table().Rate("USD")

	testCases := []struct {
		name   string
		client *http.Client
	}{
		{name: "http error", client: boardClient(http.StatusInternalServerError, "boom")},
		{name: "garbage body", client: boardClient(http.StatusOK, "<html>maintenance</html>")},
		{name: "incomplete board", client: boardClient(http.StatusOK, `[{"currency": "USD", "buy": 32.0}]`)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := p.Refresh(context.Background(), tc.client); err == nil {
				t.Fatal("want refresh error, got nil")
			}
			after, ok := p.Table().Rate("USD")
			if !ok || !after.Rate.Equal(before.Rate) {
				t.Errorf("USD rate changed on failed refresh: %v, want %v", after.Rate, before.Rate)
			}
		})
	}
}

func TestProvider_Refresh_DropsResultAfterCancel(t *testing.T) {
	p := NewProvider()
	before, _ := p.Table().Rate("USD")

	ctx, cancel := context.WithCancel(context.Background())
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		// Teardown races the fetch; the response lands after cancellation.
		cancel()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body: io.NopCloser(strings.NewReader(`[
				{"currency": "USD", "buy": 99.0},
				{"currency": "JPY", "buy": 4.0}
			]`)),
			Header:  make(http.Header),
			Request: req,
		}, nil
	})}

	if err := p.Refresh(ctx, client); err == nil {
		t.Fatal("want context error, got nil")
	}
	after, _ := p.Table().Rate("USD")
	if !after.Rate.Equal(before.Rate) {
		t.Errorf("cancelled refresh published a table: USD = %v, want %v", after.Rate, before.Rate)
	}
}

func TestProvider_HistoryIsNilForUnknownCurrency(t *testing.T) {
	p := NewProvider()
	if h := p.History("EUR"); h != nil {
		t.Errorf("History(EUR) = %v, want nil before any fetch", h)
	}
}

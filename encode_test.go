package tourbook

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fixtureBook builds a book with two tours, entries, preps and a deletion so
// the persisted counters run ahead of the stored ids. Some amounts carry
// fractions finer than their currency's minor unit on purpose.
func fixtureBook(t *testing.T) *Book {
	t.Helper()
	b := NewBook()
	tokyo := newTestTour(t, b, "Tokyo")
	if _, err := b.AddOrUpdateEntry(tokyo.ID, Entry{
		Description: "guiding fee", Type: Income, Amount: M(50000, "JPY"),
		Date: MustParseDate("2025-08-02"),
	}, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddOrUpdateEntry(tokyo.ID, Entry{
		Description: "dinner", Type: Expense, Amount: M(3200.5, "JPY"),
		Date: MustParseDate("2025-08-02"),
	}, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddOrUpdatePrepItem(tokyo.ID, PrepItem{
		Category: Flight, Name: "TPE-NRT", Cost: M(8000.125, "TWD"),
		Due: MustParseDate("2025-07-15"), Notes: "morning flight",
	}, 0); err != nil {
		t.Fatal(err)
	}
	if err := b.SetPrepItemStatus(tokyo.ID, 1, Completed); err != nil {
		t.Fatal(err)
	}

	sf := newTestTour(t, b, "San Francisco")
	if _, err := b.AddOrUpdateEntry(sf.ID, Entry{
		Description: "car rental", Type: Expense, Amount: M(100, "USD"),
	}, 0); err != nil {
		t.Fatal(err)
	}
	// Burn an id so the counter is ahead of max(id).
	if !b.DeleteEntry(sf.ID, 1) {
		t.Fatal("fixture delete failed")
	}
	if _, err := b.AddOrUpdateEntry(sf.ID, Entry{
		Description: "hotel", Type: Expense, Amount: M(220, "USD"),
	}, 0); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestEncodeDecodeBook_RoundTrip(t *testing.T) {
	b := fixtureBook(t)

	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		t.Fatalf("EncodeBook failed: %v", err)
	}

	got, err := DecodeBook(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeBook failed: %v", err)
	}

	if got.Len() != b.Len() {
		t.Fatalf("tour count after round trip = %d, want %d", got.Len(), b.Len())
	}
	for want := range b.Tours() {
		tour := got.Tour(want.ID)
		if tour == nil {
			t.Fatalf("tour %d lost in round trip", want.ID)
		}
		if tour.Name != want.Name || tour.Start != want.Start {
			t.Errorf("tour %d = %q/%s, want %q/%s", want.ID, tour.Name, tour.Start, want.Name, want.Start)
		}
		if len(tour.Entries) != len(want.Entries) || len(tour.Preps) != len(want.Preps) {
			t.Fatalf("tour %d sizes = %d entries/%d preps, want %d/%d",
				want.ID, len(tour.Entries), len(tour.Preps), len(want.Entries), len(want.Preps))
		}
		for i, e := range want.Entries {
			g := tour.Entries[i]
			if g.ID != e.ID || g.Description != e.Description || g.Type != e.Type ||
				g.Date != e.Date || !g.Amount.Equal(e.Amount) {
				t.Errorf("tour %d entry %d = %+v, want %+v", want.ID, i, g, e)
			}
		}
		for i, p := range want.Preps {
			g := tour.Preps[i]
			if g.ID != p.ID || g.Category != p.Category || g.Name != p.Name ||
				g.Status != p.Status || g.Due != p.Due || g.Notes != p.Notes ||
				!g.Cost.Equal(p.Cost) {
				t.Errorf("tour %d prep %d = %+v, want %+v", want.ID, i, g, p)
			}
		}
	}
}

// Amounts must come back to the exact decimal, not rounded to the currency
// fraction: a 500.5 JPY entry that reloads as 501 silently corrupts totals.
func TestEncodeDecodeBook_FractionalAmountsExact(t *testing.T) {
	b := NewBook()
	tour := newTestTour(t, b, "Kyoto")
	if _, err := b.AddOrUpdateEntry(tour.ID, Entry{
		Description: "half-price ticket", Type: Expense, Amount: M(500.5, "JPY"),
	}, 0); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeBook(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	reloaded := got.Tour(tour.ID).Entries[0].Amount
	if !reloaded.Equal(M(500.5, "JPY")) {
		t.Errorf("amount after round trip = %s JPY, want 500.5 JPY", reloaded.Decimal())
	}
}

func TestDecodeBook_CountersSurviveRoundTrip(t *testing.T) {
	b := fixtureBook(t)
	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeBook(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	// The fixture deleted entry 1 of tour 2, so a fresh entry there must get
	// id 3 even though the highest stored id is 2.
	if _, err := got.AddOrUpdateEntry(2, Entry{
		Description: "taxi", Type: Expense, Amount: M(40, "USD"),
	}, 0); err != nil {
		t.Fatal(err)
	}
	sf := got.Tour(2)
	if id := sf.Entries[len(sf.Entries)-1].ID; id != 3 {
		t.Errorf("id after reload = %d, want 3 (counter persisted, not derived)", id)
	}
}

func TestDecodeBook_LegacyFileWithoutCounters(t *testing.T) {
	legacy := `{
		"version": 1,
		"tours": [
			{"id": 2, "name": "Tokyo", "start": "2025-08-01",
			 "entries": [{"id": 4, "date": "2025-08-02", "description": "dinner", "type": "expense", "amount": 3200, "currency": "JPY"}],
			 "preps": []}
		]
	}`
	b, err := DecodeBook(strings.NewReader(legacy))
	if err != nil {
		t.Fatalf("DecodeBook failed: %v", err)
	}

	tour := b.Tour(2)
	if tour == nil {
		t.Fatal("tour 2 not loaded")
	}
	if _, err := b.AddOrUpdateEntry(2, Entry{
		Description: "train", Type: Expense, Amount: M(500, "JPY"),
	}, 0); err != nil {
		t.Fatal(err)
	}
	if id := tour.Entries[1].ID; id != 5 {
		t.Errorf("recovered entry counter gave id %d, want 5", id)
	}

	next, err := b.NewTour("Kyoto", Today())
	if err != nil {
		t.Fatal(err)
	}
	if next.ID != 3 {
		t.Errorf("recovered tour counter gave id %d, want 3", next.ID)
	}
}

func TestDecodeBook_RejectsNewerVersion(t *testing.T) {
	_, err := DecodeBook(strings.NewReader(`{"version": 99, "tours": []}`))
	if err == nil {
		t.Fatal("decoding a newer version must fail, got nil")
	}
}

func TestLoadBook(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file yields empty book", func(t *testing.T) {
		b := LoadBook(filepath.Join(dir, "nope.json"))
		if b == nil || b.Len() != 0 {
			t.Errorf("LoadBook on missing file = %v, want empty book", b)
		}
	})

	t.Run("corrupt file yields empty book", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		b := LoadBook(path)
		if b == nil || b.Len() != 0 {
			t.Errorf("LoadBook on corrupt file = %v, want empty book", b)
		}
	})

	t.Run("save then load", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "book.json")
		want := fixtureBook(t)
		if err := SaveBook(path, want); err != nil {
			t.Fatalf("SaveBook failed: %v", err)
		}
		got := LoadBook(path)
		if got.Len() != want.Len() {
			t.Errorf("reloaded book has %d tours, want %d", got.Len(), want.Len())
		}
	})
}

func TestSaveBook_ReplacesPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	if err := SaveBook(path, fixtureBook(t)); err != nil {
		t.Fatal(err)
	}

	small := NewBook()
	newTestTour(t, small, "Solo")
	if err := SaveBook(path, small); err != nil {
		t.Fatal(err)
	}
	got := LoadBook(path)
	if got.Len() != 1 {
		t.Errorf("book after overwrite has %d tours, want 1", got.Len())
	}
	if got.Tour(1) == nil || got.Tour(1).Name != "Solo" {
		t.Error("overwrite kept stale content")
	}
}

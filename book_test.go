package tourbook

import (
	"testing"
)

func newTestTour(t *testing.T, b *Book, name string) *Tour {
	t.Helper()
	tour, err := b.NewTour(name, MustParseDate("2025-08-01"))
	if err != nil {
		t.Fatalf("NewTour(%q) failed: %v", name, err)
	}
	return tour
}

func TestBook_NewTour(t *testing.T) {
	b := NewBook()
	first := newTestTour(t, b, "Tokyo")
	second := newTestTour(t, b, "Kyoto")

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("tour ids = %d, %d, want 1, 2", first.ID, second.ID)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	if _, err := b.NewTour("", Today()); err == nil {
		t.Error("NewTour with empty name must fail")
	}
}

func TestBook_DeleteTour_NeverReusesIDs(t *testing.T) {
	b := NewBook()
	newTestTour(t, b, "Tokyo")
	kyoto := newTestTour(t, b, "Kyoto")

	if !b.DeleteTour(kyoto.ID) {
		t.Fatal("DeleteTour(2) = false, want true")
	}
	if b.DeleteTour(kyoto.ID) {
		t.Error("deleting an already deleted tour must be a no-op")
	}

	osaka := newTestTour(t, b, "Osaka")
	if osaka.ID != 3 {
		t.Errorf("tour id after deletion = %d, want 3 (ids are never reused)", osaka.ID)
	}
}

func TestBook_AddEntries_AssignsUniqueIDs(t *testing.T) {
	b := NewBook()
	tour := newTestTour(t, b, "Tokyo")

	const n = 7
	for i := 0; i < n; i++ {
		_, err := b.AddOrUpdateEntry(tour.ID, Entry{
			Description: "meal",
			Type:        Expense,
			Amount:      M(500, "JPY"),
			Date:        MustParseDate("2025-08-02"),
		}, 0)
		if err != nil {
			t.Fatalf("AddOrUpdateEntry #%d failed: %v", i, err)
		}
	}

	if len(tour.Entries) != n {
		t.Fatalf("entry count = %d, want %d", len(tour.Entries), n)
	}
	seen := make(map[int]bool)
	for _, e := range tour.Entries {
		if seen[e.ID] {
			t.Errorf("duplicate entry id %d", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestBook_AddEntry_RejectsInvalidDrafts(t *testing.T) {
	b := NewBook()
	tour := newTestTour(t, b, "Tokyo")

	testCases := []struct {
		name  string
		draft Entry
	}{
		{name: "empty description", draft: Entry{Type: Income, Amount: M(100, "TWD")}},
		{name: "bad type", draft: Entry{Description: "x", Type: "transfer", Amount: M(100, "TWD")}},
		{name: "bad currency", draft: Entry{Description: "x", Type: Income, Amount: M(100, "EUR")}},
		{name: "negative amount", draft: Entry{Description: "x", Type: Income, Amount: M(-1, "TWD")}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := b.AddOrUpdateEntry(tour.ID, tc.draft, 0); err == nil {
				t.Error("want validation error, got nil")
			}
		})
	}
	if len(tour.Entries) != 0 {
		t.Errorf("rejected drafts must not mutate the tour, got %d entries", len(tour.Entries))
	}
}

func TestBook_UpdateEntry_PreservesPositionAndSiblings(t *testing.T) {
	b := NewBook()
	tour := newTestTour(t, b, "Tokyo")

	for _, desc := range []string{"flight", "hotel", "dinner"} {
		if _, err := b.AddOrUpdateEntry(tour.ID, Entry{
			Description: desc,
			Type:        Expense,
			Amount:      M(100, "TWD"),
			Date:        MustParseDate("2025-08-02"),
		}, 0); err != nil {
			t.Fatal(err)
		}
	}

	edited := Entry{
		Description: "hotel (2 nights)",
		Type:        Expense,
		Amount:      M(240, "TWD"),
		Date:        MustParseDate("2025-08-03"),
	}
	if _, err := b.AddOrUpdateEntry(tour.ID, edited, 2); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	if len(tour.Entries) != 3 {
		t.Fatalf("entry count after edit = %d, want 3", len(tour.Entries))
	}
	if got := tour.Entries[1]; got.ID != 2 || got.Description != "hotel (2 nights)" || !got.Amount.Equal(M(240, "TWD")) {
		t.Errorf("edited entry = %+v, want id 2 with updated fields in place", got)
	}
	if tour.Entries[0].Description != "flight" || tour.Entries[2].Description != "dinner" {
		t.Error("sibling entries must be untouched by an edit")
	}

	if _, err := b.AddOrUpdateEntry(tour.ID, edited, 99); err == nil {
		t.Error("editing an unknown id must fail")
	}
}

func TestBook_DeleteEntry(t *testing.T) {
	b := NewBook()
	tour := newTestTour(t, b, "Tokyo")
	if _, err := b.AddOrUpdateEntry(tour.ID, Entry{Description: "flight", Type: Expense, Amount: M(100, "TWD")}, 0); err != nil {
		t.Fatal(err)
	}

	// Deleting a non-existent id is a no-op, not an error.
	if b.DeleteEntry(tour.ID, 42) {
		t.Error("DeleteEntry(42) = true, want false")
	}
	if len(tour.Entries) != 1 {
		t.Fatalf("no-op delete changed the list: %d entries", len(tour.Entries))
	}

	if !b.DeleteEntry(tour.ID, 1) {
		t.Error("DeleteEntry(1) = false, want true")
	}
	if len(tour.Entries) != 0 {
		t.Errorf("entry count after delete = %d, want 0", len(tour.Entries))
	}

	// A new entry after the deletion must not reuse id 1.
	if _, err := b.AddOrUpdateEntry(tour.ID, Entry{Description: "train", Type: Expense, Amount: M(100, "TWD")}, 0); err != nil {
		t.Fatal(err)
	}
	if got := tour.Entries[0].ID; got != 2 {
		t.Errorf("id after delete+add = %d, want 2 (counter is monotonic)", got)
	}
}

func TestBook_PrepItems(t *testing.T) {
	b := NewBook()
	tour := newTestTour(t, b, "Tokyo")

	if _, err := b.AddOrUpdatePrepItem(tour.ID, PrepItem{
		Category: Hotel,
		Name:     "Shinjuku hotel",
		Cost:     M(120, "USD"),
		Due:      MustParseDate("2025-07-20"),
	}, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddOrUpdatePrepItem(tour.ID, PrepItem{
		Category: Flight,
		Name:     "TPE-NRT",
		Cost:     M(8000, "TWD"),
	}, 0); err != nil {
		t.Fatal(err)
	}

	if len(tour.Preps) != 2 || tour.Preps[0].ID != 1 || tour.Preps[1].ID != 2 {
		t.Fatalf("prep items = %+v, want ids 1 and 2", tour.Preps)
	}
	if tour.Preps[0].Status != Pending {
		t.Errorf("default status = %q, want %q", tour.Preps[0].Status, Pending)
	}

	if err := b.SetPrepItemStatus(tour.ID, 1, Completed); err != nil {
		t.Fatalf("SetPrepItemStatus failed: %v", err)
	}
	if tour.Preps[0].Status != Completed {
		t.Errorf("status after update = %q, want %q", tour.Preps[0].Status, Completed)
	}
	if err := b.SetPrepItemStatus(tour.ID, 42, Completed); err == nil {
		t.Error("setting status of unknown item must fail")
	}

	if !b.DeletePrepItem(tour.ID, 2) {
		t.Error("DeletePrepItem(2) = false, want true")
	}
	if b.DeletePrepItem(tour.ID, 2) {
		t.Error("deleting an already deleted item must be a no-op")
	}
}

func TestBook_OperationsScopeByTour(t *testing.T) {
	b := NewBook()
	tokyo := newTestTour(t, b, "Tokyo")
	kyoto := newTestTour(t, b, "Kyoto")

	if _, err := b.AddOrUpdateEntry(tokyo.ID, Entry{Description: "flight", Type: Expense, Amount: M(100, "TWD")}, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddOrUpdateEntry(kyoto.ID, Entry{Description: "train", Type: Expense, Amount: M(100, "TWD")}, 0); err != nil {
		t.Fatal(err)
	}

	// Both tours hold an entry with id 1; deleting in one must not leak into
	// the other.
	if !b.DeleteEntry(tokyo.ID, 1) {
		t.Fatal("DeleteEntry in tokyo failed")
	}
	if len(kyoto.Entries) != 1 {
		t.Error("deleting (tokyo, 1) must not touch (kyoto, 1)")
	}
}

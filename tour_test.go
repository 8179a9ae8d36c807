package tourbook

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestParseEnums(t *testing.T) {
	if v, err := ParseEntryType("income"); err != nil || v != Income {
		t.Errorf("ParseEntryType(income) = %v, %v", v, err)
	}
	if _, err := ParseEntryType("transfer"); err == nil {
		t.Error("ParseEntryType must reject unknown types")
	}
	if v, err := ParsePrepCategory("transport"); err != nil || v != Transport {
		t.Errorf("ParsePrepCategory(transport) = %v, %v", v, err)
	}
	if _, err := ParsePrepCategory("misc"); err == nil {
		t.Error("ParsePrepCategory must reject unknown categories")
	}
	if v, err := ParsePrepStatus("completed"); err != nil || v != Completed {
		t.Errorf("ParsePrepStatus(completed) = %v, %v", v, err)
	}
	if _, err := ParsePrepStatus("done"); err == nil {
		t.Error("ParsePrepStatus must reject unknown statuses")
	}
}

func TestEntry_JSON(t *testing.T) {
	e := Entry{
		ID:          3,
		Date:        MustParseDate("2025-08-02"),
		Description: "dinner",
		Type:        Expense,
		Amount:      M(3200, "JPY"),
	}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":3,"date":"2025-08-02","description":"dinner","type":"expense","currency":"JPY","amount":3200}`
	if string(data) != want {
		t.Errorf("Marshal = %s\nwant     %s", data, want)
	}

	var back Entry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.ID != e.ID || back.Date != e.Date || back.Description != e.Description ||
		back.Type != e.Type || !back.Amount.Equal(e.Amount) {
		t.Errorf("round trip = %+v, want %+v", back, e)
	}
}

func TestTour_EntriesIn(t *testing.T) {
	b := NewBook()
	tour := newTestTour(t, b, "Tokyo")
	for _, day := range []string{"2025-08-01", "2025-08-15", "2025-09-01"} {
		if _, err := b.AddOrUpdateEntry(tour.ID, Entry{
			Description: "on " + day,
			Type:        Expense,
			Amount:      M(100, "TWD"),
			Date:        MustParseDate(day),
		}, 0); err != nil {
			t.Fatal(err)
		}
	}

	august := NewRange(MustParseDate("2025-08-10"), Monthly)
	got := tour.EntriesIn(august)
	if len(got) != 2 {
		t.Fatalf("EntriesIn(august) returned %d entries, want 2", len(got))
	}
	if got[0].Date != MustParseDate("2025-08-01") || got[1].Date != MustParseDate("2025-08-15") {
		t.Error("EntriesIn must preserve stored order")
	}
}

func TestSortedByDate(t *testing.T) {
	entries := []Entry{
		{ID: 1, Date: MustParseDate("2025-08-03")},
		{ID: 2, Date: MustParseDate("2025-08-01")},
		{ID: 3, Date: MustParseDate("2025-08-03")},
		{ID: 4, Date: MustParseDate("2025-08-02")},
	}

	var ids []int
	for _, e := range SortedByDate(entries) {
		ids = append(ids, e.ID)
	}
	// Stable: entries 1 and 3 share a day and keep their stored order.
	if want := []int{2, 4, 1, 3}; !slices.Equal(ids, want) {
		t.Errorf("SortedByDate order = %v, want %v", ids, want)
	}

	if entries[0].ID != 1 {
		t.Error("SortedByDate must not reorder its input")
	}
}

package tourbook

import (
	"fmt"
	"iter"
)

// Book is the authoritative in-memory collection of tours. It is the single
// writer for every create/update/delete operation; persistence happens at the
// boundary, after the mutation, through SaveBook.
//
// Mutations are synchronous and either fully apply or leave the book
// untouched. There is no I/O inside a mutation.
type Book struct {
	tours      []*Tour
	nextTourID int
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{nextTourID: 1}
}

// Len returns the number of tours in the book.
func (b *Book) Len() int { return len(b.tours) }

// Tour returns the tour with this id, or nil if unknown.
func (b *Book) Tour(id int) *Tour {
	for _, t := range b.tours {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Tours returns an iterator over all tours in creation order.
func (b *Book) Tours() iter.Seq[*Tour] {
	return func(yield func(*Tour) bool) {
		for _, t := range b.tours {
			if !yield(t) {
				return
			}
		}
	}
}

// NewTour creates a tour and appends it to the book. Tour ids come from a
// book-level monotonic counter and are never reused, even after DeleteTour.
func (b *Book) NewTour(name string, start Date) (*Tour, error) {
	if name == "" {
		return nil, fmt.Errorf("tour name is missing")
	}
	if start.IsZero() {
		start = Today()
	}
	t := &Tour{
		ID:          b.nextTourID,
		Name:        name,
		Start:       start,
		nextEntryID: 1,
		nextPrepID:  1,
	}
	b.nextTourID++
	b.tours = append(b.tours, t)
	return t, nil
}

// DeleteTour removes the tour with this id and everything it owns.
// Deleting an unknown id is a no-op and returns false.
func (b *Book) DeleteTour(id int) bool {
	for i, t := range b.tours {
		if t.ID == id {
			b.tours = append(b.tours[:i], b.tours[i+1:]...)
			return true
		}
	}
	return false
}

// AddOrUpdateEntry adds a new entry to the tour, or, when editingID is
// non-zero, replaces the fields of the existing entry with that id in place,
// preserving its position. The draft is validated first; an invalid draft
// rejects the whole operation.
func (b *Book) AddOrUpdateEntry(tourID int, draft Entry, editingID int) (*Tour, error) {
	t := b.Tour(tourID)
	if t == nil {
		return nil, fmt.Errorf("unknown tour id %d", tourID)
	}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("invalid entry: %w", err)
	}

	if editingID != 0 {
		existing := t.Entry(editingID)
		if existing == nil {
			return nil, fmt.Errorf("unknown entry id %d in tour %d", editingID, tourID)
		}
		draft.ID = editingID
		*existing = draft
		return t, nil
	}

	draft.ID = t.nextEntryID
	t.nextEntryID++
	t.Entries = append(t.Entries, draft)
	return t, nil
}

// DeleteEntry removes the entry scoped by (tour, id). Deleting an unknown id
// is a no-op and returns false. The confirmation step required before
// destructive operations is a boundary concern, not the book's.
func (b *Book) DeleteEntry(tourID, entryID int) bool {
	t := b.Tour(tourID)
	if t == nil {
		return false
	}
	for i := range t.Entries {
		if t.Entries[i].ID == entryID {
			t.Entries = append(t.Entries[:i], t.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// AddOrUpdatePrepItem mirrors AddOrUpdateEntry for preparation items.
func (b *Book) AddOrUpdatePrepItem(tourID int, draft PrepItem, editingID int) (*Tour, error) {
	t := b.Tour(tourID)
	if t == nil {
		return nil, fmt.Errorf("unknown tour id %d", tourID)
	}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("invalid preparation item: %w", err)
	}

	if editingID != 0 {
		existing := t.Prep(editingID)
		if existing == nil {
			return nil, fmt.Errorf("unknown preparation item id %d in tour %d", editingID, tourID)
		}
		draft.ID = editingID
		*existing = draft
		return t, nil
	}

	draft.ID = t.nextPrepID
	t.nextPrepID++
	t.Preps = append(t.Preps, draft)
	return t, nil
}

// DeletePrepItem removes the preparation item scoped by (tour, id).
// Deleting an unknown id is a no-op and returns false.
func (b *Book) DeletePrepItem(tourID, itemID int) bool {
	t := b.Tour(tourID)
	if t == nil {
		return false
	}
	for i := range t.Preps {
		if t.Preps[i].ID == itemID {
			t.Preps = append(t.Preps[:i], t.Preps[i+1:]...)
			return true
		}
	}
	return false
}

// SetPrepItemStatus flips the completion status of the item scoped by
// (tour, id).
func (b *Book) SetPrepItemStatus(tourID, itemID int, status PrepStatus) error {
	if _, err := ParsePrepStatus(string(status)); err != nil {
		return err
	}
	t := b.Tour(tourID)
	if t == nil {
		return fmt.Errorf("unknown tour id %d", tourID)
	}
	item := t.Prep(itemID)
	if item == nil {
		return fmt.Errorf("unknown preparation item id %d in tour %d", itemID, tourID)
	}
	item.Status = status
	return nil
}

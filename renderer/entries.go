package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/tourbook/tourbook"
	"github.com/tourbook/tourbook/date"
)

// EntriesMarkdown renders the entries of a tour in date order, every amount
// shown both in its source currency and normalized through the table. A
// non-nil range restricts the listing to entries dated within it.
func EntriesMarkdown(t *tourbook.Tour, rng *date.Range, table tourbook.RateTable) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	entries := tourbook.SortedByDate(t.Entries)
	if rng != nil {
		entries = tourbook.SortedByDate(t.EntriesIn(*rng))
		doc.H1(fmt.Sprintf("Entries of %s (%s)", t.Name, rng.Identifier()))
	} else {
		doc.H1(fmt.Sprintf("Entries of %s", t.Name))
	}
	if len(entries) == 0 {
		doc.PlainText("No entries.")
		return doc.String()
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.ID),
			e.Date.String(),
			e.Description,
			string(e.Type),
			e.Amount.String(),
			table.Convert(e.Amount).String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Date", "Description", "Type", "Amount", tourbook.HomeCurrency},
		Rows:   rows,
	})
	return doc.String()
}

// PrepsMarkdown renders the preparation checklist of a tour.
func PrepsMarkdown(t *tourbook.Tour, table tourbook.RateTable) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Preparation for %s", t.Name))
	if len(t.Preps) == 0 {
		doc.PlainText("No preparation items.")
		return doc.String()
	}

	rows := make([][]string, 0, len(t.Preps))
	for _, p := range t.Preps {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID),
			string(p.Category),
			p.Name,
			string(p.Status),
			p.Due.String(),
			p.Cost.String(),
			table.Convert(p.Cost).String(),
			p.Notes,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Category", "Name", "Status", "Due", "Cost", tourbook.HomeCurrency, "Notes"},
		Rows:   rows,
	})
	return doc.String()
}

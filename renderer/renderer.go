// Package renderer turns books, tours and rate tables into markdown
// strings. It only formats; all aggregation happens in the root package.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/tourbook/tourbook"
)

// ToursMarkdown renders the tour list with per-tour totals.
func ToursMarkdown(b *tourbook.Book, table tourbook.RateTable) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Tours")
	if b.Len() == 0 {
		doc.PlainText("No tours yet.")
		return doc.String()
	}

	rows := make([][]string, 0, b.Len())
	for t := range b.Tours() {
		s := tourbook.NewTourStats(t, table)
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.ID),
			t.Name,
			t.Start.String(),
			fmt.Sprintf("%d", len(t.Entries)),
			fmt.Sprintf("%d/%d", s.PrepDone, s.PrepTotal),
			s.Profit.SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Name", "Start", "Entries", "Prep", "Profit"},
		Rows:   rows,
	})
	return doc.String()
}

// SummaryMarkdown renders the income/expense/profit summary of one tour.
func SummaryMarkdown(s tourbook.TourStats) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Summary of %s", s.TourName))
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Amount"},
		Rows: [][]string{
			{"Income", s.Income.String()},
			{"Expense", s.Expense.String()},
			{"Profit", s.Profit.SignedString()},
		},
	})
	doc.PlainText(fmt.Sprintf("Preparation: %d of %d items completed. Expense includes all preparation costs, pending ones too.", s.PrepDone, s.PrepTotal))
	return doc.String()
}

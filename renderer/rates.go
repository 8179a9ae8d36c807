package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/tourbook/tourbook"
	"github.com/tourbook/tourbook/date"
)

// RatesMarkdown renders the current rate table.
func RatesMarkdown(table tourbook.RateTable) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Exchange Rates (1 unit in %s)", tourbook.HomeCurrency))
	rows := make([][]string, 0, len(table.Currencies()))
	for _, c := range table.Currencies() {
		r, _ := table.Rate(c)
		updated := "built-in"
		if !r.LastUpdated.IsZero() {
			updated = r.LastUpdated.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{c, r.Rate.String(), updated})
	}
	doc.Table(md.TableSet{
		Header: []string{"Currency", "Rate", "Updated"},
		Rows:   rows,
	})
	return doc.String()
}

// RateHistoryMarkdown renders the fetched rate series of one currency.
func RateHistoryMarkdown(currency string, h *date.History[float64]) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s Rate History", currency))
	if h == nil || h.Len() == 0 {
		doc.PlainText("No rates fetched yet.")
		return doc.String()
	}

	var rows [][]string
	for day, v := range h.Values() {
		rows = append(rows, []string{day.String(), fmt.Sprintf("%g", v)})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Rate"},
		Rows:   rows,
	})
	return doc.String()
}

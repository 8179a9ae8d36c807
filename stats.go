package tourbook

// TourStats is the per-tour summary in the home currency.
//
// Preparation items count as expense whatever their status: the book models
// committed budget, not cash-basis spend. A pending hotel booking is money
// already spoken for.
type TourStats struct {
	TourID   int
	TourName string
	Income   Money
	Expense  Money
	Profit   Money

	PrepDone  int // completed preparation items
	PrepTotal int
}

// NewTourStats computes the tour's totals from its current entries and
// preparation items, normalized through the given rate table. It is pure:
// nothing is cached, callers recompute whenever the table or the tour
// changes.
func NewTourStats(t *Tour, table RateTable) TourStats {
	stats := TourStats{
		TourID:   t.ID,
		TourName: t.Name,
		Income:   M(0, HomeCurrency),
		Expense:  M(0, HomeCurrency),
	}

	for _, e := range t.Entries {
		switch e.Type {
		case Income:
			stats.Income = stats.Income.Add(table.Convert(e.Amount))
		case Expense:
			stats.Expense = stats.Expense.Add(table.Convert(e.Amount))
		}
	}

	for _, p := range t.Preps {
		stats.Expense = stats.Expense.Add(table.Convert(p.Cost))
		stats.PrepTotal++
		if p.Status == Completed {
			stats.PrepDone++
		}
	}

	stats.Profit = stats.Income.Sub(stats.Expense)
	return stats
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tourbook/tourbook"
	"github.com/tourbook/tourbook/renderer"
)

type addCmd struct {
	tour     int
	id       int
	date     string
	desc     string
	typ      string
	amount   float64
	currency string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add or edit an income or expense entry" }
func (*addCmd) Usage() string {
	return `tb add -tour <id> -type <income|expense> -desc <text> -amount <n> [-currency <code>] [-date <date>] [-id <entry>]

  Records one income or expense in its source currency. With -id it edits
  the existing entry in place instead: only the flags given change, and the
  entry keeps its position in the list.

Usage Examples:
$ tb add -tour 1 -type expense -desc "dinner" -amount 3200 -currency JPY
$ tb add -tour 1 -id 3 -type expense -desc "dinner (drinks included)" -amount 4100 -currency JPY
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tour, "tour", 0, "Id of the tour to record into.")
	f.IntVar(&c.id, "id", 0, "Id of an existing entry to edit. Adds a new one by default.")
	f.StringVar(&c.date, "date", "", "Date of the entry (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&c.desc, "desc", "", "Description of the entry.")
	f.StringVar(&c.typ, "type", "expense", "Type of the entry: income or expense.")
	f.Float64Var(&c.amount, "amount", 0, "Amount in the source currency. Must not be negative.")
	f.StringVar(&c.currency, "currency", tourbook.HomeCurrency, "Currency of the amount: TWD, JPY or USD.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	b := LoadBook()

	var draft tourbook.Entry
	if c.id == 0 {
		amount, err := tourbook.ParseAmount(c.amount, c.currency)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		draft = tourbook.Entry{
			Description: c.desc,
			Type:        tourbook.EntryType(c.typ),
			Amount:      amount,
		}
	} else {
		// Editing merges: only the flags given on the command line change,
		// the rest of the entry stays as recorded.
		t := findTour(b, c.tour)
		if t == nil {
			return subcommands.ExitFailure
		}
		existing := t.Entry(c.id)
		if existing == nil {
			fmt.Fprintf(os.Stderr, "Error: no entry %d in tour %q\n", c.id, t.Name)
			return subcommands.ExitUsageError
		}
		draft = *existing
		if set["desc"] {
			draft.Description = c.desc
		}
		if set["type"] {
			draft.Type = tourbook.EntryType(c.typ)
		}
		value, currency := draft.Amount.Decimal(), draft.Amount.Currency()
		if set["currency"] {
			currency = c.currency
		}
		if set["amount"] {
			m, err := tourbook.ParseAmount(c.amount, currency)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitUsageError
			}
			value = m.Decimal()
		}
		draft.Amount = tourbook.M(value, currency)
	}
	if set["date"] {
		var err error
		draft.Date, err = tourbook.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	t, err := b.AddOrUpdateEntry(c.tour, draft, c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if st := SaveBook(b); st != subcommands.ExitSuccess {
		return st
	}
	if c.id != 0 {
		fmt.Printf("Updated entry %d of tour %q\n", c.id, t.Name)
	} else {
		fmt.Printf("Added entry %d to tour %q\n", t.Entries[len(t.Entries)-1].ID, t.Name)
	}
	return subcommands.ExitSuccess
}

type delCmd struct {
	tour  int
	id    int
	force bool
}

func (*delCmd) Name() string     { return "del" }
func (*delCmd) Synopsis() string { return "delete an entry" }
func (*delCmd) Usage() string {
	return `tb del -tour <id> -id <entry> [-f]

  Deletes one entry. Asks for confirmation unless -f is given. Deleting an
  unknown id is a no-op.
`
}

func (c *delCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tour, "tour", 0, "Id of the tour.")
	f.IntVar(&c.id, "id", 0, "Id of the entry to delete.")
	f.BoolVar(&c.force, "f", false, "Delete without asking for confirmation.")
}

func (c *delCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b := LoadBook()
	t := findTour(b, c.tour)
	if t == nil {
		return subcommands.ExitFailure
	}
	e := t.Entry(c.id)
	if e == nil {
		fmt.Printf("No entry %d in tour %q, nothing to delete.\n", c.id, t.Name)
		return subcommands.ExitSuccess
	}
	if !c.force && !confirm(fmt.Sprintf("Delete entry %d %q (%s)?", e.ID, e.Description, e.Amount)) {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return subcommands.ExitSuccess
	}
	b.DeleteEntry(c.tour, c.id)
	if st := SaveBook(b); st != subcommands.ExitSuccess {
		return st
	}
	fmt.Printf("Deleted entry %d from tour %q\n", c.id, t.Name)
	return subcommands.ExitSuccess
}

type entriesCmd struct {
	tour   int
	period string
}

func (*entriesCmd) Name() string     { return "entries" }
func (*entriesCmd) Synopsis() string { return "list the entries of a tour" }
func (*entriesCmd) Usage() string {
	return `tb entries -tour <id> [-period <day|week|month|quarter|year>]

  Lists the entries of a tour, each amount shown in its source currency and
  converted. With -period only the entries of the current period are shown.
`
}

func (c *entriesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tour, "tour", 0, "Id of the tour.")
	f.StringVar(&c.period, "period", "", "Restrict to the current day, week, month, quarter or year.")
}

func (c *entriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b := LoadBook()
	t := findTour(b, c.tour)
	if t == nil {
		return subcommands.ExitFailure
	}

	var rng *tourbook.Range
	if c.period != "" {
		p, err := tourbook.ParsePeriod(c.period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		r := tourbook.NewRange(tourbook.Today(), p)
		rng = &r
	}

	printMarkdown(renderer.EntriesMarkdown(t, rng, rateProvider().Table()))
	return subcommands.ExitSuccess
}

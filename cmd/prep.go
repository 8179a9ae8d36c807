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

type prepCmd struct {
	tour     int
	id       int
	category string
	name     string
	cost     float64
	currency string
	due      string
	notes    string
	list     bool
}

func (*prepCmd) Name() string     { return "prep" }
func (*prepCmd) Synopsis() string { return "add, edit or list preparation items" }
func (*prepCmd) Usage() string {
	return `tb prep -tour <id> [-list] | -tour <id> -category <c> -name <text> -cost <n> [-currency <code>] [-due <date>] [-notes <text>] [-id <item>]

  Adds a preparation item to the tour's checklist, or edits one with -id,
  in which case only the flags given change. With -list it shows the
  checklist instead. The cost counts toward the
  tour's expense total whether the item is pending or completed.

Usage Examples:
$ tb prep -tour 1 -category flight -name "TPE-NRT" -cost 8000 -due 2025-07-15
$ tb prep -tour 1 -list
`
}

func (c *prepCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tour, "tour", 0, "Id of the tour.")
	f.IntVar(&c.id, "id", 0, "Id of an existing item to edit. Adds a new one by default.")
	f.StringVar(&c.category, "category", "other", "Category: hotel, flight, transport or other.")
	f.StringVar(&c.name, "name", "", "Name of the item.")
	f.Float64Var(&c.cost, "cost", 0, "Cost in the source currency. Must not be negative.")
	f.StringVar(&c.currency, "currency", tourbook.HomeCurrency, "Currency of the cost: TWD, JPY or USD.")
	f.StringVar(&c.due, "due", "", "Due date (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&c.notes, "notes", "", "Free-form notes.")
	f.BoolVar(&c.list, "list", false, "Show the checklist instead of adding an item.")
}

func (c *prepCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b := LoadBook()

	if c.list {
		t := findTour(b, c.tour)
		if t == nil {
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.PrepsMarkdown(t, rateProvider().Table()))
		return subcommands.ExitSuccess
	}

	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	var draft tourbook.PrepItem
	if c.id == 0 {
		cost, err := tourbook.ParseAmount(c.cost, c.currency)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		draft = tourbook.PrepItem{
			Category: tourbook.PrepCategory(c.category),
			Name:     c.name,
			Cost:     cost,
			Notes:    c.notes,
		}
	} else {
		// Editing merges: only the flags given change. The status in
		// particular stays as is; prep-done changes it.
		t := findTour(b, c.tour)
		if t == nil {
			return subcommands.ExitFailure
		}
		existing := t.Prep(c.id)
		if existing == nil {
			fmt.Fprintf(os.Stderr, "Error: no preparation item %d in tour %q\n", c.id, t.Name)
			return subcommands.ExitUsageError
		}
		draft = *existing
		if set["category"] {
			draft.Category = tourbook.PrepCategory(c.category)
		}
		if set["name"] {
			draft.Name = c.name
		}
		if set["notes"] {
			draft.Notes = c.notes
		}
		cost, currency := draft.Cost.Decimal(), draft.Cost.Currency()
		if set["currency"] {
			currency = c.currency
		}
		if set["cost"] {
			m, err := tourbook.ParseAmount(c.cost, currency)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitUsageError
			}
			cost = m.Decimal()
		}
		draft.Cost = tourbook.M(cost, currency)
	}
	if set["due"] {
		var err error
		draft.Due, err = tourbook.ParseDate(c.due)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid due date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	t, err := b.AddOrUpdatePrepItem(c.tour, draft, c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if st := SaveBook(b); st != subcommands.ExitSuccess {
		return st
	}
	if c.id != 0 {
		fmt.Printf("Updated preparation item %d of tour %q\n", c.id, t.Name)
	} else {
		fmt.Printf("Added preparation item %d to tour %q\n", t.Preps[len(t.Preps)-1].ID, t.Name)
	}
	return subcommands.ExitSuccess
}

type prepDoneCmd struct {
	tour   int
	id     int
	status string
}

func (*prepDoneCmd) Name() string     { return "prep-done" }
func (*prepDoneCmd) Synopsis() string { return "mark a preparation item completed or pending" }
func (*prepDoneCmd) Usage() string {
	return `tb prep-done -tour <id> -id <item> [-status <pending|completed>]

  Marks a preparation item as completed, or back to pending with -status.
  The totals never change: preparation costs always count as expense.
`
}

func (c *prepDoneCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tour, "tour", 0, "Id of the tour.")
	f.IntVar(&c.id, "id", 0, "Id of the preparation item.")
	f.StringVar(&c.status, "status", string(tourbook.Completed), "New status: pending or completed.")
}

func (c *prepDoneCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status, err := tourbook.ParsePrepStatus(c.status)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	b := LoadBook()
	if err := b.SetPrepItemStatus(c.tour, c.id, status); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if st := SaveBook(b); st != subcommands.ExitSuccess {
		return st
	}
	fmt.Printf("Preparation item %d is now %s\n", c.id, status)
	return subcommands.ExitSuccess
}

type prepDelCmd struct {
	tour  int
	id    int
	force bool
}

func (*prepDelCmd) Name() string     { return "prep-del" }
func (*prepDelCmd) Synopsis() string { return "delete a preparation item" }
func (*prepDelCmd) Usage() string {
	return `tb prep-del -tour <id> -id <item> [-f]

  Deletes one preparation item. Asks for confirmation unless -f is given.
  Deleting an unknown id is a no-op.
`
}

func (c *prepDelCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tour, "tour", 0, "Id of the tour.")
	f.IntVar(&c.id, "id", 0, "Id of the preparation item to delete.")
	f.BoolVar(&c.force, "f", false, "Delete without asking for confirmation.")
}

func (c *prepDelCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b := LoadBook()
	t := findTour(b, c.tour)
	if t == nil {
		return subcommands.ExitFailure
	}
	p := t.Prep(c.id)
	if p == nil {
		fmt.Printf("No preparation item %d in tour %q, nothing to delete.\n", c.id, t.Name)
		return subcommands.ExitSuccess
	}
	if !c.force && !confirm(fmt.Sprintf("Delete preparation item %d %q (%s)?", p.ID, p.Name, p.Cost)) {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return subcommands.ExitSuccess
	}
	b.DeletePrepItem(c.tour, c.id)
	if st := SaveBook(b); st != subcommands.ExitSuccess {
		return st
	}
	fmt.Printf("Deleted preparation item %d from tour %q\n", c.id, t.Name)
	return subcommands.ExitSuccess
}

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

type newTourCmd struct {
	name  string
	start string
}

func (*newTourCmd) Name() string     { return "new-tour" }
func (*newTourCmd) Synopsis() string { return "create a new tour" }
func (*newTourCmd) Usage() string {
	return `tb new-tour -name <name> [-start <date>]

  Creates a new tour. The start date defaults to today.

Usage Examples:
$ tb new-tour -name "Tokyo" -start 2025-08-01
`
}

func (c *newTourCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the tour.")
	f.StringVar(&c.start, "start", "", "Start date of the tour (YYYY-MM-DD). Defaults to today.")
}

func (c *newTourCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start := tourbook.Today()
	if c.start != "" {
		var err error
		start, err = tourbook.ParseDate(c.start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	b := LoadBook()
	t, err := b.NewTour(c.name, start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if st := SaveBook(b); st != subcommands.ExitSuccess {
		return st
	}
	fmt.Printf("Created tour %d %q starting %s\n", t.ID, t.Name, t.Start)
	return subcommands.ExitSuccess
}

type delTourCmd struct {
	tour  int
	force bool
}

func (*delTourCmd) Name() string     { return "del-tour" }
func (*delTourCmd) Synopsis() string { return "delete a tour and everything in it" }
func (*delTourCmd) Usage() string {
	return `tb del-tour -tour <id> [-f]

  Deletes a tour with all its entries and preparation items. Asks for
  confirmation unless -f is given. The tour id is never reused.
`
}

func (c *delTourCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tour, "tour", 0, "Id of the tour to delete.")
	f.BoolVar(&c.force, "f", false, "Delete without asking for confirmation.")
}

func (c *delTourCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b := LoadBook()
	t := findTour(b, c.tour)
	if t == nil {
		return subcommands.ExitFailure
	}
	if !c.force && !confirm(fmt.Sprintf("Delete tour %d %q with %d entries and %d preparation items?",
		t.ID, t.Name, len(t.Entries), len(t.Preps))) {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return subcommands.ExitSuccess
	}
	b.DeleteTour(c.tour)
	if st := SaveBook(b); st != subcommands.ExitSuccess {
		return st
	}
	fmt.Printf("Deleted tour %d %q\n", t.ID, t.Name)
	return subcommands.ExitSuccess
}

type toursCmd struct{}

func (*toursCmd) Name() string     { return "tours" }
func (*toursCmd) Synopsis() string { return "list all tours with their totals" }
func (*toursCmd) Usage() string {
	return `tb tours

  Lists every tour with its entry count, preparation progress and profit.
`
}

func (*toursCmd) SetFlags(*flag.FlagSet) {}

func (c *toursCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b := LoadBook()
	printMarkdown(renderer.ToursMarkdown(b, rateProvider().Table()))
	return subcommands.ExitSuccess
}

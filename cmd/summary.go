package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/tourbook/tourbook"
	"github.com/tourbook/tourbook/renderer"
)

type summaryCmd struct {
	tour int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show income, expense and profit of a tour" }
func (*summaryCmd) Usage() string {
	return `tb summary -tour <id>

  Computes income, expense and profit of one tour, all normalized into TWD
  with the current exchange rates. Expense includes every preparation cost,
  pending ones too.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tour, "tour", 0, "Id of the tour.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b := LoadBook()
	t := findTour(b, c.tour)
	if t == nil {
		return subcommands.ExitFailure
	}
	s := tourbook.NewTourStats(t, rateProvider().Table())
	printMarkdown(renderer.SummaryMarkdown(s))
	return subcommands.ExitSuccess
}

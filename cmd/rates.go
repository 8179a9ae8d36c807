package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tourbook/tourbook/renderer"
)

type ratesCmd struct {
	refresh bool
	history string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "show the exchange rates used for conversion" }
func (*ratesCmd) Usage() string {
	return `tb rates [-refresh] [-history <currency>]

  Shows the current rate table. With -refresh it fetches the bank rate
  board first; a failed fetch keeps the previous rates, a successful one
  is cached in the rates file for every later command. With -history it
  shows the fetched rate series of one currency instead.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "Fetch the bank rate board before showing the table.")
	f.StringVar(&c.history, "history", "", "Show the fetched history of this currency instead.")
}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.refresh {
		if err := rateProvider().Refresh(ctx, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: rate refresh failed (keeping previous rates): %v\n", err)
		} else {
			saveRates()
		}
	}

	if c.history != "" {
		printMarkdown(renderer.RateHistoryMarkdown(c.history, rateProvider().History(c.history)))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RatesMarkdown(rateProvider().Table()))
	return subcommands.ExitSuccess
}

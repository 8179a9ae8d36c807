package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/tourbook/tourbook"
)

type exportCmd struct {
	tour   int
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a tour to a spreadsheet" }
func (*exportCmd) Usage() string {
	return `tb export -tour <id> [-o <file.xlsx>]

  Writes a workbook with three sheets: the preparation checklist, the
  entries and a summary, every amount both in its source currency and
  converted with the current rates. Without -o the workbook is written
  next to the book file as <tour name>-report.xlsx.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tour, "tour", 0, "Id of the tour to export.")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to <tour name>-report.xlsx next to the book file.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b := LoadBook()
	t := findTour(b, c.tour)
	if t == nil {
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = filepath.Join(filepath.Dir(*bookFile), tourbook.ReportFileName(t))
	}

	if err := tourbook.ExportTourXLSX(output, t, rateProvider().Table()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Exported tour %q to %s\n", t.Name, output)
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the book file into its canonical form"
}
func (*fmtCmd) Usage() string {
	return `tb fmt

  Reads the whole book and writes it back in the canonical field order.
  Useful after editing the file by hand, or to normalize a file produced
  by an older build.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b := LoadBook()
	if st := SaveBook(b); st != subcommands.ExitSuccess {
		return st
	}
	fmt.Fprintf(os.Stderr, "Formatted book file %q (%d tours).\n", *bookFile, b.Len())
	return subcommands.ExitSuccess
}

// Package cmd implements the CLI application to manage a tour book.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/tourbook/tourbook"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&newTourCmd{}, "tours")
	c.Register(&delTourCmd{}, "tours")
	c.Register(&toursCmd{}, "tours")

	c.Register(&addCmd{}, "entries")
	c.Register(&delCmd{}, "entries")
	c.Register(&entriesCmd{}, "entries")

	c.Register(&prepCmd{}, "preparation")
	c.Register(&prepDoneCmd{}, "preparation")
	c.Register(&prepDelCmd{}, "preparation")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")
	c.Register(&ratesCmd{}, "reports")

	c.Register(&fmtCmd{}, "book")
	c.Register(&topicCmd{}, "book")
	c.Register(&assistCmd{}, "book")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var bookFile = flag.String("book", "tourbook.json", "Path to the book file holding every tour")
var ratesFile = flag.String("rates", "", "Path to the file caching the last fetched rates. Defaults to rates.json next to the book file.")

var provider *tourbook.Provider

// ratesPath resolves the rates file, next to the book unless -rates says
// otherwise.
func ratesPath() string {
	if *ratesFile != "" {
		return *ratesFile
	}
	return filepath.Join(filepath.Dir(*bookFile), "rates.json")
}

// rateProvider loads the last fetched rates once per process, so every
// command converts with the last refresh that succeeded rather than the
// built-in fallback table.
func rateProvider() *tourbook.Provider {
	if provider == nil {
		provider = tourbook.LoadRates(ratesPath())
	}
	return provider
}

// saveRates snapshots the provider back into the rates file, best-effort.
func saveRates() {
	if provider == nil {
		return
	}
	if err := tourbook.SaveRates(ratesPath(), provider); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save rates file %q: %v\n", ratesPath(), err)
	}
}

// LoadBook reads the app book file. By contract it never fails: a missing or
// unreadable file yields an empty book.
func LoadBook() *tourbook.Book {
	return tourbook.LoadBook(*bookFile)
}

// SaveBook snapshots the whole book back into the app book file.
func SaveBook(b *tourbook.Book) subcommands.ExitStatus {
	if err := tourbook.SaveBook(*bookFile, b); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving book file %q: %v\n", *bookFile, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// findTour resolves a -tour flag value, printing the error itself.
func findTour(b *tourbook.Book, id int) *tourbook.Tour {
	t := b.Tour(id)
	if t == nil {
		fmt.Fprintf(os.Stderr, "Error: no tour with id %d (see 'tours')\n", id)
	}
	return t
}

// printMarkdown renders markdown for the terminal. If rendering fails the
// raw markdown is printed as-is.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// confirm asks the user a yes/no question on stderr and reads the answer
// from stdin.
func confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	var answer string
	fmt.Scanln(&answer)
	return answer == "y" || answer == "Y" || answer == "yes"
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/tourbook/tourbook"
	"github.com/tourbook/tourbook/agent"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `tb assist [initial question]

  Starts an interactive session with the AI assistant. It can read the
  book, compute tour summaries and research destinations. Requires a
  configured Gemini API key.
`
}

func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	// The session is long-lived, keep the rates fresh in the background and
	// persist whatever the refresher fetched when the session ends.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := rateProvider()
	go p.Run(ctx, nil, tourbook.DefaultRefreshInterval)
	defer saveRates()

	guide := agent.NewGuide()
	bookkeeper := agent.NewBookkeeper(*bookFile, p)
	a := agent.New(os.Stdout, os.Stdin, guide, bookkeeper)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

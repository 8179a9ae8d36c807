package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/tourbook/tourbook/cmd"
)

// completion describes the CLI for shell completion. It runs before flag
// parsing and exits on its own when invoked by the shell.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"book": predict.Files("*.json"),
	},
	Sub: map[string]*complete.Command{
		"new-tour":  {Flags: map[string]complete.Predictor{"name": predict.Nothing, "start": predict.Nothing}},
		"del-tour":  {Flags: map[string]complete.Predictor{"tour": predict.Nothing, "f": predict.Nothing}},
		"tours":     {},
		"add":       {Flags: map[string]complete.Predictor{"tour": predict.Nothing, "id": predict.Nothing, "date": predict.Nothing, "desc": predict.Nothing, "type": predict.Set{"income", "expense"}, "amount": predict.Nothing, "currency": predict.Set{"TWD", "JPY", "USD"}}},
		"del":       {Flags: map[string]complete.Predictor{"tour": predict.Nothing, "id": predict.Nothing, "f": predict.Nothing}},
		"entries":   {Flags: map[string]complete.Predictor{"tour": predict.Nothing, "period": predict.Set{"day", "week", "month", "quarter", "year"}}},
		"prep":      {Flags: map[string]complete.Predictor{"tour": predict.Nothing, "id": predict.Nothing, "category": predict.Set{"hotel", "flight", "transport", "other"}, "name": predict.Nothing, "cost": predict.Nothing, "currency": predict.Set{"TWD", "JPY", "USD"}, "due": predict.Nothing, "notes": predict.Nothing, "list": predict.Nothing}},
		"prep-done": {Flags: map[string]complete.Predictor{"tour": predict.Nothing, "id": predict.Nothing, "status": predict.Set{"pending", "completed"}}},
		"prep-del":  {Flags: map[string]complete.Predictor{"tour": predict.Nothing, "id": predict.Nothing, "f": predict.Nothing}},
		"summary":   {Flags: map[string]complete.Predictor{"tour": predict.Nothing}},
		"export":    {Flags: map[string]complete.Predictor{"tour": predict.Nothing, "o": predict.Files("*.xlsx")}},
		"rates":     {Flags: map[string]complete.Predictor{"refresh": predict.Nothing, "history": predict.Set{"JPY", "USD"}}},
		"fmt":       {},
		"topic":     {Args: predict.Set{"tours", "entries", "preparation", "currencies", "rates", "export", "readme", "*"}},
		"assist":    {},
	},
}

func main() {
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(subcommands.HelpCommand(), "")
	commander.Register(subcommands.FlagsCommand(), "")
	commander.Register(subcommands.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

package runs

import "github.com/urfave/cli/v2"

// Command returns the `runs` command tree.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "Inspect the scrape run history",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List recent runs",
				Flags:  append(Flags(), &cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "max runs to list (0 = all)", Value: 20}),
				Action: ListAction,
			},
			{
				Name:      "show",
				Usage:     "Show one run and its pages (latest when no ID is given)",
				ArgsUsage: "[id]",
				Flags:     append(Flags(), &cli.BoolFlag{Name: "quotes", Usage: "also list the run's quotes"}),
				Action:    ShowAction,
			},
		},
	}
}

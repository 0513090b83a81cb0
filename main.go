package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/quotes-scraper/internal/runs"
	"github.com/dtnitsch/quotes-scraper/internal/scrape"
	"github.com/dtnitsch/quotes-scraper/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("quotes failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "quotes",
		Usage:  "Scrape paginated quotes into a CSV file",
		Flags:  scrape.Flags(),
		Action: scrape.ScrapeAction,
		Commands: []*cli.Command{
			{
				Name:   "scrape",
				Usage:  "Scrape every page and write the quotes CSV (default command)",
				Flags:  scrape.Flags(),
				Action: scrape.ScrapeAction,
			},
			runs.Command(),
			{
				Name:  "quickstart",
				Usage: "Print a YAML cheat sheet",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.QuickstartYAML)
					return err
				},
			},
		},
	}
}

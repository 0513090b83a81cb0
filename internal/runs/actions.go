package runs

import (
	"errors"
	"fmt"
	"strings"

	dbpkg "github.com/dtnitsch/quotes-scraper/pkg/db"
	"github.com/urfave/cli/v2"
)

const timeLayout = "2006-01-02 15:04:05"

// Flags returns the flags shared by the runs subcommands.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "db", Usage: "run history database path", Value: dbpkg.DefaultDBName, EnvVars: []string{"QUOTES_DB"}},
	}
}

// ListAction prints the most recent runs as a table.
func ListAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	w := c.App.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-8s %-6s %-7s %-10s %-30s\n",
		"ID", "Started", "Status", "Pages", "Quotes", "Duration", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		fmt.Fprintf(w, "%-6d %-20s %-8s %-6d %-7d %-10s %-30s\n",
			r.RunID,
			r.StartedAt.Format(timeLayout),
			r.Status,
			r.PageCount,
			r.QuoteCount,
			r.Duration().String(),
			r.OutputPath,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'quotes runs show <id>' to see details\n")
	return nil
}

// ShowAction prints one run with its pages, and its quotes with --quotes.
func ShowAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	pages, err := database.GetRunPages(runID)
	if err != nil {
		return fmt.Errorf("failed to get run pages: %w", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Run %d\n", run.RunID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Started:     %s\n", run.StartedAt.Format(timeLayout))
	if run.FinishedAt.Valid {
		fmt.Fprintf(w, "Finished:    %s (%s)\n", run.FinishedAt.Time.Format(timeLayout), run.Duration())
	}
	fmt.Fprintf(w, "Base URL:    %s\n", run.BaseURL)
	fmt.Fprintf(w, "Output:      %s\n", run.OutputPath)
	fmt.Fprintf(w, "Status:      %s\n", run.Status)
	fmt.Fprintf(w, "Quotes:      %d from %d pages\n", run.QuoteCount, run.PageCount)
	if run.ErrorMessage.Valid {
		fmt.Fprintf(w, "Error:       %s\n", run.ErrorMessage.String)
	}

	fmt.Fprintf(w, "\nPages (%d):\n", len(pages))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, p := range pages {
		next := ""
		if p.HasNext {
			next = " -> next"
		}
		fmt.Fprintf(w, "%3d. %s\n", p.PageNumber, p.URL)
		fmt.Fprintf(w, "     Quotes: %d | Size: %d bytes | Hash: %s%s\n",
			p.QuoteCount, p.SizeBytes, p.ContentHash, next)
	}

	if !c.Bool("quotes") {
		fmt.Fprintf(w, "\nTip: Use 'quotes runs show --quotes %d' to list its quotes\n", runID)
		return nil
	}

	quotes, err := database.GetRunQuotes(runID)
	if err != nil {
		return fmt.Errorf("failed to get run quotes: %w", err)
	}

	fmt.Fprintf(w, "\nQuotes (%d):\n", len(quotes))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, q := range quotes {
		fmt.Fprintf(w, "%3d. %s\n", q.Position+1, q.Text)
		fmt.Fprintf(w, "     Author: %s | Tags: %s", q.Author, strings.Join(q.Tags, ", "))
		if q.Language != "" {
			fmt.Fprintf(w, " | Lang: %s (%.2f)", q.Language, q.LanguageConfidence)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		runs, err := database.ListRuns(1)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest run: %w", err)
		}
		if len(runs) == 0 {
			return 0, errors.New("no runs found. Run 'quotes scrape' first")
		}
		return runs[0].RunID, nil
	}

	var runID int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &runID); err != nil {
		return 0, fmt.Errorf("invalid run ID: %s", c.Args().First())
	}
	return runID, nil
}

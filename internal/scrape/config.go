package scrape

import (
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/quotes-scraper/internal/common"
	"github.com/dtnitsch/quotes-scraper/models"
	"github.com/dtnitsch/quotes-scraper/pkg/db"
	"github.com/dtnitsch/quotes-scraper/pkg/scraper"
	"github.com/urfave/cli/v2"
)

// DefaultOutputPath is where quotes are written when no path is configured.
const DefaultOutputPath = "quotes.csv"

// Options are the resolved settings for one run.
type Options struct {
	Config models.ScrapeConfig
	MaxAge time.Duration
	NoDB   bool
	Format string
	TopN   int
}

// Flags returns the flags shared by the root command and `scrape`.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "base-url", Usage: "site to scrape; pages are fetched from <base-url>page/<n>", Value: scraper.DefaultBaseURL, EnvVars: []string{"QUOTES_BASE_URL"}},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "CSV output path", Value: DefaultOutputPath},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file; explicit flags override it"},
		&cli.StringFlag{Name: "cache-dir", Usage: "cache raw pages in this directory (disabled when empty)"},
		&cli.StringFlag{Name: "max-age", Usage: "max age of cached pages (0 = never expire)", Value: "24h"},
		&cli.StringFlag{Name: "db", Usage: "run history database path", Value: db.DefaultDBName, EnvVars: []string{"QUOTES_DB"}},
		&cli.BoolFlag{Name: "no-db", Usage: "do not record the run in the history database"},
		&cli.BoolFlag{Name: "detect-language", Usage: "detect each quote's language and store it in the run history"},
		&cli.StringFlag{Name: "user-agent", Usage: "User-Agent header for page requests"},
		&cli.StringFlag{Name: "format", Usage: "summary format: json or yaml", Value: "json"},
		&cli.IntFlag{Name: "top", Usage: "number of tags and authors listed in the summary", Value: 10},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
	}
}

// ResolveOptions merges defaults, the optional YAML config file, and flags.
// A flag wins over the config file only when it was set explicitly.
func ResolveOptions(c *cli.Context) (*Options, error) {
	cfg := models.ScrapeConfig{
		BaseURL:    c.String("base-url"),
		OutputPath: c.String("output"),
		DBPath:     c.String("db"),
		CacheDir:   c.String("cache-dir"),
		MaxAge:     c.String("max-age"),
		UserAgent:  c.String("user-agent"),
	}

	if path := c.String("config"); path != "" {
		fileCfg, err := models.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		mergeConfig(&cfg, fileCfg, c.IsSet)
	}
	if c.IsSet("detect-language") {
		cfg.DetectLanguage = c.Bool("detect-language")
	}

	baseURL, err := common.ValidateBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	cfg.BaseURL = baseURL
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}

	format := strings.ToLower(c.String("format"))
	if format != "json" && format != "yaml" && format != "yml" {
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", c.String("format"))
	}

	var maxAge time.Duration
	if cfg.MaxAge != "" {
		maxAge, err = time.ParseDuration(cfg.MaxAge)
		if err != nil {
			return nil, fmt.Errorf("invalid max-age duration: %w", err)
		}
	}

	return &Options{
		Config: cfg,
		MaxAge: maxAge,
		NoDB:   c.Bool("no-db"),
		Format: format,
		TopN:   c.Int("top"),
	}, nil
}

// mergeConfig copies non-empty file values into cfg unless the matching flag
// was set on the command line.
func mergeConfig(cfg *models.ScrapeConfig, file *models.ScrapeConfig, isSet func(string) bool) {
	pick := func(dst *string, src, flag string) {
		if src != "" && !isSet(flag) {
			*dst = src
		}
	}
	pick(&cfg.BaseURL, file.BaseURL, "base-url")
	pick(&cfg.OutputPath, file.OutputPath, "output")
	pick(&cfg.DBPath, file.DBPath, "db")
	pick(&cfg.CacheDir, file.CacheDir, "cache-dir")
	pick(&cfg.MaxAge, file.MaxAge, "max-age")
	pick(&cfg.UserAgent, file.UserAgent, "user-agent")
	cfg.DetectLanguage = file.DetectLanguage
	cfg.Selectors = file.Selectors
}

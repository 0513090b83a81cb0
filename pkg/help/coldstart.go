package help

const QuickstartYAML = `# quotes-scraper Quick Start

output:
  csv: "quotes.csv by default; header text,author,tags"
  tags_column: "list literal, e.g. ['love', 'life']"
  summary: "JSON run summary on stdout (--format yaml for YAML)"
  logs: "JSON logs on stderr (--quiet for errors only)"

commands:
  scrape_defaults: |
    quotes

  scrape_to_file: |
    quotes scrape -o /tmp/quotes.csv

  other_site: |
    quotes scrape --base-url "http://localhost:8080/"

  cached_rerun: |
    quotes scrape --cache-dir .quotes-cache --max-age 1h

  languages: |
    quotes scrape --detect-language
    quotes runs show --quotes

  config_file: |
    quotes scrape --config quotes.yaml

  list_runs: |
    quotes runs list --limit 5

  run_details: |
    quotes runs show 3

config_file_example: |
  base_url: https://quotes.toscrape.com/
  output: quotes.csv
  cache_dir: .quotes-cache
  max_age: 24h
  detect_language: true
  selectors:
    quote: .quote
    text: .text
    author: .author
    tag: .tag
    next: .next

failure_modes:
  transport: "non-2xx status or network error aborts the run"
  structure: "a quote without .text or .author aborts the run"
  output: "CSV is only written after every page succeeded"
`

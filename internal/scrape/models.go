package scrape

// RunSummary is printed to stdout after a scrape run.
type RunSummary struct {
	Status           string   `json:"status" yaml:"status"`
	RunID            int64    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	BaseURL          string   `json:"base_url" yaml:"base_url"`
	OutputPath       string   `json:"output_path" yaml:"output_path"`
	Pages            int      `json:"pages" yaml:"pages"`
	Quotes           int      `json:"quotes" yaml:"quotes"`
	FileSizeBytes    int64    `json:"file_size_bytes" yaml:"file_size_bytes"`
	TopTags          []string `json:"top_tags,omitempty" yaml:"top_tags,omitempty"`
	TopAuthors       []string `json:"top_authors,omitempty" yaml:"top_authors,omitempty"`
	Languages        []string `json:"languages,omitempty" yaml:"languages,omitempty"`
	CacheDir         string   `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
	TotalTimeSeconds float64  `json:"total_time_seconds" yaml:"total_time_seconds"`
}

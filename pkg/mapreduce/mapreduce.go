package mapreduce

import "github.com/dtnitsch/quotes-scraper/models"

// MapTags counts tag occurrences across one batch of quotes.
func MapTags(quotes []models.Quote) map[string]int {
	counts := make(map[string]int)
	for _, q := range quotes {
		for _, tag := range q.Tags {
			counts[tag]++
		}
	}
	return counts
}

// MapAuthors counts quotes per author in one batch.
func MapAuthors(quotes []models.Quote) map[string]int {
	counts := make(map[string]int)
	for _, q := range quotes {
		counts[q.Author]++
	}
	return counts
}

// Reduce aggregates a slice of frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for key, count := range counts {
			finalResults[key] += count
		}
	}

	return finalResults
}

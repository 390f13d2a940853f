package core

import (
	"math"

	"github.com/huangsam/gitwrapped/core/algo"
	"github.com/huangsam/gitwrapped/schema"
)

// Language distribution heuristics.
const (
	fallbackBytesPerRepo = 1000
	bytesPerLine         = 50
	topLanguageLimit     = 5
)

// AnalyzeLanguages computes the top language shares across repositories.
// When no repository reports language bytes, each repository's primary
// language counts as a fixed amount instead.
func AnalyzeLanguages(languages schema.LanguageByteMap, repos []schema.Repository) []schema.LanguageStat {
	totals := make(map[string]int)
	for _, langs := range languages {
		for lang, bytes := range langs {
			totals[lang] += bytes
		}
	}

	if sumValues(totals) == 0 {
		clear(totals)
		for _, repo := range repos {
			if repo.PrimaryLanguage != "" {
				totals[repo.PrimaryLanguage] += fallbackBytesPerRepo
			}
		}
	}

	total := sumValues(totals)
	if total == 0 {
		return []schema.LanguageStat{}
	}

	entries := make([]algo.NamedCount, 0, len(totals))
	for lang, bytes := range totals {
		entries = append(entries, algo.NamedCount{Name: lang, Count: bytes})
	}

	// Share is monotonic in bytes, so ranking by bytes ranks by share.
	ranked := algo.RankCounts(entries, topLanguageLimit)
	stats := make([]schema.LanguageStat, len(ranked))
	for i, e := range ranked {
		stats[i] = schema.LanguageStat{
			Name:         e.Name,
			Percentage:   int(math.Round(float64(e.Count) / float64(total) * 100)),
			LinesWritten: e.Count / bytesPerLine,
		}
	}
	return stats
}

func sumValues(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

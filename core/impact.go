package core

import "github.com/huangsam/gitwrapped/schema"

// AnalyzeImpact sums stars and forks over repositories and picks the most
// starred one. The first repository wins ties.
func AnalyzeImpact(repos []schema.Repository) schema.ImpactStats {
	var stats schema.ImpactStats
	best := -1
	for _, r := range repos {
		stats.StarsEarned += r.Stars
		stats.ForksEarned += r.Forks
		if r.Stars > best {
			best = r.Stars
			stats.TopStarredRepo = r.Name
		}
	}
	return stats
}

package algo

import (
	"cmp"
	"maps"
	"slices"
	"sort"

	"github.com/huangsam/gitwrapped/schema"
)

// RankRepositories sorts repositories by commit count in descending order
// and returns the top 'limit' entries. Ties keep their first-seen order.
// If limit is greater than the number of repositories, all are returned.
func RankRepositories(repos []schema.RepositoryStat, limit int) []schema.RepositoryStat {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].Commits > repos[j].Commits
	})
	if len(repos) > limit {
		return repos[:limit]
	}
	return repos
}

// NamedCount is a name with an accumulated count, e.g. bytes per language.
type NamedCount struct {
	Name  string
	Count int
}

// RankCounts sorts entries by count in descending order, breaking ties by name,
// and returns the top 'limit' entries.
func RankCounts(entries []NamedCount, limit int) []NamedCount {
	slices.SortFunc(entries, func(a, b NamedCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

// SortedKeys returns the keys of a map in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}

package schema

// RankedRepository adds presentation data to a RepositoryStat.
type RankedRepository struct {
	Rank int `json:"rank"`
	RepositoryStat
}

// CatalogEntry is one archetype as presented by the archetypes listing.
type CatalogEntry struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity"`
	Rule        string `json:"rule"`
	Priority    int    `json:"priority"`
}

// RankRepositories adds a 1-based rank to a list of repository stats.
func RankRepositories(repos []RepositoryStat) []RankedRepository {
	output := make([]RankedRepository, len(repos))
	for i, r := range repos {
		output[i] = RankedRepository{
			Rank:           i + 1,
			RepositoryStat: r,
		}
	}
	return output
}

// Package schema has models and constants for all parts of gitwrapped.
package schema

import "time"

// Event is one unit of public GitHub activity.
type Event struct {
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"createdAt"`
	RepoFullName string    `json:"repoFullName"` // owner/name
	CommitCount  *int      `json:"commitCount,omitempty"`
}

// Repository is a repository owned by the analyzed user.
type Repository struct {
	Name            string `json:"name"`
	FullName        string `json:"fullName"`
	Stars           int    `json:"stars"`
	Forks           int    `json:"forks"`
	PrimaryLanguage string `json:"primaryLanguage,omitempty"` // empty when GitHub reports none
}

// LanguageByteMap maps repository name to language name to byte count.
type LanguageByteMap map[string]map[string]int

// Profile is the public profile summary of a user.
type Profile struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Bio       string `json:"bio"`
	Followers int    `json:"followers"`
}

// ActivitySnapshot is everything fetched for one user, fully materialized.
type ActivitySnapshot struct {
	Profile      Profile         `json:"profile"`
	Repositories []Repository    `json:"repositories"`
	Events       []Event         `json:"events"`
	Languages    LanguageByteMap `json:"languages"`
	FetchedAt    time.Time       `json:"fetchedAt"`
}

// ContributionStats counts events per contribution category.
// Total counts every event, so the buckets need not add up to it.
type ContributionStats struct {
	Total   int `json:"total"`
	Commits int `json:"commits"`
	PRs     int `json:"prs"`
	Issues  int `json:"issues"`
	Reviews int `json:"reviews"`
}

// RepositoryStat tallies push activity for one repository.
// Additions and Deletions are estimates derived from the commit count.
type RepositoryStat struct {
	Name      string `json:"name"`
	Commits   int    `json:"commits"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// LanguageStat is the share of one language across repositories.
type LanguageStat struct {
	Name         string `json:"name"`
	Percentage   int    `json:"percentage"`
	LinesWritten int    `json:"linesWritten"`
}

// RhythmStats describes when a user tends to be active.
type RhythmStats struct {
	PeakHour      int     `json:"peakHour"`
	PeakDay       string  `json:"peakDay"`
	WeekendRatio  float64 `json:"weekendRatio"`
	LongestStreak int     `json:"longestStreak"`
}

// CollaborationStats describes activity outside the user's own repositories.
type CollaborationStats struct {
	ExternalRepos   int       `json:"externalRepos"`
	DiverseProjects bool      `json:"diverseProjects"`
	WorkStyle       WorkStyle `json:"workStyle"`
	UniqueDays      int       `json:"uniqueDays"`
}

// ImpactStats sums community reach over the user's repositories.
type ImpactStats struct {
	StarsEarned    int    `json:"starsEarned"`
	ForksEarned    int    `json:"forksEarned"`
	TopStarredRepo string `json:"topStarredRepo"`
}

// WrappedResult is the complete year-in-review bundle for one user.
type WrappedResult struct {
	Username      string             `json:"username"`
	Year          int                `json:"year"`
	Profile       ProfileSummary     `json:"profile"`
	Contributions ContributionStats  `json:"contributions"`
	Archetype     ArchetypeInfo      `json:"archetype"`
	Repositories  []RepositoryStat   `json:"repositories"`
	Languages     []LanguageStat     `json:"languages"`
	Rhythm        RhythmStats        `json:"rhythm"`
	Impact        ImpactStats        `json:"impact"`
	Collaboration CollaborationStats `json:"collaboration"`

	// Explanation is populated for --explain and is not part of the default payload.
	Explanation *ArchetypeExplanation `json:"explanation,omitempty"`
}

// ProfileSummary is the profile as rendered, with the name falling back to the login.
type ProfileSummary struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Bio       string `json:"bio"`
	Followers int    `json:"followers"`
}

// ArchetypeExplanation records the classifier inputs and the rule that matched.
type ArchetypeExplanation struct {
	Rule              string  `json:"rule"`
	TotalEvents       int     `json:"totalEvents"`
	UniqueDays        int     `json:"uniqueDays"`
	RepoCount         int     `json:"repoCount"`
	PeakHour          int     `json:"peakHour"`
	WeekendRatio      float64 `json:"weekendRatio"`
	LanguageDiversity int     `json:"languageDiversity"`
	Burstiness        float64 `json:"burstiness"`
	Consistency       float64 `json:"consistency"`
	UsedFallback      bool    `json:"usedFallback"`
}

package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// Rarity represents how uncommon an archetype is meant to be.
	Rarity string

	// WorkStyle represents the breadth of collaboration outside one's own repositories.
	WorkStyle string

	// Category represents the contribution bucket an event falls into.
	Category string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All rarity tiers. LegendaryRarity is declared but no archetype rule assigns it.
const (
	CommonRarity    Rarity = "common"
	UncommonRarity  Rarity = "uncommon"
	RareRarity      Rarity = "rare"
	LegendaryRarity Rarity = "legendary"
)

// All work styles.
const (
	LoneWolf         WorkStyle = "lone_wolf"
	TeamPlayer       WorkStyle = "team_player"
	CommunityBuilder WorkStyle = "community_builder"
)

// All contribution categories.
const (
	CommitCategory        Category = "commit"
	PullRequestCategory   Category = "pr"
	IssueCategory         Category = "issue"
	ReviewCategory        Category = "review"
	UncategorizedCategory Category = ""
)

// GitHub event type names that the analysis understands.
const (
	PushEvent                     = "PushEvent"
	PullRequestEvent              = "PullRequestEvent"
	IssuesEvent                   = "IssuesEvent"
	IssueCommentEvent             = "IssueCommentEvent"
	PullRequestReviewEvent        = "PullRequestReviewEvent"
	PullRequestReviewCommentEvent = "PullRequestReviewCommentEvent"
)

// Weekdays lists day names in time.Weekday order (Sunday first).
var Weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

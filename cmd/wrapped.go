package cmd

import (
	"github.com/huangsam/gitwrapped/core"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/spf13/cobra"
)

// wrappedCmd builds the year-in-review for one user.
var wrappedCmd = &cobra.Command{
	Use:   "wrapped <username>",
	Short: "Build a year-in-review for a GitHub user",
	Long: `Fetch a user's public profile, repositories, events and language bytes, then
summarize the year: contributions, top repositories, languages, rhythm, impact,
collaboration and a developer archetype.

Events outside the requested year are ignored. When the year has no events at
all, every fetched event is used instead (see --explain).

GitHub only serves roughly the last 90 days and 300 public events, so counts
for older years are partial.

Examples:
  # Current year, rendered as slides in the terminal
  gitwrapped wrapped octocat

  # A specific year as JSON, with the archetype reasoning
  gitwrapped wrapped octocat --year 2024 --output json --explain

  # Use a token to raise the rate limit
  GITHUB_TOKEN=... gitwrapped wrapped octocat`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWrapped(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot build wrapped", err)
		}
	},
}

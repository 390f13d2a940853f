package cmd

import (
	"github.com/huangsam/gitwrapped/core"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/spf13/cobra"
)

// archetypesCmd lists the archetype catalog.
var archetypesCmd = &cobra.Command{
	Use:   "archetypes",
	Short: "List developer archetypes and the rules that assign them",
	Long: `Show every developer archetype with its rarity and the rule that assigns it.

Rules are evaluated top to bottom and the first match wins, so a user who fits
several descriptions gets the one with the lowest priority number.

Examples:
  gitwrapped archetypes
  gitwrapped archetypes --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteArchetypes(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list archetypes", err)
		}
	},
}

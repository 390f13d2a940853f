package core

import (
	"strings"

	"github.com/huangsam/gitwrapped/core/agg"
	"github.com/huangsam/gitwrapped/schema"
)

// Work style thresholds on the number of external repositories.
const (
	diverseProjectsThreshold = 3
	communityBuilderMin      = 5
)

// AnalyzeCollaboration counts distinct repositories outside the user's own
// namespace and the number of distinct active days.
func AnalyzeCollaboration(events []schema.Event, username string) schema.CollaborationStats {
	external := make(map[string]struct{})
	for _, e := range events {
		if !strings.EqualFold(schema.RepoOwner(e.RepoFullName), username) {
			external[e.RepoFullName] = struct{}{}
		}
	}

	return schema.CollaborationStats{
		ExternalRepos:   len(external),
		DiverseProjects: len(external) > diverseProjectsThreshold,
		WorkStyle:       workStyleFor(len(external)),
		UniqueDays:      len(agg.BucketEvents(events).ByDate),
	}
}

func workStyleFor(externalRepos int) schema.WorkStyle {
	switch {
	case externalRepos == 0:
		return schema.LoneWolf
	case externalRepos < communityBuilderMin:
		return schema.TeamPlayer
	default:
		return schema.CommunityBuilder
	}
}

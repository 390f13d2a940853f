package ghclient

import (
	"github.com/google/go-github/v56/github"
	"github.com/huangsam/gitwrapped/schema"
)

func toProfile(u *github.User) schema.Profile {
	return schema.Profile{
		Login:     u.GetLogin(),
		Name:      u.GetName(),
		AvatarURL: u.GetAvatarURL(),
		Bio:       u.GetBio(),
		Followers: u.GetFollowers(),
	}
}

func toRepository(r *github.Repository) schema.Repository {
	return schema.Repository{
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		Stars:           r.GetStargazersCount(),
		Forks:           r.GetForksCount(),
		PrimaryLanguage: r.GetLanguage(),
	}
}

// toEvent keeps the fields the analysis needs. Only push payloads are decoded,
// and a payload that fails to decode leaves CommitCount unset.
func toEvent(e *github.Event) schema.Event {
	event := schema.Event{
		Type:         e.GetType(),
		CreatedAt:    e.GetCreatedAt().Time,
		RepoFullName: e.GetRepo().GetName(),
	}
	if event.Type != schema.PushEvent || e.RawPayload == nil {
		return event
	}
	payload, err := e.ParsePayload()
	if err != nil {
		return event
	}
	if push, ok := payload.(*github.PushEvent); ok && push.Commits != nil {
		count := len(push.Commits)
		event.CommitCount = &count
	}
	return event
}

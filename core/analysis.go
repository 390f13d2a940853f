package core

import (
	"time"

	"github.com/huangsam/gitwrapped/core/agg"
	"github.com/huangsam/gitwrapped/core/algo"
	"github.com/huangsam/gitwrapped/schema"
)

// LocalizeEvents returns a copy of the events with timestamps expressed in loc.
// A nil location leaves timestamps untouched.
func LocalizeEvents(events []schema.Event, loc *time.Location) []schema.Event {
	out := make([]schema.Event, len(events))
	copy(out, events)
	if loc == nil {
		return out
	}
	for i := range out {
		out[i].CreatedAt = out[i].CreatedAt.In(loc)
	}
	return out
}

// FilterEventsByYear keeps the events whose timestamp falls in the given year.
func FilterEventsByYear(events []schema.Event, year int) []schema.Event {
	var filtered []schema.Event
	for _, e := range events {
		if e.CreatedAt.Year() == year {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// selectEvents picks the target year's events, falling back to the whole set
// when the year has none.
func selectEvents(events []schema.Event, year int) ([]schema.Event, bool) {
	if yearEvents := FilterEventsByYear(events, year); len(yearEvents) > 0 {
		return yearEvents, false
	}
	return events, true
}

// Analyze turns a fetched activity snapshot into a WrappedResult. It is a pure
// function of its inputs and never fails.
func Analyze(username string, year int, snap *schema.ActivitySnapshot, loc *time.Location) schema.WrappedResult {
	events, usedFallback := selectEvents(LocalizeEvents(snap.Events, loc), year)

	contributions := agg.AggregateContributions(events)
	tally := agg.TallyRepositories(events)
	repoCount := len(tally)
	topRepos := algo.RankRepositories(tally, agg.TopRepositoryLimit)
	languages := AnalyzeLanguages(snap.Languages, snap.Repositories)
	rhythm := AnalyzeRhythm(events)
	impact := AnalyzeImpact(snap.Repositories)
	collaboration := AnalyzeCollaboration(events, username)

	input := BuildArchetypeInput(events, rhythm, repoCount, len(languages))
	archetype, rule := ClassifyArchetype(input)

	login := snap.Profile.Login
	if login == "" {
		login = username
	}
	name := snap.Profile.Name
	if name == "" {
		name = login
	}

	return schema.WrappedResult{
		Username: login,
		Year:     year,
		Profile: schema.ProfileSummary{
			Name:      name,
			AvatarURL: snap.Profile.AvatarURL,
			Bio:       snap.Profile.Bio,
			Followers: snap.Profile.Followers,
		},
		Contributions: contributions,
		Archetype:     archetype.Info(),
		Repositories:  topRepos,
		Languages:     languages,
		Rhythm:        rhythm,
		Impact:        impact,
		Collaboration: collaboration,
		Explanation: &schema.ArchetypeExplanation{
			Rule:              rule,
			TotalEvents:       input.TotalEvents,
			UniqueDays:        input.UniqueDays,
			RepoCount:         input.RepoCount,
			PeakHour:          input.PeakHour,
			WeekendRatio:      input.WeekendRatio,
			LanguageDiversity: input.LanguageDiversity,
			Burstiness:        input.Burstiness,
			Consistency:       input.Consistency(),
			UsedFallback:      usedFallback,
		},
	}
}

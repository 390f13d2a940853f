package core

import (
	"github.com/huangsam/gitwrapped/core/agg"
	"github.com/huangsam/gitwrapped/core/algo"
	"github.com/huangsam/gitwrapped/schema"
)

// daysPerYear normalizes unique active days into a consistency ratio.
const daysPerYear = 365

// ArchetypeInput holds the signals the archetype rules inspect.
type ArchetypeInput struct {
	TotalEvents       int
	UniqueDays        int
	RepoCount         int
	PeakHour          int
	WeekendRatio      float64
	LanguageDiversity int
	Burstiness        float64
}

// Consistency is the share of the year with at least one event.
func (in ArchetypeInput) Consistency() float64 {
	return float64(in.UniqueDays) / daysPerYear
}

// archetypeRule is one entry in the ordered classification chain.
type archetypeRule struct {
	name   string
	desc   string
	match  func(ArchetypeInput) bool
	result func(ArchetypeInput) schema.Archetype
}

func always(a schema.Archetype) func(ArchetypeInput) schema.Archetype {
	return func(ArchetypeInput) schema.Archetype { return a }
}

// archetypeRules is evaluated top to bottom and the first match wins.
// The last rule matches everything, so classification is total.
var archetypeRules = []archetypeRule{
	{
		name:  "low_activity",
		desc:  "fewer than 50 events; more than 3 languages means experimental",
		match: func(in ArchetypeInput) bool { return in.TotalEvents < 50 },
		result: func(in ArchetypeInput) schema.Archetype {
			if in.LanguageDiversity > 3 {
				return schema.ExperimentalBuilder
			}
			return schema.PrecisionContributor
		},
	},
	{
		name:   "polyglot",
		desc:   "5 or more top languages",
		match:  func(in ArchetypeInput) bool { return in.LanguageDiversity >= 5 },
		result: always(schema.PolyglotExplorer),
	},
	{
		name:   "deep_focus",
		desc:   "at most 2 active repositories and more than 100 events",
		match:  func(in ArchetypeInput) bool { return in.RepoCount <= 2 && in.TotalEvents > 100 },
		result: always(schema.DeepDiver),
	},
	{
		name:   "weekend",
		desc:   "more than 40% of events on weekends",
		match:  func(in ArchetypeInput) bool { return in.WeekendRatio > 0.4 },
		result: always(schema.WeekendBuilder),
	},
	{
		name:   "night_owl",
		desc:   "peak hour between 22:00 and 04:59",
		match:  func(in ArchetypeInput) bool { return in.PeakHour >= 22 || in.PeakHour <= 4 },
		result: always(schema.NightOwlArchitect),
	},
	{
		name:   "early_bird",
		desc:   "peak hour between 05:00 and 09:59",
		match:  func(in ArchetypeInput) bool { return in.PeakHour >= 5 && in.PeakHour <= 9 },
		result: always(schema.EarlyBirdEngineer),
	},
	{
		name:   "consistent",
		desc:   "active on more than 70% of the days in a year",
		match:  func(in ArchetypeInput) bool { return in.Consistency() > 0.7 },
		result: always(schema.ConsistentCraftsperson),
	},
	{
		name:   "bursty",
		desc:   "daily activity burstiness above 1.5",
		match:  func(in ArchetypeInput) bool { return in.Burstiness > 1.5 },
		result: always(schema.SprintCommitter),
	},
	{
		name:   "high_velocity",
		desc:   "more than 500 events across more than 10 repositories",
		match:  func(in ArchetypeInput) bool { return in.TotalEvents > 500 && in.RepoCount > 10 },
		result: always(schema.FullStackSprinter),
	},
	{
		name:   "default",
		desc:   "everything else",
		match:  func(ArchetypeInput) bool { return true },
		result: always(schema.SteadyContributor),
	},
}

// ClassifyArchetype returns the archetype for the input and the name of the
// rule that produced it.
func ClassifyArchetype(in ArchetypeInput) (schema.Archetype, string) {
	for _, rule := range archetypeRules {
		if rule.match(in) {
			return rule.result(in), rule.name
		}
	}
	// Unreachable while the last rule is unconditional.
	return schema.SteadyContributor, "default"
}

// BuildArchetypeInput gathers classifier signals from events and the already
// computed rhythm, repository and language results.
func BuildArchetypeInput(events []schema.Event, rhythm schema.RhythmStats, repoCount, languageDiversity int) ArchetypeInput {
	buckets := agg.BucketEvents(events)
	return ArchetypeInput{
		TotalEvents:       len(events),
		UniqueDays:        len(buckets.ByDate),
		RepoCount:         repoCount,
		PeakHour:          rhythm.PeakHour,
		WeekendRatio:      rhythm.WeekendRatio,
		LanguageDiversity: languageDiversity,
		Burstiness:        algo.Burstiness(buckets.DateCounts()),
	}
}

// ArchetypeRuleCatalog describes each archetype with the rule that can produce
// it, in evaluation order.
func ArchetypeRuleCatalog() []schema.CatalogEntry {
	produces := map[string][]schema.Archetype{
		"low_activity": {schema.ExperimentalBuilder, schema.PrecisionContributor},
	}

	var entries []schema.CatalogEntry
	for i, rule := range archetypeRules {
		archetypes, ok := produces[rule.name]
		if !ok {
			archetypes = []schema.Archetype{rule.result(ArchetypeInput{})}
		}
		for _, a := range archetypes {
			info := a.Info()
			entries = append(entries, schema.CatalogEntry{
				Key:         a.Key(),
				Name:        info.Name,
				Description: info.Description,
				Rarity:      info.Rarity,
				Rule:        rule.desc,
				Priority:    i + 1,
			})
		}
	}
	return entries
}

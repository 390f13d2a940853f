package schema

import "fmt"

// Archetype is one of the fixed developer archetypes.
type Archetype int

// All archetypes. The zero value is intentionally invalid.
const (
	_ Archetype = iota
	FullStackSprinter
	NightOwlArchitect
	SteadyContributor
	WeekendBuilder
	EarlyBirdEngineer
	DeepDiver
	PolyglotExplorer
	ConsistentCraftsperson
	SprintCommitter
	PrecisionContributor
	ExperimentalBuilder
)

// ArchetypeInfo is the static display data for an archetype.
type ArchetypeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity"`
}

var archetypeCatalog = map[Archetype]struct {
	key  string
	info ArchetypeInfo
}{
	FullStackSprinter:      {"full_stack_sprinter", ArchetypeInfo{"Full-Stack Sprinter", "High velocity across many projects", UncommonRarity}},
	NightOwlArchitect:      {"night_owl_architect", ArchetypeInfo{"Night Owl Architect", "Deep focus, late-night momentum", UncommonRarity}},
	SteadyContributor:      {"steady_contributor", ArchetypeInfo{"Steady Contributor", "Reliable weekday rhythm", CommonRarity}},
	WeekendBuilder:         {"weekend_builder", ArchetypeInfo{"Weekend Builder", "Side projects on Saturday and Sunday", UncommonRarity}},
	EarlyBirdEngineer:      {"early_bird_engineer", ArchetypeInfo{"Early Bird Engineer", "Fresh code with morning coffee", UncommonRarity}},
	DeepDiver:              {"deep_diver", ArchetypeInfo{"Deep Diver", "Laser focus on mastering one domain", RareRarity}},
	PolyglotExplorer:       {"polyglot_explorer", ArchetypeInfo{"Polyglot Explorer", "Learning through diverse languages", RareRarity}},
	ConsistentCraftsperson: {"consistent_craftsperson", ArchetypeInfo{"Consistent Craftsperson", "Steady, daily craftsmanship", UncommonRarity}},
	SprintCommitter:        {"sprint_committer", ArchetypeInfo{"Sprint Committer", "Intense bursts of productivity", CommonRarity}},
	PrecisionContributor:   {"precision_contributor", ArchetypeInfo{"Precision Contributor", "Quality over quantity", CommonRarity}},
	ExperimentalBuilder:    {"experimental_builder", ArchetypeInfo{"Experimental Builder", "Exploring, learning, building when inspiration strikes", CommonRarity}},
}

// AllArchetypes lists every archetype in declaration order.
var AllArchetypes = []Archetype{
	FullStackSprinter,
	NightOwlArchitect,
	SteadyContributor,
	WeekendBuilder,
	EarlyBirdEngineer,
	DeepDiver,
	PolyglotExplorer,
	ConsistentCraftsperson,
	SprintCommitter,
	PrecisionContributor,
	ExperimentalBuilder,
}

// Valid reports whether a is one of the catalogued archetypes.
func (a Archetype) Valid() bool {
	_, ok := archetypeCatalog[a]
	return ok
}

// Key returns the stable snake_case identifier of the archetype.
func (a Archetype) Key() string {
	if entry, ok := archetypeCatalog[a]; ok {
		return entry.key
	}
	return fmt.Sprintf("archetype(%d)", int(a))
}

// Info returns the static display data of the archetype.
func (a Archetype) Info() ArchetypeInfo {
	return archetypeCatalog[a].info
}

// String implements fmt.Stringer.
func (a Archetype) String() string {
	return a.Key()
}

// ArchetypeByKey looks up an archetype by its snake_case identifier.
func ArchetypeByKey(key string) (Archetype, bool) {
	for _, a := range AllArchetypes {
		if archetypeCatalog[a].key == key {
			return a, true
		}
	}
	return 0, false
}

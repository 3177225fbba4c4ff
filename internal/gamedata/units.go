package gamedata

import (
	"fmt"
	"sort"
)

// Tag is a unit capability marker. Unit behavior differences (attack kind,
// range) derive from tags plus the stat table, never from per-type branching.
type Tag string

const (
	// TagMelee marks units that fight in adjacent hexes.
	TagMelee Tag = "melee"
	// TagRanged marks units that attack at a distance.
	TagRanged Tag = "ranged"
	// TagMounted marks cavalry-class units.
	TagMounted Tag = "mounted"
)

// UnitDef is a closed unit-type definition loaded from units.json.
type UnitDef struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MaxHP         int    `json:"max_hp"`
	MeleeAttack   int    `json:"melee_attack"`
	RangedAttack  int    `json:"ranged_attack"`
	MeleeDefense  int    `json:"melee_defense"`
	RangedDefense int    `json:"ranged_defense"`
	Stamina       int    `json:"stamina"`
	Initiative    int    `json:"initiative"`
	Morale        int    `json:"morale"`
	ActionPoints  int    `json:"action_points"`
	AttackRange   int    `json:"attack_range"`
	Tags          []Tag  `json:"tags"`
	Color         string `json:"color"`       // player-side display color
	EnemyColor    string `json:"enemy_color"` // enemy-side display color
}

// HasTag reports whether the definition carries the given capability tag.
func (d UnitDef) HasTag(tag Tag) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// UnitRegistry holds the loaded unit definitions.
type UnitRegistry struct {
	byID map[string]UnitDef
	ids  []string
}

// NewUnitRegistry creates a registry from unit definitions.
func NewUnitRegistry(defs []UnitDef) *UnitRegistry {
	r := &UnitRegistry{byID: make(map[string]UnitDef, len(defs))}
	for _, d := range defs {
		r.byID[d.ID] = d
		r.ids = append(r.ids, d.ID)
	}
	sort.Strings(r.ids)
	return r
}

// LoadUnitRegistry loads the registry from the embedded units.json.
func LoadUnitRegistry() (*UnitRegistry, error) {
	defs, err := Load[[]UnitDef]("units.json")
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("no unit types loaded from units.json")
	}
	return NewUnitRegistry(defs), nil
}

// MustLoadUnitRegistry loads the registry, panicking on error.
func MustLoadUnitRegistry() *UnitRegistry {
	r, err := LoadUnitRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the definition for a unit-type id.
func (r *UnitRegistry) Get(id string) (UnitDef, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// IDs returns all unit-type ids in sorted order.
func (r *UnitRegistry) IDs() []string {
	return r.ids
}

package gamedata

import (
	"fmt"
	"math/rand"
	"sort"
)

// TerrainDef is a closed terrain-type definition loaded from terrain.json.
// MoveCost is the action-point cost of entering a cell of this terrain;
// the defense fields are added to an occupant's matching defense stat.
type TerrainDef struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MoveCost      int    `json:"move_cost"`
	MeleeDefense  int    `json:"melee_defense"`
	RangedDefense int    `json:"ranged_defense"`
	SpawnWeight   int    `json:"spawn_weight"`
	Color         string `json:"color"`
}

// TerrainRegistry holds the loaded terrain definitions and supports
// weighted selection for battlefield generation.
type TerrainRegistry struct {
	byID        map[string]TerrainDef
	ids         []string
	totalWeight int
}

// NewTerrainRegistry creates a registry from terrain definitions.
func NewTerrainRegistry(defs []TerrainDef) *TerrainRegistry {
	r := &TerrainRegistry{byID: make(map[string]TerrainDef, len(defs))}
	for _, d := range defs {
		r.byID[d.ID] = d
		r.ids = append(r.ids, d.ID)
		r.totalWeight += d.SpawnWeight
	}
	sort.Strings(r.ids)
	return r
}

// LoadTerrainRegistry loads the registry from the embedded terrain.json.
func LoadTerrainRegistry() (*TerrainRegistry, error) {
	defs, err := Load[[]TerrainDef]("terrain.json")
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("no terrain types loaded from terrain.json")
	}
	return NewTerrainRegistry(defs), nil
}

// MustLoadTerrainRegistry loads the registry, panicking on error.
func MustLoadTerrainRegistry() *TerrainRegistry {
	r, err := LoadTerrainRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the definition for a terrain id.
func (r *TerrainRegistry) Get(id string) (TerrainDef, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// MustGet returns the definition for a terrain id, panicking if unknown.
// An unknown terrain id on a generated battlefield is a broken invariant.
func (r *TerrainRegistry) MustGet(id string) TerrainDef {
	d, ok := r.byID[id]
	if !ok {
		panic(fmt.Sprintf("unknown terrain id %q", id))
	}
	return d
}

// IDs returns all terrain ids in sorted order.
func (r *TerrainRegistry) IDs() []string {
	return r.ids
}

// PickWeighted selects a terrain id using spawn-weight probability.
// Terrain with higher spawnWeight is more likely to be selected.
func (r *TerrainRegistry) PickWeighted(rng *rand.Rand) TerrainDef {
	if r.totalWeight <= 0 || len(r.ids) == 0 {
		panic("terrain registry has no weighted entries")
	}
	roll := rng.Intn(r.totalWeight)
	cumulative := 0
	for _, id := range r.ids {
		d := r.byID[id]
		cumulative += d.SpawnWeight
		if roll < cumulative {
			return d
		}
	}
	return r.byID[r.ids[len(r.ids)-1]]
}

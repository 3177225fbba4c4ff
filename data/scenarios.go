package data

import (
	"encoding/json"
	"fmt"
)

// Scenario is one named skirmish: a biome, a generation seed, and the unit
// types each side fields.
type Scenario struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Biome       string   `json:"biome"`
	Seed        int64    `json:"seed"`
	PlayerUnits []string `json:"player_units"`
	EnemyUnits  []string `json:"enemy_units"`
}

// LoadScenarios parses the embedded scenarios.json.
func LoadScenarios() ([]Scenario, error) {
	raw, err := dataFS.ReadFile("scenarios.json")
	if err != nil {
		return nil, fmt.Errorf("reading scenarios.json: %w", err)
	}
	var scenarios []Scenario
	if err := json.Unmarshal(raw, &scenarios); err != nil {
		return nil, fmt.Errorf("parsing scenarios.json: %w", err)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios defined in scenarios.json")
	}
	return scenarios, nil
}

// FindScenario returns the scenario with the given id, or the first one when
// id is empty.
func FindScenario(id string) (Scenario, error) {
	scenarios, err := LoadScenarios()
	if err != nil {
		return Scenario{}, err
	}
	if id == "" {
		return scenarios[0], nil
	}
	for _, s := range scenarios {
		if s.ID == id {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q", id)
}

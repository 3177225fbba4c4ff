package battle

import (
	"fmt"

	"github.com/samdwyer/hexmarch/internal/entity"
	"github.com/samdwyer/hexmarch/internal/gamedata"
	"github.com/samdwyer/hexmarch/internal/hexgrid"
)

// DeployRoster builds the encounter roster from unit-type id lists. The
// player army forms up on the second column, the enemy army on the second
// to last, both fanning out from the middle row. Unit ids are assigned in
// deployment order starting at 1.
func DeployRoster(reg *gamedata.UnitRegistry, layout hexgrid.Layout, cols, rows int, playerTypes, enemyTypes []string) ([]*entity.Unit, error) {
	roster := make([]*entity.Unit, 0, len(playerTypes)+len(enemyTypes))
	nextID := 1

	deploy := func(types []string, side entity.Allegiance, col int) error {
		for i, typeID := range types {
			def, ok := reg.Get(typeID)
			if !ok {
				return fmt.Errorf("unknown unit type %q", typeID)
			}
			row := deploymentRow(rows, i)
			if row < 0 || row >= rows {
				return fmt.Errorf("army of %d units does not fit %d rows", len(types), rows)
			}
			pos := hexgrid.Coord{Col: col, Row: row}
			roster = append(roster, entity.New(nextID, def, side, pos, layout))
			nextID++
		}
		return nil
	}

	if err := deploy(playerTypes, entity.AllegiancePlayer, 1); err != nil {
		return nil, err
	}
	if err := deploy(enemyTypes, entity.AllegianceEnemy, cols-2); err != nil {
		return nil, err
	}
	return roster, nil
}

// deploymentRow fans units out from the middle row: middle, below, above,
// two below, two above, and so on.
func deploymentRow(rows, i int) int {
	mid := rows / 2
	step := (i + 1) / 2
	if i%2 == 1 {
		return mid + step
	}
	return mid - step
}

package battleship

import (
	cerr "github.com/saeidalz13/battleship-terminal/internal/error"
)

const (
	HumanPlayerIndex = 0
	AIPlayerIndex    = 1

	AIPlayerName = "AI"

	// attempts to fit a single ship before the whole field is cleared
	placementRetries = 50
)

// Rand is the source of randomness for fleet placement and AI targeting.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type Player struct {
	Name        string  `json:"name"`
	IsHuman     bool    `json:"is_human"`
	Fleet       []*Ship `json:"fleet"`
	OwnField    *Field  `json:"own_field"`
	TargetField *Field  `json:"target_field"`
}

func NewPlayer(name string, isHuman bool) *Player {
	return &Player{
		Name:    name,
		IsHuman: isHuman,
	}
}

func (p *Player) String() string {
	return p.Name
}

func (p *Player) SetFleet(fleet []*Ship) {
	p.Fleet = fleet
}

func (p *Player) SetFields(ownField, targetField *Field) {
	p.OwnField = ownField
	p.TargetField = targetField
}

// ShipAt returns the ship of the player's own fleet occupying the cell.
func (p *Player) ShipAt(row, col int) *Ship {
	cell := p.OwnField.Cell(row, col)
	if cell == nil || !cell.HasShip() || cell.ShipIndex >= len(p.Fleet) {
		return nil
	}
	return p.Fleet[cell.ShipIndex]
}

func (p *Player) FleetHealth() int {
	total := 0
	for _, ship := range p.Fleet {
		if ship.Health > 0 {
			total += ship.Health
		}
	}
	return total
}

func (p *Player) IsDefeated() bool {
	for _, ship := range p.Fleet {
		if ship.Health > 0 {
			return false
		}
	}
	return true
}

// PickRandomTarget draws a random row until one with a shootable cell
// turns up, then a random shootable column of that row. Cells in short
// rows are therefore more likely to be picked than cells in crowded ones.
func (p *Player) PickRandomTarget(rng Rand) (int, int, error) {
	if !p.TargetField.HasShootable() {
		return 0, 0, cerr.ErrNoShootableCell
	}

	for {
		row := rng.IntN(p.TargetField.Height)
		cols := p.TargetField.ShootableInRow(row)
		if len(cols) == 0 {
			continue
		}
		return row, cols[rng.IntN(len(cols))], nil
	}
}

func (p *Player) randomShipCoordinates(rng Rand) (int, int, Orientation) {
	row := rng.IntN(p.OwnField.Height)
	col := rng.IntN(p.OwnField.Width)

	orientation := OrientationHorizontal
	if rng.IntN(2) == 0 {
		orientation = OrientationVertical
	}
	return row, col, orientation
}

// canPlaceShipPart reports whether a ship segment may occupy the cell:
// neither the cell nor any of its eight neighbours holds a ship.
func (p *Player) canPlaceShipPart(row, col int) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := row+dr, col+dc
			if !p.OwnField.InBounds(r, c) {
				continue
			}
			if p.OwnField.Cells[r][c].HasShip() {
				return false
			}
		}
	}
	return true
}

func (p *Player) tryPlaceShip(shipIndex int, row, col int, orientation Orientation) bool {
	ship := p.Fleet[shipIndex]

	dRow, dCol := 0, 1
	if orientation == OrientationVertical {
		dRow, dCol = 1, 0
	}

	if !p.OwnField.InBounds(row+dRow*(ship.Size-1), col+dCol*(ship.Size-1)) {
		return false
	}

	for i := 0; i < ship.Size; i++ {
		if !p.canPlaceShipPart(row+dRow*i, col+dCol*i) {
			return false
		}
	}

	ship.Place(row, col, orientation)
	for i := 0; i < ship.Size; i++ {
		p.OwnField.PlaceShip(shipIndex, row+dRow*i, col+dCol*i)
	}
	return true
}

// PlaceFleetRandomly puts every ship of the fleet on the own field in
// fleet order. A ship that cannot be fitted within placementRetries
// attempts wipes the field and placement starts over from the first
// ship. Very dense fleets may never fit.
func (p *Player) PlaceFleetRandomly(rng Rand) {
	for {
		if p.placeFleetOnce(rng) {
			return
		}

		p.OwnField.Clear()
		for _, ship := range p.Fleet {
			ship.Unplace()
		}
	}
}

func (p *Player) placeFleetOnce(rng Rand) bool {
	for shipIndex := range p.Fleet {
		placed := false
		for attempt := 0; attempt < placementRetries; attempt++ {
			row, col, orientation := p.randomShipCoordinates(rng)
			if p.tryPlaceShip(shipIndex, row, col, orientation) {
				placed = true
				break
			}
		}

		if !placed {
			return false
		}
	}
	return true
}

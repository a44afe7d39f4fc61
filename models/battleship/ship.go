package battleship

type Orientation uint8

const (
	OrientationUnset Orientation = iota
	OrientationHorizontal
	OrientationVertical
)

type Ship struct {
	Size        int          `json:"size"`
	Health      int          `json:"health"`
	Position    *Coordinates `json:"position,omitempty"`
	Orientation Orientation  `json:"orientation"`
}

func NewShip(size int) *Ship {
	return &Ship{
		Size:   size,
		Health: size,
	}
}

// Place sets the head of the ship. The head is the top-most cell of a
// vertical ship and the left-most cell of a horizontal one.
func (sh *Ship) Place(row, col int, orientation Orientation) {
	coords := NewCoordinates(row, col)
	sh.Position = &coords
	sh.Orientation = orientation
}

func (sh *Ship) Unplace() {
	sh.Position = nil
	sh.Orientation = OrientationUnset
}

func (sh *Ship) IsPlaced() bool {
	return sh.Position != nil
}

func (sh *Ship) IsVertical() bool {
	return sh.Orientation == OrientationVertical
}

func (sh *Ship) IsDestroyed() bool {
	return sh.Health <= 0
}

// Cells returns the coordinates the ship occupies, head first.
// An unplaced ship occupies nothing.
func (sh *Ship) Cells() []Coordinates {
	if !sh.IsPlaced() {
		return nil
	}

	cells := make([]Coordinates, 0, sh.Size)
	for i := 0; i < sh.Size; i++ {
		if sh.IsVertical() {
			cells = append(cells, NewCoordinates(sh.Position.Row+i, sh.Position.Col))
		} else {
			cells = append(cells, NewCoordinates(sh.Position.Row, sh.Position.Col+i))
		}
	}
	return cells
}

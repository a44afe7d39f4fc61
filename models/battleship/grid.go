package battleship

type ShotState uint8

const (
	ShotStateUnshot ShotState = iota
	ShotStateMiss
	ShotStateHit
)

// NoShip marks a cell that no ship of the owning fleet occupies.
const NoShip = -1

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

// Cell references its ship by index into the fleet of the player
// owning the field, never by pointer.
type Cell struct {
	Exists    bool      `json:"exists"`
	ShipIndex int       `json:"ship_index"`
	Shot      ShotState `json:"shot"`
}

func NewCell(exists bool) Cell {
	return Cell{Exists: exists, ShipIndex: NoShip}
}

func (c *Cell) HasShip() bool {
	return c.ShipIndex != NoShip
}

func (c *Cell) SetShip(shipIndex int) {
	c.ShipIndex = shipIndex
}

func (c *Cell) Shootable() bool {
	return c.Exists && c.Shot == ShotStateUnshot
}

func (c *Cell) GetShot(hasShip bool) {
	if hasShip {
		c.Shot = ShotStateHit
		return
	}
	c.Shot = ShotStateMiss
}

type Grid [][]Cell

// NewGrid allocates at least minRows x minCols cells. Cells past the
// real height and width are marked as non-existent.
func NewGrid(height, width, minRows, minCols int) Grid {
	rows := max(height, minRows)
	cols := max(width, minCols)

	grid := make(Grid, rows)
	for i := 0; i < rows; i++ {
		grid[i] = make([]Cell, cols)
		for j := 0; j < cols; j++ {
			grid[i][j] = NewCell(i < height && j < width)
		}
	}
	return grid
}

package battleship

import "iter"

const (
	WindowHeight = 10
	WindowWidth  = 10

	// screen rows of the first field row for the upper and lower field
	topFieldScreenRow    = 3
	bottomFieldScreenRow = 17
)

type Field struct {
	Height       int  `json:"height"`
	Width        int  `json:"width"`
	Cells        Grid `json:"cells"`
	ViewportTop  int  `json:"viewport_top"`
	ViewportLeft int  `json:"viewport_left"`
	CursorRow    int  `json:"cursor_row"`
	CursorCol    int  `json:"cursor_col"`
}

func NewField(height, width int) *Field {
	return &Field{
		Height: height,
		Width:  width,
		Cells:  NewGrid(height, width, WindowHeight, WindowWidth),
	}
}

func (f *Field) inGrid(row, col int) bool {
	return row >= 0 && row < len(f.Cells) && col >= 0 && col < len(f.Cells[row])
}

func (f *Field) InBounds(row, col int) bool {
	return row >= 0 && row < f.Height && col >= 0 && col < f.Width
}

func (f *Field) Cell(row, col int) *Cell {
	if !f.inGrid(row, col) {
		return nil
	}
	return &f.Cells[row][col]
}

func (f *Field) Shootable(row, col int) bool {
	cell := f.Cell(row, col)
	return cell != nil && cell.Shootable()
}

// RegisterShot does not check whether the cell was already shot.
// Callers guard with Shootable.
func (f *Field) RegisterShot(row, col int, wasHit bool) {
	if cell := f.Cell(row, col); cell != nil && cell.Exists {
		cell.GetShot(wasHit)
	}
}

func (f *Field) PlaceShip(shipIndex, row, col int) {
	if cell := f.Cell(row, col); cell != nil && cell.Exists {
		cell.SetShip(shipIndex)
	}
}

func (f *Field) Clear() {
	f.Cells = NewGrid(f.Height, f.Width, WindowHeight, WindowWidth)
}

func (f *Field) HasShootable() bool {
	for i := range f.Cells {
		for j := range f.Cells[i] {
			if f.Cells[i][j].Shootable() {
				return true
			}
		}
	}
	return false
}

// ShootableInRow returns the columns of row that can still be shot.
func (f *Field) ShootableInRow(row int) []int {
	if row < 0 || row >= len(f.Cells) {
		return nil
	}

	cols := make([]int, 0, len(f.Cells[row]))
	for col := range f.Cells[row] {
		if f.Cells[row][col].Shootable() {
			cols = append(cols, col)
		}
	}
	return cols
}

// SetCursor ignores positions outside the real field and reports
// whether the cursor moved.
func (f *Field) SetCursor(row, col int) bool {
	if !f.InBounds(row, col) {
		return false
	}
	f.CursorRow = row
	f.CursorCol = col
	return true
}

func (f *Field) MoveCursor(dRow, dCol int) bool {
	return f.SetCursor(f.CursorRow+dRow, f.CursorCol+dCol)
}

// AdjustViewport slides the visible window so that the cursor stays
// inside it. Both axes are handled independently.
func (f *Field) AdjustViewport() {
	if f.CursorCol < f.ViewportLeft {
		f.ViewportLeft = f.CursorCol
	} else if f.CursorCol-f.ViewportLeft+1 > WindowWidth {
		f.ViewportLeft = f.CursorCol - WindowWidth + 1
	}

	if f.CursorRow < f.ViewportTop {
		f.ViewportTop = f.CursorRow
	} else if f.CursorRow-f.ViewportTop+1 > WindowHeight {
		f.ViewportTop = f.CursorRow - WindowHeight + 1
	}
}

func (f *Field) Symbol(row, col int, symbols SymbolSet) string {
	cell := f.Cell(row, col)
	switch {
	case cell == nil || !cell.Exists:
		return symbols.Missing
	case cell.Shot == ShotStateHit:
		return symbols.Hit
	case cell.Shot == ShotStateMiss:
		return symbols.Miss
	case cell.HasShip():
		return symbols.Ship
	default:
		return symbols.Empty
	}
}

type RenderedCell struct {
	ScreenRow int
	ScreenCol int
	Row       int
	Col       int
	Symbol    string
	IsCursor  bool
}

// RenderCoordinates yields the visible window of the field, row by row,
// with the screen position of every cell. The viewport is recomputed
// each time the sequence is ranged over.
func (f *Field) RenderCoordinates(symbols SymbolSet, screenHeight, screenWidth int, alignTop bool) iter.Seq[RenderedCell] {
	return func(yield func(RenderedCell) bool) {
		f.AdjustViewport()

		cellWidth := symbols.CellWidth()
		firstRow := bottomFieldScreenRow
		if alignTop {
			firstRow = topFieldScreenRow
		}
		firstCol := screenWidth/2 - WindowWidth*cellWidth/2

		for r := 0; r < WindowHeight; r++ {
			for c := 0; c < WindowWidth; c++ {
				row, col := f.ViewportTop+r, f.ViewportLeft+c
				rendered := RenderedCell{
					ScreenRow: firstRow + r,
					ScreenCol: firstCol + (cellWidth+1)*c,
					Row:       row,
					Col:       col,
					Symbol:    f.Symbol(row, col, symbols),
					IsCursor:  row == f.CursorRow && col == f.CursorCol,
				}
				if !yield(rendered) {
					return
				}
			}
		}
	}
}

package battleship

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// SymbolSet holds the glyphs used to draw a field. Every glyph is as
// wide as the widest column index of the map so labels line up.
type SymbolSet struct {
	Empty   string
	Missing string
	Ship    string
	Cursor  string
	Miss    string
	Hit     string
}

func NewSymbolSet(mapWidth int) SymbolSet {
	n := len(strconv.Itoa(mapWidth))

	return SymbolSet{
		Empty:   strings.Repeat(" ", n),
		Missing: strings.Repeat("/", n),
		Ship:    strings.Repeat("▩", n),
		Cursor:  strings.Repeat("□", n),
		Miss:    strings.Repeat(" ", n/2) + "⊙",
		Hit:     strings.Repeat(" ", n/2) + "⚔",
	}
}

// CellWidth is the number of terminal columns one cell takes.
func (s SymbolSet) CellWidth() int {
	return runewidth.StringWidth(s.Empty)
}

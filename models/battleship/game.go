package battleship

import (
	"github.com/google/uuid"
)

type GameState uint8

const (
	GameStateSetup GameState = iota
	GameStateInProgress
	GameStateFinished
)

// NoWinner is the Winner value of a game nobody has won yet.
const NoWinner = -1

type ShotRecord struct {
	Shooter  int  `json:"shooter"`
	Row      int  `json:"row"`
	Col      int  `json:"col"`
	Hit      bool `json:"hit"`
	Sunk     bool `json:"sunk"`
	ShipSize int  `json:"ship_size,omitempty"`
}

type Game struct {
	Uuid            string      `json:"uuid"`
	Players         [2]*Player  `json:"players"`
	Turn            int         `json:"turn"`
	LongestShipSize int         `json:"longest_ship_size"`
	Finished        bool        `json:"finished"`
	Winner          int         `json:"winner"`
	MapHeight       int         `json:"map_height"`
	MapWidth        int         `json:"map_width"`
	LastShot        *ShotRecord `json:"last_shot,omitempty"`
}

func NewGame(mapHeight, mapWidth int) *Game {
	return &Game{
		Uuid:      uuid.NewString()[:6],
		Winner:    NoWinner,
		MapHeight: mapHeight,
		MapWidth:  mapWidth,
	}
}

// Setup creates the human and AI players, hands both the same fleet
// composition and places each fleet randomly on a fresh field.
func (g *Game) Setup(playerName string, rng Rand) {
	g.Players = [2]*Player{
		NewPlayer(playerName, true),
		NewPlayer(AIPlayerName, false),
	}

	longest, sizes := ComputeFleetComposition(g.MapHeight, g.MapWidth)
	g.LongestShipSize = longest
	for _, player := range g.Players {
		player.SetFleet(NewFleet(sizes))
	}

	for _, player := range g.Players {
		player.SetFields(NewField(g.MapHeight, g.MapWidth), NewField(g.MapHeight, g.MapWidth))
		player.PlaceFleetRandomly(rng)
	}
}

func (g *Game) State() GameState {
	switch {
	case g.Players[0] == nil || g.Players[1] == nil:
		return GameStateSetup
	case g.Finished:
		return GameStateFinished
	default:
		return GameStateInProgress
	}
}

func (g *Game) ActivePlayer() *Player {
	return g.Players[g.Turn%2]
}

func (g *Game) Opponent() *Player {
	return g.Players[(g.Turn+1)%2]
}

func (g *Game) AdvanceTurn() {
	g.Turn++
}

func (g *Game) WinnerPlayer() *Player {
	if g.Winner == NoWinner {
		return nil
	}
	return g.Players[g.Winner]
}

// ResolveShot fires the active player's shot at (row, col) of the
// opponent's field. A shot at a cell that cannot be shot is rejected
// without touching any state and the turn is not consumed.
func (g *Game) ResolveShot(row, col int) (accepted bool, hit bool) {
	if g.State() != GameStateInProgress {
		return false, false
	}

	shooter := g.ActivePlayer()
	defender := g.Opponent()

	if !defender.OwnField.Shootable(row, col) {
		return false, false
	}

	ship := defender.ShipAt(row, col)
	hit = ship != nil

	defender.OwnField.RegisterShot(row, col, hit)
	shooter.TargetField.RegisterShot(row, col, hit)

	record := &ShotRecord{Shooter: g.Turn % 2, Row: row, Col: col, Hit: hit}
	if hit {
		ship.Health--
		record.ShipSize = ship.Size

		if ship.IsDestroyed() {
			record.Sunk = true
			markDestroyed(defender.OwnField, ship)
			markDestroyed(shooter.TargetField, ship)
		}
	}
	g.LastShot = record

	if hit {
		g.CheckVictory()
	}
	return true, hit
}

// markDestroyed marks every real cell touching the ship, diagonals and
// both ends included, as a miss.
func markDestroyed(field *Field, ship *Ship) {
	if !ship.IsPlaced() {
		return
	}

	rows, cols := 1, ship.Size
	if ship.IsVertical() {
		rows, cols = ship.Size, 1
	}
	top, left := ship.Position.Row, ship.Position.Col

	for r := top - 1; r <= top+rows; r++ {
		for c := left - 1; c <= left+cols; c++ {
			if r >= top && r < top+rows && c >= left && c < left+cols {
				continue
			}
			if field.InBounds(r, c) {
				field.RegisterShot(r, c, false)
			}
		}
	}
}

// CheckVictory finishes the game when the opponent of the active player
// has no ship left afloat.
func (g *Game) CheckVictory() {
	if g.State() == GameStateSetup {
		return
	}

	if g.Opponent().IsDefeated() {
		g.Finished = true
		g.Winner = g.Turn % 2
	}
}

// CountAliveBySize returns, for both players, the number of ships still
// afloat indexed by ship size minus one.
func (g *Game) CountAliveBySize() [2][]int {
	var stats [2][]int
	for i, player := range g.Players {
		alive := make([]int, g.LongestShipSize)
		if player != nil {
			for _, ship := range player.Fleet {
				if ship.Health > 0 && ship.Size-1 < len(alive) {
					alive[ship.Size-1]++
				}
			}
		}
		stats[i] = alive
	}
	return stats
}

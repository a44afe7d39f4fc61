package battleship

import (
	"math/rand/v2"
	"testing"
)

// scriptedRand returns its values in order and fails the test when it
// runs dry or a value does not fit the requested range.
type scriptedRand struct {
	t      *testing.T
	values []int
}

func (s *scriptedRand) IntN(n int) int {
	s.t.Helper()
	if len(s.values) == 0 {
		s.t.Fatalf("scripted rand exhausted, IntN(%d) requested", n)
	}
	v := s.values[0]
	s.values = s.values[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted value %d out of range [0, %d)", v, n)
	}
	return v
}

func newSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newBareGame builds an in-progress game with empty fleets so tests can
// lay out ships by hand.
func newBareGame(height, width int) *Game {
	game := NewGame(height, width)
	game.Players = [2]*Player{
		NewPlayer("tester", true),
		NewPlayer(AIPlayerName, false),
	}
	for _, player := range game.Players {
		player.SetFields(NewField(height, width), NewField(height, width))
	}
	return game
}

func placeShip(t *testing.T, player *Player, size, row, col int, orientation Orientation) *Ship {
	t.Helper()

	ship := NewShip(size)
	player.Fleet = append(player.Fleet, ship)
	if !player.tryPlaceShip(len(player.Fleet)-1, row, col, orientation) {
		t.Fatalf("could not place ship of size %d at (%d, %d)", size, row, col)
	}
	return ship
}

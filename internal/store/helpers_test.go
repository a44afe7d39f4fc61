package store

import (
	"math/rand/v2"
	"testing"

	mb "github.com/saeidalz13/battleship-terminal/models/battleship"
)

func newTestGame(t *testing.T) *mb.Game {
	t.Helper()

	game := mb.NewGame(8, 12)
	game.Setup("saeid", rand.New(rand.NewPCG(7, 11)))
	if _, hit := game.ResolveShot(0, 0); !hit {
		game.AdvanceTurn()
	}
	return game
}

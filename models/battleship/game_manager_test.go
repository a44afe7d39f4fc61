package battleship

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-terminal/internal/error"
)

type memoryStore struct {
	data []byte
}

func (m *memoryStore) Save(_ context.Context, game *Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

func (m *memoryStore) Load(_ context.Context) (*Game, error) {
	if m.data == nil {
		return nil, cerr.ErrNoSave
	}
	var game Game
	if err := json.Unmarshal(m.data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (m *memoryStore) Exists(_ context.Context) (bool, error) {
	return m.data != nil, nil
}

type recordingListener struct {
	records []ShotRecord
}

func (r *recordingListener) OnShot(_ *Game, record ShotRecord) {
	r.records = append(r.records, record)
}

type startListener struct {
	recordingListener
	started []string
}

func (s *startListener) OnGameStart(game *Game) {
	s.started = append(s.started, game.Uuid)
}

func TestManagerNotifiesGameStart(t *testing.T) {
	listener := &startListener{}
	bgm := NewBattleshipGameManager(6, 6, &memoryStore{}, WithRand(newSeededRand(4)), WithListener(listener))

	game := bgm.CreateGame("saeid")
	if err := bgm.SaveGame(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := bgm.LoadGame(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(listener.started) != 2 || listener.started[0] != game.Uuid || listener.started[1] != game.Uuid {
		t.Fatalf("expected two start notifications for %s, got %v", game.Uuid, listener.started)
	}
}

func TestManagerTurnRules(t *testing.T) {
	listener := &recordingListener{}
	bgm := NewBattleshipGameManager(6, 6, &memoryStore{}, WithRand(newSeededRand(1)), WithListener(listener))

	game := bgm.CreateGame("saeid")
	// replace the random layout with a known one
	*game = *newBareGame(6, 6)
	placeShip(t, game.Players[AIPlayerIndex], 2, 0, 0, OrientationHorizontal)
	placeShip(t, game.Players[HumanPlayerIndex], 1, 5, 5, OrientationHorizontal)
	human := game.Players[HumanPlayerIndex]

	tests := []struct {
		name             string
		row, col         int
		expectedAccepted bool
		expectedHit      bool
		expectedTurn     int
	}{
		{name: "hit keeps the turn", row: 0, col: 0, expectedAccepted: true, expectedHit: true, expectedTurn: 0},
		{name: "rejected shot keeps the turn", row: 0, col: 0, expectedAccepted: false, expectedTurn: 0},
		{name: "miss passes the turn", row: 3, col: 3, expectedAccepted: true, expectedTurn: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			human.TargetField.SetCursor(test.row, test.col)
			outcome, err := bgm.Shoot()
			if err != nil {
				t.Fatal(err)
			}
			if outcome.Accepted != test.expectedAccepted || outcome.Hit != test.expectedHit {
				t.Fatalf("unexpected outcome %+v", outcome)
			}
			if game.Turn != test.expectedTurn {
				t.Fatalf("expected turn %d, got %d", test.expectedTurn, game.Turn)
			}
		})
	}

	if len(listener.records) != 2 {
		t.Fatalf("listener must hear accepted shots only, got %d", len(listener.records))
	}

	if _, err := bgm.Shoot(); err == nil {
		t.Fatal("human must not shoot on the AI turn")
	}
}

func TestManagerPlayAI(t *testing.T) {
	bgm := NewBattleshipGameManager(5, 5, nil, WithRand(newSeededRand(5)))
	game := bgm.CreateGame("saeid")

	if _, err := bgm.PlayAI(); err == nil {
		t.Fatal("AI must not shoot on the human turn")
	}
	game.AdvanceTurn()

	ai := game.Players[AIPlayerIndex]
	healthBefore := game.Players[HumanPlayerIndex].FleetHealth()
	hits := 0

	for !game.Finished && game.ActivePlayer() == ai {
		outcome, err := bgm.PlayAI()
		if err != nil {
			t.Fatal(err)
		}
		if !outcome.Accepted {
			t.Fatal("AI must only pick shootable cells")
		}
		if ai.TargetField.CursorRow != outcome.Row || ai.TargetField.CursorCol != outcome.Col {
			t.Fatal("AI cursor must follow its shot")
		}
		if outcome.Hit {
			hits++
		}
	}

	if game.Players[HumanPlayerIndex].FleetHealth() != healthBefore-hits {
		t.Fatal("fleet health must drop once per hit")
	}
}

func TestManagerAIWinsEventually(t *testing.T) {
	bgm := NewBattleshipGameManager(5, 5, nil, WithRand(newSeededRand(11)))
	game := bgm.CreateGame("saeid")
	game.AdvanceTurn()

	// the human never shoots back, so the AI keeps getting turns
	for shots := 0; !game.Finished; shots++ {
		if shots > 25 {
			t.Fatal("AI must finish within the number of cells")
		}
		if game.ActivePlayer().IsHuman {
			game.AdvanceTurn()
		}
		if _, err := bgm.PlayAI(); err != nil {
			t.Fatal(err)
		}
	}

	if game.WinnerPlayer() != game.Players[AIPlayerIndex] {
		t.Fatalf("expected AI to win, got %v", game.WinnerPlayer())
	}
	if _, err := bgm.PlayAI(); !errors.Is(err, cerr.ErrGameNotInProgress) {
		t.Fatalf("expected ErrGameNotInProgress, got %v", err)
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	store := &memoryStore{}
	bgm := NewBattleshipGameManager(7, 9, store, WithRand(newSeededRand(2)))

	if _, err := bgm.LoadGame(context.Background()); !errors.Is(err, cerr.ErrNoSave) {
		t.Fatalf("expected ErrNoSave, got %v", err)
	}
	if err := bgm.SaveGame(context.Background()); !errors.Is(err, cerr.ErrNoGame) {
		t.Fatalf("expected ErrNoGame, got %v", err)
	}

	game := bgm.CreateGame("saeid")
	turn := game.Turn
	if err := bgm.SaveGame(context.Background()); err != nil {
		t.Fatal(err)
	}
	if game.Turn != turn {
		t.Fatal("saving must not consume a turn")
	}

	exists, err := bgm.HasSave(context.Background())
	if err != nil || !exists {
		t.Fatalf("expected a save, got %t %v", exists, err)
	}

	loaded, err := bgm.LoadGame(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Uuid != game.Uuid || loaded == game {
		t.Fatal("load must return a fresh copy of the saved game")
	}
	if current, _ := bgm.CurrentGame(); current != loaded {
		t.Fatal("loaded game must become the current game")
	}
}

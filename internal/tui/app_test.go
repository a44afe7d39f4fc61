package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	cerr "github.com/saeidalz13/battleship-terminal/internal/error"
	"github.com/saeidalz13/battleship-terminal/internal/store"
	mb "github.com/saeidalz13/battleship-terminal/models/battleship"
)

func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestManager(t *testing.T) *mb.BattleshipGameManager {
	t.Helper()
	return mb.NewBattleshipGameManager(10, 10, store.NewFileStore(t.TempDir()), mb.WithRand(rand.New(rand.NewPCG(1, 2))))
}

func screenText(screen tcell.Screen) string {
	width, height := screen.Size()
	var sb strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func press(t *testing.T, app *App, k tcell.Key) bool {
	t.Helper()
	running := app.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
	app.Draw()
	return running
}

func pressRune(t *testing.T, app *App, r rune) bool {
	t.Helper()
	running := app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	app.Draw()
	return running
}

// startGame goes through the menu and the name prompt.
func startGame(t *testing.T, app *App, name string) *mb.Game {
	t.Helper()

	press(t, app, tcell.KeyEnter)
	if app.state != stateNamePrompt {
		t.Fatalf("expected name prompt, got state %d", app.state)
	}
	for _, r := range name {
		pressRune(t, app, r)
	}
	press(t, app, tcell.KeyEnter)

	if app.game == nil {
		t.Fatal("expected a game after the name prompt")
	}
	return app.game
}

// dismissMessages presses keys until the human can move again.
func dismissMessages(t *testing.T, app *App) {
	t.Helper()

	for i := 0; app.state == stateMessage; i++ {
		if i > 500 {
			t.Fatal("messages never ended")
		}
		pressRune(t, app, ' ')
	}
}

func TestMenuWithoutSave(t *testing.T) {
	screen := newTestScreen(t, 120, 40)
	app := NewApp(screen, newTestManager(t))
	app.Draw()

	text := screenText(screen)
	for _, want := range []string{welcomeTitle, ItemStartGame, ItemExit} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q on the menu", want)
		}
	}
	if strings.Contains(text, ItemLoadGame) {
		t.Error("load game must be hidden without a save")
	}
}

func TestStartNewGame(t *testing.T) {
	screen := newTestScreen(t, 120, 40)
	app := NewApp(screen, newTestManager(t))

	press(t, app, tcell.KeyEnter)
	if !strings.Contains(screenText(screen), strings.TrimSpace(MsgNamePrompt)) {
		t.Fatal("expected the name prompt")
	}

	pressRune(t, app, 's')
	pressRune(t, app, 'x')
	press(t, app, tcell.KeyBackspace2)
	for _, r := range "aeid" {
		pressRune(t, app, r)
	}
	press(t, app, tcell.KeyEnter)

	if app.state != statePlaying {
		t.Fatalf("expected playing state, got %d", app.state)
	}
	if name := app.game.Players[mb.HumanPlayerIndex].Name; name != "saeid" {
		t.Fatalf("expected player saeid, got %q", name)
	}

	text := screenText(screen)
	for _, want := range []string{titleYourShips, titleEnemyShips, statsHeader} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q on the game screen", want)
		}
	}
}

func TestEmptyNameGetsDefault(t *testing.T) {
	app := NewApp(newTestScreen(t, 120, 40), newTestManager(t))
	game := startGame(t, app, "")

	if name := game.Players[mb.HumanPlayerIndex].Name; name != defaultPlayerName {
		t.Fatalf("expected %s, got %q", defaultPlayerName, name)
	}
}

func TestHumanShot(t *testing.T) {
	screen := newTestScreen(t, 120, 40)
	app := NewApp(screen, newTestManager(t))
	game := startGame(t, app, "saeid")

	hit := game.Players[mb.AIPlayerIndex].OwnField.Cell(0, 0).HasShip()
	press(t, app, tcell.KeyEnter)

	want := MsgYouMissed
	if hit {
		want = MsgYouHit
	}
	if !strings.Contains(screenText(screen), want) {
		t.Fatalf("expected %q after the shot", want)
	}

	pressRune(t, app, ' ')
	if hit {
		if app.state != statePlaying {
			t.Fatal("a hit must keep the turn")
		}
		return
	}
	if !strings.Contains(screenText(screen), "AI has shot to") {
		t.Fatal("expected the AI to shoot after a miss")
	}
}

func TestRepeatedShotIgnored(t *testing.T) {
	app := NewApp(newTestScreen(t, 120, 40), newTestManager(t))
	game := startGame(t, app, "saeid")

	press(t, app, tcell.KeyEnter)
	dismissMessages(t, app)
	if game.Finished || !game.ActivePlayer().IsHuman {
		t.Fatal("expected the human to move again")
	}

	turn := game.Turn
	press(t, app, tcell.KeyEnter)
	if app.state != statePlaying || game.Turn != turn {
		t.Fatal("a shot at an already shot cell must be ignored")
	}
}

func TestCursorKeys(t *testing.T) {
	app := NewApp(newTestScreen(t, 120, 40), newTestManager(t))
	game := startGame(t, app, "saeid")
	human := game.Players[mb.HumanPlayerIndex]

	press(t, app, tcell.KeyLeft)
	press(t, app, tcell.KeyRight)
	press(t, app, tcell.KeyDown)
	pressRune(t, app, 'd')
	pressRune(t, app, 's')
	pressRune(t, app, 's')
	pressRune(t, app, 'w')
	pressRune(t, app, 'a')
	pressRune(t, app, 'a')

	if human.TargetField.CursorRow != 1 || human.TargetField.CursorCol != 1 {
		t.Fatalf("unexpected target cursor (%d, %d)", human.TargetField.CursorRow, human.TargetField.CursorCol)
	}
	if human.OwnField.CursorRow != 1 || human.OwnField.CursorCol != 0 {
		t.Fatalf("unexpected own cursor (%d, %d)", human.OwnField.CursorRow, human.OwnField.CursorCol)
	}
}

func TestSaveGame(t *testing.T) {
	screen := newTestScreen(t, 120, 40)
	gm := newTestManager(t)
	app := NewApp(screen, gm)
	game := startGame(t, app, "saeid")

	turn := game.Turn
	pressRune(t, app, 'o')
	if !strings.Contains(screenText(screen), MsgSaved) {
		t.Fatalf("expected %q", MsgSaved)
	}

	pressRune(t, app, ' ')
	if app.state != statePlaying || game.Turn != turn {
		t.Fatal("saving must not consume the turn")
	}

	exists, err := gm.HasSave(context.Background())
	if err != nil || !exists {
		t.Fatalf("expected a save, got %t %v", exists, err)
	}
}

func TestLoadGameFromMenu(t *testing.T) {
	gm := newTestManager(t)
	saved := gm.CreateGame("saeid")
	if err := gm.SaveGame(context.Background()); err != nil {
		t.Fatal(err)
	}

	screen := newTestScreen(t, 120, 40)
	app := NewApp(screen, gm)
	app.Draw()
	if app.menuItems[0] != ItemLoadGame || !strings.Contains(screenText(screen), ItemLoadGame) {
		t.Fatal("expected load game as the first menu item")
	}

	press(t, app, tcell.KeyEnter)
	if app.game == nil || app.game.Uuid != saved.Uuid {
		t.Fatal("expected the saved game to be loaded")
	}
	if app.state != statePlaying {
		t.Fatalf("expected playing state, got %d", app.state)
	}
}

func TestLoadDamagedSaveShowsMessage(t *testing.T) {
	dir := t.TempDir()
	game := mb.NewGame(10, 10)
	game.Setup("saeid", rand.New(rand.NewPCG(3, 4)))
	fleet := game.Players[mb.AIPlayerIndex].Fleet
	fleet[len(fleet)-1] = nil
	game.Turn = -1

	data, err := json.Marshal(game)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, store.SaveFileName), data, 0o644); err != nil {
		t.Fatal(err)
	}

	gm := mb.NewBattleshipGameManager(10, 10, store.NewFileStore(dir))
	screen := newTestScreen(t, 120, 40)
	app := NewApp(screen, gm)
	app.Draw()

	press(t, app, tcell.KeyEnter)
	if app.state != stateMessage || !strings.Contains(screenText(screen), MsgLoadFailed) {
		t.Fatalf("expected the load failure message, got state %d", app.state)
	}
	if app.game != nil {
		t.Fatal("expected no game after a failed load")
	}

	pressRune(t, app, ' ')
	if app.state != stateMenu {
		t.Fatalf("expected the menu after the message, got state %d", app.state)
	}
}

func TestHumanWins(t *testing.T) {
	screen := newTestScreen(t, 120, 40)
	app := NewApp(screen, newTestManager(t))
	game := startGame(t, app, "saeid")
	target := game.Players[mb.HumanPlayerIndex].TargetField

	for _, ship := range game.Players[mb.AIPlayerIndex].Fleet {
		for _, cell := range ship.Cells() {
			if app.state != statePlaying {
				t.Fatalf("expected to keep shooting, got state %d", app.state)
			}
			target.SetCursor(cell.Row, cell.Col)
			press(t, app, tcell.KeyEnter)
			if !game.Finished {
				pressRune(t, app, ' ')
			}
		}
	}

	if !game.Finished {
		t.Fatal("expected the game to be finished")
	}
	pressRune(t, app, ' ')

	want := fmt.Sprintf("Congrats! Player %s has won!", "saeid")
	if !strings.Contains(screenText(screen), want) {
		t.Fatalf("expected %q", want)
	}

	pressRune(t, app, ' ')
	if app.state != stateMenu {
		t.Fatalf("expected the menu after the game, got state %d", app.state)
	}
}

func TestStatsTable(t *testing.T) {
	screen := newTestScreen(t, 120, 40)
	app := NewApp(screen, newTestManager(t))
	game := startGame(t, app, "saeid")

	if !strings.Contains(screenText(screen), "| 1    | 4     | 0    |") {
		t.Fatal("expected four single-cell ships alive")
	}

	for _, ship := range game.Players[mb.AIPlayerIndex].Fleet {
		if ship.Size == 1 {
			ship.Health = 0
		}
	}
	app.Draw()

	if !strings.Contains(screenText(screen), "|"+strings.Repeat("/", len(statsHeader)-2)+"|") {
		t.Fatal("expected the sunk size to be struck through")
	}
}

func TestConsoleTooSmall(t *testing.T) {
	screen := newTestScreen(t, 120, 40)
	app := NewApp(screen, newTestManager(t))
	startGame(t, app, "saeid")

	if strings.Contains(screenText(screen), cerr.ConstErrConsoleTooSmall) {
		t.Fatal("120x40 must be large enough")
	}

	screen.SetSize(60, 20)
	app.HandleEvent(tcell.NewEventResize(60, 20))
	app.Draw()
	if !strings.Contains(screenText(screen), cerr.ConstErrConsoleTooSmall) {
		t.Fatalf("expected %q", cerr.ConstErrConsoleTooSmall)
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []tcell.Key
	}{
		{name: "escape", keys: []tcell.Key{tcell.KeyEscape}},
		{name: "ctrl-c", keys: []tcell.Key{tcell.KeyCtrlC}},
		{name: "exit item", keys: []tcell.Key{tcell.KeyDown, tcell.KeyEnter}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			app := NewApp(newTestScreen(t, 120, 40), newTestManager(t))

			running := true
			for _, k := range test.keys {
				running = press(t, app, k)
			}
			if running {
				t.Fatal("expected the app to stop")
			}
		})
	}
}

func TestRunStopsOnEscape(t *testing.T) {
	screen := newTestScreen(t, 120, 40)
	app := NewApp(screen, newTestManager(t))

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(time.Second * 5):
		t.Fatal("run did not stop")
	}
}

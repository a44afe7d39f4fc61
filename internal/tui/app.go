// Package tui is the terminal front end of the game: the main menu, the
// name prompt, the two fields with their stats tables and the messages
// shown between turns.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	cerr "github.com/saeidalz13/battleship-terminal/internal/error"
	mb "github.com/saeidalz13/battleship-terminal/models/battleship"
)

const (
	ItemLoadGame  = "Load Game"
	ItemStartGame = "Start New Game"
	ItemExit      = "Exit"

	MsgNamePrompt = "Enter your name: "
	MsgYouMissed  = "You missed"
	MsgYouHit     = "You hit enemy ship"
	MsgAIMissed   = "AI missed"
	MsgAIHit      = "AI hit enemy ship"
	MsgSaved      = "The game was saved"
	MsgSaveFailed = "The game could not be saved"
	MsgLoadFailed = "The saved game could not be loaded"

	defaultPlayerName = "Player"
	maxNameLength     = 24
	eventBuffer       = 16
)

type state uint8

const (
	stateMenu state = iota
	stateNamePrompt
	statePlaying
	stateMessage
)

// App owns the screen and drives the game manager from key events. All
// game state is touched from the goroutine calling Run only.
type App struct {
	ctx     context.Context
	screen  tcell.Screen
	gm      mb.GameManager
	game    *mb.Game
	symbols mb.SymbolSet

	state     state
	menuItems []string
	menuIndex int
	name      []rune

	message []string
	// runs when the message screen is dismissed
	afterMessage func()
}

func NewApp(screen tcell.Screen, gm mb.GameManager) *App {
	app := &App{
		ctx:    context.Background(),
		screen: screen,
		gm:     gm,
	}
	app.showMenu()
	return app
}

// Run polls terminal events until the player quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx

	eventChan := make(chan tcell.Event, eventBuffer)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				// screen finalized
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if !a.HandleEvent(ev) {
				return nil
			}
			a.Draw()
		}
	}
}

// HandleEvent applies one terminal event and reports whether the app
// should keep running.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		return true

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}

		switch a.state {
		case stateMenu:
			return a.handleMenuKey(ev)
		case stateNamePrompt:
			a.handleNameKey(ev)
		case statePlaying:
			a.handlePlayingKey(ev)
		case stateMessage:
			next := a.afterMessage
			a.message, a.afterMessage = nil, nil
			if next != nil {
				next()
			}
		}
	}
	return true
}

func (a *App) showMenu() {
	a.state = stateMenu
	a.menuIndex = 0
	a.menuItems = []string{ItemStartGame, ItemExit}

	exists, err := a.gm.HasSave(a.ctx)
	if err != nil {
		log.Printf("failed to check for a saved game: %v", err)
	}
	if exists {
		a.menuItems = append([]string{ItemLoadGame}, a.menuItems...)
	}
}

func (a *App) showMessage(next func(), lines ...string) {
	a.state = stateMessage
	a.message = lines
	a.afterMessage = next
}

func (a *App) handleMenuKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		if a.menuIndex > 0 {
			a.menuIndex--
		}
	case tcell.KeyDown:
		if a.menuIndex < len(a.menuItems)-1 {
			a.menuIndex++
		}
	case tcell.KeyEnter:
		switch a.menuItems[a.menuIndex] {
		case ItemStartGame:
			a.state = stateNamePrompt
			a.name = a.name[:0]
		case ItemLoadGame:
			a.loadGame()
		case ItemExit:
			return false
		}
	}
	return true
}

func (a *App) handleNameKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		if len(a.name) < maxNameLength {
			a.name = append(a.name, ev.Rune())
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.name) > 0 {
			a.name = a.name[:len(a.name)-1]
		}
	case tcell.KeyEnter:
		name := string(a.name)
		if name == "" {
			name = defaultPlayerName
		}
		a.startGame(a.gm.CreateGame(name))
	}
}

func (a *App) loadGame() {
	game, err := a.gm.LoadGame(a.ctx)
	if err != nil {
		log.Printf("failed to load game: %v", err)
		a.showMessage(a.showMenu, MsgLoadFailed)
		return
	}
	a.startGame(game)
}

func (a *App) startGame(game *mb.Game) {
	a.game = game
	a.symbols = mb.NewSymbolSet(game.MapWidth)
	a.nextTurn()
}

// nextTurn hands control to whoever moves next. The AI shoots right
// away, the human gets the game screen.
func (a *App) nextTurn() {
	switch {
	case a.game.Finished:
		a.showMessage(a.showMenu, fmt.Sprintf("Congrats! Player %s has won!", a.game.WinnerPlayer()))
	case a.game.ActivePlayer().IsHuman:
		a.state = statePlaying
	default:
		a.playAI()
	}
}

func (a *App) playAI() {
	outcome, err := a.gm.PlayAI()
	if err != nil {
		// only possible with a corrupt board, hand the turn back
		log.Printf("AI could not shoot: %v", err)
		if errors.Is(err, cerr.ErrNoShootableCell) {
			a.game.AdvanceTurn()
		}
		a.state = statePlaying
		return
	}

	result := MsgAIMissed
	if outcome.Hit {
		result = MsgAIHit
	}
	a.showMessage(a.nextTurn, fmt.Sprintf("AI has shot to %d %d", outcome.Row, outcome.Col), result)
}

func (a *App) handlePlayingKey(ev *tcell.EventKey) {
	human := a.game.Players[mb.HumanPlayerIndex]

	switch ev.Key() {
	case tcell.KeyUp:
		human.TargetField.MoveCursor(-1, 0)
	case tcell.KeyDown:
		human.TargetField.MoveCursor(1, 0)
	case tcell.KeyLeft:
		human.TargetField.MoveCursor(0, -1)
	case tcell.KeyRight:
		human.TargetField.MoveCursor(0, 1)
	case tcell.KeyEnter:
		a.shoot()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w':
			human.OwnField.MoveCursor(-1, 0)
		case 's':
			human.OwnField.MoveCursor(1, 0)
		case 'a':
			human.OwnField.MoveCursor(0, -1)
		case 'd':
			human.OwnField.MoveCursor(0, 1)
		case 'o':
			a.saveGame()
		}
	}
}

func (a *App) shoot() {
	outcome, err := a.gm.Shoot()
	if err != nil {
		log.Printf("shot failed: %v", err)
		return
	}
	// a shot at an already shot cell is simply ignored
	if !outcome.Accepted {
		return
	}

	result := MsgYouMissed
	if outcome.Hit {
		result = MsgYouHit
	}
	a.showMessage(a.nextTurn, result)
}

func (a *App) saveGame() {
	if err := a.gm.SaveGame(a.ctx); err != nil {
		log.Printf("failed to save game: %v", err)
		a.showMessage(a.nextTurn, MsgSaveFailed)
		return
	}
	a.showMessage(a.nextTurn, MsgSaved)
}

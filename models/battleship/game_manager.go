package battleship

import (
	"context"
	"log"
	"math/rand/v2"

	cerr "github.com/saeidalz13/battleship-terminal/internal/error"
)

// GameStore persists a full snapshot of a game.
type GameStore interface {
	Save(ctx context.Context, game *Game) error
	Load(ctx context.Context) (*Game, error)
	Exists(ctx context.Context) (bool, error)
}

// ShotListener is notified after every accepted shot.
type ShotListener interface {
	OnShot(game *Game, record ShotRecord)
}

// GameStartListener may be implemented by a ShotListener that needs to
// know when a game is created or loaded.
type GameStartListener interface {
	OnGameStart(game *Game)
}

type GameManager interface {
	CreateGame(playerName string) *Game
	CurrentGame() (*Game, error)
	HasSave(ctx context.Context) (bool, error)
	LoadGame(ctx context.Context) (*Game, error)
	SaveGame(ctx context.Context) error
	Shoot() (ShotOutcome, error)
	PlayAI() (ShotOutcome, error)
}

type ShotOutcome struct {
	Accepted bool
	Hit      bool
	Sunk     bool
	Row      int
	Col      int
	Finished bool
}

type BattleshipGameManager struct {
	game      *Game
	store     GameStore
	rng       Rand
	listeners []ShotListener
	mapHeight int
	mapWidth  int
}

var _ GameManager = (*BattleshipGameManager)(nil)

type Option func(*BattleshipGameManager)

func WithRand(rng Rand) Option {
	return func(bgm *BattleshipGameManager) {
		bgm.rng = rng
	}
}

func WithListener(listener ShotListener) Option {
	return func(bgm *BattleshipGameManager) {
		bgm.listeners = append(bgm.listeners, listener)
	}
}

func NewBattleshipGameManager(mapHeight, mapWidth int, store GameStore, optFuncs ...Option) *BattleshipGameManager {
	bgm := &BattleshipGameManager{
		store:     store,
		mapHeight: mapHeight,
		mapWidth:  mapWidth,
	}
	for _, opt := range optFuncs {
		opt(bgm)
	}
	if bgm.rng == nil {
		bgm.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return bgm
}

func (bgm *BattleshipGameManager) CreateGame(playerName string) *Game {
	game := NewGame(bgm.mapHeight, bgm.mapWidth)
	game.Setup(playerName, bgm.rng)
	bgm.game = game

	log.Printf("new game created\tuuid: %s\tmap: %dx%d\tlongest ship: %d", game.Uuid, game.MapHeight, game.MapWidth, game.LongestShipSize)
	bgm.notifyGameStart(game)
	return game
}

func (bgm *BattleshipGameManager) CurrentGame() (*Game, error) {
	if bgm.game == nil {
		return nil, cerr.ErrNoGame
	}
	return bgm.game, nil
}

func (bgm *BattleshipGameManager) HasSave(ctx context.Context) (bool, error) {
	if bgm.store == nil {
		return false, nil
	}
	return bgm.store.Exists(ctx)
}

func (bgm *BattleshipGameManager) LoadGame(ctx context.Context) (*Game, error) {
	if bgm.store == nil {
		return nil, cerr.ErrNoSave
	}

	game, err := bgm.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	bgm.game = game

	log.Printf("game loaded\tuuid: %s\tturn: %d", game.Uuid, game.Turn)
	bgm.notifyGameStart(game)
	return game, nil
}

// SaveGame never consumes a turn.
func (bgm *BattleshipGameManager) SaveGame(ctx context.Context) error {
	if bgm.game == nil {
		return cerr.ErrNoGame
	}
	if bgm.store == nil {
		return cerr.ErrNoSave
	}

	if err := bgm.store.Save(ctx, bgm.game); err != nil {
		return err
	}

	log.Printf("game saved\tuuid: %s\tturn: %d", bgm.game.Uuid, bgm.game.Turn)
	return nil
}

// Shoot fires at the target cursor of the human player whose turn it is.
func (bgm *BattleshipGameManager) Shoot() (ShotOutcome, error) {
	game, err := bgm.activeGame()
	if err != nil {
		return ShotOutcome{}, err
	}

	shooter := game.ActivePlayer()
	if !shooter.IsHuman {
		return ShotOutcome{}, cerr.ErrNotHumanTurn(shooter.Name)
	}

	return bgm.shoot(game, shooter.TargetField.CursorRow, shooter.TargetField.CursorCol), nil
}

// PlayAI picks a random legal target for the AI, moves its target
// cursor there and fires.
func (bgm *BattleshipGameManager) PlayAI() (ShotOutcome, error) {
	game, err := bgm.activeGame()
	if err != nil {
		return ShotOutcome{}, err
	}

	shooter := game.ActivePlayer()
	if shooter.IsHuman {
		return ShotOutcome{}, cerr.ErrNotAITurn(shooter.Name)
	}

	row, col, err := shooter.PickRandomTarget(bgm.rng)
	if err != nil {
		return ShotOutcome{}, err
	}
	shooter.TargetField.SetCursor(row, col)

	return bgm.shoot(game, row, col), nil
}

func (bgm *BattleshipGameManager) activeGame() (*Game, error) {
	if bgm.game == nil {
		return nil, cerr.ErrNoGame
	}
	if bgm.game.State() != GameStateInProgress {
		return nil, cerr.ErrGameNotInProgress
	}
	return bgm.game, nil
}

// shoot applies the turn rules: a rejected shot keeps the turn, a hit
// grants the shooter another shot and a miss passes the turn.
func (bgm *BattleshipGameManager) shoot(game *Game, row, col int) ShotOutcome {
	accepted, hit := game.ResolveShot(row, col)
	outcome := ShotOutcome{Accepted: accepted, Hit: hit, Row: row, Col: col}
	if !accepted {
		log.Println(cerr.ErrInvalidShot(row, col))
		return outcome
	}

	record := *game.LastShot
	outcome.Sunk = record.Sunk
	outcome.Finished = game.Finished

	if !hit {
		game.AdvanceTurn()
	}

	for _, listener := range bgm.listeners {
		listener.OnShot(game, record)
	}
	return outcome
}

func (bgm *BattleshipGameManager) notifyGameStart(game *Game) {
	for _, listener := range bgm.listeners {
		if gsl, ok := listener.(GameStartListener); ok {
			gsl.OnGameStart(game)
		}
	}
}

package store

import (
	"encoding/json"
	"errors"
	"fmt"

	cerr "github.com/saeidalz13/battleship-terminal/internal/error"
	mb "github.com/saeidalz13/battleship-terminal/models/battleship"
)

// LastSaveSlot is the only save slot the game uses.
const LastSaveSlot = "last"

func EncodeSnapshot(game *mb.Game) ([]byte, error) {
	data, err := json.Marshal(game)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot restores a game and checks that the object graph is
// complete enough to be played on.
func DecodeSnapshot(data []byte) (*mb.Game, error) {
	var game mb.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, cerr.ErrCorruptSave(err)
	}
	if err := validate(&game); err != nil {
		return nil, cerr.ErrCorruptSave(err)
	}
	return &game, nil
}

func validate(game *mb.Game) error {
	if game.MapHeight <= 0 || game.MapWidth <= 0 {
		return fmt.Errorf("invalid map size %dx%d", game.MapHeight, game.MapWidth)
	}
	if game.Turn < 0 {
		return fmt.Errorf("negative turn %d", game.Turn)
	}

	for i, player := range game.Players {
		if player == nil {
			return fmt.Errorf("player %d missing", i)
		}
		if err := validateFleet(game, player); err != nil {
			return err
		}
		if err := validateField(game, player.OwnField); err != nil {
			return fmt.Errorf("own field of %s: %w", player.Name, err)
		}
		if err := validateField(game, player.TargetField); err != nil {
			return fmt.Errorf("target field of %s: %w", player.Name, err)
		}

		for r, row := range player.OwnField.Cells {
			for c, cell := range row {
				if cell.HasShip() && (cell.ShipIndex < 0 || cell.ShipIndex >= len(player.Fleet)) {
					return fmt.Errorf("cell (%d, %d) of %s references unknown ship %d", r, c, player.Name, cell.ShipIndex)
				}
			}
		}
	}

	if game.Winner != mb.NoWinner && (game.Winner < 0 || game.Winner >= len(game.Players)) {
		return errors.New("winner out of range")
	}
	if game.LastShot != nil && (game.LastShot.Shooter < 0 || game.LastShot.Shooter >= len(game.Players)) {
		return errors.New("last shot has an unknown shooter")
	}
	return nil
}

func validateFleet(game *mb.Game, player *mb.Player) error {
	for i, ship := range player.Fleet {
		if ship == nil {
			return fmt.Errorf("ship %d of %s missing", i, player.Name)
		}
		if ship.Size < 1 || ship.Size > game.LongestShipSize {
			return fmt.Errorf("ship %d of %s has size %d, longest is %d", i, player.Name, ship.Size, game.LongestShipSize)
		}
		if ship.Health < 0 || ship.Health > ship.Size {
			return fmt.Errorf("ship %d of %s has health %d of %d", i, player.Name, ship.Health, ship.Size)
		}

		for _, coords := range ship.Cells() {
			if coords.Row < 0 || coords.Row >= game.MapHeight || coords.Col < 0 || coords.Col >= game.MapWidth {
				return fmt.Errorf("ship %d of %s lies outside the map", i, player.Name)
			}
		}
	}
	return nil
}

// validateField checks the field against the map size, including the
// padding up to the visible window.
func validateField(game *mb.Game, field *mb.Field) error {
	if field == nil {
		return errors.New("missing")
	}
	if field.Height != game.MapHeight || field.Width != game.MapWidth {
		return fmt.Errorf("size %dx%d does not match the map", field.Height, field.Width)
	}

	rows := max(game.MapHeight, mb.WindowHeight)
	cols := max(game.MapWidth, mb.WindowWidth)
	if len(field.Cells) != rows {
		return fmt.Errorf("%d rows, expected %d", len(field.Cells), rows)
	}
	for r, row := range field.Cells {
		if len(row) != cols {
			return fmt.Errorf("row %d has %d columns, expected %d", r, len(row), cols)
		}
	}

	if !field.InBounds(field.CursorRow, field.CursorCol) {
		return fmt.Errorf("cursor (%d, %d) outside the field", field.CursorRow, field.CursorCol)
	}
	if field.ViewportTop < 0 || field.ViewportTop > rows-mb.WindowHeight ||
		field.ViewportLeft < 0 || field.ViewportLeft > cols-mb.WindowWidth {
		return fmt.Errorf("viewport (%d, %d) outside the field", field.ViewportTop, field.ViewportLeft)
	}
	return nil
}

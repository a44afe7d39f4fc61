package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrInvalidArguments = "Incorrect arguments"
	ConstErrConsoleTooSmall  = "Console size is too small"

	// MinMapSize is the smallest accepted value for both map dimensions.
	MinMapSize = 5
)

var (
	ErrNoSave            = errors.New("no saved game found")
	ErrNoShootableCell   = errors.New("target field has no shootable cell left")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrNoGame            = errors.New("no game is loaded")
	ErrSaveCorrupted     = errors.New("saved game could not be decoded")
)

func ErrInvalidShot(row, col int) error {
	return fmt.Errorf("cell is already shot or does not exist\trow: %d\tcol: %d", row, col)
}

func ErrNotHumanTurn(name string) error {
	return fmt.Errorf("it is not a human turn, active player: %s", name)
}

func ErrNotAITurn(name string) error {
	return fmt.Errorf("it is not the AI turn, active player: %s", name)
}

func ErrInvalidStage(stage string) error {
	return fmt.Errorf("stage must be either dev or prod, got: %s", stage)
}

func ErrInvalidSaveBackend(backend string) error {
	return fmt.Errorf("save backend must be file, sqlite or postgres, got: %s", backend)
}

func ErrMissingDatabaseUrl(backend string) error {
	return fmt.Errorf("DATABASE_URL is required for save backend: %s", backend)
}

func ErrCorruptSave(err error) error {
	return fmt.Errorf("%w: %w", ErrSaveCorrupted, err)
}

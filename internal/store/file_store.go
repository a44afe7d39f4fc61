package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cerr "github.com/saeidalz13/battleship-terminal/internal/error"
	mb "github.com/saeidalz13/battleship-terminal/models/battleship"
)

const SaveFileName = "last_save.json"

// FileStore keeps the last saved game as a JSON file.
type FileStore struct {
	dir string
}

var _ mb.GameStore = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, SaveFileName)
}

// Save writes to a temporary file first so a crash never leaves a
// half-written save behind.
func (s *FileStore) Save(ctx context.Context, game *mb.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeSnapshot(game)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, SaveFileName+".*")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close save: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path()); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context) (*mb.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cerr.ErrNoSave
		}
		return nil, fmt.Errorf("read save: %w", err)
	}
	return DecodeSnapshot(data)
}

func (s *FileStore) Exists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(s.path())
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat save: %w", err)
	}
}

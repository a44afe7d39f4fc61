package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/saeidalz13/battleship-terminal/db/sqlc"
	cerr "github.com/saeidalz13/battleship-terminal/internal/error"
	mb "github.com/saeidalz13/battleship-terminal/models/battleship"
)

// SQLStore keeps the last saved game in the saves table of a postgres
// or sqlite database.
type SQLStore struct {
	dbm sqlc.DbManager
	now func() time.Time
}

var _ mb.GameStore = (*SQLStore)(nil)

func NewSQLStore(dbm sqlc.DbManager) *SQLStore {
	return &SQLStore{dbm: dbm, now: time.Now}
}

func (s *SQLStore) Save(ctx context.Context, game *mb.Game) error {
	data, err := EncodeSnapshot(game)
	if err != nil {
		return err
	}

	if err := s.dbm.Saves.Store(ctx, LastSaveSlot, game.Uuid, data, s.now()); err != nil {
		return fmt.Errorf("store save: %w", err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context) (*mb.Game, error) {
	save, err := s.dbm.Saves.Fetch(ctx, LastSaveSlot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cerr.ErrNoSave
		}
		return nil, fmt.Errorf("fetch save: %w", err)
	}

	if !save.Snapshot.Valid {
		return nil, cerr.ErrNoSave
	}
	return DecodeSnapshot(save.Snapshot.RawMessage)
}

func (s *SQLStore) Exists(ctx context.Context) (bool, error) {
	exists, err := s.dbm.Saves.Exists(ctx, LastSaveSlot)
	if err != nil {
		return false, fmt.Errorf("check save: %w", err)
	}
	return exists, nil
}

package sqlc

import (
	"context"
	"time"

	"github.com/sqlc-dev/pqtype"
)

type SaveManager struct {
	queries Querier
}

func NewSaveManager(queries Querier) *SaveManager {
	return &SaveManager{queries: queries}
}

func (s *SaveManager) Store(ctx context.Context, slot, gameUuid string, snapshot []byte, savedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	return s.queries.UpsertSave(ctx, UpsertSaveParams{
		Slot:     slot,
		GameUuid: gameUuid,
		Snapshot: pqtype.NullRawMessage{RawMessage: snapshot, Valid: snapshot != nil},
		SavedAt:  savedAt.UTC(),
	})
}

func (s *SaveManager) Fetch(ctx context.Context, slot string) (Save, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	return s.queries.GetSave(ctx, slot)
}

func (s *SaveManager) Exists(ctx context.Context, slot string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	return s.queries.SaveExists(ctx, slot)
}

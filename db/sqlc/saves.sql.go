package sqlc

import (
	"context"
	"time"

	"github.com/sqlc-dev/pqtype"
)

// Placeholders are numbered so the same statements run on postgres and
// sqlite.

const getSave = `-- name: GetSave :one
SELECT slot, game_uuid, snapshot, saved_at FROM saves WHERE slot = $1
`

func (q *Queries) GetSave(ctx context.Context, slot string) (Save, error) {
	row := q.db.QueryRowContext(ctx, getSave, slot)
	var i Save
	err := row.Scan(
		&i.Slot,
		&i.GameUuid,
		&i.Snapshot,
		&i.SavedAt,
	)
	return i, err
}

const saveExists = `-- name: SaveExists :one
SELECT EXISTS (SELECT 1 FROM saves WHERE slot = $1 AND snapshot IS NOT NULL)
`

func (q *Queries) SaveExists(ctx context.Context, slot string) (bool, error) {
	row := q.db.QueryRowContext(ctx, saveExists, slot)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const upsertSave = `-- name: UpsertSave :exec
INSERT INTO saves (slot, game_uuid, snapshot, saved_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (slot) DO UPDATE
SET game_uuid = excluded.game_uuid,
    snapshot = excluded.snapshot,
    saved_at = excluded.saved_at
`

type UpsertSaveParams struct {
	Slot     string                `json:"slot"`
	GameUuid string                `json:"game_uuid"`
	Snapshot pqtype.NullRawMessage `json:"snapshot"`
	SavedAt  time.Time             `json:"saved_at"`
}

func (q *Queries) UpsertSave(ctx context.Context, arg UpsertSaveParams) error {
	_, err := q.db.ExecContext(ctx, upsertSave,
		arg.Slot,
		arg.GameUuid,
		arg.Snapshot,
		arg.SavedAt,
	)
	return err
}

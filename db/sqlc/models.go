package sqlc

import (
	"time"

	"github.com/sqlc-dev/pqtype"
)

type Save struct {
	Slot     string                `json:"slot"`
	GameUuid string                `json:"game_uuid"`
	Snapshot pqtype.NullRawMessage `json:"snapshot"`
	SavedAt  time.Time             `json:"saved_at"`
}

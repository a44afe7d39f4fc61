package sqlc

import (
	"context"
)

type Querier interface {
	GetSave(ctx context.Context, slot string) (Save, error)
	SaveExists(ctx context.Context, slot string) (bool, error)
	UpsertSave(ctx context.Context, arg UpsertSaveParams) error
}

var _ Querier = (*Queries)(nil)

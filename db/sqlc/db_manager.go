package sqlc

import "time"

const (
	QuerierCtxTimeout = time.Second * 10
)

type DbManager struct {
	Saves *SaveManager
}

func NewDbManager(queries Querier) DbManager {
	return DbManager{
		Saves: NewSaveManager(queries),
	}
}

// Package store persists full game snapshots for the save and load menu
// entries.
package store

import (
	"log"

	"github.com/saeidalz13/battleship-terminal/db"
	"github.com/saeidalz13/battleship-terminal/db/sqlc"
	"github.com/saeidalz13/battleship-terminal/internal/config"
	cerr "github.com/saeidalz13/battleship-terminal/internal/error"
	mb "github.com/saeidalz13/battleship-terminal/models/battleship"
)

// New builds the store selected by the configuration. The returned close
// func releases the database handle, if any.
func New(cfg config.Config) (mb.GameStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.SaveBackend {
	case config.SaveBackendFile:
		return NewFileStore(cfg.SaveDir), noop, nil

	case config.SaveBackendSqlite, config.SaveBackendPostgres:
		driverName := db.DriverSqlite
		if cfg.SaveBackend == config.SaveBackendPostgres {
			driverName = db.DriverPostgres
		}

		sqlDB, err := db.Connect(driverName, cfg.DatabaseUrl)
		if err != nil {
			return nil, noop, err
		}
		log.Printf("save backend connected\tdriver: %s", driverName)

		return NewSQLStore(sqlc.NewDbManager(sqlc.New(sqlDB))), sqlDB.Close, nil

	default:
		return nil, noop, cerr.ErrInvalidSaveBackend(cfg.SaveBackend)
	}
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/libra-stake/libra-bot/pkg/data/user"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres user.Store
func New(db *sql.DB) user.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements user.Store.Put
func (s *store) Put(ctx context.Context, record *user.Record) error {
	m, err := toModel(record)
	if err != nil {
		return err
	}

	if err := m.dbPut(ctx, s.db); err != nil {
		return err
	}

	fromModel(m).CopyTo(record)

	return nil
}

// GetByChatID implements user.Store.GetByChatID
func (s *store) GetByChatID(ctx context.Context, chatID int64) (*user.Record, error) {
	m, err := dbGetByChatID(ctx, s.db, chatID)
	if err != nil {
		return nil, err
	}
	return fromModel(m), nil
}

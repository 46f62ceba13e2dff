package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/libra-stake/libra-bot/pkg/data/user"
	pgutil "github.com/libra-stake/libra-bot/pkg/database/postgres"
)

const (
	tableName = "librabot__core_user"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	ChatID    int64  `db:"chat_id"`
	PublicKey string `db:"public_key"`
	SecretKey string `db:"secret_key"`

	CreatedAt time.Time `db:"created_at"`
}

func toModel(obj *user.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		ChatID:    obj.ChatID,
		PublicKey: obj.PublicKey,
		SecretKey: obj.SecretKey,
		CreatedAt: obj.CreatedAt,
	}, nil
}

func fromModel(obj *model) *user.Record {
	return &user.Record{
		Id: uint64(obj.Id.Int64),

		ChatID:    obj.ChatID,
		PublicKey: obj.PublicKey,
		SecretKey: obj.SecretKey,

		CreatedAt: obj.CreatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}

		query := `INSERT INTO ` + tableName + `
			(chat_id, public_key, secret_key, created_at)
			VALUES ($1, $2, $3, $4)

			RETURNING
				id, chat_id, public_key, secret_key, created_at`

		err := tx.QueryRowxContext(
			ctx,
			query,
			m.ChatID,
			m.PublicKey,
			m.SecretKey,
			m.CreatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, user.ErrAlreadyExists)
	})
}

func dbGetByChatID(ctx context.Context, db *sqlx.DB, chatID int64) (*model, error) {
	res := &model{}

	query := `SELECT id, chat_id, public_key, secret_key, created_at FROM ` + tableName + `
		WHERE chat_id = $1
	`

	err := db.QueryRowxContext(
		ctx,
		query,
		chatID,
	).StructScan(res)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, user.ErrNotFound)
	}
	return res, nil
}

package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("user not found")

	ErrAlreadyExists = errors.New("user already exists")
)

type Store interface {
	// Put creates a new user record. ErrAlreadyExists is returned if a
	// wallet is already assigned to the record's chat.
	Put(ctx context.Context, record *Record) error

	// GetByChatID finds the record for a Telegram chat.
	GetByChatID(ctx context.Context, chatID int64) (*Record, error)
}

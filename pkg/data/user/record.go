// Package user stores the custodial wallet assigned to each Telegram chat.
package user

import (
	"errors"
	"time"
)

type Record struct {
	Id uint64

	// ChatID is the Telegram chat the wallet belongs to. One wallet per chat.
	ChatID int64

	// PublicKey is the wallet address in base58.
	PublicKey string

	// SecretKey is the base58 encoded 64 byte secret key.
	SecretKey string

	CreatedAt time.Time
}

func (r *Record) Validate() error {
	if r.ChatID == 0 {
		return errors.New("chat id is required")
	}

	if len(r.PublicKey) == 0 {
		return errors.New("public key is required")
	}

	if len(r.SecretKey) == 0 {
		return errors.New("secret key is required")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		ChatID:    r.ChatID,
		PublicKey: r.PublicKey,
		SecretKey: r.SecretKey,

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.ChatID = r.ChatID
	dst.PublicKey = r.PublicKey
	dst.SecretKey = r.SecretKey

	dst.CreatedAt = r.CreatedAt
}

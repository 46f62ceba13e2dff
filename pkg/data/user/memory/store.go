package memory

import (
	"context"
	"sync"
	"time"

	"github.com/libra-stake/libra-bot/pkg/data/user"
)

type store struct {
	mu      sync.Mutex
	records []*user.Record
	last    uint64
}

// New returns a new in memory user.Store
func New() user.Store {
	return &store{}
}

// Put implements user.Store.Put
func (s *store) Put(_ context.Context, record *user.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByChatID(record.ChatID) != nil {
		return user.ErrAlreadyExists
	}

	s.last++

	cloned := record.Clone()
	cloned.Id = s.last
	if cloned.CreatedAt.IsZero() {
		cloned.CreatedAt = time.Now()
	}
	s.records = append(s.records, &cloned)

	cloned.CopyTo(record)

	return nil
}

// GetByChatID implements user.Store.GetByChatID
func (s *store) GetByChatID(_ context.Context, chatID int64) (*user.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByChatID(chatID)
	if item == nil {
		return nil, user.ErrNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

func (s *store) findByChatID(chatID int64) *user.Record {
	for _, item := range s.records {
		if item.ChatID == chatID {
			return item
		}
	}
	return nil
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.last = 0
}

package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libra-stake/libra-bot/pkg/data/user"
)

func RunTests(t *testing.T, s user.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s user.Store){
		testHappyPath,
		testOneWalletPerChat,
		testValidation,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s user.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		ctx := context.Background()

		start := time.Now()
		time.Sleep(time.Millisecond)

		_, err := s.GetByChatID(ctx, 123)
		assert.Equal(t, user.ErrNotFound, err)

		record := &user.Record{
			ChatID:    123,
			PublicKey: "pub1",
			SecretKey: "sec1",
		}
		require.NoError(t, s.Put(ctx, record))
		assert.True(t, record.Id > 0)

		actual, err := s.GetByChatID(ctx, 123)
		require.NoError(t, err)
		require.NoError(t, actual.Validate())
		assert.Equal(t, record.Id, actual.Id)
		assert.EqualValues(t, 123, actual.ChatID)
		assert.Equal(t, "pub1", actual.PublicKey)
		assert.Equal(t, "sec1", actual.SecretKey)
		assert.True(t, actual.CreatedAt.After(start))

		_, err = s.GetByChatID(ctx, 456)
		assert.Equal(t, user.ErrNotFound, err)
	})
}

func testOneWalletPerChat(t *testing.T, s user.Store) {
	t.Run("testOneWalletPerChat", func(t *testing.T) {
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, &user.Record{
			ChatID:    123,
			PublicKey: "pub1",
			SecretKey: "sec1",
		}))

		err := s.Put(ctx, &user.Record{
			ChatID:    123,
			PublicKey: "pub2",
			SecretKey: "sec2",
		})
		assert.Equal(t, user.ErrAlreadyExists, err)

		actual, err := s.GetByChatID(ctx, 123)
		require.NoError(t, err)
		assert.Equal(t, "pub1", actual.PublicKey)
	})
}

func testValidation(t *testing.T, s user.Store) {
	t.Run("testValidation", func(t *testing.T) {
		ctx := context.Background()

		assert.Error(t, s.Put(ctx, &user.Record{PublicKey: "pub1", SecretKey: "sec1"}))
		assert.Error(t, s.Put(ctx, &user.Record{ChatID: 123, SecretKey: "sec1"}))
		assert.Error(t, s.Put(ctx, &user.Record{ChatID: 123, PublicKey: "pub1"}))
	})
}

package token

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libra-stake/libra-bot/pkg/pointer"
)

func TestAccount_RoundTrip(t *testing.T) {
	mint, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	owner, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	delegate, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	expected := Account{
		Mint:            mint,
		Owner:           owner,
		Amount:          123_456_789,
		Delegate:        delegate,
		State:           AccountStateInitialized,
		IsNative:        pointer.Uint64(2_039_280),
		DelegatedAmount: 500,
		CloseAuthority:  owner,
	}

	data := expected.Marshal()
	assert.Len(t, data, AccountSize)

	var actual Account
	require.True(t, actual.Unmarshal(data))
	assert.Equal(t, expected, actual)
}

func TestAccount_OptionalFieldsAbsent(t *testing.T) {
	mint, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	owner, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	expected := Account{
		Mint:   mint,
		Owner:  owner,
		Amount: 42,
		State:  AccountStateInitialized,
	}

	var actual Account
	require.True(t, actual.Unmarshal(expected.Marshal()))
	assert.Equal(t, expected, actual)
	assert.Nil(t, actual.Delegate)
	assert.Nil(t, actual.IsNative)
}

func TestAccount_InvalidSize(t *testing.T) {
	var account Account
	assert.False(t, account.Unmarshal(make([]byte, AccountSize-1)))
	assert.False(t, account.Unmarshal(make([]byte, AccountSize+1)))
	assert.False(t, account.Unmarshal(nil))
}

func TestGetAssociatedAccount(t *testing.T) {
	wallet, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	mint, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	a, err := GetAssociatedAccount(wallet, mint)
	require.NoError(t, err)
	b, err := GetAssociatedAccount(wallet, mint)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	otherMint, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	c, err := GetAssociatedAccount(wallet, otherMint)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

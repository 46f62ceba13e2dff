// Package staking provides the client-side contract with the Libra staking
// program: the fixed account layouts, the stake/unstake instructions, and an
// RPC-backed reader for program state.
package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/libra-stake/libra-bot/pkg/solana/binary"
)

const (
	// ContractAccountSize is 1 + 3*32 + 7*8 bytes.
	ContractAccountSize = 153

	// UserAccountSize is 1 + 32 + 7*8 bytes.
	UserAccountSize = 89
)

// ErrInvalidAccountSize indicates the account data does not match the fixed
// layout size. Accounts are always read whole; there is no partial decode.
var ErrInvalidAccountSize = errors.New("invalid account size")

// ContractAccount is the staking program's configuration account. The client
// only ever reads it; all mutation happens through program instructions.
type ContractAccount struct {
	IsInitialized uint8

	Admin             ed25519.PublicKey
	StakeTokenMint    ed25519.PublicKey
	StakeTokenAccount ed25519.PublicKey

	MinimumStakeAmount  uint64
	MinimumLockDuration uint64
	NormalStakingApy    uint64
	LockedStakingApy    uint64
	EarlyWithdrawalFee  uint64
	TotalStaked         uint64
	TotalEarned         uint64
}

func (a ContractAccount) Marshal() []byte {
	b := make([]byte, ContractAccountSize)

	var offset int
	binary.PutUint8(b, a.IsInitialized, &offset)
	binary.PutKey32(b[offset:], a.Admin, &offset)
	binary.PutKey32(b[offset:], a.StakeTokenMint, &offset)
	binary.PutKey32(b[offset:], a.StakeTokenAccount, &offset)
	binary.PutUint64(b[offset:], a.MinimumStakeAmount, &offset)
	binary.PutUint64(b[offset:], a.MinimumLockDuration, &offset)
	binary.PutUint64(b[offset:], a.NormalStakingApy, &offset)
	binary.PutUint64(b[offset:], a.LockedStakingApy, &offset)
	binary.PutUint64(b[offset:], a.EarlyWithdrawalFee, &offset)
	binary.PutUint64(b[offset:], a.TotalStaked, &offset)
	binary.PutUint64(b[offset:], a.TotalEarned, &offset)

	return b
}

func (a *ContractAccount) Unmarshal(data []byte) error {
	if len(data) != ContractAccountSize {
		return ErrInvalidAccountSize
	}

	var offset int
	binary.GetUint8(data, &a.IsInitialized, &offset)
	binary.GetKey32(data[offset:], &a.Admin, &offset)
	binary.GetKey32(data[offset:], &a.StakeTokenMint, &offset)
	binary.GetKey32(data[offset:], &a.StakeTokenAccount, &offset)
	binary.GetUint64(data[offset:], &a.MinimumStakeAmount, &offset)
	binary.GetUint64(data[offset:], &a.MinimumLockDuration, &offset)
	binary.GetUint64(data[offset:], &a.NormalStakingApy, &offset)
	binary.GetUint64(data[offset:], &a.LockedStakingApy, &offset)
	binary.GetUint64(data[offset:], &a.EarlyWithdrawalFee, &offset)
	binary.GetUint64(data[offset:], &a.TotalStaked, &offset)
	binary.GetUint64(data[offset:], &a.TotalEarned, &offset)

	return nil
}

// UserAccount is the per-user stake record. It is created by the program on
// first stake; before then no account exists at the derived address.
type UserAccount struct {
	IsInitialized uint8

	Owner ed25519.PublicKey

	StakeType       uint64
	LockDuration    uint64
	TotalStaked     uint64
	InterestAccrued uint64

	// StakeTs is the unix timestamp (seconds) of the current stake.
	StakeTs       uint64
	LastClaimTs   uint64
	LastUnstakeTs uint64
}

func (a UserAccount) Marshal() []byte {
	b := make([]byte, UserAccountSize)

	var offset int
	binary.PutUint8(b, a.IsInitialized, &offset)
	binary.PutKey32(b[offset:], a.Owner, &offset)
	binary.PutUint64(b[offset:], a.StakeType, &offset)
	binary.PutUint64(b[offset:], a.LockDuration, &offset)
	binary.PutUint64(b[offset:], a.TotalStaked, &offset)
	binary.PutUint64(b[offset:], a.InterestAccrued, &offset)
	binary.PutUint64(b[offset:], a.StakeTs, &offset)
	binary.PutUint64(b[offset:], a.LastClaimTs, &offset)
	binary.PutUint64(b[offset:], a.LastUnstakeTs, &offset)

	return b
}

func (a *UserAccount) Unmarshal(data []byte) error {
	if len(data) != UserAccountSize {
		return ErrInvalidAccountSize
	}

	var offset int
	binary.GetUint8(data, &a.IsInitialized, &offset)
	binary.GetKey32(data[offset:], &a.Owner, &offset)
	binary.GetUint64(data[offset:], &a.StakeType, &offset)
	binary.GetUint64(data[offset:], &a.LockDuration, &offset)
	binary.GetUint64(data[offset:], &a.TotalStaked, &offset)
	binary.GetUint64(data[offset:], &a.InterestAccrued, &offset)
	binary.GetUint64(data[offset:], &a.StakeTs, &offset)
	binary.GetUint64(data[offset:], &a.LastClaimTs, &offset)
	binary.GetUint64(data[offset:], &a.LastUnstakeTs, &offset)

	return nil
}

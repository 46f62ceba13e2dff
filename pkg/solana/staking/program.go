package staking

import (
	"crypto/ed25519"
	"encoding/binary"
	"math"

	"github.com/libra-stake/libra-bot/pkg/solana"
	"github.com/libra-stake/libra-bot/pkg/solana/token"
)

type Command byte

const (
	CommandInitialize Command = iota
	CommandStake
	CommandUnstake
)

// StakeType selects the staking schedule. Normal stakes accrue at the
// contract's normal APY and can be unstaked after a day; locked stakes
// commit to a lock duration for the higher rate.
type StakeType byte

const (
	StakeTypeNormal StakeType = iota
	StakeTypeLocked
)

// userAccountSeed prefixes the owner key when deriving the per-user stake
// account address.
const userAccountSeed = "spl_staking_user"

const (
	stakeInstructionSize   = 18
	unstakeInstructionSize = 1
)

// FindUserAccountAddress derives the program address holding the owner's
// stake record. The derivation is deterministic, so the account can be
// located (or found absent) without any on-chain interaction.
func FindUserAccountAddress(program, owner ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(program, []byte(userAccountSeed), owner)
}

// Stake builds an instruction staking amount tokens of the given decimals.
// The amount is a whole-token value and is scaled to the raw quark amount
// here. lockDuration is in seconds and only meaningful for locked stakes.
//
// Account ordering is fixed by the program:
//
//	[0] user (signer, writable)
//	[1] user token account (writable)
//	[2] user stake account (writable)
//	[3] contract token account (writable)
//	[4] contract data account (writable)
//	[5] token program
//	[6] system program
func Stake(
	program ed25519.PublicKey,
	user ed25519.PublicKey,
	userTokenAccount ed25519.PublicKey,
	userStakeAccount ed25519.PublicKey,
	contractTokenAccount ed25519.PublicKey,
	contractDataAccount ed25519.PublicKey,
	stakeType StakeType,
	amount float64,
	decimals uint8,
	lockDuration uint64,
) solana.Instruction {
	quarks := uint64(amount * math.Pow10(int(decimals)))

	data := make([]byte, stakeInstructionSize)
	data[0] = byte(CommandStake)
	data[1] = byte(stakeType)
	binary.LittleEndian.PutUint64(data[2:], quarks)
	binary.LittleEndian.PutUint64(data[10:], lockDuration)

	return solana.NewInstruction(
		program,
		data,
		solana.NewAccountMeta(user, true),
		solana.NewAccountMeta(userTokenAccount, false),
		solana.NewAccountMeta(userStakeAccount, false),
		solana.NewAccountMeta(contractTokenAccount, false),
		solana.NewAccountMeta(contractDataAccount, false),
		solana.NewReadonlyAccountMeta(token.ProgramKey, false),
		solana.NewReadonlyAccountMeta(solana.SystemProgramID, false),
	)
}

// Unstake builds an instruction withdrawing the user's full stake plus any
// accrued interest. The payload is the bare command byte; everything the
// program needs lives in the accounts.
func Unstake(
	program ed25519.PublicKey,
	user ed25519.PublicKey,
	userTokenAccount ed25519.PublicKey,
	userStakeAccount ed25519.PublicKey,
	contractTokenAccount ed25519.PublicKey,
	contractDataAccount ed25519.PublicKey,
) solana.Instruction {
	return solana.NewInstruction(
		program,
		[]byte{byte(CommandUnstake)},
		solana.NewAccountMeta(user, true),
		solana.NewAccountMeta(userTokenAccount, false),
		solana.NewAccountMeta(userStakeAccount, false),
		solana.NewAccountMeta(contractTokenAccount, false),
		solana.NewAccountMeta(contractDataAccount, false),
		solana.NewReadonlyAccountMeta(token.ProgramKey, false),
	)
}

// DecompiledStake is a stake instruction recovered from a compiled message.
type DecompiledStake struct {
	User                 ed25519.PublicKey
	UserTokenAccount     ed25519.PublicKey
	UserStakeAccount     ed25519.PublicKey
	ContractTokenAccount ed25519.PublicKey
	ContractDataAccount  ed25519.PublicKey

	StakeType    StakeType
	Quarks       uint64
	LockDuration uint64
}

func DecompileStake(m solana.Message, index int, program ed25519.PublicKey) (*DecompiledStake, error) {
	if index >= len(m.Instructions) {
		return nil, solana.ErrIncorrectInstruction
	}

	i := m.Instructions[index]
	if !m.Accounts[i.ProgramIndex].Equal(program) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Data) != stakeInstructionSize || i.Data[0] != byte(CommandStake) {
		return nil, solana.ErrIncorrectInstruction
	}
	if len(i.Accounts) != 7 {
		return nil, solana.ErrIncorrectInstruction
	}
	if !m.Accounts[i.Accounts[5]].Equal(token.ProgramKey) {
		return nil, solana.ErrIncorrectProgram
	}
	if !m.Accounts[i.Accounts[6]].Equal(solana.SystemProgramID) {
		return nil, solana.ErrIncorrectProgram
	}

	return &DecompiledStake{
		User:                 m.Accounts[i.Accounts[0]],
		UserTokenAccount:     m.Accounts[i.Accounts[1]],
		UserStakeAccount:     m.Accounts[i.Accounts[2]],
		ContractTokenAccount: m.Accounts[i.Accounts[3]],
		ContractDataAccount:  m.Accounts[i.Accounts[4]],
		StakeType:            StakeType(i.Data[1]),
		Quarks:               binary.LittleEndian.Uint64(i.Data[2:]),
		LockDuration:         binary.LittleEndian.Uint64(i.Data[10:]),
	}, nil
}

// DecompiledUnstake is an unstake instruction recovered from a compiled
// message.
type DecompiledUnstake struct {
	User                 ed25519.PublicKey
	UserTokenAccount     ed25519.PublicKey
	UserStakeAccount     ed25519.PublicKey
	ContractTokenAccount ed25519.PublicKey
	ContractDataAccount  ed25519.PublicKey
}

func DecompileUnstake(m solana.Message, index int, program ed25519.PublicKey) (*DecompiledUnstake, error) {
	if index >= len(m.Instructions) {
		return nil, solana.ErrIncorrectInstruction
	}

	i := m.Instructions[index]
	if !m.Accounts[i.ProgramIndex].Equal(program) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Data) != unstakeInstructionSize || i.Data[0] != byte(CommandUnstake) {
		return nil, solana.ErrIncorrectInstruction
	}
	if len(i.Accounts) != 6 {
		return nil, solana.ErrIncorrectInstruction
	}
	if !m.Accounts[i.Accounts[5]].Equal(token.ProgramKey) {
		return nil, solana.ErrIncorrectProgram
	}

	return &DecompiledUnstake{
		User:                 m.Accounts[i.Accounts[0]],
		UserTokenAccount:     m.Accounts[i.Accounts[1]],
		UserStakeAccount:     m.Accounts[i.Accounts[2]],
		ContractTokenAccount: m.Accounts[i.Accounts[3]],
		ContractDataAccount:  m.Accounts[i.Accounts[4]],
	}, nil
}

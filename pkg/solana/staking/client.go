package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/libra-stake/libra-bot/pkg/solana"
)

var (
	// ErrAccountNotFound indicates no account exists at the derived or
	// configured address. For user stake accounts this is the normal state
	// for an owner who has never staked, not a lookup failure.
	ErrAccountNotFound = errors.New("staking account not found")

	// ErrInvalidStakingAccount indicates an account exists but is not owned
	// by the staking program or does not decode as program state.
	ErrInvalidStakingAccount = errors.New("invalid staking account")
)

// Client fetches staking program state over RPC.
type Client struct {
	sc solana.Client

	program             ed25519.PublicKey
	contractDataAccount ed25519.PublicKey
}

func NewClient(sc solana.Client, program, contractDataAccount ed25519.PublicKey) *Client {
	return &Client{
		sc:                  sc,
		program:             program,
		contractDataAccount: contractDataAccount,
	}
}

func (c *Client) Program() ed25519.PublicKey {
	return c.program
}

func (c *Client) ContractDataAccount() ed25519.PublicKey {
	return c.contractDataAccount
}

// GetContractAccount fetches and decodes the contract configuration account.
func (c *Client) GetContractAccount(commitment solana.Commitment) (*ContractAccount, error) {
	info, err := c.sc.GetAccountInfo(c.contractDataAccount, commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, errors.Wrap(ErrAccountNotFound, "contract data account does not exist")
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get contract data account")
	}

	if !info.Owner.Equal(c.program) {
		return nil, errors.Wrap(ErrInvalidStakingAccount, "incorrect owner")
	}

	var account ContractAccount
	if err := account.Unmarshal(info.Data); err != nil {
		return nil, errors.Wrap(ErrInvalidStakingAccount, err.Error())
	}

	return &account, nil
}

// GetUserAccount fetches and decodes the stake record for owner, deriving
// its address from the program and owner key. Absence is reported as
// ErrAccountNotFound and means the owner has never staked.
func (c *Client) GetUserAccount(owner ed25519.PublicKey, commitment solana.Commitment) (*UserAccount, error) {
	address, err := FindUserAccountAddress(c.program, owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive user stake account address")
	}

	info, err := c.sc.GetAccountInfo(address, commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, errors.Wrapf(ErrAccountNotFound, "no stake account for owner %x", owner)
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get user stake account")
	}

	if !info.Owner.Equal(c.program) {
		return nil, errors.Wrap(ErrInvalidStakingAccount, "incorrect owner")
	}

	var account UserAccount
	if err := account.Unmarshal(info.Data); err != nil {
		return nil, errors.Wrap(ErrInvalidStakingAccount, err.Error())
	}

	return &account, nil
}

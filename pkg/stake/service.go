// Package stake submits staking transactions on behalf of custodial wallets
// and reports a single success or failure outcome per attempt.
package stake

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/libra-stake/libra-bot/pkg/solana"
	"github.com/libra-stake/libra-bot/pkg/solana/staking"
	"github.com/libra-stake/libra-bot/pkg/solana/token"
	"github.com/libra-stake/libra-bot/pkg/wallet"
)

// Service builds, signs, submits and confirms staking transactions.
//
// Stake and Unstake distinguish two failure modes. An on chain execution
// failure (the program rejected the instruction, insufficient funds, etc)
// is a negative outcome, not an error: they return (false, "", nil). A
// transport failure, where the outcome is unknown or the request never
// reached the cluster, is returned as an error.
type Service struct {
	log *logrus.Entry
	sc  solana.Client

	program              ed25519.PublicKey
	mint                 ed25519.PublicKey
	contractTokenAccount ed25519.PublicKey
	contractDataAccount  ed25519.PublicKey
	decimals             uint8
}

func NewService(
	sc solana.Client,
	program ed25519.PublicKey,
	mint ed25519.PublicKey,
	contractTokenAccount ed25519.PublicKey,
	contractDataAccount ed25519.PublicKey,
	decimals uint8,
) *Service {
	return &Service{
		log:                  logrus.StandardLogger().WithField("type", "stake/service"),
		sc:                   sc,
		program:              program,
		mint:                 mint,
		contractTokenAccount: contractTokenAccount,
		contractDataAccount:  contractDataAccount,
		decimals:             decimals,
	}
}

// Stake stakes amount whole tokens from the wallet's associated token
// account. lockDuration is only meaningful for locked stakes.
func (s *Service) Stake(kp *wallet.Keypair, stakeType staking.StakeType, amount float64, lockDuration uint64) (bool, string, error) {
	userTokenAccount, userStakeAccount, err := s.deriveAccounts(kp.Public())
	if err != nil {
		return false, "", err
	}

	instruction := staking.Stake(
		s.program,
		kp.Public(),
		userTokenAccount,
		userStakeAccount,
		s.contractTokenAccount,
		s.contractDataAccount,
		stakeType,
		amount,
		s.decimals,
		lockDuration,
	)

	return s.submitAndConfirm(kp, instruction)
}

// Unstake withdraws the wallet's full stake plus accrued interest.
func (s *Service) Unstake(kp *wallet.Keypair) (bool, string, error) {
	userTokenAccount, userStakeAccount, err := s.deriveAccounts(kp.Public())
	if err != nil {
		return false, "", err
	}

	instruction := staking.Unstake(
		s.program,
		kp.Public(),
		userTokenAccount,
		userStakeAccount,
		s.contractTokenAccount,
		s.contractDataAccount,
	)

	return s.submitAndConfirm(kp, instruction)
}

func (s *Service) deriveAccounts(owner ed25519.PublicKey) (userTokenAccount, userStakeAccount ed25519.PublicKey, err error) {
	userTokenAccount, err = token.GetAssociatedAccount(owner, s.mint)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to derive associated token account")
	}

	userStakeAccount, err = staking.FindUserAccountAddress(s.program, owner)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to derive user stake account")
	}

	return userTokenAccount, userStakeAccount, nil
}

func (s *Service) submitAndConfirm(kp *wallet.Keypair, instruction solana.Instruction) (bool, string, error) {
	blockhash, lastValidBlockHeight, err := s.sc.GetLatestBlockhash(solana.CommitmentConfirmed)
	if err != nil {
		return false, "", errors.Wrap(err, "failed to get latest blockhash")
	}

	txn := solana.NewTransaction(kp.Public(), instruction)
	txn.SetBlockhash(blockhash)
	if err := txn.Sign(kp.Private()); err != nil {
		return false, "", errors.Wrap(err, "failed to sign transaction")
	}

	sig, err := s.sc.SubmitTransaction(txn, solana.CommitmentConfirmed)
	if err != nil {
		if txErr, ok := err.(*solana.TransactionError); ok {
			s.log.WithError(txErr).Info("transaction rejected in preflight")
			return false, "", nil
		}

		return false, "", errors.Wrap(err, "failed to submit transaction")
	}

	status, err := s.sc.WaitForConfirmation(sig, lastValidBlockHeight)
	if err != nil {
		return false, "", errors.Wrap(err, "failed to confirm transaction")
	}

	if status.ErrorResult != nil {
		s.log.WithError(status.ErrorResult).Info("transaction failed on chain")
		return false, "", nil
	}

	return true, sig.Base58(), nil
}

package token

import (
	"crypto/ed25519"

	"github.com/libra-stake/libra-bot/pkg/solana"
)

// GetAssociatedAccount returns the canonical token account address for the
// (wallet, mint) pair.
//
// Reference: https://spl.solana.com/associated-token-account#finding-the-associated-token-account-address
func GetAssociatedAccount(wallet, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(
		AssociatedTokenAccountProgramKey,
		wallet,
		ProgramKey,
		mint,
	)
}

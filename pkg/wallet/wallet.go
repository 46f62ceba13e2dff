// Package wallet manages the custodial Solana keypairs the bot holds on
// behalf of Telegram users.
package wallet

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// Keypair is an ed25519 keypair. Secrets use the Solana convention of a
// 64 byte expanded private key (seed followed by public key), so exported
// keys import cleanly into standard Solana wallets.
type Keypair struct {
	public  ed25519.PublicKey
	private ed25519.PrivateKey
}

// Generate creates a new random keypair.
func Generate() (*Keypair, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate keypair")
	}

	return &Keypair{
		public:  public,
		private: private,
	}, nil
}

// FromSecretBase58 reconstructs a keypair from a base58 encoded 64 byte
// secret key.
func FromSecretBase58(secret string) (*Keypair, error) {
	raw, err := base58.Decode(secret)
	if err != nil {
		return nil, errors.Wrap(err, "secret key is not valid base58")
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("invalid secret key size: %d", len(raw))
	}

	private := ed25519.PrivateKey(raw)
	return &Keypair{
		public:  private.Public().(ed25519.PublicKey),
		private: private,
	}, nil
}

func (k *Keypair) Public() ed25519.PublicKey {
	return k.public
}

func (k *Keypair) Private() ed25519.PrivateKey {
	return k.private
}

func (k *Keypair) PublicBase58() string {
	return base58.Encode(k.public)
}

// SecretBase58 returns the full 64 byte secret key in base58. Callers are
// responsible for where this ends up.
func (k *Keypair) SecretBase58() string {
	return base58.Encode(k.private)
}

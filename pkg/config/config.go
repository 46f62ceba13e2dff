// Package config loads bot configuration from the environment.
package config

import (
	"crypto/ed25519"

	"github.com/kelseyhightower/envconfig"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// Key is a base58 encoded ed25519 public key. It implements envconfig's
// Decoder so bad keys fail at startup.
type Key ed25519.PublicKey

func (k *Key) Decode(value string) error {
	raw, err := base58.Decode(value)
	if err != nil {
		return errors.Wrap(err, "key is not valid base58")
	}
	if len(raw) != ed25519.PublicKeySize {
		return errors.Errorf("invalid key size: %d", len(raw))
	}

	*k = raw
	return nil
}

func (k Key) PublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(k)
}

type Config struct {
	TelegramToken string `envconfig:"TELEGRAM_TOKEN" required:"true"`

	SolanaRPCEndpoint string `envconfig:"SOLANA_RPC_ENDPOINT" default:"https://api.mainnet-beta.solana.com"`

	PostgresDSN        string `envconfig:"POSTGRES_DSN" required:"true"`
	MaxOpenConnections int    `envconfig:"POSTGRES_MAX_OPEN_CONNECTIONS" default:"16"`
	MaxIdleConnections int    `envconfig:"POSTGRES_MAX_IDLE_CONNECTIONS" default:"4"`

	StakingProgramID     Key `envconfig:"STAKING_PROGRAM_ID" required:"true"`
	StakeTokenMint       Key `envconfig:"STAKE_TOKEN_MINT" required:"true"`
	ContractDataAccount  Key `envconfig:"CONTRACT_DATA_ACCOUNT" required:"true"`
	ContractTokenAccount Key `envconfig:"CONTRACT_TOKEN_ACCOUNT" required:"true"`

	StakeTokenDecimals uint8 `envconfig:"STAKE_TOKEN_DECIMALS" default:"6"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load configuration from environment")
	}

	return &cfg, nil
}

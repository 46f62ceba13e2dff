package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/pkg/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")

	ErrInvalidPublicKey = errors.New("invalid public key")
)

// SystemProgramID is the native system program (11111111111111111111111111111111).
var SystemProgramID = make(ed25519.PublicKey, ed25519.PublicKeySize)

// CreateProgramAddress mirrors the Solana SDK's create_program_address.
//
// Program addresses are public keys that do _not_ lie on the ed25519 curve,
// so there is no associated private key. If the program and seeds hash to a
// valid curve point, ErrInvalidPublicKey is returned and the caller is
// expected to retry with a different bump seed.
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if len(seeds) > maxSeeds {
		return nil, ErrTooManySeeds
	}

	h := sha256.New()
	for _, s := range seeds {
		if len(s) > maxSeedLength {
			return nil, ErrMaxSeedLengthExceeded
		}

		if _, err := h.Write(s); err != nil {
			return nil, errors.Wrap(err, "failed to hash seed")
		}
	}

	for _, v := range [][]byte{program, []byte("ProgramDerivedAddress")} {
		if _, err := h.Write(v); err != nil {
			return nil, errors.Wrap(err, "failed to hash seed")
		}
	}

	var pub [32]byte
	copy(pub[:], h.Sum(nil))

	// The generated address must be rejected if it is a valid compressed
	// EdwardsPoint. The x/crypto library keeps its point type internal, so
	// the check relies on an open source implementation of the group math.
	var p edwards25519.ExtendedGroupElement
	if p.FromBytes(&pub) {
		return nil, ErrInvalidPublicKey
	}

	return pub[:], nil
}

// FindProgramAddressAndBump searches for a valid program derived address by
// appending a bump seed, starting at 255 and decrementing, mirroring the
// Solana SDK's find_program_address. The result is deterministic for a given
// (program, seeds) pair.
func FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	bumpSeed := []byte{math.MaxUint8}
	for i := 0; i < math.MaxUint8; i++ {
		pub, err := CreateProgramAddress(program, append(seeds, bumpSeed)...)
		if err == nil {
			return pub, bumpSeed[0], nil
		}
		if err != ErrInvalidPublicKey {
			return nil, 0, err
		}

		bumpSeed[0]--
	}

	return nil, 0, errors.New("unable to find a viable program address")
}

// FindProgramAddress is FindProgramAddressAndBump without the bump seed.
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	pub, _, err := FindProgramAddressAndBump(program, seeds...)
	return pub, err
}

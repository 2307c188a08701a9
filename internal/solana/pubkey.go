// Package solana builds and simulates the on-chain verification transaction.
// It talks JSON-RPC 2.0 to the configured cluster endpoint; nothing here is
// ever broadcast for settlement.
package solana

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// ErrInvalidProgramID marks a program identifier that failed base58/length
// validation. It is always caught before any network call.
var ErrInvalidProgramID = errors.New("invalid program id")

// PublicKey is a 32-byte account address.
type PublicKey [32]byte

// ParseProgramID validates a base58-encoded program identifier.
func ParseProgramID(s string) (PublicKey, error) {
	if s == "" {
		return PublicKey{}, fmt.Errorf("%w: empty", ErrInvalidProgramID)
	}
	decoded := base58.Decode(s)
	if len(decoded) != 32 {
		return PublicKey{}, fmt.Errorf("%w: %q does not decode to 32 bytes", ErrInvalidProgramID, s)
	}
	var pk PublicKey
	copy(pk[:], decoded)
	return pk, nil
}

func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

func mustParsePubkey(s string) PublicKey {
	pk, err := ParseProgramID(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// ComputeBudgetProgramID is the native program that prices compute.
var ComputeBudgetProgramID = mustParsePubkey("ComputeBudget111111111111111111111111111111")

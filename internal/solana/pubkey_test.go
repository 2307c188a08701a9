package solana

import (
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProgramID(t *testing.T) {
	var raw [32]byte
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	encoded := base58.Encode(raw[:])

	pk, err := ParseProgramID(encoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, pk.String())
}

func TestParseProgramIDRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"not-base58-0OIl",
		"abc",
		base58.Encode(make([]byte, 31)),
		base58.Encode(make([]byte, 33)),
	}
	for _, in := range cases {
		_, err := ParseProgramID(in)
		assert.ErrorIs(t, err, ErrInvalidProgramID, "input %q", in)
	}
}

func TestComputeBudgetProgramID(t *testing.T) {
	assert.Equal(t, "ComputeBudget111111111111111111111111111111", ComputeBudgetProgramID.String())
}

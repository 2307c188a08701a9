// Package cost derives compute, size and fee metrics from simulation output.
// Everything here is a pure function over already-gathered inputs so the
// classification boundaries stay exact and testable.
package cost

import (
	"math"

	"github.com/holiman/uint256"
)

const (
	// BaseFeeLamports is the flat per-signature fee, identical on every
	// network.
	BaseFeeLamports uint64 = 5000

	// LamportsPerSOL converts lamports to whole currency units.
	LamportsPerSOL uint64 = 1_000_000_000

	microLamportsPerLamport = 1_000_000

	// MessageSizeCeiling is the wire limit: a larger message is rejected
	// outright by the network.
	MessageSizeCeiling = 1232

	// messageOverhead estimates the envelope framing around the proof and
	// witness payload: three 32-byte account keys plus the blockhash.
	messageOverhead = 128
)

// TotalProofWitnessSize is the verify instruction's payload length.
func TotalProofWitnessSize(proofSize, witnessSize int) int {
	return proofSize + witnessSize
}

// BudgetUsedPercent expresses consumed compute units as a percentage of the
// requested budget.
func BudgetUsedPercent(consumed, budget uint64) float64 {
	if budget == 0 {
		return 0
	}
	return float64(consumed) / float64(budget) * 100
}

// CUPerProofByte is the efficiency ratio of compute units per payload byte.
// Zero-guarded: an empty payload yields zero.
func CUPerProofByte(consumed uint64, totalSize int) float64 {
	if totalSize <= 0 {
		return 0
	}
	return float64(consumed) / float64(totalSize)
}

// PrioritizationFee converts a compute-unit price in microlamports into the
// lamport fee for the requested unit limit. The intermediate product can
// exceed uint64, so it is computed in 256-bit space and saturates.
func PrioritizationFee(cuLimit uint32, cuPriceMicroLamports uint64) uint64 {
	product := new(uint256.Int).Mul(
		uint256.NewInt(uint64(cuLimit)),
		uint256.NewInt(cuPriceMicroLamports),
	)
	product.Div(product, uint256.NewInt(microLamportsPerLamport))
	if !product.IsUint64() {
		return math.MaxUint64
	}
	return product.Uint64()
}

// TotalFee is the base fee plus the prioritization fee.
func TotalFee(baseFee, prioritizationFee uint64) uint64 {
	return baseFee + prioritizationFee
}

// CostInSOL converts a lamport fee into whole currency units.
func CostInSOL(lamports uint64) float64 {
	return float64(lamports) / float64(LamportsPerSOL)
}

// MessageSize estimates the serialized message length for a proof+witness
// payload: envelope framing plus the payload itself.
func MessageSize(totalProofWitnessSize int) int {
	return messageOverhead + totalProofWitnessSize
}

// FitsMessageLimit reports whether a message of the given size would be
// accepted by the network.
func FitsMessageLimit(messageSize int) bool {
	return messageSize <= MessageSizeCeiling
}

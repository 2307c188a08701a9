package cost

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalProofWitnessSize(t *testing.T) {
	assert.Equal(t, 0, TotalProofWitnessSize(0, 0))
	assert.Equal(t, 856, TotalProofWitnessSize(256, 600))
	assert.Equal(t, 7, TotalProofWitnessSize(7, 0))
}

func TestBudgetUsedPercent(t *testing.T) {
	assert.InDelta(t, 24.6912, BudgetUsedPercent(123_456, 500_000), 0.0001)
	assert.InDelta(t, 100, BudgetUsedPercent(500_000, 500_000), 0.0001)
	assert.Zero(t, BudgetUsedPercent(100, 0))
}

func TestCUPerProofByte(t *testing.T) {
	assert.InDelta(t, 144.224, CUPerProofByte(123_456, 856), 0.001)
	assert.Zero(t, CUPerProofByte(123_456, 0))
}

func TestBaseFeeIsFixed(t *testing.T) {
	assert.Equal(t, uint64(5000), BaseFeeLamports)
}

func TestPrioritizationFee(t *testing.T) {
	// 500k CU at 10k microlamports/CU = 5e9 microlamports = 5000 lamports
	assert.Equal(t, uint64(5000), PrioritizationFee(500_000, 10_000))
	assert.Equal(t, uint64(0), PrioritizationFee(500_000, 0))
	// sub-lamport remainders truncate
	assert.Equal(t, uint64(0), PrioritizationFee(100, 1))
}

func TestPrioritizationFeeSaturates(t *testing.T) {
	got := PrioritizationFee(1_400_000, math.MaxUint64)
	assert.Equal(t, uint64(math.MaxUint64), got)
}

func TestTotalFeeInvariant(t *testing.T) {
	prio := PrioritizationFee(500_000, 2_000)
	total := TotalFee(BaseFeeLamports, prio)
	assert.Equal(t, BaseFeeLamports+prio, total)
	assert.Equal(t, uint64(6000), total)
}

func TestCostInSOL(t *testing.T) {
	assert.InDelta(t, 0.000005, CostInSOL(5000), 1e-12)
}

func TestMessageSizeScenario(t *testing.T) {
	// proof 256 + witness 600: fits comfortably under the ceiling
	total := TotalProofWitnessSize(256, 600)
	size := MessageSize(total)
	assert.Less(t, size, 1000)
	assert.True(t, FitsMessageLimit(size))
	assert.Equal(t, Safe, ClassifyMessageSize(size))
}

func TestFitsMessageLimit(t *testing.T) {
	assert.True(t, FitsMessageLimit(1232))
	assert.False(t, FitsMessageLimit(1233))
}

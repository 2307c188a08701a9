// Package report assembles the persisted cost report: the stable snapshot
// schema the external viewer consumes.
package report

import (
	"time"

	"github.com/zklens/zklens/internal/config"
	"github.com/zklens/zklens/internal/cost"
	"github.com/zklens/zklens/internal/solana"
)

// SchemaVersion is bumped whenever the report layout changes shape.
const SchemaVersion = 1

// MaxFeeSamples bounds the persisted window of recent network fee samples.
const MaxFeeSamples = 50

// ComputeUnits is the compute section of the report.
type ComputeUnits struct {
	Consumed    uint64        `json:"total_compute_units_consumed"`
	Budget      uint64        `json:"compute_budget"`
	MaxUnits    uint32        `json:"max_compute_units"`
	PercentUsed float64       `json:"percentage_of_compute_budget_used"`
	Severity    cost.Severity `json:"severity"`
	Suggestion  string        `json:"suggestion"`
}

// ProofMetrics sizes the proving artifacts.
type ProofMetrics struct {
	ProofSize      int           `json:"proof_size"`
	WitnessSize    int           `json:"witness_size"`
	TotalSize      int           `json:"total_proof_witness_size"`
	CUPerProofByte float64       `json:"cu_per_proof_size"`
	Severity       cost.Severity `json:"severity"`
}

// FeeBreakdown is the cost section of the report.
type FeeBreakdown struct {
	CostInSOL            float64 `json:"cost_in_sol"`
	BaseFee              uint64  `json:"base_fee"`
	PrioritizationFee    uint64  `json:"prioritization_fee"`
	TotalFee             uint64  `json:"total_fee"`
	CULimit              uint32  `json:"cu_limit"`
	CUPriceMicroLamports uint64  `json:"cu_price_microlamports"`
	NumSignatures        int     `json:"num_signatures"`
	Suggestion           string  `json:"suggestion"`
}

// TxStatus is the simulation outcome section.
type TxStatus struct {
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion"`
}

// TxSize is the wire-size section.
type TxSize struct {
	TransactionSize int           `json:"transaction_size"`
	MessageSize     int           `json:"message_size"`
	MaxMessageSize  int           `json:"max_message_size"`
	WithinLimit     bool          `json:"message_within_size"`
	Severity        cost.Severity `json:"severity"`
	Suggestion      string        `json:"suggestion"`
}

// TxLogs carries the ordered program log lines from the simulation.
type TxLogs struct {
	Logs  []string `json:"logs"`
	Count int      `json:"log_count"`
}

// FeeSample is one persisted slot/fee observation.
type FeeSample struct {
	Slot              uint64 `json:"slot"`
	PrioritizationFee uint64 `json:"prioritization_fee"`
}

// Environment identifies the network the simulation ran against.
type Environment struct {
	Network string `json:"network"`
	RPCURL  string `json:"rpc_url"`
}

// CostReport is the persisted snapshot.
type CostReport struct {
	SchemaVersion            int          `json:"schema_version"`
	GeneratedAt              int64        `json:"generated_at"`
	ProgramID                string       `json:"program_id"`
	ComputeUnits             ComputeUnits `json:"compute_units"`
	Proof                    ProofMetrics `json:"proof"`
	Cost                     FeeBreakdown `json:"cost"`
	TransactionStatus        TxStatus     `json:"transaction_status"`
	TransactionSize          TxSize       `json:"transaction_size"`
	TransactionLogs          TxLogs       `json:"transaction_logs"`
	RecentPrioritizationFees []FeeSample  `json:"recent_prioritization_fees"`
	Environment              Environment  `json:"environment"`
}

// Build merges a simulation result, the payload sizes, and the network
// configuration into one report value.
func Build(res *solana.SimulationResult, proofSize, witnessSize int, programID string, cfg *config.Config) *CostReport {
	total := cost.TotalProofWitnessSize(proofSize, witnessSize)
	msgSize := cost.MessageSize(total)
	computeSev := cost.ClassifyBudgetUsage(res.UnitsConsumed, uint64(res.ComputeUnitLimit))
	sizeSev := cost.ClassifyMessageSize(msgSize)

	prioFee := cost.PrioritizationFee(res.ComputeUnitLimit, res.ComputeUnitPrice)
	baseFee := cost.BaseFeeLamports * uint64(max(res.NumSignatures, 1))
	totalFee := cost.TotalFee(baseFee, prioFee)

	logs := res.Logs
	if logs == nil {
		logs = []string{}
	}

	return &CostReport{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   time.Now().Unix(),
		ProgramID:     programID,
		ComputeUnits: ComputeUnits{
			Consumed:    res.UnitsConsumed,
			Budget:      uint64(res.ComputeUnitLimit),
			MaxUnits:    solana.MaxComputeUnits,
			PercentUsed: cost.BudgetUsedPercent(res.UnitsConsumed, uint64(res.ComputeUnitLimit)),
			Severity:    computeSev,
			Suggestion:  computeSuggestion(computeSev),
		},
		Proof: ProofMetrics{
			ProofSize:      proofSize,
			WitnessSize:    witnessSize,
			TotalSize:      total,
			CUPerProofByte: cost.CUPerProofByte(res.UnitsConsumed, total),
			Severity:       cost.ClassifyPayloadSize(total),
		},
		Cost: FeeBreakdown{
			CostInSOL:            cost.CostInSOL(totalFee),
			BaseFee:              baseFee,
			PrioritizationFee:    prioFee,
			TotalFee:             totalFee,
			CULimit:              res.ComputeUnitLimit,
			CUPriceMicroLamports: res.ComputeUnitPrice,
			NumSignatures:        max(res.NumSignatures, 1),
			Suggestion:           feeSuggestion(prioFee),
		},
		TransactionStatus: TxStatus{
			Status:     string(res.Status),
			Error:      res.Err,
			Suggestion: statusSuggestion(res.Status),
		},
		TransactionSize: TxSize{
			TransactionSize: res.TransactionSize,
			MessageSize:     msgSize,
			MaxMessageSize:  cost.MessageSizeCeiling,
			WithinLimit:     cost.FitsMessageLimit(msgSize),
			Severity:        sizeSev,
			Suggestion:      sizeSuggestion(sizeSev),
		},
		TransactionLogs: TxLogs{
			Logs:  logs,
			Count: len(logs),
		},
		RecentPrioritizationFees: newestFeeSamples(res.FeeSamples, MaxFeeSamples),
		Environment: Environment{
			Network: cfg.Network.String(),
			RPCURL:  cfg.RPCURL,
		},
	}
}

// newestFeeSamples keeps the most recent n samples, preserving order.
func newestFeeSamples(samples []solana.FeeSample, n int) []FeeSample {
	if len(samples) > n {
		samples = samples[len(samples)-n:]
	}
	out := make([]FeeSample, len(samples))
	for i, s := range samples {
		out[i] = FeeSample{Slot: s.Slot, PrioritizationFee: s.PrioritizationFee}
	}
	return out
}

func computeSuggestion(sev cost.Severity) string {
	switch sev {
	case cost.Critical:
		return "Consider optimizing compute usage - near budget limit"
	case cost.Monitor:
		return "Monitor compute usage - approaching budget limit"
	default:
		return "Compute usage is within acceptable range"
	}
}

func sizeSuggestion(sev cost.Severity) string {
	switch sev {
	case cost.Critical:
		return "Message exceeds the network size ceiling and will be rejected"
	case cost.Warning:
		return "Message size is close to the network ceiling"
	default:
		return "Message size is within limits"
	}
}

func feeSuggestion(prioFee uint64) string {
	if prioFee == 0 {
		return "Consider adding a priority fee for faster confirmation"
	}
	return "Priority fee is set"
}

func statusSuggestion(status solana.Status) string {
	if status == solana.StatusSuccess {
		return "Transaction simulation successful"
	}
	return "Review transaction error and fix issues"
}

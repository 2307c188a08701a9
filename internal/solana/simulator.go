package solana

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"
)

// SimulationRequest is one simulate invocation. At-most-once: nothing here is
// retried or deduplicated.
type SimulationRequest struct {
	ProgramID        string
	Proof            []byte
	PublicWitness    []byte
	ComputeUnitLimit uint32 // 0 means DefaultComputeUnitLimit
	ComputeUnitPrice uint64 // microlamports per unit; 0 omits the price directive
}

// Status is the simulation outcome as seen by the cluster.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"
)

// SimulationResult carries everything the cost model and report need. A
// Failed status means the cluster rejected the transaction during simulation;
// transport failures are returned as errors instead.
type SimulationResult struct {
	Status           Status
	UnitsConsumed    uint64
	Logs             []string
	Err              string // structured rejection error, empty on success
	MessageSize      int
	TransactionSize  int
	NumSignatures    int
	ComputeUnitLimit uint32
	ComputeUnitPrice uint64
	FeeSamples       []FeeSample
}

// Simulator builds the verification transaction and runs it through the
// cluster's simulation endpoint.
type Simulator struct {
	client *Client
	log    zerolog.Logger
}

func NewSimulator(client *Client, log zerolog.Logger) *Simulator {
	return &Simulator{client: client, log: log}
}

// Simulate performs a single blocking round trip. Outcomes:
//   - ErrInvalidProgramID before any network call;
//   - ErrTransport when the endpoint is unreachable or the reply malformed;
//   - a result with StatusFailed and program logs when the cluster rejected
//     the transaction;
//   - a result with StatusSuccess, units consumed and logs otherwise.
func (s *Simulator) Simulate(ctx context.Context, req SimulationRequest) (*SimulationResult, error) {
	programID, err := ParseProgramID(req.ProgramID)
	if err != nil {
		return nil, err
	}

	cuLimit := req.ComputeUnitLimit
	if cuLimit == 0 {
		cuLimit = DefaultComputeUnitLimit
	}

	// Throwaway unfunded fee payer; the transaction is never broadcast.
	_, payer, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate fee payer: %w", err)
	}

	blockhash, err := s.client.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	instructions := []Instruction{SetComputeUnitLimit(cuLimit)}
	if req.ComputeUnitPrice > 0 {
		instructions = append(instructions, SetComputeUnitPrice(req.ComputeUnitPrice))
	}
	instructions = append(instructions, VerifyInstruction(programID, req.Proof, req.PublicWitness))

	tx, err := NewTransaction(payer, blockhash, instructions...)
	if err != nil {
		return nil, fmt.Errorf("build transaction: %w", err)
	}

	wire := tx.Serialize()
	s.log.Debug().
		Int("message_size", tx.MessageSize()).
		Int("transaction_size", len(wire)).
		Uint32("cu_limit", cuLimit).
		Msg("simulating transaction")

	value, err := s.client.SimulateTransaction(ctx, base64.StdEncoding.EncodeToString(wire))
	if err != nil {
		return nil, err
	}

	result := &SimulationResult{
		Status:           StatusSuccess,
		UnitsConsumed:    value.UnitsConsumed,
		Logs:             value.Logs,
		MessageSize:      tx.MessageSize(),
		TransactionSize:  len(wire),
		NumSignatures:    tx.NumSignatures(),
		ComputeUnitLimit: cuLimit,
		ComputeUnitPrice: req.ComputeUnitPrice,
	}
	if value.Rejected() {
		result.Status = StatusFailed
		result.Err = value.ErrText()
	}

	// Fee samples are advisory: a failure here downgrades to a warning.
	samples, err := s.client.RecentPrioritizationFees(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not fetch prioritization fees")
	} else {
		result.FeeSamples = samples
	}

	return result, nil
}

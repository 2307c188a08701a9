package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/zklens/zklens/internal/artifact"
	"github.com/zklens/zklens/internal/config"
	"github.com/zklens/zklens/internal/report"
	"github.com/zklens/zklens/internal/solana"
)

// Simulate runs the on-chain verification simulation against the proof and
// public witness artifacts found under the project and persists the cost
// report.
func Simulate(ctx context.Context, log zerolog.Logger, path, programID string) error {
	root, err := resolveRoot(path)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	// Validate the program identifier before touching the network or disk.
	if _, err := solana.ParseProgramID(programID); err != nil {
		return err
	}

	proofPath, err := artifact.Find(root, "proof")
	if err != nil {
		return err
	}
	witnessPath, err := artifact.Find(root, "pw")
	if err != nil {
		return err
	}

	proof, err := os.ReadFile(proofPath)
	if err != nil {
		return fmt.Errorf("read proof: %w", err)
	}
	witness, err := os.ReadFile(witnessPath)
	if err != nil {
		return fmt.Errorf("read public witness: %w", err)
	}

	log.Info().
		Str("network", cfg.Network.String()).
		Str("rpc_url", cfg.RPCURL).
		Str("proof", proofPath).
		Str("witness", witnessPath).
		Msg("simulating verification")

	client, err := solana.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return err
	}

	sim := solana.NewSimulator(client, log)
	result, err := sim.Simulate(ctx, solana.SimulationRequest{
		ProgramID:     programID,
		Proof:         proof,
		PublicWitness: witness,
	})
	if err != nil {
		return err
	}

	r := report.Build(result, len(proof), len(witness), programID, cfg)
	store := report.NewStore(root)
	if err := store.Save(r); err != nil {
		return err
	}

	if result.Status == solana.StatusFailed {
		log.Warn().
			Str("error", result.Err).
			Int("log_lines", len(result.Logs)).
			Msg("simulation rejected on-chain; report saved")
	} else {
		log.Info().
			Uint64("units_consumed", result.UnitsConsumed).
			Str("severity", string(r.ComputeUnits.Severity)).
			Msg("simulation successful")
	}
	log.Info().Str("report", store.Path()).Msg("report saved")
	return nil
}

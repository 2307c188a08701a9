package cli

import (
	"github.com/rs/zerolog"
	"github.com/zklens/zklens/internal/artifact"
)

// Inspect deserializes the local proving artifacts and reports whether they
// are well-formed, without touching the network.
func Inspect(log zerolog.Logger, path string) error {
	root, err := resolveRoot(path)
	if err != nil {
		return err
	}

	ins, err := artifact.Inspect(root)
	if err != nil {
		return err
	}

	proofEv := log.Info()
	if !ins.ProofOK {
		proofEv = log.Warn().Str("error", ins.ProofErr)
	}
	proofEv.
		Str("path", ins.ProofPath).
		Int64("bytes", ins.ProofSize).
		Bool("valid", ins.ProofOK).
		Msg("proof")

	vkEv := log.Info()
	if !ins.VerifyingOK {
		vkEv = log.Warn().Str("error", ins.VerifyingErr)
	}
	vkEv.
		Str("path", ins.VerifyingPath).
		Int64("bytes", ins.VerifyingSize).
		Bool("valid", ins.VerifyingOK).
		Msg("verifying key")

	log.Info().
		Str("path", ins.WitnessPath).
		Int64("bytes", ins.WitnessSize).
		Msg("public witness")

	return nil
}

package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/zklens/zklens/internal/pipeline"
	"github.com/zklens/zklens/internal/toolchain"
)

// Run drives the full build pipeline for the circuit project at path.
func Run(ctx context.Context, log zerolog.Logger, path string) error {
	root, err := resolveRoot(path)
	if err != nil {
		return err
	}

	gateway := toolchain.NewGateway()
	orch := pipeline.NewOrchestrator(gateway, gateway, log)

	run, err := orch.Execute(ctx, root)
	if err != nil {
		log.Error().Err(err).Str("state", string(run.State)).Msg("pipeline failed")
		return err
	}

	total := int64(0)
	for _, stage := range run.Stages {
		total += stage.Duration.Milliseconds()
		for _, a := range stage.Artifacts {
			log.Info().
				Str("stage", stage.Name).
				Str("kind", string(a.Kind)).
				Str("path", a.Path).
				Int64("bytes", a.Size).
				Msg("artifact")
		}
	}
	log.Info().
		Str("circuit", run.Circuit).
		Int64("total_ms", total).
		Msg("pipeline complete")
	return nil
}

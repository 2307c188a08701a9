package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/zklens/zklens/internal/config"
)

// Init creates the .zklens directory and a default configuration. Running it
// on an already-initialized project is a no-op, not an error.
func Init(log zerolog.Logger, path string) error {
	root, err := resolveRoot(path)
	if err != nil {
		return err
	}

	if config.IsInitialized(root) {
		log.Warn().Str("dir", config.Dir(root)).Msg("project already initialized")
		return nil
	}

	cfg := config.New()
	if err := cfg.Save(root); err != nil {
		return fmt.Errorf("initialize project: %w", err)
	}

	log.Info().
		Str("config", config.Path(root)).
		Str("network", cfg.Network.String()).
		Str("rpc_url", cfg.RPCURL).
		Msg("project initialized")
	return nil
}

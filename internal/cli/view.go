package cli

import (
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"github.com/zklens/zklens/internal/config"
	"github.com/zklens/zklens/internal/report"
	"github.com/zklens/zklens/internal/viewer"
)

// View serves the persisted report on an ephemeral local port and prints the
// web viewer URL that reads from it. Blocks until interrupted.
func View(log zerolog.Logger, path string) error {
	root, err := resolveRoot(path)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	body, err := report.NewStore(root).Raw()
	if err != nil {
		return err
	}

	srv := viewer.NewServer(body, log)
	ln, err := srv.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	fmt.Printf("Open %s?port=%d to view the report\n", cfg.WebAppURL, port)
	log.Info().Int("port", port).Msg("viewer listening; press Ctrl+C to stop")

	return srv.Serve(ln)
}

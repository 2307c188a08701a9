// Package viewer serves the persisted report to the external web front-end.
// The report is loaded once at server start and served immutable for the
// server's lifetime; it does not hot-reload if the file changes. That is a
// deliberate simplicity tradeoff: the viewer session snapshots one run.
package viewer

import (
	"fmt"
	"net"
	"net/http"

	"github.com/rs/zerolog"
)

// Server exposes the report body read-only on a local ephemeral port.
type Server struct {
	body []byte
	log  zerolog.Logger
}

func NewServer(body []byte, log zerolog.Logger) *Server {
	return &Server{body: body, log: log}
}

// Handler serves two requests: GET / returns the report body as JSON, and
// OPTIONS / answers the CORS preflight. Both carry permissive cross-origin
// headers so the hosted front-end can read from localhost.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			h.Set("Content-Type", "application/json")
			w.Write(s.body)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	return mux
}

// Listen binds an ephemeral localhost port and returns the listener; Serve
// accepts connections until the listener closes. Each connection is handled
// independently against the same immutable report bytes, so no locking is
// needed.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("bind viewer port: %w", err)
	}
	return ln, nil
}

// Serve blocks serving the report on the listener.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info().Str("addr", ln.Addr().String()).Msg("serving report")
	return http.Serve(ln, s.Handler())
}

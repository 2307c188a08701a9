package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zklens/zklens/internal/config"
)

// ErrCorrupt marks a persisted report that is missing or not parseable.
var ErrCorrupt = errors.New("report missing or corrupt")

const reportFile = "report.json"

// Store persists the report snapshot under <root>/.zklens/report.json.
// Writes go to a temporary file and replace the prior report atomically, so a
// concurrent reader never observes a partial report.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Path returns the report file location.
func (s *Store) Path() string {
	return filepath.Join(config.Dir(s.root), reportFile)
}

// Save writes the report atomically.
func (s *Store) Save(r *CostReport) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	dir := config.Dir(s.root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, reportFile+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		tmp.Close()
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod report: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	committed = true
	return nil
}

// Load reads and validates the persisted report.
func (s *Store) Load() (*CostReport, error) {
	data, err := s.Raw()
	if err != nil {
		return nil, err
	}
	var r CostReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &r, nil
}

// Raw returns the persisted report bytes after confirming they parse as
// JSON. The viewer serves these bytes verbatim.
func (s *Store) Raw() ([]byte, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no report at %s", ErrCorrupt, s.Path())
		}
		return nil, fmt.Errorf("read report: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrCorrupt, s.Path())
	}
	return data, nil
}

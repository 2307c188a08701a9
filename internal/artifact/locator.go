// Package artifact locates and inspects the files the build pipeline leaves on
// disk. The locator is read-only and deterministic so that simulate can run
// against artifacts from an earlier run without re-invoking the pipeline.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound marks a search that matched no file.
var ErrNotFound = errors.New("artifact not found")

// Kind is the logical role of a file in the pipeline.
type Kind string

const (
	KindWitness       Kind = "witness"
	KindCircuit       Kind = "circuit"
	KindProvingKey    Kind = "proving key"
	KindVerifyingKey  Kind = "verifying key"
	KindProof         Kind = "proof"
	KindPublicWitness Kind = "public witness"
	KindChainProgram  Kind = "chain program"
)

// Artifact is a file produced by a pipeline stage.
type Artifact struct {
	Path string
	Kind Kind
	Size int64
}

// Stat describes an existing file as an Artifact.
func Stat(path string, kind Kind) (Artifact, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Path: path, Kind: kind, Size: info.Size()}, nil
}

// Find returns the first file under root whose name ends in "." + ext.
//
// The search is breadth-first: the shallowest match wins, and within a depth
// level entries are visited in lexicographic order, so two calls against an
// unchanged tree return the identical path. Dot-directories and node_modules
// are skipped.
func Find(root, ext string) (string, error) {
	suffix := "." + strings.TrimPrefix(ext, ".")

	level := []string{root}
	for len(level) > 0 {
		var next []string
		for _, dir := range level {
			entries, err := os.ReadDir(dir)
			if err != nil {
				// Unreadable subdirectory: skip rather than abort the search.
				if dir == root {
					return "", fmt.Errorf("read %s: %w", root, err)
				}
				continue
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
			for _, e := range entries {
				name := e.Name()
				path := filepath.Join(dir, name)
				if e.IsDir() {
					if strings.HasPrefix(name, ".") || name == "node_modules" {
						continue
					}
					next = append(next, path)
					continue
				}
				if strings.HasSuffix(name, suffix) {
					return path, nil
				}
			}
		}
		level = next
	}
	return "", fmt.Errorf("%w: no .%s file under %s", ErrNotFound, strings.TrimPrefix(ext, "."), root)
}

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/zklens/zklens/internal/artifact"
)

const (
	// NargoToml names the circuit project manifest.
	NargoToml = "Nargo.toml"
	// TargetDir is where every build artifact lands, relative to project root.
	TargetDir = "target"

	toolNargo   = "nargo"
	toolSunspot = "sunspot"
)

// RequiredTools are resolved during preflight before any stage runs.
var RequiredTools = []string{toolNargo, toolSunspot}

// output pairs an artifact filename (relative to the stage working directory)
// with its logical kind.
type output struct {
	file string
	kind artifact.Kind
}

// Stage describes one pipeline step: the tool to run, its arguments, where it
// runs, which artifact must already exist and which it must produce.
type Stage struct {
	Name     string
	Tool     string
	Args     []string
	InTarget bool     // run in target/ instead of project root
	Pre      []string // required input files, relative to the working directory
	post     []output
}

// Stages returns the six build stages for a circuit, in execution order.
func Stages(circuit string) []Stage {
	acir := circuit + ".json"
	wtns := circuit + ".gz"
	ccs := circuit + ".ccs"
	pk := circuit + ".pk"
	vk := circuit + ".vk"
	proof := circuit + ".proof"
	pw := circuit + ".pw"
	so := circuit + ".so"

	return []Stage{
		{
			Name: "Execute",
			Tool: toolNargo,
			Args: []string{"execute"},
			Pre:  []string{NargoToml},
			post: []output{
				{filepath.Join(TargetDir, acir), artifact.KindCircuit},
				{filepath.Join(TargetDir, wtns), artifact.KindWitness},
			},
		},
		{
			Name:     "Compile",
			Tool:     toolSunspot,
			Args:     []string{"compile", acir},
			InTarget: true,
			Pre:      []string{acir},
			post:     []output{{ccs, artifact.KindCircuit}},
		},
		{
			Name:     "Setup",
			Tool:     toolSunspot,
			Args:     []string{"setup", ccs},
			InTarget: true,
			Pre:      []string{ccs},
			post: []output{
				{pk, artifact.KindProvingKey},
				{vk, artifact.KindVerifyingKey},
			},
		},
		{
			Name:     "Prove",
			Tool:     toolSunspot,
			Args:     []string{"prove", acir, wtns, ccs, pk},
			InTarget: true,
			Pre:      []string{acir, wtns, ccs, pk},
			post: []output{
				{proof, artifact.KindProof},
				{pw, artifact.KindPublicWitness},
			},
		},
		{
			Name:     "Verify",
			Tool:     toolSunspot,
			Args:     []string{"verify", vk, proof, pw},
			InTarget: true,
			Pre:      []string{vk, proof, pw},
		},
		{
			Name:     "Deploy",
			Tool:     toolSunspot,
			Args:     []string{"deploy", vk},
			InTarget: true,
			Pre:      []string{vk},
			post:     []output{{so, artifact.KindChainProgram}},
		},
	}
}

type nargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// CircuitName reads the circuit package name from Nargo.toml at the project
// root.
func CircuitName(root string) (string, error) {
	path := filepath.Join(root, NargoToml)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s not found at %s: not a circuit project", NargoToml, path)
		}
		return "", fmt.Errorf("read %s: %w", NargoToml, err)
	}
	var m nargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	if m.Package.Name == "" {
		return "", fmt.Errorf("%s has no package name", path)
	}
	return m.Package.Name, nil
}

package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestFindShallowestWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "deep", "nested", "a.proof"))
	writeFile(t, filepath.Join(root, "top.proof"))

	got, err := Find(root, "proof")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "top.proof"), got)
}

func TestFindLexicographicTieBreak(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "z.pw"))
	writeFile(t, filepath.Join(root, "a", "z.pw"))

	got, err := Find(root, "pw")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "z.pw"), got)
}

func TestFindDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "target", "circuit.proof"))
	writeFile(t, filepath.Join(root, "other", "circuit.proof"))

	first, err := Find(root, "proof")
	require.NoError(t, err)
	second, err := Find(root, "proof")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindSkipsHiddenAndNodeModules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "x.proof"))
	writeFile(t, filepath.Join(root, "node_modules", "y.proof"))
	writeFile(t, filepath.Join(root, "target", "real.proof"))

	got, err := Find(root, "proof")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "target", "real.proof"), got)
}

func TestFindNotFound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "target", "a.ccs"))

	_, err := Find(root, "proof")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindAcceptsDottedExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.vk"))

	got, err := Find(root, ".vk")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a.vk"), got)
}

func TestStat(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "c.proof")
	require.NoError(t, os.WriteFile(path, []byte("abcd"), 0o644))

	a, err := Stat(path, KindProof)
	require.NoError(t, err)
	assert.Equal(t, KindProof, a.Kind)
	assert.Equal(t, int64(4), a.Size)
}

func TestInspectRejectsGarbageProof(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "target", "c.proof"))
	writeFile(t, filepath.Join(root, "target", "c.vk"))
	writeFile(t, filepath.Join(root, "target", "c.pw"))

	ins, err := Inspect(root)
	require.NoError(t, err)
	assert.False(t, ins.ProofOK)
	assert.NotEmpty(t, ins.ProofErr)
	assert.False(t, ins.VerifyingOK)
	assert.Equal(t, int64(1), ins.WitnessSize)
}

func TestInspectMissingArtifacts(t *testing.T) {
	_, err := Inspect(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

package toolchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeCapturesOutput(t *testing.T) {
	g := NewGateway()

	res, err := g.Invoke(context.Background(), "sh", []string{"-c", "echo out; echo err 1>&2"}, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", string(res.Stdout))
	assert.Equal(t, "err\n", string(res.Stderr))
	assert.GreaterOrEqual(t, res.Duration.Nanoseconds(), int64(0))
}

func TestInvokeNonZeroExit(t *testing.T) {
	g := NewGateway()

	res, err := g.Invoke(context.Background(), "sh", []string{"-c", "exit 3"}, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
}

func TestInvokeMissingTool(t *testing.T) {
	g := NewGateway()

	_, err := g.Invoke(context.Background(), "definitely-not-a-real-tool-xyz", nil, t.TempDir())
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	g := NewGateway()

	path, err := g.Resolve("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = g.Resolve("definitely-not-a-real-tool-xyz")
	assert.Error(t, err)
}

// Package toolchain is the boundary to external build tools. Everything the
// pipeline knows about a tool invocation goes through the Invoker interface so
// tests can substitute deterministic fakes instead of spawning real binaries.
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Result captures a finished tool invocation.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Invoker runs a named external tool with arguments in a working directory.
// A non-zero exit code is reported through Result, not through the error; the
// error is reserved for failures to run the tool at all.
type Invoker interface {
	Invoke(ctx context.Context, tool string, args []string, dir string) (*Result, error)
}

// Resolver reports whether a named tool is reachable in the environment.
type Resolver interface {
	Resolve(tool string) (string, error)
}

// Gateway is the production Invoker and Resolver backed by os/exec.
type Gateway struct{}

func NewGateway() *Gateway { return &Gateway{} }

// Invoke runs the tool and captures stdout, stderr, exit code and duration.
// There is no retry and no shell interpretation.
func (g *Gateway) Invoke(ctx context.Context, tool string, args []string, dir string) (*Result, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	exitCode := 0
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("run %s: %w", tool, err)
		}
		exitCode = exitErr.ExitCode()
	}

	return &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode,
		Duration: elapsed,
	}, nil
}

// Resolve locates the tool on PATH.
func (g *Gateway) Resolve(tool string) (string, error) {
	return exec.LookPath(tool)
}

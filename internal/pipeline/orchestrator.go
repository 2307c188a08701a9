// Package pipeline sequences the six-stage circuit build: Execute, Compile,
// Setup, Prove, Verify, Deploy. Stages are strictly sequential and ordering is
// enforced through filesystem state: a stage runs only after its input
// artifact is confirmed on disk, and its own output is confirmed before the
// next stage starts. The first failure aborts the run; artifacts already
// produced stay on disk untouched. Re-running rebuilds everything.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/zklens/zklens/internal/artifact"
	"github.com/zklens/zklens/internal/toolchain"
)

// RunState is the orchestrator's state machine position.
type RunState string

const (
	Idle      RunState = "idle"
	Running   RunState = "running"
	Completed RunState = "completed"
	Aborted   RunState = "aborted"
)

// StageStatus is the outcome of one attempted stage.
type StageStatus string

const (
	StageSucceeded StageStatus = "succeeded"
	StageFailed    StageStatus = "failed"
)

// StageResult records one attempted stage. A run holds one result per stage
// attempted, in order; it terminates at the first failure.
type StageResult struct {
	Name      string
	Status    StageStatus
	Duration  time.Duration
	Artifacts []artifact.Artifact
}

// Run is the in-memory record of one pipeline invocation. Only the artifacts
// it produced persist beyond the process.
type Run struct {
	Circuit string
	State   RunState
	Stages  []StageResult
}

// Orchestrator drives the build stages through a toolchain gateway.
type Orchestrator struct {
	invoker  toolchain.Invoker
	resolver toolchain.Resolver
	log      zerolog.Logger
}

func NewOrchestrator(inv toolchain.Invoker, res toolchain.Resolver, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{invoker: inv, resolver: res, log: log}
}

// Preflight confirms every required external tool is resolvable. It runs
// before any stage; a miss is fatal and no artifact is touched.
func (o *Orchestrator) Preflight() error {
	var missing []string
	for _, tool := range RequiredTools {
		if _, err := o.resolver.Resolve(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: required tools not found: %s", ErrPreflight, strings.Join(missing, ", "))
	}
	return nil
}

// Execute runs the full pipeline for the project at root. The returned Run is
// valid even on error and records every stage attempted.
func (o *Orchestrator) Execute(ctx context.Context, root string) (*Run, error) {
	circuit, err := CircuitName(root)
	if err != nil {
		return &Run{State: Idle}, err
	}
	run := &Run{Circuit: circuit, State: Idle}

	if err := o.Preflight(); err != nil {
		return run, err
	}

	run.State = Running
	targetDir := filepath.Join(root, TargetDir)

	for i, stage := range Stages(circuit) {
		workDir := root
		if stage.InTarget {
			workDir = targetDir
		}

		o.log.Info().Str("stage", stage.Name).Int("step", i+1).Msg("running stage")

		result, err := o.runStage(ctx, stage, workDir)
		run.Stages = append(run.Stages, result)
		if err != nil {
			run.State = Aborted
			return run, err
		}

		o.log.Info().
			Str("stage", stage.Name).
			Dur("took", result.Duration).
			Int("artifacts", len(result.Artifacts)).
			Msg("stage complete")
	}

	run.State = Completed
	return run, nil
}

func (o *Orchestrator) runStage(ctx context.Context, stage Stage, workDir string) (StageResult, error) {
	failed := StageResult{Name: stage.Name, Status: StageFailed}

	// Precondition: the prior stage's output must exist and be non-empty.
	// Its absence is distinct from the tool running and failing.
	for _, pre := range stage.Pre {
		path := filepath.Join(workDir, pre)
		info, err := os.Stat(path)
		if err != nil {
			return failed, stageErrorf(stage.Name, ReasonPrecondition, "required artifact missing: %s", path)
		}
		if info.Size() == 0 {
			return failed, stageErrorf(stage.Name, ReasonPrecondition, "required artifact is empty: %s", path)
		}
	}

	res, err := o.invoker.Invoke(ctx, stage.Tool, stage.Args, workDir)
	if err != nil {
		return failed, stageErrorf(stage.Name, ReasonToolFailed, "%s: %v", stage.Tool, err)
	}
	if res.ExitCode != 0 {
		msg := fmt.Sprintf("%s %s exited %d", stage.Tool, strings.Join(stage.Args, " "), res.ExitCode)
		if errText := strings.TrimSpace(string(res.Stderr)); errText != "" {
			msg += ": " + firstLines(errText, 10)
		}
		failed.Duration = res.Duration
		return failed, stageErrorf(stage.Name, ReasonToolFailed, "%s", msg)
	}

	// Postcondition: a zero exit with no usable output is still a failure.
	var produced []artifact.Artifact
	for _, out := range stage.post {
		path := filepath.Join(workDir, out.file)
		a, err := artifact.Stat(path, out.kind)
		if err != nil {
			failed.Duration = res.Duration
			return failed, stageErrorf(stage.Name, ReasonPostcondition, "expected %s at %s after zero exit", out.kind, path)
		}
		if a.Size == 0 {
			failed.Duration = res.Duration
			return failed, stageErrorf(stage.Name, ReasonPostcondition, "%s at %s is empty", out.kind, path)
		}
		produced = append(produced, a)
	}

	return StageResult{
		Name:      stage.Name,
		Status:    StageSucceeded,
		Duration:  res.Duration,
		Artifacts: produced,
	}, nil
}

func firstLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrPreflight marks a run that never started because a required external
	// tool could not be resolved.
	ErrPreflight = errors.New("preflight failed")

	// ErrStageFailed marks a run aborted by a stage failure.
	ErrStageFailed = errors.New("stage failed")
)

// FailureReason distinguishes how a stage failed.
type FailureReason string

const (
	// ReasonPrecondition: the artifact a stage depends on is missing or empty.
	ReasonPrecondition FailureReason = "precondition"
	// ReasonToolFailed: the external tool could not run or exited non-zero.
	ReasonToolFailed FailureReason = "tool"
	// ReasonPostcondition: the tool exited zero but the expected artifact is
	// missing or empty.
	ReasonPostcondition FailureReason = "postcondition"
)

// StageError carries the failing stage and enough context to act on it.
type StageError struct {
	Stage  string
	Reason FailureReason
	Msg    string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %s failure: %s", e.Stage, e.Reason, e.Msg)
}

func (e *StageError) Unwrap() error { return ErrStageFailed }

func stageErrorf(stage string, reason FailureReason, format string, args ...any) error {
	return &StageError{Stage: stage, Reason: reason, Msg: fmt.Sprintf(format, args...)}
}

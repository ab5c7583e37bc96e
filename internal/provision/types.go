// Package provision runs provisioning steps in order and collects their outcomes.
package provision

import (
	"context"
	"time"
)

// Step is one named provisioning component.
type Step struct {
	Name string                          // shown in logs, the summary and the report
	Run  func(ctx context.Context) error // nil error means the step succeeded
}

// Policy decides what happens after a step fails.
type Policy int

const (
	// ContinueOnError runs every remaining step regardless of failures.
	ContinueOnError Policy = iota
	// AbortOnError skips all steps after the first failure.
	AbortOnError
)

// String returns the policy name used in logs and reports.
func (p Policy) String() string {
	if p == AbortOnError {
		return "abort-on-error"
	}
	return "continue-on-error"
}

// StepResult records the outcome of one step.
type StepResult struct {
	Name       string
	Success    bool
	Skipped    bool   // never started because the run was aborted
	SkipReason string // "run aborted" or the context error
	Duration   time.Duration
	Err        error
}

// Summary collects the results of a run in execution order.
type Summary struct {
	Policy     Policy
	Results    []*StepResult
	Completed  int
	Failed     int
	Skipped    int
	Aborted    bool          // set once the policy, a fatal error or cancellation stops the run
	FailedStep *StepResult   // first failure, if any
	TotalTime  time.Duration // wall time of the whole run
}

// Add appends a step result and updates the counters.
func (s *Summary) Add(r *StepResult) {
	s.Results = append(s.Results, r)
	switch {
	case r.Skipped:
		s.Skipped++
	case r.Success:
		s.Completed++
	default:
		s.Failed++
		if s.FailedStep == nil {
			s.FailedStep = r
		}
	}
}

// Success reports whether every step ran and none failed.
func (s *Summary) Success() bool {
	return s.Failed == 0 && s.Skipped == 0
}

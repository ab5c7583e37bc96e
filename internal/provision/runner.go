package provision

import (
	"context"
	"errors"
	"time"

	"desktop-setup/internal/installer"
	"desktop-setup/internal/logger"
)

// Runner executes steps sequentially.
type Runner struct {
	Policy Policy

	// OnStepComplete, when set, is called with each result as soon as the
	// step has finished. Skipped steps are not reported.
	OnStepComplete func(result *StepResult)
}

// isFatal treats missing configuration or arguments as fatal under every
// policy.
func isFatal(err error) bool {
	return errors.Is(err, installer.ErrMissingConfig) || errors.Is(err, installer.ErrMissingArgument)
}

// Execute runs steps in order and returns the collected summary. Once the
// run is aborted (policy, fatal error or context cancellation) remaining
// steps are recorded as skipped.
func (r *Runner) Execute(ctx context.Context, steps []Step) *Summary {
	summary := &Summary{Policy: r.Policy}
	start := time.Now()

	for i, step := range steps {
		// Once aborted, every remaining step is only recorded
		if summary.Aborted {
			summary.Add(&StepResult{Name: step.Name, Skipped: true, SkipReason: "run aborted"})
			continue
		}
		// Interrupted between steps
		if err := ctx.Err(); err != nil {
			summary.Aborted = true
			summary.Add(&StepResult{Name: step.Name, Skipped: true, SkipReason: err.Error()})
			continue
		}

		logger.Info("[INFO] Step %d/%d: %s\n", i+1, len(steps), step.Name)

		stepStart := time.Now()
		err := step.Run(ctx)
		result := &StepResult{
			Name:     step.Name,
			Success:  err == nil,
			Duration: time.Since(stepStart),
			Err:      err,
		}
		summary.Add(result)

		if r.OnStepComplete != nil {
			r.OnStepComplete(result)
		}

		// Decide whether the rest of the run still makes sense
		if err != nil {
			logger.Error("[ERROR] Step %s failed: %v\n", step.Name, err)
			if r.Policy == AbortOnError || isFatal(err) {
				summary.Aborted = true
			}
		}
	}

	summary.TotalTime = time.Since(start)
	return summary
}

// LogSummary prints one line per step and a closing total.
func LogSummary(s *Summary) {
	for _, r := range s.Results {
		switch {
		case r.Skipped:
			logger.Warn("[WARN]  skipped  %-22s %s\n", r.Name, r.SkipReason)
		case r.Success:
			logger.Info("[INFO]  ok       %-22s %s\n", r.Name, r.Duration.Round(time.Millisecond))
		default:
			logger.Error("[ERROR] failed   %-22s %v\n", r.Name, r.Err)
		}
	}

	if s.Success() {
		logger.Info("[INFO] All %d steps completed in %s\n", s.Completed, s.TotalTime.Round(time.Second))
		return
	}
	logger.Error("[ERROR] %d completed, %d failed, %d skipped (%s)\n", s.Completed, s.Failed, s.Skipped, s.Policy)
}

package report

import (
	"encoding/json" // For JSON encoding and decoding of the report file
	"fmt"
	"os" // For writing and reading the report file
	"time"

	"desktop-setup/internal/logger"
	"desktop-setup/internal/provision"
)

// StepEntry is the persisted outcome of one step.
type StepEntry struct {
	Name       string `json:"name"`
	Status     string `json:"status"` // "ok", "failed" or "skipped"
	Error      string `json:"error,omitempty"`
	SkipReason string `json:"skip_reason,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Report is the machine-readable record of a run, written with --report.
type Report struct {
	FinishedAt time.Time   `json:"finished_at"`
	Policy     string      `json:"policy"`
	Success    bool        `json:"success"`
	Aborted    bool        `json:"aborted"`
	InProgress bool        `json:"in_progress,omitempty"` // set on checkpoints written mid-run
	Completed  int         `json:"completed"`
	Failed     int         `json:"failed"`
	Skipped    int         `json:"skipped"`
	Steps      []StepEntry `json:"steps"`
}

// FromSummary converts a run summary into a Report.
func FromSummary(s *provision.Summary, finishedAt time.Time) *Report {
	r := &Report{
		FinishedAt: finishedAt.UTC(),
		Policy:     s.Policy.String(),
		Success:    s.Success(),
		Aborted:    s.Aborted,
		Completed:  s.Completed,
		Failed:     s.Failed,
		Skipped:    s.Skipped,
		Steps:      make([]StepEntry, 0, len(s.Results)),
	}
	for _, res := range s.Results {
		entry := StepEntry{
			Name:       res.Name,
			SkipReason: res.SkipReason,
			DurationMS: res.Duration.Milliseconds(),
		}
		switch {
		case res.Skipped:
			entry.Status = "skipped"
		case res.Success:
			entry.Status = "ok"
		default:
			entry.Status = "failed"
			if res.Err != nil {
				entry.Error = res.Err.Error()
			}
		}
		r.Steps = append(r.Steps, entry)
	}
	return r
}

// Save writes the report to path as indented JSON.
func Save(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal report: %v\n", err)
		return fmt.Errorf("marshal report: %w", err)
	}

	logger.Debug("[DEBUG] Writing report to %s:\n%s\n", path, string(data))

	// Mode 0644: read/write owner, read others
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		logger.Error("[ERROR] Failed to write report file %s: %v\n", path, err)
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// Load reads a report written by Save.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &r, nil
}

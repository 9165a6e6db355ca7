package model

import "time"

// ReleaseReport summarizes a release run for notifications
type ReleaseReport struct {
	RunID    string
	Package  string
	Tag      string
	Version  string
	Checksum string
	State    BuildState
	Duration time.Duration
	Err      error
}

// Succeeded reports whether the port was validated
func (r *ReleaseReport) Succeeded() bool {
	return r.State == BuildStateValidated && r.Err == nil
}

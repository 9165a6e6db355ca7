package model

// BuildState is the position of a release run in the two-pass build
type BuildState int

const (
	BuildStateInit BuildState = iota
	BuildStateFirstBuildRun
	BuildStateChecksumKnown
	BuildStateSecondBuildRun
	BuildStateValidated
	BuildStateFailed
)

func (s BuildState) String() string {
	switch s {
	case BuildStateInit:
		return "init"
	case BuildStateFirstBuildRun:
		return "first_build_run"
	case BuildStateChecksumKnown:
		return "checksum_known"
	case BuildStateSecondBuildRun:
		return "second_build_run"
	case BuildStateValidated:
		return "validated"
	case BuildStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transition is possible
func (s BuildState) IsTerminal() bool {
	return s == BuildStateValidated || s == BuildStateFailed
}

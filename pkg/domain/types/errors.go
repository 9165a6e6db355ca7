package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify terminal failures of a release run. Every failure is
// fatal; the tags only decide how the failure is reported.
var (
	// ErrTagConfiguration marks missing or invalid startup configuration, e.g. absent credentials
	ErrTagConfiguration = goerr.NewTag("configuration")

	// ErrTagChecksumExtraction marks a first build whose output carried no "Actual hash:" line
	ErrTagChecksumExtraction = goerr.NewTag("checksum_extraction")

	// ErrTagPrecondition marks an attempt to run the validating build without a verified checksum
	ErrTagPrecondition = goerr.NewTag("precondition")

	// ErrTagBuild marks a non-zero exit of the registry build tool
	ErrTagBuild = goerr.NewTag("build")

	// ErrTagPublication marks a push that was still rejected after merging upstream changes
	ErrTagPublication = goerr.NewTag("publication")

	// ErrTagCommand marks a subprocess that could not be started or exited non-zero
	ErrTagCommand = goerr.NewTag("command")

	// ErrTagCheckout marks a clone that could not be produced or does not point at the intended repository
	ErrTagCheckout = goerr.NewTag("checkout")
)

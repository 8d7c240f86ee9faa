package pipeline

import "github.com/rotisserie/eris"

// Sentinel errors for the resolution failure modes. The HTTP layer and
// the CLI report these distinctly: disambiguation is the caller's
// problem, misconfiguration is the operator's.
var (
	// ErrNeedsDisambiguation means biz_search could not confidently
	// derive a single canonical listing URL.
	ErrNeedsDisambiguation = eris.New("pipeline: search did not resolve to a single listing")

	// ErrMisconfigured means a required external credential is absent.
	ErrMisconfigured = eris.New("pipeline: required external service is not configured")
)

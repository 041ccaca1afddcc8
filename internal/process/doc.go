// Package process cleans up the headless browser started for PDF export.
package process

import "errors"

// ErrInvalidPID is returned for PIDs that cannot name a process group.
// Signalling -0 would hit the caller's own group.
var ErrInvalidPID = errors.New("invalid pid")

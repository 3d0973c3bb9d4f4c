package orgchart

import "errors"

// Registry errors
var (
	ErrNotFound    = errors.New("employee not found")
	ErrDuplicateID = errors.New("employee id already taken")
	ErrCycle       = errors.New("move would create a reporting cycle")
	ErrCorrupt     = errors.New("registry invariant violated")
)

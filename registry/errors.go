package registry

import "errors"

// ErrUnknownGroup is returned when a group id falls outside the registry's
// range — the caller supplied an invalid handle.
var ErrUnknownGroup = errors.New("registry: unknown group")

// ErrCycleInParents is returned when walking a group's parent chain
// revisits a group already on the walk: the configuration is ill-formed.
var ErrCycleInParents = errors.New("registry: cycle in parent chain")

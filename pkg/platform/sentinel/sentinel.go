package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and publishers return
// these (optionally wrapped) so services can decide whether to fail open.
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrUnavailable = errors.New("unavailable")
)

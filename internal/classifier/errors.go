package classifier

import "errors"

// Sentinel errors for classification operations.
var (
	ErrInvalidKind = errors.New("unknown input kind")
	ErrAuditWrite  = errors.New("classification audit write failed")
)

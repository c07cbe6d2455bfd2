package pipeline

import "errors"

var (
	ErrClassifyFailed  = errors.New("classification stage failed")
	ErrExtractFailed   = errors.New("extraction stage failed")
	ErrDetermineFailed = errors.New("action determination stage failed")
	ErrExecuteFailed   = errors.New("action execution stage failed")
	ErrUnknownKind     = errors.New("unknown input kind")
)

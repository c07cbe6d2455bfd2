package actions

import "errors"

var ErrAuditWrite = errors.New("action audit write failed")

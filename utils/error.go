package utils

import "errors"

// Error taxonomy. Settings reads and confidence checks fail open (callers
// swallow these and use defaults); dispute and receipt writes fail closed
// (callers propagate).
var (
	ErrorRecordNotFound = errors.New("record not found")
	ErrorInvalidInput   = errors.New("invalid input")
	ErrorUnavailable    = errors.New("service unavailable")
)

package core

import "errors"

// Error taxonomy shared by services and storage. Callers classify failures
// with errors.Is; the HTTP layer alone turns them into user-facing messages.
var (
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("already exists")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("invalid credentials")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
)

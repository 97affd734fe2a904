package domain

import "errors"

var (
	ErrEventNotFound = errors.New("event not found or unauthorized")
	ErrTitleRequired = errors.New("event title is required")
	ErrNoDates       = errors.New("task has no start or due date")
	ErrExportOff     = errors.New("calendar export is not configured")
)

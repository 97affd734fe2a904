package domain

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("task title is required")
	ErrStatusRequired  = errors.New("status is required")
	ErrProjectRequired = errors.New("project is required")
)

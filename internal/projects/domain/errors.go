package domain

import "errors"

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrNameRequired        = errors.New("project name is required")
	ErrDatesRequired       = errors.New("start date and deadline are required")
	ErrDeadlineBeforeStart = errors.New("deadline is before start date")
	ErrUnknownClient       = errors.New("unknown client")
	ErrUnknownDeveloper    = errors.New("unknown developer")
)

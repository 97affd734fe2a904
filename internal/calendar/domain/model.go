package domain

import (
	"strings"
	"time"
)

// UserEvent is an entry on one user's personal calendar. Task-based events
// are copies of a task's dates taken when the user pinned it.
type UserEvent struct {
	ID          int64
	UserID      int64
	TaskID      *int64
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	IsTaskBased bool
	CreatedAt   time.Time
}

// Validate normalises a new event.
func (e *UserEvent) Validate() error {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	if e.Title == "" {
		return ErrTitleRequired
	}
	return nil
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.StartDate == nil && p.EndDate == nil
}

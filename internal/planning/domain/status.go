package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the lifecycle state of a task. The numeric values match the
// status ids stored in the tasks and projects tables.
type Status int

const (
	StatusPending    Status = 1
	StatusInProgress Status = 2
	StatusCompleted  Status = 3
	StatusCancelled  Status = 4
)

// AllStatuses lists the statuses in board column order.
var AllStatuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	return s >= StatusPending && s <= StatusCancelled
}

// Weight is the completion value used when averaging progress.
func (s Status) Weight() float64 {
	switch s {
	case StatusCompleted:
		return 1.0
	case StatusInProgress:
		return 0.5
	default:
		return 0.0
	}
}

// HalfUnits is Weight expressed in halves (0, 1 or 2) so averages can be
// computed exactly in integers.
func (s Status) HalfUnits() int {
	switch s {
	case StatusCompleted:
		return 2
	case StatusInProgress:
		return 1
	default:
		return 0
	}
}

// Percent is the per-task completion shown on the timeline: 0, 50 or 100.
func (s Status) Percent() int {
	return s.HalfUnits() * 50
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Label is the human readable status description.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "No Status"
	}
}

// ParseStatus accepts a status name ("in_progress", "In Progress") or its numeric id ("2").
func ParseStatus(v string) (Status, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		s := Status(n)
		if !s.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidStatus, n)
		}
		return s, nil
	}

	key := strings.ToLower(strings.NewReplacer(" ", "_", "-", "_").Replace(v))
	for _, s := range AllStatuses {
		if s.String() == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, v)
}

package domain

import (
	"strings"
	"time"

	plan "github.com/planny/planny-backend/internal/planning/domain"
)

// Task is one kanban card.
type Task struct {
	ID            int64
	ProjectID     int64
	ProjectName   string
	Title         string
	Description   string
	Status        plan.Status
	AssignedTo    *int64
	AssigneeFirst string
	AssigneeLast  string
	AssigneeEmail string
	StartDate     *time.Time
	DueDate       *time.Time
	Sprint        int
}

// AssignedToName is "First Last" when both names are known.
func (t Task) AssignedToName() string {
	if t.AssigneeFirst == "" || t.AssigneeLast == "" {
		return ""
	}
	return t.AssigneeFirst + " " + t.AssigneeLast
}

// Validate checks the fields required to store a task.
func (t *Task) Validate() error {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	switch {
	case t.Title == "":
		return ErrTitleRequired
	case t.Status == 0:
		return ErrStatusRequired
	case !t.Status.Valid():
		return plan.ErrInvalidStatus
	case t.ProjectID == 0:
		return ErrProjectRequired
	}
	return nil
}

// StatusChange describes the outcome of moving a card. ProjectStatus is zero
// when the owning project was left untouched.
type StatusChange struct {
	TaskID        int64       `json:"taskID"`
	ProjectID     int64       `json:"projectID"`
	Status        plan.Status `json:"statusID"`
	ProjectStatus plan.Status `json:"projectStatusID,omitempty"`
	At            time.Time   `json:"at"`
}

package domain

import (
	"strings"
	"time"

	plan "github.com/planny/planny-backend/internal/planning/domain"
)

const (
	// FeatureTaskDescription marks tasks generated from the requirements text.
	FeatureTaskDescription = "Auto-generated from Project Requirements"
	// RoleDeveloper is the role recorded for every assignment.
	RoleDeveloper = "Developer"
)

// TypeTaskDescription is stored on tasks generated from the project type.
func TypeTaskDescription(projectType string) string {
	return "Auto-generated task for " + projectType + " project"
}

// Project is a client engagement with a date range and a generated plan.
type Project struct {
	ID           int64       `json:"projectID"`
	Name         string      `json:"projectName"`
	Type         string      `json:"projectType"`
	StartDate    time.Time   `json:"-"`
	Deadline     time.Time   `json:"-"`
	ClientID     *int64      `json:"clientID"`
	ClientName   string      `json:"clientName"`
	Status       plan.Status `json:"statusID"`
	Progress     int         `json:"projectProgress"`
	SprintCount  int         `json:"sprintCount"`
	CreatedBy    *int64      `json:"createdBy,omitempty"`
	DeveloperIDs []int64     `json:"developerIDs"`
}

// Range is the scheduling window of the project.
func (p Project) Range() plan.DateRange {
	return plan.NewDateRange(p.StartDate, p.Deadline)
}

// Input carries the editable fields of a project.
type Input struct {
	Name         string
	Type         string
	StartDate    time.Time
	Deadline     time.Time
	ClientID     *int64
	DeveloperIDs []int64
	Features     []string
	SprintCount  int
	CreatedBy    *int64
}

// Validate normalises and checks the input.
func (in *Input) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	switch {
	case in.Name == "":
		return ErrNameRequired
	case in.StartDate.IsZero() || in.Deadline.IsZero():
		return ErrDatesRequired
	case plan.Day(in.Deadline).Before(plan.Day(in.StartDate)):
		return ErrDeadlineBeforeStart
	}
	// Non-positive counts mean "choose automatically".
	if in.SprintCount < 0 {
		in.SprintCount = 0
	}
	return nil
}

// ParseFeatures splits newline separated requirements, dropping blanks.
func ParseFeatures(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Option is the id/name pair used by project pickers.
type Option struct {
	ProjectID   int64  `json:"projectID"`
	ProjectName string `json:"projectName"`
}

// TimelineTask is a dated task as shown on the Gantt chart.
type TimelineTask struct {
	ID     int64
	Title  string
	Start  time.Time
	End    time.Time
	Status plan.Status
}

// Package calendar turns dated work items into calendar event records.
package calendar

import (
	"encoding/json"
	"time"

	"github.com/planny/planny-backend/internal/planning/domain"
)

const (
	// ResponseNeedsAction is the attendee state for a freshly invited user.
	ResponseNeedsAction = "needsAction"

	// UnknownProject labels items that belong to no project.
	UnknownProject = "Unknown Project"
)

// Source carries everything needed to shape one event.
type Source struct {
	TaskID        int64
	Title         string
	Description   string
	ProjectName   string
	Start         *time.Time
	End           *time.Time
	AssigneeEmail string
}

type Attendee struct {
	Email          string `json:"email"`
	ResponseStatus string `json:"responseStatus"`
}

// Event is an all-day calendar event. End is inclusive; ExclusiveEnd is the
// day after End and is only set when the source item had an end date.
type Event struct {
	TaskID       int64
	Summary      string
	Description  string
	Start        time.Time
	End          time.Time
	ExclusiveEnd *time.Time
	Attendees    []Attendee
}

// Shape builds the event for src, or returns nil when src has no dates.
func Shape(src Source) *Event {
	if src.Start == nil && src.End == nil {
		return nil
	}

	start, end := src.Start, src.End
	if start == nil {
		start = end
	}
	if end == nil {
		end = start
	}

	project := src.ProjectName
	if project == "" {
		project = UnknownProject
	}

	ev := &Event{
		TaskID:      src.TaskID,
		Summary:     src.Title,
		Description: src.Description + "\nProject: " + project,
		Start:       domain.Day(*start),
		End:         domain.Day(*end),
	}
	if src.End != nil {
		x := domain.AddDays(*src.End, 1)
		ev.ExclusiveEnd = &x
	}
	if src.AssigneeEmail != "" {
		ev.Attendees = []Attendee{{Email: src.AssigneeEmail, ResponseStatus: ResponseNeedsAction}}
	}
	return ev
}

type dateField struct {
	Date string `json:"date"`
}

type eventJSON struct {
	TaskID      int64      `json:"taskID"`
	Summary     string     `json:"summary"`
	Description string     `json:"description"`
	Start       dateField  `json:"start"`
	End         *dateField `json:"end,omitempty"`
	Attendees   []Attendee `json:"attendees,omitempty"`
}

// MarshalJSON renders the payload shape calendar clients consume.
func (e Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{
		TaskID:      e.TaskID,
		Summary:     e.Summary,
		Description: e.Description,
		Start:       dateField{Date: domain.FormatDate(e.Start)},
		Attendees:   e.Attendees,
	}
	if e.ExclusiveEnd != nil {
		out.End = &dateField{Date: domain.FormatDate(*e.ExclusiveEnd)}
	}
	return json.Marshal(out)
}

package http

import (
	"time"

	"github.com/planny/planny-backend/internal/calendar/domain"
	plan "github.com/planny/planny-backend/internal/planning/domain"
)

type taskEventRequest struct {
	TaskID          int64 `json:"taskID"`
	AddToMyCalendar bool  `json:"addToMyCalendar"`
}

type userEventRequest struct {
	EventTitle       string `json:"eventTitle"`
	EventDescription string `json:"eventDescription"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	TaskID           *int64 `json:"taskID"`
}

func (r userEventRequest) toEvent(userID int64) (*domain.UserEvent, error) {
	start, err := plan.ParseOptionalDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := plan.ParseOptionalDate(r.EndDate)
	if err != nil {
		return nil, err
	}
	return &domain.UserEvent{
		UserID:      userID,
		TaskID:      r.TaskID,
		Title:       r.EventTitle,
		Description: r.EventDescription,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

// patchRequest distinguishes absent fields (nil) from empty ones. Empty
// dates are treated as absent.
type patchRequest struct {
	EventTitle       *string `json:"eventTitle"`
	EventDescription *string `json:"eventDescription"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
}

func (r patchRequest) toPatch() (domain.Patch, error) {
	start, err := plan.ParseOptionalDate(r.StartDate)
	if err != nil {
		return domain.Patch{}, err
	}
	end, err := plan.ParseOptionalDate(r.EndDate)
	if err != nil {
		return domain.Patch{}, err
	}
	return domain.Patch{
		Title:       r.EventTitle,
		Description: r.EventDescription,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

type dateField struct {
	Date *string `json:"date"`
}

type userEventResponse struct {
	EventID     int64     `json:"eventID"`
	TaskID      *int64    `json:"taskID"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       dateField `json:"start"`
	End         dateField `json:"end"`
	IsTaskBased bool      `json:"isTaskBased"`
	CreatedAt   string    `json:"createdAt"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := plan.FormatDate(*t)
	return &s
}

func toResponse(e domain.UserEvent) userEventResponse {
	return userEventResponse{
		EventID:     e.ID,
		TaskID:      e.TaskID,
		Summary:     e.Title,
		Description: e.Description,
		Start:       dateField{Date: formatDate(e.StartDate)},
		End:         dateField{Date: formatDate(e.EndDate)},
		IsTaskBased: e.IsTaskBased,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

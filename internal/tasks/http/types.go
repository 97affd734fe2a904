package http

import (
	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/tasks/domain"
)

type taskRequest struct {
	TaskTitle       string `json:"taskTitle"`
	TaskDescription string `json:"taskDescription"`
	StatusID        int    `json:"statusID"`
	StartDate       string `json:"startDate"`
	DueDate         string `json:"dueDate"`
	AssignedTo      *int64 `json:"assignedTo"`
	ProjectID       int64  `json:"projectID"`
}

func (r taskRequest) toTask() (*domain.Task, error) {
	start, err := plan.ParseOptionalDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	due, err := plan.ParseOptionalDate(r.DueDate)
	if err != nil {
		return nil, err
	}
	return &domain.Task{
		ProjectID:   r.ProjectID,
		Title:       r.TaskTitle,
		Description: r.TaskDescription,
		Status:      plan.Status(r.StatusID),
		AssignedTo:  r.AssignedTo,
		StartDate:   start,
		DueDate:     due,
	}, nil
}

type statusRequest struct {
	StatusID int `json:"statusID"`
}

type taskResponse struct {
	TaskID          int64   `json:"taskID"`
	TaskTitle       string  `json:"taskTitle"`
	TaskDescription string  `json:"taskDescription"`
	StatusID        int     `json:"statusID"`
	Status          string  `json:"status"`
	StartDate       *string `json:"startDate"`
	DueDate         *string `json:"dueDate"`
	ProjectID       int64   `json:"projectID"`
	ProjectName     string  `json:"projectName"`
	AssignedTo      *int64  `json:"assignedTo"`
	AssignedToName  *string `json:"assignedToName"`
}

func toResponse(t domain.Task) taskResponse {
	resp := taskResponse{
		TaskID:          t.ID,
		TaskTitle:       t.Title,
		TaskDescription: t.Description,
		StatusID:        int(t.Status),
		Status:          t.Status.Label(),
		ProjectID:       t.ProjectID,
		ProjectName:     t.ProjectName,
		AssignedTo:      t.AssignedTo,
	}
	if t.StartDate != nil {
		s := plan.FormatDate(*t.StartDate)
		resp.StartDate = &s
	}
	if t.DueDate != nil {
		s := plan.FormatDate(*t.DueDate)
		resp.DueDate = &s
	}
	if name := t.AssignedToName(); name != "" {
		resp.AssignedToName = &name
	}
	return resp
}

package http

import (
	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/planning/progress"
	"github.com/planny/planny-backend/internal/projects/domain"
	"github.com/planny/planny-backend/internal/projects/service"
)

type projectRequest struct {
	ProjectName  string  `json:"projectName"`
	ProjectType  string  `json:"projectType"`
	StartDate    string  `json:"startDate"`
	Deadline     string  `json:"deadline"`
	ClientID     *int64  `json:"clientID"`
	DeveloperIDs []int64 `json:"developerIDs"`
	MainFeatures string  `json:"mainFeatures"`
	SprintCount  int     `json:"sprintCount"`
}

func (r projectRequest) toInput() (domain.Input, error) {
	start, err := plan.ParseDate(r.StartDate)
	if err != nil {
		return domain.Input{}, err
	}
	deadline, err := plan.ParseDate(r.Deadline)
	if err != nil {
		return domain.Input{}, err
	}
	return domain.Input{
		Name:         r.ProjectName,
		Type:         r.ProjectType,
		StartDate:    start,
		Deadline:     deadline,
		ClientID:     r.ClientID,
		DeveloperIDs: r.DeveloperIDs,
		Features:     domain.ParseFeatures(r.MainFeatures),
		SprintCount:  r.SprintCount,
	}, nil
}

type projectResponse struct {
	ProjectID       int64             `json:"projectID"`
	ProjectName     string            `json:"projectName"`
	ProjectType     string            `json:"projectType"`
	StartDate       string            `json:"startDate"`
	Deadline        string            `json:"deadline"`
	ClientID        *int64            `json:"clientID"`
	ClientName      string            `json:"clientName"`
	StatusID        int               `json:"statusID"`
	Status          string            `json:"status"`
	ProjectProgress int               `json:"projectProgress"`
	SprintCount     int               `json:"sprintCount"`
	DeveloperIDs    []int64           `json:"developerIDs,omitempty"`
	Tasks           *progress.Summary `json:"tasks,omitempty"`
}

func toResponse(p domain.Project) projectResponse {
	return projectResponse{
		ProjectID:       p.ID,
		ProjectName:     p.Name,
		ProjectType:     p.Type,
		StartDate:       plan.FormatDate(p.StartDate),
		Deadline:        plan.FormatDate(p.Deadline),
		ClientID:        p.ClientID,
		ClientName:      p.ClientName,
		StatusID:        int(p.Status),
		Status:          p.Status.Label(),
		ProjectProgress: p.Progress,
		SprintCount:     p.SprintCount,
		DeveloperIDs:    p.DeveloperIDs,
	}
}

func toItemResponse(it service.ListItem) projectResponse {
	resp := toResponse(it.Project)
	sum := it.Tasks
	resp.Tasks = &sum
	return resp
}

type workItemResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	DueDate     string `json:"dueDate"`
	Sprint      int    `json:"sprint"`
}

func toWorkItems(items []plan.WorkItem) []workItemResponse {
	out := make([]workItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, workItemResponse{
			Title:       it.Title,
			Description: it.Description,
			StartDate:   plan.FormatDate(it.Start),
			DueDate:     plan.FormatDate(it.End),
			Sprint:      it.Sprint,
		})
	}
	return out
}

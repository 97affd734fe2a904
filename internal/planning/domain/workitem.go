package domain

import "time"

// WorkItem is a scheduled task produced by the timeline distributor.
type WorkItem struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      Status    `json:"status"`
	Sprint      int       `json:"sprint"`
}

// NewWorkItem builds a pending item over [start, end].
func NewWorkItem(title, description string, start, end time.Time, sprint int) WorkItem {
	return WorkItem{
		Title:       title,
		Description: description,
		Start:       Day(start),
		End:         Day(end),
		Status:      StatusPending,
		Sprint:      sprint,
	}
}

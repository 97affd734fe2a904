// Package progress computes weighted completion percentages from task statuses.
package progress

import "github.com/planny/planny-backend/internal/planning/domain"

// Progress returns floor(sum(weight)/count*100), or 0 for no statuses.
func Progress(statuses []domain.Status) int {
	if len(statuses) == 0 {
		return 0
	}
	half := 0
	for _, s := range statuses {
		half += s.HalfUnits()
	}
	return half * 100 / (2 * len(statuses))
}

// Summary is a per-status tally of a project's tasks.
type Summary struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Percent    int `json:"percent"`
}

// Summarize tallies statuses and computes the percentage.
func Summarize(statuses []domain.Status) Summary {
	s := Summary{Total: len(statuses), Percent: Progress(statuses)}
	for _, st := range statuses {
		switch st {
		case domain.StatusPending:
			s.Pending++
		case domain.StatusInProgress:
			s.InProgress++
		case domain.StatusCompleted:
			s.Completed++
		case domain.StatusCancelled:
			s.Cancelled++
		}
	}
	return s
}

// AllCompleted reports whether every status is Completed. An empty set is not complete.
func (s Summary) AllCompleted() bool {
	return s.Total > 0 && s.Completed == s.Total
}

// ProjectStatus derives the project status from its tasks: Completed when all
// tasks are, InProgress once any task has been started or finished, else Pending.
func (s Summary) ProjectStatus() domain.Status {
	switch {
	case s.AllCompleted():
		return domain.StatusCompleted
	case s.InProgress > 0 || s.Completed > 0:
		return domain.StatusInProgress
	default:
		return domain.StatusPending
	}
}

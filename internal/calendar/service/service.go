package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/planny/planny-backend/internal/calendar/domain"
	"github.com/planny/planny-backend/internal/planning/calendar"
	taskdomain "github.com/planny/planny-backend/internal/tasks/domain"
)

// TaskSource reads the tasks events are shaped from.
type TaskSource interface {
	Get(ctx context.Context, id int64) (*taskdomain.Task, error)
	ListDated(ctx context.Context) ([]taskdomain.Task, error)
}

// EventStore persists personal calendar events scoped by owner.
type EventStore interface {
	List(ctx context.Context, userID int64) ([]domain.UserEvent, error)
	Create(ctx context.Context, e *domain.UserEvent) error
	Update(ctx context.Context, userID, id int64, p domain.Patch) error
	Delete(ctx context.Context, userID, id int64) error
}

// Exporter pushes an event to an external calendar and returns its id there.
type Exporter interface {
	Export(ctx context.Context, ev *calendar.Event) (string, error)
}

type Service struct {
	tasks    TaskSource
	events   EventStore
	exporter Exporter
	log      *logrus.Entry
}

// New wires the calendar service. exporter may be nil when export is disabled.
func New(tasks TaskSource, events EventStore, exporter Exporter, log *logrus.Entry) *Service {
	return &Service{tasks: tasks, events: events, exporter: exporter, log: log}
}

func source(t taskdomain.Task) calendar.Source {
	return calendar.Source{
		TaskID:        t.ID,
		Title:         t.Title,
		Description:   t.Description,
		ProjectName:   t.ProjectName,
		Start:         t.StartDate,
		End:           t.DueDate,
		AssigneeEmail: t.AssigneeEmail,
	}
}

// TaskEvent shapes one task. The event is nil when the task has no dates.
func (s *Service) TaskEvent(ctx context.Context, taskID int64) (*calendar.Event, error) {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return calendar.Shape(source(*t)), nil
}

// TaskEvents shapes every dated task, earliest first.
func (s *Service) TaskEvents(ctx context.Context) ([]calendar.Event, error) {
	tasks, err := s.tasks.ListDated(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]calendar.Event, 0, len(tasks))
	for _, t := range tasks {
		if ev := calendar.Shape(source(t)); ev != nil {
			out = append(out, *ev)
		}
	}
	return out, nil
}

// PinTask copies a task's event onto the user's personal calendar.
func (s *Service) PinTask(ctx context.Context, userID, taskID int64) (*domain.UserEvent, error) {
	ev, err := s.TaskEvent(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, domain.ErrNoDates
	}

	start, end := ev.Start, ev.End
	e := &domain.UserEvent{
		UserID:      userID,
		TaskID:      &taskID,
		Title:       ev.Summary,
		Description: ev.Description,
		StartDate:   &start,
		EndDate:     &end,
		IsTaskBased: true,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) UserEvents(ctx context.Context, userID int64) ([]domain.UserEvent, error) {
	return s.events.List(ctx, userID)
}

func (s *Service) CreateUserEvent(ctx context.Context, e *domain.UserEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.events.Create(ctx, e)
}

func (s *Service) UpdateUserEvent(ctx context.Context, userID, id int64, p domain.Patch) error {
	return s.events.Update(ctx, userID, id, p)
}

func (s *Service) DeleteUserEvent(ctx context.Context, userID, id int64) error {
	return s.events.Delete(ctx, userID, id)
}

// Export sends a task's event to the configured external calendar.
func (s *Service) Export(ctx context.Context, taskID int64) (string, error) {
	if s.exporter == nil {
		return "", domain.ErrExportOff
	}
	ev, err := s.TaskEvent(ctx, taskID)
	if err != nil {
		return "", err
	}
	if ev == nil {
		return "", domain.ErrNoDates
	}

	id, err := s.exporter.Export(ctx, ev)
	if err != nil {
		s.log.WithError(err).WithField("task_id", taskID).Warn("calendar export failed")
		return "", err
	}
	return id, nil
}

package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/tasks/domain"
	"github.com/planny/planny-backend/internal/tasks/repository"
)

// Board is the optional read-through cache for the kanban board.
type Board interface {
	Get(ctx context.Context) ([]domain.Task, bool, error)
	Set(ctx context.Context, tasks []domain.Task) error
	Invalidate(ctx context.Context) error
	PublishStatus(ctx context.Context, ev domain.StatusChange) error
}

type TaskService struct {
	repo  *repository.Repository
	board Board
	log   *logrus.Entry
	now   func() time.Time
}

// NewTaskService wires the service. board may be nil.
func NewTaskService(repo *repository.Repository, board Board, log *logrus.Entry) *TaskService {
	return &TaskService{repo: repo, board: board, log: log, now: time.Now}
}

// List serves the board from cache when possible.
func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	if s.board != nil {
		tasks, ok, err := s.board.Get(ctx)
		if err != nil {
			s.log.WithError(err).Warn("board cache read failed")
		}
		if ok {
			return tasks, nil
		}
	}

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.board != nil {
		if err := s.board.Set(ctx, tasks); err != nil {
			s.log.WithError(err).Warn("board cache write failed")
		}
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.repo.Get(ctx, id)
}

func (s *TaskService) Create(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TaskService) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ChangeStatus moves a card and rolls the change up to its project: a task
// going in progress marks the project in progress, and completing the last
// unfinished task completes the project.
func (s *TaskService) ChangeStatus(ctx context.Context, id int64, status plan.Status) (*domain.StatusChange, error) {
	if status == 0 {
		return nil, domain.ErrStatusRequired
	}
	if !status.Valid() {
		return nil, plan.ErrInvalidStatus
	}

	change := &domain.StatusChange{TaskID: id, Status: status}
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		projectID, err := tx.SetStatus(ctx, id, status)
		if err != nil {
			return err
		}
		change.ProjectID = projectID

		switch status {
		case plan.StatusInProgress:
			change.ProjectStatus = plan.StatusInProgress
		case plan.StatusCompleted:
			remaining, err := tx.CountUnfinished(ctx, projectID)
			if err != nil {
				return err
			}
			if remaining == 0 {
				change.ProjectStatus = plan.StatusCompleted
			}
		}

		if change.ProjectStatus != 0 {
			return tx.SetProjectStatus(ctx, projectID, change.ProjectStatus)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	change.At = s.now().UTC()
	s.log.WithFields(logrus.Fields{
		"task_id":        id,
		"project_id":     change.ProjectID,
		"status":         status.String(),
		"project_status": int(change.ProjectStatus),
	}).Info("task status changed")

	if s.board != nil {
		if err := s.board.PublishStatus(ctx, *change); err != nil {
			s.log.WithError(err).Warn("board event publish failed")
		}
	}
	return change, nil
}

func (s *TaskService) invalidate(ctx context.Context) {
	if s.board == nil {
		return
	}
	if err := s.board.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("board cache invalidate failed")
	}
}

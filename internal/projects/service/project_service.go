package service

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/planny/planny-backend/internal/planning/catalog"
	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/planning/gantt"
	"github.com/planny/planny-backend/internal/planning/progress"
	"github.com/planny/planny-backend/internal/planning/timeline"
	"github.com/planny/planny-backend/internal/projects/domain"
	"github.com/planny/planny-backend/internal/projects/repository"
)

// Board is the kanban snapshot dropped after project writes touch tasks.
type Board interface {
	Invalidate(ctx context.Context) error
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo    *repository.ProjectRepository
	catalog *catalog.Catalog
	dist    *timeline.Distributor
	gantt   gantt.Options
	board   Board
	log     *logrus.Entry
}

// NewProjectService creates a new project service. repo may be nil for
// callers that only need Schedule.
func NewProjectService(
	repo *repository.ProjectRepository,
	cat *catalog.Catalog,
	dist *timeline.Distributor,
	ganttOpts gantt.Options,
	log *logrus.Entry,
) *ProjectService {
	return &ProjectService{repo: repo, catalog: cat, dist: dist, gantt: ganttOpts, log: log}
}

// WithBoard attaches the kanban board cache. b may be nil.
func (s *ProjectService) WithBoard(b Board) *ProjectService {
	s.board = b
	return s
}

func (s *ProjectService) invalidateBoard(ctx context.Context) {
	if s.board == nil {
		return
	}
	if err := s.board.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("board cache invalidate failed")
	}
}

// Schedule generates the tasks for the project type and, separately, for the
// listed features. Both sets span the whole project range.
func (s *ProjectService) Schedule(in domain.Input) (typeTasks, featureTasks []plan.WorkItem, err error) {
	r := plan.NewDateRange(in.StartDate, in.Deadline)

	typeTasks, err = s.dist.Generate(s.catalog.Templates(catalog.ProjectType(in.Type)), r, in.SprintCount)
	if err != nil {
		return nil, nil, err
	}
	desc := domain.TypeTaskDescription(in.Type)
	for i := range typeTasks {
		typeTasks[i].Description = desc
	}

	featureTasks, err = s.dist.Generate(in.Features, r, in.SprintCount)
	if err != nil {
		return nil, nil, err
	}
	for i := range featureTasks {
		featureTasks[i].Description = domain.FeatureTaskDescription
	}
	return typeTasks, featureTasks, nil
}

// Created is the outcome of Create.
type Created struct {
	Project      *domain.Project `json:"project"`
	TypeTasks    []plan.WorkItem `json:"typeTasks"`
	FeatureTasks []plan.WorkItem `json:"featureTasks"`
}

// Create stores the project, its assignments and its generated tasks in one
// transaction.
func (s *ProjectService) Create(ctx context.Context, in domain.Input) (*Created, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	typeTasks, featureTasks, err := s.Schedule(in)
	if err != nil {
		return nil, err
	}

	p := &domain.Project{
		Name:         in.Name,
		Type:         in.Type,
		StartDate:    plan.Day(in.StartDate),
		Deadline:     plan.Day(in.Deadline),
		ClientID:     in.ClientID,
		SprintCount:  in.SprintCount,
		CreatedBy:    in.CreatedBy,
		DeveloperIDs: nonNil(in.DeveloperIDs),
	}

	err = s.repo.InTx(ctx, func(tx *repository.ProjectRepository) error {
		if err := tx.Insert(ctx, p); err != nil {
			return err
		}
		if err := tx.ReplaceAssignments(ctx, p.ID, p.DeveloperIDs); err != nil {
			return err
		}
		if err := tx.InsertTasks(ctx, p.ID, typeTasks); err != nil {
			return err
		}
		return tx.InsertTasks(ctx, p.ID, featureTasks)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateBoard(ctx)

	s.log.WithFields(logrus.Fields{
		"project_id":    p.ID,
		"project_type":  p.Type,
		"type_tasks":    len(typeTasks),
		"feature_tasks": len(featureTasks),
	}).Info("project created")

	return &Created{Project: p, TypeTasks: typeTasks, FeatureTasks: featureTasks}, nil
}

// ListItem is a project with its live task tally.
type ListItem struct {
	domain.Project
	Tasks progress.Summary `json:"tasks"`
}

// List returns all projects with progress computed from current task statuses.
func (s *ProjectService) List(ctx context.Context) ([]ListItem, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := s.repo.TaskStatuses(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ListItem, 0, len(projects))
	for _, p := range projects {
		sum := progress.Summarize(statuses[p.ID])
		p.Progress = sum.Percent
		out = append(out, ListItem{Project: p, Tasks: sum})
	}
	return out, nil
}

// Get returns one project with live progress.
func (s *ProjectService) Get(ctx context.Context, id int64) (*ListItem, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	statuses, err := s.repo.ProjectTaskStatuses(ctx, id)
	if err != nil {
		return nil, err
	}
	sum := progress.Summarize(statuses)
	p.Progress = sum.Percent
	return &ListItem{Project: *p, Tasks: sum}, nil
}

// Update edits a project and replaces its developer assignments. Existing
// tasks are left as they are.
func (s *ProjectService) Update(ctx context.Context, id int64, in domain.Input) (*ListItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := &domain.Project{
		ID:          id,
		Name:        in.Name,
		Type:        in.Type,
		StartDate:   plan.Day(in.StartDate),
		Deadline:    plan.Day(in.Deadline),
		ClientID:    in.ClientID,
		SprintCount: in.SprintCount,
	}
	err := s.repo.InTx(ctx, func(tx *repository.ProjectRepository) error {
		if err := tx.Update(ctx, p); err != nil {
			return err
		}
		return tx.ReplaceAssignments(ctx, id, in.DeveloperIDs)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateBoard(ctx)
	return s.Get(ctx, id)
}

// Delete removes a project and everything attached to it.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	err := s.repo.InTx(ctx, func(tx *repository.ProjectRepository) error {
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.invalidateBoard(ctx)
	return nil
}

func (s *ProjectService) Options(ctx context.Context) ([]domain.Option, error) {
	return s.repo.Options(ctx)
}

// Timeline is a project with its Gantt projection.
type Timeline struct {
	Project *ListItem   `json:"project"`
	Rows    []gantt.Row `json:"rows"`
	Chart   [][]any     `json:"ganttData"`
}

// Timeline projects the project's dated tasks onto sprint windows.
func (s *ProjectService) Timeline(ctx context.Context, id int64) (*Timeline, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.TimelineTasks(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]gantt.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, gantt.Item{
			ID:      strconv.FormatInt(t.ID, 10),
			Title:   t.Title,
			Start:   t.Start,
			End:     t.End,
			Percent: t.Status.Percent(),
		})
	}

	opts := s.gantt
	if p.SprintCount > 0 {
		opts.SprintCount = p.SprintCount
	}
	rows := gantt.Project(items, p.Range(), opts)
	return &Timeline{Project: p, Rows: rows, Chart: gantt.ChartRows(rows)}, nil
}

// RefreshProgress recomputes and stores the progress of every project whose
// stored value is stale. It returns the number of projects updated.
func (s *ProjectService) RefreshProgress(ctx context.Context) (int, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	statuses, err := s.repo.TaskStatuses(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, p := range projects {
		pct := progress.Progress(statuses[p.ID])
		if pct == p.Progress {
			continue
		}
		if err := s.repo.SetProgress(ctx, p.ID, pct); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/storage/postgres"
	"github.com/planny/planny-backend/internal/tasks/domain"
)

// Repository persists kanban tasks. The zero value is not usable; use New.
type Repository struct {
	db *sql.DB
	q  postgres.DBTX
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db, q: db}
}

// InTx runs fn against a repository bound to a single transaction.
func (r *Repository) InTx(ctx context.Context, fn func(tx *Repository) error) error {
	return postgres.WithTx(ctx, r.db, func(tx postgres.DBTX) error {
		return fn(&Repository{db: r.db, q: tx})
	})
}

const selectTasks = `
SELECT t.id, t.project_id, COALESCE(p.name, ''), t.title, t.description, t.status_id,
       t.assigned_to, COALESCE(d.first_name, ''), COALESCE(d.last_name, ''), COALESCE(d.email, ''),
       t.start_date, t.due_date, t.sprint
FROM tasks t
LEFT JOIN projects p ON p.id = t.project_id
LEFT JOIN developers d ON d.id = t.assigned_to
`

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (domain.Task, error) {
	var (
		t        domain.Task
		status   int
		assigned sql.NullInt64
		start    sql.NullTime
		due      sql.NullTime
	)
	err := s.Scan(&t.ID, &t.ProjectID, &t.ProjectName, &t.Title, &t.Description, &status,
		&assigned, &t.AssigneeFirst, &t.AssigneeLast, &t.AssigneeEmail, &start, &due, &t.Sprint)
	if err != nil {
		return t, err
	}
	t.Status = plan.Status(status)
	if assigned.Valid {
		t.AssignedTo = &assigned.Int64
	}
	t.StartDate = datePtr(start)
	t.DueDate = datePtr(due)
	return t, nil
}

func datePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	d := plan.Day(n.Time)
	return &d
}

// List returns every task ordered by project, status column and id.
func (r *Repository) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.q.QueryContext(ctx, selectTasks+`ORDER BY t.project_id, t.status_id, t.id;`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Task, 0, 32)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListDated returns tasks with a start or due date, earliest first.
func (r *Repository) ListDated(ctx context.Context) ([]domain.Task, error) {
	const where = `WHERE t.start_date IS NOT NULL OR t.due_date IS NOT NULL
ORDER BY COALESCE(t.start_date, t.due_date), t.id;`
	rows, err := r.q.QueryContext(ctx, selectTasks+where)
	if err != nil {
		return nil, fmt.Errorf("list dated tasks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Task, 0, 32)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListByProject returns a project's tasks ordered by start date.
func (r *Repository) ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error) {
	rows, err := r.q.QueryContext(ctx, selectTasks+`WHERE t.project_id = $1
ORDER BY t.start_date NULLS LAST, t.id;`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Task, 0, 16)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := scanTask(r.q.QueryRowContext(ctx, selectTasks+`WHERE t.id = $1;`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repository) Create(ctx context.Context, t *domain.Task) error {
	const q = `
INSERT INTO tasks (project_id, title, description, status_id, assigned_to, start_date, due_date, sprint)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id;
`
	err := r.q.QueryRowContext(ctx, q, t.ProjectID, t.Title, t.Description, int(t.Status),
		t.AssignedTo, t.StartDate, t.DueDate, t.Sprint).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, t *domain.Task) error {
	const q = `
UPDATE tasks
SET title = $2, description = $3, status_id = $4, assigned_to = $5,
    start_date = $6, due_date = $7, project_id = $8, updated_at = now()
WHERE id = $1;
`
	res, err := r.q.ExecContext(ctx, q, t.ID, t.Title, t.Description, int(t.Status),
		t.AssignedTo, t.StartDate, t.DueDate, t.ProjectID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return expectOne(res)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return expectOne(res)
}

// SetStatus moves a task and returns its project id.
func (r *Repository) SetStatus(ctx context.Context, id int64, s plan.Status) (int64, error) {
	const q = `
UPDATE tasks SET status_id = $2, updated_at = now()
WHERE id = $1
RETURNING project_id;
`
	var projectID int64
	if err := r.q.QueryRowContext(ctx, q, id, int(s)).Scan(&projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrTaskNotFound
		}
		return 0, fmt.Errorf("set task status: %w", err)
	}
	return projectID, nil
}

// CountUnfinished counts tasks of a project that are not completed.
func (r *Repository) CountUnfinished(ctx context.Context, projectID int64) (int, error) {
	const q = `SELECT count(*) FROM tasks WHERE project_id = $1 AND status_id <> $2;`
	var n int
	if err := r.q.QueryRowContext(ctx, q, projectID, int(plan.StatusCompleted)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unfinished tasks: %w", err)
	}
	return n, nil
}

// SetProjectStatus updates the status of the owning project.
func (r *Repository) SetProjectStatus(ctx context.Context, projectID int64, s plan.Status) error {
	const q = `UPDATE projects SET status_id = $2, updated_at = now() WHERE id = $1;`
	if _, err := r.q.ExecContext(ctx, q, projectID, int(s)); err != nil {
		return fmt.Errorf("set project status: %w", err)
	}
	return nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

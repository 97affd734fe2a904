package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/projects/domain"
	"github.com/planny/planny-backend/internal/storage/postgres"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
	q  postgres.DBTX
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db, q: db}
}

// InTx runs fn against a repository bound to one transaction.
func (r *ProjectRepository) InTx(ctx context.Context, fn func(tx *ProjectRepository) error) error {
	return postgres.WithTx(ctx, r.db, func(tx postgres.DBTX) error {
		return fn(&ProjectRepository{db: r.db, q: tx})
	})
}

// Insert stores a new project as Pending with zero progress.
func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) error {
	const q = `
INSERT INTO projects (name, project_type, start_date, deadline, client_id, status_id, progress, sprint_count, created_by)
VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8)
RETURNING id;
`
	p.Status = plan.StatusPending
	p.Progress = 0
	err := r.q.QueryRowContext(ctx, q, p.Name, p.Type, p.StartDate, p.Deadline, p.ClientID,
		int(p.Status), p.SprintCount, p.CreatedBy).Scan(&p.ID)
	if isForeignKey(err, "client_id") {
		return fmt.Errorf("insert project: %w", domain.ErrUnknownClient)
	}
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// ReplaceAssignments drops the project's assignments and inserts devIDs.
// Duplicate ids are ignored.
func (r *ProjectRepository) ReplaceAssignments(ctx context.Context, projectID int64, devIDs []int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM project_assignments WHERE project_id = $1;`, projectID); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}

	const q = `
INSERT INTO project_assignments (project_id, developer_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING;
`
	for _, dev := range devIDs {
		if _, err := r.q.ExecContext(ctx, q, projectID, dev); err != nil {
			if isForeignKey(err, "developer_id") {
				return fmt.Errorf("assign developer %d: %w", dev, domain.ErrUnknownDeveloper)
			}
			return fmt.Errorf("assign developer %d: %w", dev, err)
		}
	}
	return nil
}

// InsertTasks stores generated work items for a project in order.
func (r *ProjectRepository) InsertTasks(ctx context.Context, projectID int64, items []plan.WorkItem) error {
	const q = `
INSERT INTO tasks (project_id, title, description, status_id, start_date, due_date, sprint)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`
	for _, it := range items {
		if _, err := r.q.ExecContext(ctx, q, projectID, it.Title, it.Description, int(it.Status),
			it.Start, it.End, it.Sprint); err != nil {
			return fmt.Errorf("insert task %q: %w", it.Title, err)
		}
	}
	return nil
}

const selectProjects = `
SELECT p.id, p.name, p.project_type, p.start_date, p.deadline, p.client_id,
       COALESCE(c.company_name, ''), p.status_id, p.progress, p.sprint_count, p.created_by
FROM projects p
LEFT JOIN clients c ON c.id = p.client_id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (domain.Project, error) {
	var (
		p         domain.Project
		clientID  sql.NullInt64
		createdBy sql.NullInt64
		status    int
	)
	err := s.Scan(&p.ID, &p.Name, &p.Type, &p.StartDate, &p.Deadline, &clientID,
		&p.ClientName, &status, &p.Progress, &p.SprintCount, &createdBy)
	if err != nil {
		return p, err
	}
	p.StartDate = plan.Day(p.StartDate)
	p.Deadline = plan.Day(p.Deadline)
	p.Status = plan.Status(status)
	if clientID.Valid {
		p.ClientID = &clientID.Int64
	}
	if createdBy.Valid {
		p.CreatedBy = &createdBy.Int64
	}
	return p, nil
}

// List returns all projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.q.QueryContext(ctx, selectProjects+`ORDER BY p.id DESC;`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get loads one project with its assigned developer ids.
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := scanProject(r.q.QueryRowContext(ctx, selectProjects+`WHERE p.id = $1;`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT developer_id FROM project_assignments WHERE project_id = $1 ORDER BY developer_id;`, id)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	p.DeveloperIDs = []int64{}
	for rows.Next() {
		var dev int64
		if err := rows.Scan(&dev); err != nil {
			return nil, err
		}
		p.DeveloperIDs = append(p.DeveloperIDs, dev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update saves the editable fields.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	const q = `
UPDATE projects
SET name = $2, project_type = $3, start_date = $4, deadline = $5, client_id = $6,
    sprint_count = $7, updated_at = now()
WHERE id = $1;
`
	res, err := r.q.ExecContext(ctx, q, p.ID, p.Name, p.Type, p.StartDate, p.Deadline, p.ClientID, p.SprintCount)
	if isForeignKey(err, "client_id") {
		return fmt.Errorf("update project: %w", domain.ErrUnknownClient)
	}
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return expectOne(res)
}

// Delete removes a project with its tasks and assignments.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = $1;`, id); err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, `DELETE FROM project_assignments WHERE project_id = $1;`, id); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}
	res, err := r.q.ExecContext(ctx, `DELETE FROM projects WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return expectOne(res)
}

// Options lists id/name pairs ordered by name.
func (r *ProjectRepository) Options(ctx context.Context) ([]domain.Option, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM projects ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("list project options: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Option, 0, 16)
	for rows.Next() {
		var o domain.Option
		if err := rows.Scan(&o.ProjectID, &o.ProjectName); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// TaskStatuses returns every task status grouped by project id.
func (r *ProjectRepository) TaskStatuses(ctx context.Context) (map[int64][]plan.Status, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT project_id, status_id FROM tasks ORDER BY project_id, id;`)
	if err != nil {
		return nil, fmt.Errorf("list task statuses: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]plan.Status)
	for rows.Next() {
		var (
			projectID int64
			status    int
		)
		if err := rows.Scan(&projectID, &status); err != nil {
			return nil, err
		}
		out[projectID] = append(out[projectID], plan.Status(status))
	}
	return out, rows.Err()
}

// ProjectTaskStatuses returns the statuses of one project's tasks.
func (r *ProjectRepository) ProjectTaskStatuses(ctx context.Context, projectID int64) ([]plan.Status, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT status_id FROM tasks WHERE project_id = $1;`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project task statuses: %w", err)
	}
	defer rows.Close()

	var out []plan.Status
	for rows.Next() {
		var status int
		if err := rows.Scan(&status); err != nil {
			return nil, err
		}
		out = append(out, plan.Status(status))
	}
	return out, rows.Err()
}

// TimelineTasks returns a project's tasks that have both dates, by start.
func (r *ProjectRepository) TimelineTasks(ctx context.Context, projectID int64) ([]domain.TimelineTask, error) {
	const q = `
SELECT id, title, start_date, due_date, status_id
FROM tasks
WHERE project_id = $1 AND start_date IS NOT NULL AND due_date IS NOT NULL
ORDER BY start_date, id;
`
	rows, err := r.q.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("list timeline tasks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.TimelineTask, 0, 16)
	for rows.Next() {
		var (
			t      domain.TimelineTask
			status int
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Start, &t.End, &status); err != nil {
			return nil, err
		}
		t.Start = plan.Day(t.Start)
		t.End = plan.Day(t.End)
		t.Status = plan.Status(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

// SetProgress stores the computed progress of a project.
func (r *ProjectRepository) SetProgress(ctx context.Context, id int64, progress int) error {
	const q = `UPDATE projects SET progress = $2, updated_at = now() WHERE id = $1;`
	res, err := r.q.ExecContext(ctx, q, id, progress)
	if err != nil {
		return fmt.Errorf("set progress: %w", err)
	}
	return expectOne(res)
}

// isForeignKey reports a foreign key violation (23503) on column. Postgres
// names the constraint <table>_<column>_fkey.
func isForeignKey(err error, column string) bool {
	var pgErr *pq.Error
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		return false
	}
	return strings.Contains(pgErr.Constraint, column)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/planny/planny-backend/internal/calendar/domain"
	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/storage/postgres"
)

// UserEventRepository persists personal calendar events.
type UserEventRepository struct {
	q postgres.DBTX
}

func New(db postgres.DBTX) *UserEventRepository {
	return &UserEventRepository{q: db}
}

// List returns a user's events ordered by start date, undated last.
func (r *UserEventRepository) List(ctx context.Context, userID int64) ([]domain.UserEvent, error) {
	const q = `
SELECT id, user_id, task_id, title, description, start_date, end_date, is_task_based, created_at
FROM user_calendar_events
WHERE user_id = $1
ORDER BY start_date ASC NULLS LAST, id;
`
	rows, err := r.q.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list user events: %w", err)
	}
	defer rows.Close()

	out := make([]domain.UserEvent, 0, 16)
	for rows.Next() {
		var (
			e          domain.UserEvent
			taskID     sql.NullInt64
			start, end sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.UserID, &taskID, &e.Title, &e.Description,
			&start, &end, &e.IsTaskBased, &e.CreatedAt); err != nil {
			return nil, err
		}
		if taskID.Valid {
			e.TaskID = &taskID.Int64
		}
		e.StartDate = datePtr(start)
		e.EndDate = datePtr(end)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create inserts e and fills in its id and creation time.
func (r *UserEventRepository) Create(ctx context.Context, e *domain.UserEvent) error {
	const q = `
INSERT INTO user_calendar_events (user_id, task_id, title, description, start_date, end_date, is_task_based)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at;
`
	err := r.q.QueryRowContext(ctx, q, e.UserID, e.TaskID, e.Title, e.Description,
		e.StartDate, e.EndDate, e.IsTaskBased).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user event: %w", err)
	}
	return nil
}

// Update applies p to the event when it belongs to userID. An empty patch
// only checks ownership.
func (r *UserEventRepository) Update(ctx context.Context, userID, id int64, p domain.Patch) error {
	if p.Empty() {
		var one int
		err := r.q.QueryRowContext(ctx,
			`SELECT 1 FROM user_calendar_events WHERE id = $1 AND user_id = $2;`, id, userID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrEventNotFound
		}
		return err
	}

	sets := make([]string, 0, 5)
	args := []any{id, userID}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.StartDate != nil {
		add("start_date", *p.StartDate)
	}
	if p.EndDate != nil {
		add("end_date", *p.EndDate)
	}
	sets = append(sets, "updated_at = now()")

	q := `UPDATE user_calendar_events SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 AND user_id = $2;`
	res, err := r.q.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update user event: %w", err)
	}
	return expectOne(res)
}

// Delete removes the event when it belongs to userID.
func (r *UserEventRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM user_calendar_events WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return fmt.Errorf("delete user event: %w", err)
	}
	return expectOne(res)
}

func datePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := plan.Day(n.Time)
	return &t
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

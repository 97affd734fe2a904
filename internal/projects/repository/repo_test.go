package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/projects/domain"
)

var projectColumns = []string{
	"id", "name", "project_type", "start_date", "deadline", "client_id",
	"company_name", "status_id", "progress", "sprint_count", "created_by",
}

func setupRepo(t *testing.T) (*ProjectRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProjectRepository(db), mock
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInsert(t *testing.T) {
	repo, mock := setupRepo(t)
	client := int64(4)

	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs("Shop", "Web Development", day(2024, 1, 1), day(2024, 3, 1), client, 1, 0, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	p := &domain.Project{
		Name: "Shop", Type: "Web Development",
		StartDate: day(2024, 1, 1), Deadline: day(2024, 3, 1),
		ClientID: &client, Progress: 40, Status: plan.StatusCompleted,
	}
	require.NoError(t, repo.Insert(context.Background(), p))
	assert.EqualValues(t, 12, p.ID)
	assert.Equal(t, plan.StatusPending, p.Status)
	assert.Zero(t, p.Progress)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAssignments_UnknownDeveloper(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec(`DELETE FROM project_assignments`).WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO project_assignments`).WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO project_assignments`).WithArgs(int64(3), int64(99)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "project_assignments_developer_id_fkey"})

	err := repo.ReplaceAssignments(context.Background(), 3, []int64{7, 99})
	assert.ErrorIs(t, err, domain.ErrUnknownDeveloper)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_UnknownClient(t *testing.T) {
	repo, mock := setupRepo(t)
	client := int64(404)

	mock.ExpectQuery(`INSERT INTO projects`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "projects_client_id_fkey"})

	err := repo.Insert(context.Background(), &domain.Project{
		Name: "Shop", Type: "Web Development",
		StartDate: day(2024, 1, 1), Deadline: day(2024, 3, 1), ClientID: &client,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownClient)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_UnknownClient(t *testing.T) {
	repo, mock := setupRepo(t)
	client := int64(404)

	mock.ExpectExec(`UPDATE projects`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "projects_client_id_fkey"})

	err := repo.Update(context.Background(), &domain.Project{
		ID: 3, Name: "Shop", StartDate: day(2024, 1, 1), Deadline: day(2024, 3, 1), ClientID: &client,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownClient)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_OtherForeignKeyIsNotClient(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`INSERT INTO projects`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "projects_created_by_fkey"})

	err := repo.Insert(context.Background(), &domain.Project{
		Name: "Shop", StartDate: day(2024, 1, 1), Deadline: day(2024, 3, 1),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnknownClient)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertTasks_InTx(t *testing.T) {
	repo, mock := setupRepo(t)
	items := []plan.WorkItem{
		plan.NewWorkItem("Setup", "d", day(2024, 1, 1), day(2024, 1, 7), 1),
		plan.NewWorkItem("Build", "d", day(2024, 1, 8), day(2024, 1, 14), 1),
	}

	mock.ExpectBegin()
	for _, it := range items {
		mock.ExpectExec(`INSERT INTO tasks`).
			WithArgs(int64(5), it.Title, "d", 1, it.Start, it.End, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err := repo.InTx(context.Background(), func(tx *ProjectRepository) error {
		return tx.InsertTasks(context.Background(), 5, items)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_RollsBackOnError(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM tasks`).WithArgs(int64(8)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM project_assignments`).WithArgs(int64(8)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM projects`).WithArgs(int64(8)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.InTx(context.Background(), func(tx *ProjectRepository) error {
		return tx.Delete(context.Background(), 8)
	})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`FROM projects p`).
		WillReturnRows(sqlmock.NewRows(projectColumns).
			AddRow(2, "App", "Mobile App", day(2024, 2, 1), day(2024, 4, 1), nil, "", 2, 50, 0, nil).
			AddRow(1, "Shop", "Web Development", day(2024, 1, 1), day(2024, 3, 1), 4, "Acme", 1, 0, 3, 9))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Nil(t, got[0].ClientID)
	assert.Equal(t, plan.StatusInProgress, got[0].Status)
	assert.Equal(t, 50, got[0].Progress)

	require.NotNil(t, got[1].ClientID)
	assert.EqualValues(t, 4, *got[1].ClientID)
	assert.Equal(t, "Acme", got[1].ClientName)
	assert.Equal(t, 3, got[1].SprintCount)
	require.NotNil(t, got[1].CreatedBy)
	assert.EqualValues(t, 9, *got[1].CreatedBy)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`WHERE p.id = \$1`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(projectColumns).
			AddRow(1, "Shop", "Web Development", day(2024, 1, 1), day(2024, 3, 1), nil, "", 1, 0, 0, nil))
	mock.ExpectQuery(`FROM project_assignments`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"developer_id"}).AddRow(3).AddRow(5))

	p, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, p.DeveloperIDs)
	assert.Equal(t, plan.NewDateRange(day(2024, 1, 1), day(2024, 3, 1)), p.Range())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`WHERE p.id = \$1`).WithArgs(int64(6)).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 6)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStatuses_GroupsByProject(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`SELECT project_id, status_id FROM tasks`).
		WillReturnRows(sqlmock.NewRows([]string{"project_id", "status_id"}).
			AddRow(1, 3).AddRow(1, 2).AddRow(2, 1))

	got, err := repo.TaskStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []plan.Status{plan.StatusCompleted, plan.StatusInProgress}, got[1])
	assert.Equal(t, []plan.Status{plan.StatusPending}, got[2])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimelineTasks(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`FROM tasks`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "start_date", "due_date", "status_id"}).
			AddRow(4, "Setup", day(2024, 1, 1), day(2024, 1, 7), 3))

	got, err := repo.TimelineTasks(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, plan.StatusCompleted, got[0].Status)
	assert.Equal(t, day(2024, 1, 7), got[0].End)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetProgress_Missing(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec(`UPDATE projects SET progress`).WithArgs(int64(9), 75).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetProgress(context.Background(), 9, 75)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

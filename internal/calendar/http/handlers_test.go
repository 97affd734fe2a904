package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planny/planny-backend/internal/auth"
	"github.com/planny/planny-backend/internal/calendar/domain"
	"github.com/planny/planny-backend/internal/logging"
	"github.com/planny/planny-backend/internal/planning/calendar"
	taskdomain "github.com/planny/planny-backend/internal/tasks/domain"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

type fakeService struct {
	err     error
	pinned  bool
	created *domain.UserEvent
	patch   *domain.Patch
	owner   int64
}

func (f *fakeService) TaskEvent(_ context.Context, id int64) (*calendar.Event, error) {
	switch id {
	case 1:
		return calendar.Shape(calendar.Source{
			TaskID: 1, Title: "Setup", ProjectName: "Shop",
			Start: day(2024, 1, 1), End: day(2024, 1, 7), AssigneeEmail: "ada@example.com",
		}), nil
	case 2:
		return nil, nil
	default:
		return nil, taskdomain.ErrTaskNotFound
	}
}

func (f *fakeService) TaskEvents(ctx context.Context) ([]calendar.Event, error) {
	ev, _ := f.TaskEvent(ctx, 1)
	return []calendar.Event{*ev}, nil
}

func (f *fakeService) PinTask(_ context.Context, userID, taskID int64) (*domain.UserEvent, error) {
	f.pinned = true
	return &domain.UserEvent{ID: 3, UserID: userID, TaskID: &taskID, Title: "Setup", IsTaskBased: true,
		StartDate: day(2024, 1, 1), EndDate: day(2024, 1, 7)}, nil
}

func (f *fakeService) UserEvents(context.Context, int64) ([]domain.UserEvent, error) {
	return []domain.UserEvent{{
		ID: 5, Title: "Standup", StartDate: day(2024, 2, 1),
		CreatedAt: time.Date(2024, 1, 30, 8, 0, 0, 0, time.UTC),
	}}, nil
}

func (f *fakeService) CreateUserEvent(_ context.Context, e *domain.UserEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.ID = 12
	f.created = e
	return nil
}

func (f *fakeService) UpdateUserEvent(_ context.Context, userID, _ int64, p domain.Patch) error {
	if userID != f.owner {
		return domain.ErrEventNotFound
	}
	f.patch = &p
	return nil
}

func (f *fakeService) DeleteUserEvent(_ context.Context, userID, _ int64) error {
	if userID != f.owner {
		return domain.ErrEventNotFound
	}
	return nil
}

func (f *fakeService) Export(_ context.Context, taskID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "evt-1", nil
}

func setupRouter(svc Service, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID > 0 {
			c.Set(auth.CtxUserDBID, userID)
		}
		c.Next()
	})
	New(svc, logging.Discard()).Register(r.Group("/api/v1"))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestTaskEvent(t *testing.T) {
	r := setupRouter(&fakeService{}, 0)

	w := do(r, http.MethodPost, "/api/v1/calendar-event", `{"taskID":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"message":"Calendar event created","event":{
		"taskID":1,"summary":"Setup","description":"\nProject: Shop",
		"start":{"date":"2024-01-01"},"end":{"date":"2024-01-08"},
		"attendees":[{"email":"ada@example.com","responseStatus":"needsAction"}]}}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/v1/calendar-event", `{"taskID":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"event":null`)

	w = do(r, http.MethodPost, "/api/v1/calendar-event", `{"taskID":9}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Task not found")

	w = do(r, http.MethodPost, "/api/v1/calendar-event", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Task ID is required")
}

func TestTaskEvent_AddToMyCalendar(t *testing.T) {
	svc := &fakeService{}
	w := do(setupRouter(svc, 7), http.MethodPost, "/api/v1/calendar-event", `{"taskID":1,"addToMyCalendar":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.pinned)
	assert.Contains(t, w.Body.String(), `"isTaskBased":true`)

	w = do(setupRouter(&fakeService{}, 0), http.MethodPost, "/api/v1/calendar-event", `{"taskID":1,"addToMyCalendar":true}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTaskEvents(t *testing.T) {
	w := do(setupRouter(&fakeService{}, 0), http.MethodGet, "/api/v1/calendar-events", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"events":[{"taskID":1`)
}

func TestExport(t *testing.T) {
	w := do(setupRouter(&fakeService{}, 0), http.MethodPost, "/api/v1/calendar-event/1/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"taskID":1,"eventID":"evt-1"}`, w.Body.String())

	w = do(setupRouter(&fakeService{err: domain.ErrExportOff}, 0), http.MethodPost, "/api/v1/calendar-event/1/export", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(setupRouter(&fakeService{err: domain.ErrNoDates}, 0), http.MethodPost, "/api/v1/calendar-event/1/export", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUserEvents(t *testing.T) {
	w := do(setupRouter(&fakeService{}, 7), http.MethodGet, "/api/v1/user-calendar-events", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"events":[{
		"eventID":5,"taskID":null,"summary":"Standup","description":"",
		"start":{"date":"2024-02-01"},"end":{"date":null},
		"isTaskBased":false,"createdAt":"2024-01-30T08:00:00Z"}]}`, w.Body.String())

	w = do(setupRouter(&fakeService{}, 0), http.MethodGet, "/api/v1/user-calendar-events", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateUserEvent(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc, 7)

	w := do(r, http.MethodPost, "/api/v1/user-calendar-events",
		`{"eventTitle":" Review ","startDate":"2024-03-01","endDate":"2024-03-02"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"eventID":12`)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Review", svc.created.Title)
	assert.EqualValues(t, 7, svc.created.UserID)

	w = do(r, http.MethodPost, "/api/v1/user-calendar-events", `{"eventTitle":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Event title is required")

	w = do(r, http.MethodPost, "/api/v1/user-calendar-events", `{"eventTitle":"x","startDate":"March 1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid date format")
}

func TestUpdateUserEvent_Partial(t *testing.T) {
	svc := &fakeService{owner: 7}

	w := do(setupRouter(svc, 7), http.MethodPatch, "/api/v1/user-calendar-events/5", `{"eventDescription":"","endDate":"2024-03-09"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.patch)
	assert.Nil(t, svc.patch.Title)
	require.NotNil(t, svc.patch.Description)
	assert.Empty(t, *svc.patch.Description)
	assert.Nil(t, svc.patch.StartDate)
	assert.Equal(t, *day(2024, 3, 9), *svc.patch.EndDate)

	w = do(setupRouter(svc, 8), http.MethodPatch, "/api/v1/user-calendar-events/5", `{"eventTitle":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUserEvent(t *testing.T) {
	svc := &fakeService{owner: 7}

	w := do(setupRouter(svc, 7), http.MethodDelete, "/api/v1/user-calendar-events/5", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(setupRouter(svc, 8), http.MethodDelete, "/api/v1/user-calendar-events/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(setupRouter(svc, 7), http.MethodDelete, "/api/v1/user-calendar-events/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

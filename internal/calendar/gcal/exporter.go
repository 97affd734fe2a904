// Package gcal pushes shaped task events to a Google Calendar.
package gcal

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/planny/planny-backend/config"
	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/planning/calendar"
)

// Exporter inserts events into one calendar, throttled by a token bucket.
type Exporter struct {
	svc        *gcalendar.Service
	calendarID string
	limiter    *rate.Limiter
	log        *logrus.Entry
}

// New builds an Exporter from service-account credentials. Without a
// credentials path the client resolves application default credentials.
func New(ctx context.Context, cfg *config.CalendarConfig, log *logrus.Entry) (*Exporter, error) {
	opts, err := clientOptions(ctx, cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}

	svc, err := gcalendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("calendar.NewService: %w", err)
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), max(1, cfg.Burst))
	return NewWithService(svc, cfg.CalendarID, limiter, log), nil
}

func clientOptions(ctx context.Context, path string) ([]option.ClientOption, error) {
	if path == "" {
		return []option.ClientOption{option.WithScopes(gcalendar.CalendarEventsScope)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calendar credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, gcalendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("parse calendar credentials: %w", err)
	}
	return []option.ClientOption{option.WithCredentials(creds)}, nil
}

func NewWithService(svc *gcalendar.Service, calendarID string, limiter *rate.Limiter, log *logrus.Entry) *Exporter {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Exporter{svc: svc, calendarID: calendarID, limiter: limiter, log: log}
}

// Export inserts ev and returns the id Google assigned to it.
func (e *Exporter) Export(ctx context.Context, ev *calendar.Event) (string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", err
	}

	created, err := e.svc.Events.Insert(e.calendarID, ToAPI(ev)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"task_id":  ev.TaskID,
		"event_id": created.Id,
	}).Info("task exported to calendar")
	return created.Id, nil
}

// ToAPI converts ev to an all-day Google Calendar event. The API requires an
// end date, so events without one last a single day.
func ToAPI(ev *calendar.Event) *gcalendar.Event {
	end := plan.AddDays(ev.Start, 1)
	if ev.ExclusiveEnd != nil {
		end = *ev.ExclusiveEnd
	}

	out := &gcalendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       &gcalendar.EventDateTime{Date: plan.FormatDate(ev.Start)},
		End:         &gcalendar.EventDateTime{Date: plan.FormatDate(end)},
		ExtendedProperties: &gcalendar.EventExtendedProperties{
			Private: map[string]string{"taskID": strconv.FormatInt(ev.TaskID, 10)},
		},
	}
	for _, a := range ev.Attendees {
		out.Attendees = append(out.Attendees, &gcalendar.EventAttendee{
			Email:          a.Email,
			ResponseStatus: a.ResponseStatus,
		})
	}
	return out
}

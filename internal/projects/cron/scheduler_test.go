package cronjob

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	calls int
	n     int
	err   error
}

func (f *fakeRefresher) RefreshProgress(ctx context.Context) (int, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("missing deadline")
	}
	return f.n, f.err
}

func TestRunOnce_LogsOutcome(t *testing.T) {
	logger, hook := test.NewNullLogger()
	job := &fakeRefresher{n: 3}

	NewScheduler("", job, logrus.NewEntry(logger)).RunOnce()

	assert.Equal(t, 1, job.calls)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, 3, entry.Data["updated"])
}

func TestRunOnce_LogsFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	job := &fakeRefresher{err: errors.New("db down")}

	NewScheduler("", job, logrus.NewEntry(logger)).RunOnce()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "progress refresh failed", entry.Message)
}

func TestStart_RejectsBadSpec(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewScheduler("not a spec", &fakeRefresher{}, logrus.NewEntry(logger))

	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a spec")
}

func TestStartStop(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewScheduler(DefaultProgressSpec, &fakeRefresher{}, logrus.NewEntry(logger))

	require.NoError(t, s.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

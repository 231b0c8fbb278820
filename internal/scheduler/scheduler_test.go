package scheduler

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScheduler() *Scheduler {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewScheduler(nil, nil, log.WithField("component", "scheduler"))
}

func TestScheduleDailySyncRejectsBadCron(t *testing.T) {
	s := testScheduler()
	err := s.ScheduleDailySync("not a cron expression", 7)
	assert.Error(t, err)
}

func TestStartRequiresJobs(t *testing.T) {
	s := testScheduler()
	err := s.Start()
	assert.Error(t, err)
}

func TestSchedulerLifecycle(t *testing.T) {
	s := testScheduler()
	require.NoError(t, s.ScheduleDailySync("0 6 * * *", 7))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.False(t, s.NextRun().IsZero())

	// Starting twice is an error.
	assert.Error(t, s.Start())

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())

	// Stopping an idle scheduler is a no-op.
	require.NoError(t, s.Stop())
}

func TestCannotScheduleWhileRunning(t *testing.T) {
	s := testScheduler()
	require.NoError(t, s.ScheduleDailySync("0 6 * * *", 7))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Error(t, s.ScheduleDailySync("0 7 * * *", 7))
}

package utils

import (
	"context"
	"entrelaunch/logger"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloser struct {
	calls []time.Time
	n     int64
	err   error
}

func (f *fakeCloser) CloseExpiredCourses(_ context.Context, now time.Time) (int64, error) {
	f.calls = append(f.calls, now)
	return f.n, f.err
}

func TestRunCourseSweep(t *testing.T) {
	now := time.Date(2026, 5, 1, 1, 0, 0, 0, time.UTC)

	ok := &fakeCloser{n: 3}
	assert.Equal(t, int64(3), RunCourseSweep(context.Background(), ok, logger.Nop(), now))
	require.Len(t, ok.calls, 1)
	assert.Equal(t, now, ok.calls[0])

	failing := &fakeCloser{n: 7, err: errors.New("db down")}
	assert.Zero(t, RunCourseSweep(context.Background(), failing, logger.Nop(), now))
}

func TestInitializeCourseScheduler(t *testing.T) {
	_, err := InitializeCourseScheduler("not a spec", &fakeCloser{}, logger.Nop())
	assert.Error(t, err)

	c, err := InitializeCourseScheduler("0 1 * * *", &fakeCloser{}, logger.Nop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}

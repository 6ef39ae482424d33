package utils

import (
	"context"
	"entrelaunch/logger"
	"time"

	"github.com/robfig/cron/v3"
)

// CourseCloser closes courses whose end date has passed.
type CourseCloser interface {
	CloseExpiredCourses(ctx context.Context, now time.Time) (int64, error)
}

// InitializeCourseScheduler registers the expired-course sweep on the given cron
// spec and starts it. Callers stop it with Stop on the returned cron.
func InitializeCourseScheduler(spec string, closer CourseCloser, log *logger.Logger) (*cron.Cron, error) {
	log = log.With("component", "CourseScheduler")
	log.Info("[COURSE-SCHEDULER] Initializing course scheduler", "spec", spec)

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		RunCourseSweep(context.Background(), closer, log, time.Now().UTC())
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Info("[COURSE-SCHEDULER] Course scheduler started")
	return c, nil
}

// RunCourseSweep runs one pass of the sweep and returns how many courses were closed.
func RunCourseSweep(ctx context.Context, closer CourseCloser, log *logger.Logger, now time.Time) int64 {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	closed, err := closer.CloseExpiredCourses(ctx, now)
	if err != nil {
		log.Error("[COURSE-SCHEDULER] Error closing expired courses", "error", err)
		return 0
	}
	if closed > 0 {
		log.Info("[COURSE-SCHEDULER] Closed expired courses", "count", closed)
	}
	return closed
}

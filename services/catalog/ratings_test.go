package catalog

import (
	"context"
	"entrelaunch/cache"
	"entrelaunch/database/testutil"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func enroll(t *testing.T, db *gorm.DB, courseID, userID uint) {
	t.Helper()
	e := courseModels.Enrollment{CourseID: courseID, UserID: userID, EnrolledAt: time.Now(), IsActive: true}
	require.NoError(t, db.Create(&e).Error)
}

func TestRateCourse(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	course := testutil.SeedCourse(t, svc.db, nil)
	alice := testutil.SeedUser(t, svc.db, "alice@example.com")
	bob := testutil.SeedUser(t, svc.db, "bob@example.com")
	outsider := testutil.SeedUser(t, svc.db, "outsider@example.com")
	enroll(t, svc.db, course.ID, alice.ID)
	enroll(t, svc.db, course.ID, bob.ID)

	assert.Equal(t, result.Validation, svc.RateCourse(ctx, RatingCreate{CourseID: course.ID, UserID: alice.ID, Score: 6}).Kind())
	assert.Equal(t, result.Forbidden, svc.RateCourse(ctx, RatingCreate{CourseID: course.ID, UserID: outsider.ID, Score: 5}).Kind())

	require.True(t, svc.RateCourse(ctx, RatingCreate{CourseID: course.ID, UserID: alice.ID, Score: 2}).IsSuccess)
	require.True(t, svc.RateCourse(ctx, RatingCreate{CourseID: course.ID, UserID: alice.ID, Score: 4, Comment: "better"}).IsSuccess)
	require.True(t, svc.RateCourse(ctx, RatingCreate{CourseID: course.ID, UserID: bob.ID, Score: 5}).IsSuccess)

	var rows int64
	require.NoError(t, svc.db.Model(&courseModels.CourseRating{}).Count(&rows).Error)
	assert.Equal(t, int64(2), rows, "a user's second rating replaces the first")

	summary := svc.GetCourseRating(ctx, course.ID)
	require.True(t, summary.IsSuccess)
	assert.Equal(t, "4.5", summary.Data.Average.String())
	assert.Equal(t, int64(2), summary.Data.Count)
}

func TestGetCourseRatingWithoutRatings(t *testing.T) {
	svc := newService(t, nil)
	course := testutil.SeedCourse(t, svc.db, nil)

	res := svc.GetCourseRating(context.Background(), course.ID)
	require.True(t, res.IsSuccess)
	assert.True(t, res.Data.Average.IsZero())
	assert.Zero(t, res.Data.Count)

	assert.Equal(t, result.NotFound, svc.GetCourseRating(context.Background(), 999).Kind())
}

func TestGetCourseRatingUsesCache(t *testing.T) {
	mc := newMemCache()
	svc := newService(t, mc)
	ctx := context.Background()
	course := testutil.SeedCourse(t, svc.db, nil)
	user := testutil.SeedUser(t, svc.db, "cache@example.com")
	enroll(t, svc.db, course.ID, user.ID)
	require.True(t, svc.RateCourse(ctx, RatingCreate{CourseID: course.ID, UserID: user.ID, Score: 3}).IsSuccess)

	first := svc.GetCourseRating(ctx, course.ID)
	require.True(t, first.IsSuccess)
	assert.Equal(t, 0, mc.hits)
	assert.Contains(t, mc.items, cache.CourseRatingKey(course.ID))

	second := svc.GetCourseRating(ctx, course.ID)
	require.True(t, second.IsSuccess)
	assert.Equal(t, 1, mc.hits)
	assert.Equal(t, "3", second.Data.Average.String())

	// a new rating invalidates the cached summary
	require.True(t, svc.RateCourse(ctx, RatingCreate{CourseID: course.ID, UserID: user.ID, Score: 5}).IsSuccess)
	assert.NotContains(t, mc.items, cache.CourseRatingKey(course.ID))
	third := svc.GetCourseRating(ctx, course.ID)
	assert.Equal(t, "5", third.Data.Average.String())
}

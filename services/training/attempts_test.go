package training

import (
	"context"
	"entrelaunch/database/testutil"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answersFor picks the correct answer for the questions at the given indexes and the
// wrong one for every other question.
func answersFor(exam *courseModels.Exam, correct ...int) []SubmittedAnswer {
	right := make(map[int]bool, len(correct))
	for _, i := range correct {
		right[i] = true
	}
	out := make([]SubmittedAnswer, 0, len(exam.Questions))
	for i, q := range exam.Questions {
		pick := q.Answers[1].ID
		if right[i] {
			pick = q.Answers[0].ID
		}
		out = append(out, SubmittedAnswer{QuestionID: q.ID, AnswerID: pick})
	}
	return out
}

func TestRetakeNumbersAttemptsAndEnforcesLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db, nil)
	user := testutil.SeedUser(t, f.db, "attempts@example.com")
	exam := testutil.SeedExam(t, f.db, course.ID, 3, 5, 5)

	for want := 1; want <= 3; want++ {
		res := f.svc.Retake(ctx, RetakeRequest{ExamID: exam.ID, UserID: user.ID, Answers: answersFor(exam, 0), TimeTakenSeconds: 60})
		require.True(t, res.IsSuccess, res.Message)
		assert.Equal(t, want, res.Data.AttemptNumber)
		assert.True(t, res.Data.IsActive)
	}

	can := f.svc.CanRetake(ctx, exam.ID, user.ID)
	require.True(t, can.IsSuccess)
	assert.False(t, can.Data.CanRetake)
	assert.Equal(t, 3, can.Data.AttemptsUsed)

	res := f.svc.Retake(ctx, RetakeRequest{ExamID: exam.ID, UserID: user.ID, Answers: answersFor(exam, 0)})
	assert.False(t, res.IsSuccess)
	assert.Equal(t, result.BusinessRule, res.Kind())
	assert.Equal(t, MsgMaxAttempts, res.Message)

	var rows []courseModels.ExamResult
	require.NoError(t, f.db.Where("exam_id = ? AND user_id = ?", exam.ID, user.ID).Order("attempt_number").Find(&rows).Error)
	require.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, i+1, r.AttemptNumber)
	}
}

func TestRetakeKeepsSingleActiveAttempt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db, nil)
	user := testutil.SeedUser(t, f.db, "active@example.com")
	other := testutil.SeedUser(t, f.db, "other@example.com")
	exam := testutil.SeedExam(t, f.db, course.ID, 5, 2, 3, 5)

	require.True(t, f.svc.Retake(ctx, RetakeRequest{ExamID: exam.ID, UserID: other.ID, Answers: answersFor(exam)}).IsSuccess)
	var last *courseModels.ExamResult
	for i := 0; i < 3; i++ {
		res := f.svc.Retake(ctx, RetakeRequest{ExamID: exam.ID, UserID: user.ID, Answers: answersFor(exam, i)})
		require.True(t, res.IsSuccess, res.Message)
		last = res.Data
	}

	var active []courseModels.ExamResult
	require.NoError(t, f.db.Where("exam_id = ? AND user_id = ? AND is_active = ?", exam.ID, user.ID, true).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, last.ID, active[0].ID)

	got := f.svc.GetActiveResult(ctx, exam.ID, user.ID)
	require.True(t, got.IsSuccess)
	assert.Equal(t, 3, got.Data.AttemptNumber)
	assert.Equal(t, courseModels.ResultPassed, got.Data.Status)

	// another user's attempt is untouched
	theirs := f.svc.GetActiveResult(ctx, exam.ID, other.ID)
	require.True(t, theirs.IsSuccess)
	assert.Equal(t, courseModels.ResultFailed, theirs.Data.Status)
}

func TestGetAllAttemptsBestAttemptPrefersEarliestTie(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db, nil)
	user := testutil.SeedUser(t, f.db, "best@example.com")
	exam := testutil.SeedExam(t, f.db, course.ID, 3, 4, 6)

	for _, correct := range [][]int{{1}, {0}, {1}} {
		require.True(t, f.svc.Retake(ctx, RetakeRequest{ExamID: exam.ID, UserID: user.ID, Answers: answersFor(exam, correct...)}).IsSuccess)
	}

	res := f.svc.GetAllAttempts(ctx, exam.ID, user.ID)
	require.True(t, res.IsSuccess)
	require.Len(t, res.Data.Attempts, 3)
	require.NotNil(t, res.Data.BestAttempt)
	assert.Equal(t, 1, res.Data.BestAttempt.AttemptNumber)
	assert.False(t, res.Data.BestAttempt.IsActive)
}

func TestGetAllAttemptsEmpty(t *testing.T) {
	f := newFixture(t)
	res := f.svc.GetAllAttempts(context.Background(), 1, 1)
	require.True(t, res.IsSuccess)
	assert.Empty(t, res.Data.Attempts)
	assert.Nil(t, res.Data.BestAttempt)
}

func TestCanRetakeDefaultsToSingleAttempt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.db, nil)
	user := testutil.SeedUser(t, f.db, "default@example.com")
	exam := testutil.SeedExam(t, f.db, course.ID, 0, 1)
	require.NoError(t, f.db.Model(exam).Update("max_attempts", 0).Error)

	can := f.svc.CanRetake(ctx, exam.ID, user.ID)
	require.True(t, can.IsSuccess)
	assert.True(t, can.Data.CanRetake)
	assert.Equal(t, 1, can.Data.MaxAttempts)

	require.True(t, f.svc.Retake(ctx, RetakeRequest{ExamID: exam.ID, UserID: user.ID}).IsSuccess)
	assert.False(t, f.svc.CanRetake(ctx, exam.ID, user.ID).Data.CanRetake)
}

func TestGetActiveResultMissing(t *testing.T) {
	f := newFixture(t)
	res := f.svc.GetActiveResult(context.Background(), 1, 1)
	assert.Equal(t, result.NotFound, res.Kind())
	assert.Equal(t, MsgNoActiveResult, res.Message)
}

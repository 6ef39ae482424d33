package catalog

import (
	"context"
	"entrelaunch/database/testutil"
	"entrelaunch/services/result"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoChoice(mark int64, correctFirst bool) QuestionCreate {
	return QuestionCreate{
		Text: "Which one?",
		Mark: decimal.NewFromInt(mark),
		Answers: []AnswerCreate{
			{Text: "a", IsCorrect: correctFirst},
			{Text: "b", IsCorrect: !correctFirst},
		},
	}
}

func TestCreateExam(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	course := testutil.SeedCourse(t, svc.db, nil)

	res := svc.CreateExam(ctx, ExamCreate{
		CourseID:  &course.ID,
		Title:     "Midterm",
		Questions: []QuestionCreate{twoChoice(2, true), twoChoice(3, false)},
	})
	require.True(t, res.IsSuccess, res.Message)
	assert.Equal(t, "5", res.Data.MaxMark.String())
	assert.Equal(t, 1, res.Data.MaxAttempts)
	require.Len(t, res.Data.Questions, 2)
	assert.NotZero(t, res.Data.Questions[1].Answers[1].ID)
}

func TestCreateExamValidation(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	course := testutil.SeedCourse(t, svc.db, nil)
	path := svc.CreatePath(ctx, PathCreate{Title: "Founder track"})
	require.True(t, path.IsSuccess)

	noCorrect := twoChoice(1, true)
	noCorrect.Answers[0].IsCorrect = false
	twoCorrect := twoChoice(1, true)
	twoCorrect.Answers[1].IsCorrect = true
	oneAnswer := twoChoice(1, true)
	oneAnswer.Answers = oneAnswer.Answers[:1]
	var missing uint = 999

	tests := []struct {
		name string
		req  ExamCreate
		kind result.ErrorType
	}{
		{"no parent", ExamCreate{Questions: []QuestionCreate{twoChoice(1, true)}}, result.Validation},
		{"two parents", ExamCreate{CourseID: &course.ID, PathID: &path.Data.ID, Questions: []QuestionCreate{twoChoice(1, true)}}, result.Validation},
		{"no questions", ExamCreate{CourseID: &course.ID}, result.Validation},
		{"no correct answer", ExamCreate{CourseID: &course.ID, Questions: []QuestionCreate{noCorrect}}, result.Validation},
		{"two correct answers", ExamCreate{CourseID: &course.ID, Questions: []QuestionCreate{twoCorrect}}, result.Validation},
		{"single answer", ExamCreate{CourseID: &course.ID, Questions: []QuestionCreate{oneAnswer}}, result.Validation},
		{"zero mark", ExamCreate{CourseID: &course.ID, Questions: []QuestionCreate{twoChoice(0, true)}}, result.Validation},
		{"missing parent", ExamCreate{LessonID: &missing, Questions: []QuestionCreate{twoChoice(1, true)}}, result.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.CreateExam(ctx, tt.req)
			assert.False(t, res.IsSuccess)
			assert.Equal(t, tt.kind, res.Kind())
		})
	}

	ok := svc.CreateExam(ctx, ExamCreate{PathID: &path.Data.ID, Title: "Track", Questions: []QuestionCreate{twoChoice(1, true)}})
	assert.True(t, ok.IsSuccess, ok.Message)
}

func TestGetExamHidesCorrectAnswers(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	course := testutil.SeedCourse(t, svc.db, nil)
	created := svc.CreateExam(ctx, ExamCreate{CourseID: &course.ID, Title: "Quiz", Questions: []QuestionCreate{twoChoice(4, false)}})
	require.True(t, created.IsSuccess)

	student := svc.GetExam(ctx, created.Data.ID, false)
	require.True(t, student.IsSuccess)
	require.Len(t, student.Data.Questions, 1)
	for _, a := range student.Data.Questions[0].Answers {
		assert.Nil(t, a.IsCorrect)
	}

	admin := svc.GetExam(ctx, created.Data.ID, true)
	require.True(t, admin.IsSuccess)
	answers := admin.Data.Questions[0].Answers
	require.Len(t, answers, 2)
	require.NotNil(t, answers[1].IsCorrect)
	assert.True(t, *answers[1].IsCorrect)
	assert.False(t, *answers[0].IsCorrect)

	assert.Equal(t, result.NotFound, svc.GetExam(ctx, 404, false).Kind())
}

package courseValidator

import (
	"entrelaunch/validators"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExamCreateRequestNestedRules(t *testing.T) {
	req := ExamCreateRequest{
		Title: "Final",
		Questions: []QuestionRequest{
			{Text: "Q1", Mark: decimal.NewFromInt(1), Answers: []AnswerRequest{{Text: "only"}}},
		},
	}
	errs := validators.Struct(&req)
	assert.Contains(t, errs, "questions[0].answers")

	req.Questions[0].Answers = append(req.Questions[0].Answers, AnswerRequest{Text: "", IsCorrect: true})
	errs = validators.Struct(&req)
	assert.Contains(t, errs, "questions[0].answers[1].text")
}

func TestRateAndStatusRequests(t *testing.T) {
	assert.Contains(t, validators.Struct(&RateRequest{Score: 6}), "score")
	assert.Contains(t, validators.Struct(&RateRequest{}), "score")
	assert.Empty(t, validators.Struct(&RateRequest{Score: 5, Comment: "great"}))

	assert.Contains(t, validators.Struct(&CourseStatusRequest{Status: "LIVE"}), "status")
	assert.Empty(t, validators.Struct(&CourseStatusRequest{Status: "CLOSED"}))

	assert.Contains(t, validators.Struct(&RefundResolveRequest{}), "approve")
	no := false
	assert.Empty(t, validators.Struct(&RefundResolveRequest{Approve: &no}))
}

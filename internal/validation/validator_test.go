package validation

import (
	"strings"
	"testing"

	"quizforge/internal/dto"

	"github.com/stretchr/testify/assert"
)

func validGenerateRequest() *dto.GenerateQuizRequest {
	return &dto.GenerateQuizRequest{
		Grade:          3,
		Subject:        "Mathematics",
		TotalQuestions: 10,
		PointsStrategy: dto.PointsStrategy{Easy: 1, Medium: 2, Hard: 3},
	}
}

func TestValidateGenerateQuizRequest(t *testing.T) {
	v := NewValidator(5, 30)

	assert.Empty(t, v.ValidateGenerateQuizRequest(validGenerateRequest()))

	req := validGenerateRequest()
	req.Grade = 0
	assert.NotEmpty(t, v.ValidateGenerateQuizRequest(req))

	req = validGenerateRequest()
	req.Subject = "  "
	assert.NotEmpty(t, v.ValidateGenerateQuizRequest(req))

	req = validGenerateRequest()
	req.TotalQuestions = 4
	assert.NotEmpty(t, v.ValidateGenerateQuizRequest(req))

	req = validGenerateRequest()
	req.TotalQuestions = 31
	assert.NotEmpty(t, v.ValidateGenerateQuizRequest(req))

	req = validGenerateRequest()
	req.PointsStrategy.Hard = 0
	assert.NotEmpty(t, v.ValidateGenerateQuizRequest(req))
}

func TestValidateEvaluateQuizRequest(t *testing.T) {
	v := NewValidator(5, 30)

	valid := &dto.EvaluateQuizRequest{QuizID: "01HQUIZ0000000000000000000", Answers: []string{"A", "B"}}
	assert.Empty(t, v.ValidateEvaluateQuizRequest(valid))

	assert.NotEmpty(t, v.ValidateEvaluateQuizRequest(&dto.EvaluateQuizRequest{Answers: []string{"A"}}))
	assert.NotEmpty(t, v.ValidateEvaluateQuizRequest(&dto.EvaluateQuizRequest{QuizID: "id"}))

	oversized := &dto.EvaluateQuizRequest{QuizID: "id", Answers: []string{strings.Repeat("x", 600)}}
	assert.NotEmpty(t, v.ValidateEvaluateQuizRequest(oversized))
}

func TestValidateHintRequest(t *testing.T) {
	v := NewValidator(5, 30)

	assert.Empty(t, v.ValidateHintRequest(&dto.HintRequest{Question: "What is 2 + 3?"}))
	assert.NotEmpty(t, v.ValidateHintRequest(&dto.HintRequest{Question: ""}))
	assert.NotEmpty(t, v.ValidateHintRequest(&dto.HintRequest{Question: strings.Repeat("x", 2001)}))
}

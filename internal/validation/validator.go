package validation

import (
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
)

const (
	minGrade          = 1
	maxGrade          = 12
	maxSubjectLength  = 100
	maxQuestionLength = 2000
	maxAnswerLength   = 500
)

// Validator provides request validation functionality.
type Validator struct {
	minQuestions int
	maxQuestions int
}

// NewValidator creates a new validator instance with the configured
// question count bounds.
func NewValidator(minQuestions, maxQuestions int) *Validator {
	return &Validator{
		minQuestions: minQuestions,
		maxQuestions: maxQuestions,
	}
}

// ValidateGenerateQuizRequest validates the quiz generation request.
func (v *Validator) ValidateGenerateQuizRequest(req *dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Grade < minGrade || req.Grade > maxGrade {
		errors = append(errors, domain.NewOutOfRangeError("grade", req.Grade, minGrade, maxGrade))
	}

	if strings.TrimSpace(req.Subject) == "" {
		errors = append(errors, domain.NewMissingFieldError("subject"))
	} else if len(req.Subject) > maxSubjectLength {
		errors = append(errors, domain.NewOutOfRangeError("subject", len(req.Subject), 1, maxSubjectLength))
	}

	if req.TotalQuestions < v.minQuestions || req.TotalQuestions > v.maxQuestions {
		errors = append(errors, domain.NewOutOfRangeError("total_questions", req.TotalQuestions, v.minQuestions, v.maxQuestions))
	}

	for field, value := range map[string]float64{
		"points_strategy.easy":   req.PointsStrategy.Easy,
		"points_strategy.medium": req.PointsStrategy.Medium,
		"points_strategy.hard":   req.PointsStrategy.Hard,
	} {
		if value <= 0 {
			errors = append(errors, domain.ValidationError{
				Field:   field,
				Value:   value,
				Message: "must be positive",
			})
		}
	}

	return errors
}

// ValidateEvaluateQuizRequest validates the quiz evaluation request.
func (v *Validator) ValidateEvaluateQuizRequest(req *dto.EvaluateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.QuizID) == "" {
		errors = append(errors, domain.NewMissingFieldError("quiz_id"))
	}
	if len(req.Answers) == 0 {
		errors = append(errors, domain.NewMissingFieldError("user_answers"))
	}
	for _, answer := range req.Answers {
		if len(answer) > maxAnswerLength {
			errors = append(errors, domain.NewOutOfRangeError("user_answers", len(answer), 0, maxAnswerLength))
			break
		}
	}

	return errors
}

// ValidateHintRequest validates the hint request.
func (v *Validator) ValidateHintRequest(req *dto.HintRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Question) == "" {
		errors = append(errors, domain.NewMissingFieldError("question"))
	} else if len(req.Question) > maxQuestionLength {
		errors = append(errors, domain.NewOutOfRangeError("question", len(req.Question), 1, maxQuestionLength))
	}

	return errors
}

package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"

	// Quiz specific errors
	ErrQuizNotFound    ErrorCode = "QUIZ_NOT_FOUND"
	ErrInputMismatch   ErrorCode = "INPUT_MISMATCH"
	ErrValidation      ErrorCode = "VALIDATION_ERROR"
	ErrProviderTimeout ErrorCode = "PROVIDER_TIMEOUT"
	ErrProviderError   ErrorCode = "PROVIDER_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"details,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(ErrQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

// NewValidationError marks a provider response that failed schema checks.
func NewValidationError(message string) *DomainError {
	return NewError(ErrValidation, message, nil)
}

// NewProviderTimeoutError marks a provider call that exceeded its deadline.
func NewProviderTimeoutError(err error) *DomainError {
	return NewError(ErrProviderTimeout, "Content provider call timed out", err)
}

func NewProviderError(err error) *DomainError {
	return NewError(ErrProviderError, "Content provider request failed", err)
}

// NewInputMismatchError reports an answer/question count mismatch with
// enough detail for the caller to correct the request.
func NewInputMismatchError(expected, provided int) *DomainError {
	return &DomainError{
		Code:    ErrInputMismatch,
		Message: "Number of answers does not match number of questions",
		Context: map[string]interface{}{
			"questions_expected": expected,
			"answers_provided":   provided,
		},
	}
}

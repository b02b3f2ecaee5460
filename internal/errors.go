package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation          ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound            ErrorType = "NOT_FOUND"
	ErrorTypeConflict            ErrorType = "CONFLICT"
	ErrorTypeInsufficientBalance ErrorType = "INSUFFICIENT_BALANCE"
	ErrorTypeUnauthorized        ErrorType = "UNAUTHORIZED"
	ErrorTypeInternal            ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidFrequency ErrorCode = "INVALID_FREQUENCY"

	ErrCodeEmployeeNotFound   ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeAssignmentNotFound ErrorCode = "ASSIGNMENT_NOT_FOUND"

	ErrCodeAdvanceNotFound      ErrorCode = "ADVANCE_NOT_FOUND"
	ErrCodeInvalidAdvanceStatus ErrorCode = "INVALID_ADVANCE_STATUS"
	ErrCodeInsufficientBalance  ErrorCode = "INSUFFICIENT_BALANCE"

	ErrCodeIncrementNotFound      ErrorCode = "INCREMENT_NOT_FOUND"
	ErrCodeInvalidIncrementStatus ErrorCode = "INVALID_INCREMENT_STATUS"
	ErrCodeInvalidIncrementType   ErrorCode = "INVALID_INCREMENT_TYPE"

	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Messages() string {
	messages := make([]string, len(v.Errors))
	for i, err := range v.Errors {
		messages[i] = err.Message
	}
	return strings.Join(messages, "; ")
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewStateConflictError marks an operation that is invalid for the entity's
// current status, e.g. approving an advance that is not pending.
func NewStateConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewInsufficientBalanceError marks a deduction or repayment that exceeds an
// advance's remaining balance.
func NewInsufficientBalanceError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInsufficientBalance,
		Code:       ErrCodeInsufficientBalance,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrEmployeeNotFound   = NewNotFoundError("Employee not found", ErrCodeEmployeeNotFound)
	ErrAssignmentNotFound = NewNotFoundError("Assignment not found", ErrCodeAssignmentNotFound)

	ErrAdvanceNotFound      = NewNotFoundError("Advance not found", ErrCodeAdvanceNotFound)
	ErrInvalidAdvanceStatus = NewStateConflictError("advance status does not allow this operation", ErrCodeInvalidAdvanceStatus)
	ErrInsufficientBalance  = NewInsufficientBalanceError("amount exceeds remaining balance")

	ErrIncrementNotFound      = NewNotFoundError("Salary increment not found", ErrCodeIncrementNotFound)
	ErrInvalidIncrementStatus = NewStateConflictError("salary increment status does not allow this operation", ErrCodeInvalidIncrementStatus)

	ErrInvalidToken = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "VALIDATION_ERROR"
	ErrorTypePolicy         ErrorType = "POLICY_VIOLATION"
	ErrorTypeNotFound       ErrorType = "NOT_FOUND"
	ErrorTypeAuth           ErrorType = "AUTH_ERROR"
	ErrorTypeConflict       ErrorType = "CONFLICT"
	ErrorTypeTransientStore ErrorType = "TRANSIENT_STORE_ERROR"
	ErrorTypeInternal       ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"

	// Workflow guard reasons. Each guard failure carries exactly one of
	// these so callers can render an exact message.
	ErrCodeNotOwner         ErrorCode = "NOT_OWNER"
	ErrCodeNotPending       ErrorCode = "NOT_PENDING"
	ErrCodeInsufficientRole ErrorCode = "INSUFFICIENT_ROLE"
	ErrCodeInvalidTimeRange ErrorCode = "INVALID_TIME_RANGE"
	ErrCodeUnknownType      ErrorCode = "UNKNOWN_TYPE"

	ErrCodeExtraHourNotFound ErrorCode = "EXTRA_HOUR_NOT_FOUND"
	ErrCodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	ErrCodeTypeNotFound      ErrorCode = "TYPE_NOT_FOUND"
	ErrCodeApprovalNotFound  ErrorCode = "APPROVAL_NOT_FOUND"
	ErrCodeDeptNotFound      ErrorCode = "DEPARTMENT_NOT_FOUND"
	ErrCodeDuplicateType     ErrorCode = "DUPLICATE_TYPE_NAME"
	ErrCodeDuplicateEmail    ErrorCode = "DUPLICATE_EMAIL"
	ErrCodeProtectedUser     ErrorCode = "PROTECTED_USER"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	ErrCodeStoreTimeout ErrorCode = "STORE_TIMEOUT"
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
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// Retryable reports whether the caller may safely retry the operation.
func (e *AppError) Retryable() bool {
	return e.Type == ErrorTypeTransientStore
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
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

// NewPolicyViolation builds a guard-failure error. The HTTP class depends on
// the reason: state conflicts are 409, input reasons caught before
// persistence are 400, everything else in the guard family is 403.
func NewPolicyViolation(message string, code ErrorCode) *AppError {
	status := http.StatusForbidden
	switch code {
	case ErrCodeNotPending:
		status = http.StatusConflict
	case ErrCodeInvalidTimeRange, ErrCodeUnknownType:
		status = http.StatusBadRequest
	}
	return &AppError{
		Type:       ErrorTypePolicy,
		Code:       code,
		Message:    message,
		StatusCode: status,
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

// NewAuthError is deliberately uniform: credential failures never disclose
// whether the email exists, token failures never disclose which validation
// step rejected the token.
func NewAuthError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeAuth,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewTransientStoreError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTransientStore,
		Code:       ErrCodeStoreTimeout,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
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
	ErrExtraHourNotFound = NewNotFoundError("extra hour request not found", ErrCodeExtraHourNotFound)
	ErrUserNotFound      = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrTypeNotFound      = NewNotFoundError("extra hour type not found", ErrCodeTypeNotFound)
	ErrApprovalNotFound  = NewNotFoundError("approval record not found", ErrCodeApprovalNotFound)
	ErrDeptNotFound      = NewNotFoundError("department not found", ErrCodeDeptNotFound)

	ErrNotOwner         = NewPolicyViolation("only the claimant may modify this request", ErrCodeNotOwner)
	ErrNotPending       = NewPolicyViolation("request is no longer pending", ErrCodeNotPending)
	ErrInsufficientRole = NewPolicyViolation("administrator role required", ErrCodeInsufficientRole)
	ErrInvalidTimeRange = NewPolicyViolation("end time must be after start time", ErrCodeInvalidTimeRange)
	ErrUnknownType      = NewPolicyViolation("unknown extra hour type", ErrCodeUnknownType)
	ErrProtectedUser    = NewPolicyViolation("the principal administrator cannot be deleted", ErrCodeProtectedUser)

	ErrDuplicateType  = NewConflictError("an extra hour type with this name already exists", ErrCodeDuplicateType)
	ErrDuplicateEmail = NewConflictError("a user with this email already exists", ErrCodeDuplicateEmail)

	ErrInvalidCredentials = NewAuthError("invalid email or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewAuthError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewAuthError("token has expired", ErrCodeTokenExpired)
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

package services

import "fmt"

// Stable error codes surfaced to the presentation layer so user-correctable
// conditions render distinct messages.
const (
	CodeForbiddenFileType   = "forbidden_file_type"
	CodeQuotaExceeded       = "quota_exceeded"
	CodeInvalidName         = "invalid_name"
	CodeInvalidPath         = "invalid_path"
	CodeNotFound            = "not_found"
	CodePathTraversal       = "path_traversal"
	CodeCapacityUnavailable = "capacity_unavailable"
	CodeAlreadyPremium      = "already_premium"
	CodeNotPremium          = "not_premium"
	CodeInternal            = "internal_error"
)

type AppError struct {
	HTTPCode int
	Code     string
	Message  string
	Data     interface{}
	Err      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newAppError(httpCode int, code string, message string, err error) *AppError {
	return &AppError{HTTPCode: httpCode, Code: code, Message: message, Err: err}
}

func newAppErrorWithData(httpCode int, code string, message string, data interface{}, err error) *AppError {
	return &AppError{HTTPCode: httpCode, Code: code, Message: message, Data: data, Err: err}
}

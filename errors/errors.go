package errors

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// AppError là custom error type cho application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the raw cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrPermissionDenied(action string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_PERMISSION_DENIED,
		Message:  fmt.Sprintf("Permission denied: %s", action),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Remote API Errors

// ErrNetwork wraps a transport failure: the request never produced a response.
func ErrNetwork(method, path string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_NETWORK,
		Message:   "Unable to reach the SmartSpace API",
		Timestamp: time.Now(),
	}.WithDetail("method", method).WithDetail("path", path)
}

// ErrHTTPStatus builds an error from a non-2xx API response. The message is
// taken from the structured body when one is recognised.
func ErrHTTPStatus(method, path string, status int, body []byte) AppError {
	msg := ExtractMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return AppError{
		HTTPCode:  status,
		Code:      ErrorCode_HTTP_STATUS,
		Message:   msg,
		Timestamp: time.Now(),
	}.WithDetail("method", method).
		WithDetail("path", path).
		WithDetail("status", fmt.Sprintf("%d", status))
}

func ErrDecodeFailed(path string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_DECODE_FAILED,
		Message:  "Unexpected response from the SmartSpace API",
	}.WithDetail("path", path)
}

// Session Errors
func ErrNoSession() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_NO_SESSION,
		Message:  "Not signed in",
	}
}

func ErrNotAdmin() AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_AUTH_NOT_ADMIN,
		Message:  "Administrator role required",
	}
}

// Meeting Errors
func ErrMeetingNotFound(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MEETING_NOT_FOUND,
		Message:  "Meeting not found",
	}.WithDetail("meeting_id", meetingID)
}

func ErrNotOrganizer() AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_MEETING_NOT_ORGANIZER,
		Message:  "Only the organizer can do this",
	}
}

func ErrPaginationBoundary(section, direction string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_PAGINATION_BOUNDARY,
		Message:  fmt.Sprintf("No %s page", direction),
	}.WithDetail("section", section)
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:  fmt.Sprintf("Cache operation failed: %s", operation),
	}
}

func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("query", query)
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var appErr AppError
	return stdErrors.As(err, &appErr) && appErr.Code == ErrorCode_NETWORK
}

// StatusOf returns the HTTP status carried by an API error, or 0.
func StatusOf(err error) int {
	var appErr AppError
	if stdErrors.As(err, &appErr) && appErr.Code == ErrorCode_HTTP_STATUS {
		return appErr.HTTPCode
	}
	return 0
}

// ExtractMessage pulls a human-readable message out of an API error body.
// Recognised shapes: {"message": ...}, {"title": ...}, {"errors": [...]},
// {"errors": {"field": [...]}} and [{"code": ..., "description": ...}].
func ExtractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal(body, &items); err == nil {
			parts := make([]string, 0, len(items))
			for _, it := range items {
				if it.Description != "" {
					parts = append(parts, it.Description)
				} else if it.Code != "" {
					parts = append(parts, it.Code)
				}
			}
			return strings.Join(parts, "; ")
		}
		return trimmed
	}

	if strings.HasPrefix(trimmed, "{") {
		var obj struct {
			Message string          `json:"message"`
			Title   string          `json:"title"`
			Errors  json.RawMessage `json:"errors"`
		}
		if err := json.Unmarshal(body, &obj); err != nil {
			return trimmed
		}
		if obj.Message != "" {
			return obj.Message
		}
		if msg := errorsFieldMessage(obj.Errors); msg != "" {
			return msg
		}
		return obj.Title
	}

	return trimmed
}

func errorsFieldMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}

	var byField map[string][]string
	if err := json.Unmarshal(raw, &byField); err == nil {
		fields := make([]string, 0, len(byField))
		for f := range byField {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		var parts []string
		for _, f := range fields {
			parts = append(parts, byField[f]...)
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

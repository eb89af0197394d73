package errors

// ErrorCode classifies an AppError independently of the HTTP status.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1007

	// Remote API
	ErrorCode_NETWORK       ErrorCode = 2000
	ErrorCode_HTTP_STATUS   ErrorCode = 2001
	ErrorCode_DECODE_FAILED ErrorCode = 2002

	// Session
	ErrorCode_AUTH_INVALID_CREDENTIALS ErrorCode = 3000
	ErrorCode_AUTH_NO_SESSION          ErrorCode = 3001
	ErrorCode_AUTH_NOT_ADMIN           ErrorCode = 3002

	// Meetings
	ErrorCode_MEETING_NOT_FOUND     ErrorCode = 4000
	ErrorCode_MEETING_NOT_ORGANIZER ErrorCode = 4001
	ErrorCode_PAGINATION_BOUNDARY   ErrorCode = 4002

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 5000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 5001
	ErrorCode_INTEGRATION_QUEUE_FAILED   ErrorCode = 5002
	ErrorCode_DB_QUERY_FAILED            ErrorCode = 5003
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                  "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_NETWORK:                    "NETWORK",
	ErrorCode_HTTP_STATUS:                "HTTP_STATUS",
	ErrorCode_DECODE_FAILED:              "DECODE_FAILED",
	ErrorCode_AUTH_INVALID_CREDENTIALS:   "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_NO_SESSION:            "AUTH_NO_SESSION",
	ErrorCode_AUTH_NOT_ADMIN:             "AUTH_NOT_ADMIN",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_NOT_ORGANIZER:      "MEETING_NOT_ORGANIZER",
	ErrorCode_PAGINATION_BOUNDARY:        "PAGINATION_BOUNDARY",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_QUEUE_FAILED:   "INTEGRATION_QUEUE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText lets codes render as names in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

package entity

import "fmt"

// Error codes reported by the remote crawler service.
const (
	ErrCodeInvalidInput          = "InvalidInputException"
	ErrCodeAlreadyExists         = "AlreadyExistsException"
	ErrCodeOperationTimeout      = "OperationTimeoutException"
	ErrCodeResourceLimitExceeded = "ResourceNumberLimitExceededException"
	ErrCodeEntityNotFound        = "EntityNotFoundException"
	ErrCodeVersionMismatch       = "VersionMismatchException"
	ErrCodeCrawlerRunning        = "CrawlerRunningException"
	ErrCodeCrawlerNotRunning     = "CrawlerNotRunningException"
	ErrCodeCrawlerStopping       = "CrawlerStoppingException"
)

// ResponseMetadata describes the HTTP exchange behind a remote call.
type ResponseMetadata struct {
	HTTPStatusCode int    `json:"HTTPStatusCode"`
	RequestID      string `json:"RequestId,omitempty"`
}

// RemoteResult is a remote call that returned without raising.
type RemoteResult struct {
	Metadata ResponseMetadata
	// Payload is the remote response body, ResponseMetadata included.
	Payload map[string]any
}

// ErrorDetail is the structured part of a remote service error.
type ErrorDetail struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// RemoteError is a service-level error raised by the remote crawler API.
type RemoteError struct {
	Code       string
	Message    string
	StatusCode int
	RequestID  string
	Err        error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error %s (status %d): %s", e.Code, e.StatusCode, e.Message)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Detail() ErrorDetail {
	return ErrorDetail{Code: e.Code, Message: e.Message}
}

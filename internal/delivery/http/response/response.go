package response

import (
	"net/http"

	"github.com/user/glue-crawler-service/internal/entity"
)

const (
	defaultErrorMessage     = "Something wrong"
	defaultExceptionMessage = "Unhandled Exception"
)

// SuccessResponse is returned when the remote call succeeded with status 200.
type SuccessResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    any  `json:"data"`
}

// ErrorResponse is returned when the remote call returned a non-200 status without raising.
type ErrorResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Message any  `json:"message"`
}

// ExceptionResponse is returned when the remote call raised.
type ExceptionResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Message any  `json:"message"`
}

// NewSuccess defaults status to 200.
func NewSuccess(status int, data any) SuccessResponse {
	if status == 0 {
		status = http.StatusOK
	}
	return SuccessResponse{Success: true, Status: status, Data: data}
}

// NewError defaults status to 404 and message to a generic one.
func NewError(status int, message any) ErrorResponse {
	if status == 0 {
		status = http.StatusNotFound
	}
	if message == nil {
		message = map[string]string{"message": defaultErrorMessage}
	}
	return ErrorResponse{Success: false, Status: status, Message: message}
}

// NewException defaults status to 404 and message to a generic one.
func NewException(status int, message any) ExceptionResponse {
	if status == 0 {
		status = http.StatusNotFound
	}
	if message == nil {
		message = map[string]string{"message": defaultExceptionMessage}
	}
	return ExceptionResponse{Success: false, Status: status, Message: message}
}

// FromOutcome renders an operation outcome as its envelope.
func FromOutcome(o entity.Outcome) any {
	switch o.Kind {
	case entity.OutcomeSuccess:
		return NewSuccess(o.Status, o.Data)
	case entity.OutcomeDomainError:
		return NewError(o.Status, o.Message)
	default:
		return NewException(o.Status, o.Message)
	}
}

package entity

import "net/http"

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	// OutcomeDomainError: the call returned, but with a non-200 status.
	OutcomeDomainError
	// OutcomeException: the call raised.
	OutcomeException
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeDomainError:
		return "domain_error"
	case OutcomeException:
		return "exception"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of a single crawler operation.
// A zero Status or nil Message means "use the envelope default".
type Outcome struct {
	Kind    OutcomeKind
	Status  int
	Data    any
	Message any
}

func Success(status int, data any) Outcome {
	return Outcome{Kind: OutcomeSuccess, Status: status, Data: data}
}

func DomainError(status int, message any) Outcome {
	return Outcome{Kind: OutcomeDomainError, Status: status, Message: message}
}

func Exception(status int, message any) Outcome {
	return Outcome{Kind: OutcomeException, Status: status, Message: message}
}

// UnhandledException is the catch-all for faults no table entry covers.
func UnhandledException() Outcome {
	return Outcome{Kind: OutcomeException}
}

// IsOK reports whether a remote status counts as success.
func IsOK(status int) bool {
	return status == http.StatusOK
}

package upstream

import (
	"errors"
	"fmt"

	"everypolitician/pkg/platform/sentinel"
)

// Category is the normalized failure taxonomy for upstream calls.
type Category string

const (
	// CategoryTimeout means the backend took too long to respond.
	CategoryTimeout Category = "timeout"
	// CategoryBadData means the backend answered with undecodable data.
	CategoryBadData Category = "bad_data"
	// CategoryAuthentication means the API token was rejected.
	CategoryAuthentication Category = "authentication"
	// CategoryOutage means the backend is unreachable or failing.
	CategoryOutage Category = "outage"
	// CategoryNotFound means the requested record does not exist.
	CategoryNotFound Category = "not_found"
	// CategoryRateLimited means too many requests.
	CategoryRateLimited Category = "rate_limited"
	// CategoryInternal means a bug on our side, such as an unbuildable URL.
	CategoryInternal Category = "internal"
)

// Error wraps upstream failures with normalized categorization.
type Error struct {
	Category   Category
	Endpoint   string
	Status     int
	Message    string
	Underlying error
	Retryable  bool
}

func (e *Error) Error() string {
	prefix := fmt.Sprintf("upstream %s [%s]", e.Endpoint, e.Category)
	if e.Status != 0 {
		prefix = fmt.Sprintf("%s status %d", prefix, e.Status)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is maps categories onto the infrastructure sentinels so services can
// branch with errors.Is without knowing about this package.
func (e *Error) Is(target error) bool {
	switch target {
	case sentinel.ErrNotFound:
		return e.Category == CategoryNotFound
	case sentinel.ErrUnavailable:
		return e.Category == CategoryOutage || e.Category == CategoryTimeout || e.Category == CategoryRateLimited
	case sentinel.ErrMalformed:
		return e.Category == CategoryBadData
	}
	return false
}

// NewError creates a normalized upstream error.
func NewError(category Category, endpoint, message string, underlying error) *Error {
	return &Error{
		Category:   category,
		Endpoint:   endpoint,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == CategoryTimeout || category == CategoryOutage || category == CategoryRateLimited,
	}
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or CategoryInternal.
func GetCategory(err error) Category {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Category
	}
	return CategoryInternal
}

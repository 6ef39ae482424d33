// Package result is the success/failure envelope every service operation returns.
// Expected business-rule failures travel in the envelope, never as Go errors.
package result

// ErrorType classifies a failed operation.
type ErrorType string

const (
	NotFound     ErrorType = "NOT_FOUND"
	BusinessRule ErrorType = "BUSINESS_RULE"
	Conflict     ErrorType = "CONFLICT"
	Validation   ErrorType = "VALIDATION"
	Unauthorized ErrorType = "UNAUTHORIZED"
	Forbidden    ErrorType = "FORBIDDEN"
	Internal     ErrorType = "INTERNAL"
)

// Result carries the outcome of an operation and its payload.
type Result[T any] struct {
	IsSuccess bool
	Message   string
	Data      T
	ErrorType *ErrorType
}

// Envelope is the untyped form of a Result, rendered as the HTTP response body.
type Envelope struct {
	IsSuccess bool       `json:"isSuccess"`
	Message   string     `json:"message"`
	Data      any        `json:"data"`
	ErrorType *ErrorType `json:"errorType"`
}

func Ok[T any](message string, data T) Result[T] {
	return Result[T]{IsSuccess: true, Message: message, Data: data}
}

func Fail[T any](kind ErrorType, message string) Result[T] {
	k := kind
	return Result[T]{IsSuccess: false, Message: message, ErrorType: &k}
}

// Kind returns the error type, or "" for a success.
func (r Result[T]) Kind() ErrorType {
	if r.ErrorType == nil {
		return ""
	}
	return *r.ErrorType
}

func (r Result[T]) Envelope() Envelope {
	env := Envelope{IsSuccess: r.IsSuccess, Message: r.Message, ErrorType: r.ErrorType}
	if r.IsSuccess {
		env.Data = r.Data
	}
	return env
}

// Page is a paginated slice.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// Offset converts a 1-based page into a row offset, normalising bad input.
func Offset(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return (page - 1) * limit, page, limit
}

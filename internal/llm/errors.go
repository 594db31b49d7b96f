package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrOverloaded marks a temporary "model busy" condition worth retrying.
var ErrOverloaded = errors.New("model is overloaded")

// APICallError represents a failed call to the model API
type APICallError struct {
	Model   string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s (model %s)", e.Message, e.Model)
	}
	return fmt.Sprintf("%s (model %s): %v", e.Message, e.Model, e.Cause)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// IsOverloaded reports whether err is the service-unavailable condition
// (HTTP 503 / gRPC Unavailable) that the report generator retries.
func IsOverloaded(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrOverloaded) {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusServiceUnavailable {
		return true
	}

	if status.Code(err) == codes.Unavailable {
		return true
	}

	// Some transports only surface the status in the message text
	return strings.Contains(err.Error(), "503")
}

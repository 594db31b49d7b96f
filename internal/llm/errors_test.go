package llm

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsOverloaded(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sentinel", err: ErrOverloaded, want: true},
		{name: "wrapped sentinel", err: fmt.Errorf("call: %w", ErrOverloaded), want: true},
		{name: "googleapi 503", err: &googleapi.Error{Code: http.StatusServiceUnavailable}, want: true},
		{
			name: "googleapi 503 inside APICallError",
			err:  &APICallError{Model: "m", Message: "failed", Cause: &googleapi.Error{Code: http.StatusServiceUnavailable}},
			want: true,
		},
		{name: "googleapi 400", err: &googleapi.Error{Code: http.StatusBadRequest, Message: "bad request"}, want: false},
		{name: "grpc unavailable", err: status.Error(codes.Unavailable, "try later"), want: true},
		{name: "grpc invalid argument", err: status.Error(codes.InvalidArgument, "nope"), want: false},
		{name: "message text", err: errors.New("[503 Service Unavailable] busy"), want: true},
		{name: "unrelated", err: errors.New("invalid API key"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverloaded(tt.err))
		})
	}
}

func TestAPICallError(t *testing.T) {
	cause := errors.New("boom")
	err := &APICallError{Model: "gemini-2.5-flash", Message: "failed to generate content", Cause: cause}

	assert.Equal(t, "failed to generate content (model gemini-2.5-flash): boom", err.Error())
	assert.ErrorIs(t, err, cause)

	var target *APICallError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, "gemini-2.5-flash", target.Model)
}

func TestAPICallError_NoCause(t *testing.T) {
	err := &APICallError{Model: "m", Message: "empty response"}
	assert.Equal(t, "empty response (model m)", err.Error())
	assert.Nil(t, err.Unwrap())
}

package orclient

import (
	"fmt"
	"testing"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         *APIError
		expectedMsg string
		isRetryable bool
		isRateLimit bool
		isAuthError bool
	}{
		{
			name: "basic error",
			err: &APIError{
				StatusCode: 400,
				Message:    "Bad request",
			},
			expectedMsg: "API error 400: Bad request",
		},
		{
			name: "error with code",
			err: &APIError{
				StatusCode: 403,
				Message:    "Forbidden",
				Code:       "insufficient_permissions",
			},
			expectedMsg: "API error 403 (insufficient_permissions): Forbidden",
		},
		{
			name: "numeric code equal to status",
			err: &APIError{
				StatusCode: 402,
				Message:    "Insufficient credits",
				Code:       "402",
			},
			expectedMsg: "API error 402: Insufficient credits",
		},
		{
			name: "server error",
			err: &APIError{
				StatusCode: 500,
				Message:    "Internal server error",
			},
			expectedMsg: "API error 500: Internal server error",
			isRetryable: true,
		},
		{
			name: "rate limit error",
			err: &APIError{
				StatusCode: 429,
				Message:    "Too many requests",
				Code:       "rate_limit_exceeded",
			},
			expectedMsg: "API error 429 (rate_limit_exceeded): Too many requests",
			isRetryable: true,
			isRateLimit: true,
		},
		{
			name: "auth error",
			err: &APIError{
				StatusCode: 401,
				Message:    "Invalid API key",
				Code:       "invalid_api_key",
			},
			expectedMsg: "API error 401 (invalid_api_key): Invalid API key",
			isAuthError: true,
		},
		{
			name: "timeout error",
			err: &APIError{
				StatusCode: 504,
				Message:    "Gateway timeout",
				Code:       "timeout",
			},
			expectedMsg: "API error 504 (timeout): Gateway timeout",
			isRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("Error() = %v, want %v", tt.err.Error(), tt.expectedMsg)
			}
			if tt.err.IsRetryable() != tt.isRetryable {
				t.Errorf("IsRetryable() = %v, want %v", tt.err.IsRetryable(), tt.isRetryable)
			}
			if tt.err.IsRateLimit() != tt.isRateLimit {
				t.Errorf("IsRateLimit() = %v, want %v", tt.err.IsRateLimit(), tt.isRateLimit)
			}
			if tt.err.IsAuthError() != tt.isAuthError {
				t.Errorf("IsAuthError() = %v, want %v", tt.err.IsAuthError(), tt.isAuthError)
			}
		})
	}
}

func TestAsAPIError(t *testing.T) {
	wrapped := fmt.Errorf("agent step: %w", &APIError{StatusCode: 401, Message: "nope"})

	apiErr, ok := AsAPIError(wrapped)
	if !ok {
		t.Fatal("expected wrapped APIError to be found")
	}
	if !apiErr.IsAuthError() {
		t.Errorf("expected auth error, got %v", apiErr)
	}

	if _, ok := AsAPIError(fmt.Errorf("plain")); ok {
		t.Error("plain error should not unwrap to APIError")
	}
}

func TestErrorBodyCode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{``, ""},
		{`null`, ""},
		{`"invalid_api_key"`, "invalid_api_key"},
		{`401`, "401"},
	}
	for _, tt := range tests {
		b := errorBody{Code: []byte(tt.raw)}
		if got := b.codeString(); got != tt.want {
			t.Errorf("codeString(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

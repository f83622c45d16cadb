package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNetworkError(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewNetworkError("/api/chat", inner)

	if err.Error() != "network error at /api/chat: connection refused" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("NetworkError should unwrap to the transport error")
	}
	if !IsNetworkError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsNetworkError should see through wrapping")
	}
}

func TestTimeoutError(t *testing.T) {
	if NewTimeoutError("").Error() != "request timed out" {
		t.Errorf("empty message Error() = %s", NewTimeoutError("").Error())
	}
	if NewTimeoutError("health").Error() != "request timed out: health" {
		t.Errorf("Error() = %s", NewTimeoutError("health").Error())
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("invalid JSON", "/chat")

	if err.Error() != "parse error: invalid JSON" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("ParseError should match ErrInvalidResponse")
	}
	if !err.Is(NewParseError("other", "")) {
		t.Error("ParseError should match another ParseError")
	}
	if err.Is(ErrNoReply) {
		t.Error("ParseError should not match ErrNoReply")
	}
}

func TestIsTimeoutError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"timeout error", NewTimeoutError("x"), true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped deadline", NewNetworkError("/health", context.DeadlineExceeded), true},
		{"plain", errors.New("nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeoutError(tt.err); got != tt.want {
				t.Errorf("IsTimeoutError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetters(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantEndpoint string
	}{
		{"network", NewNetworkError("/rag", errors.New("x")), "/rag"},
		{"parse", NewParseError("x", "/api/rag"), "/api/rag"},
		{"wrapped network", fmt.Errorf("ctx: %w", NewNetworkError("/api/chat", errors.New("x"))), "/api/chat"},
		{"plain", errors.New("x"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetEndpoint(tt.err); got != tt.wantEndpoint {
				t.Errorf("GetEndpoint() = %q, want %q", got, tt.wantEndpoint)
			}
		})
	}
}

func TestIsOffline(t *testing.T) {
	if !IsOffline(fmt.Errorf("fetch: %w", ErrOffline)) {
		t.Error("IsOffline should match wrapped ErrOffline")
	}
	if IsOffline(ErrNoReply) {
		t.Error("IsOffline should not match ErrNoReply")
	}
}

package bridge_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"goa.design/agentbridge/runtime/bridge"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantText   string
	}{
		{
			name:       "validation failure",
			err:        bridge.NewInvokeError(bridge.FailureValidation, "rejected", nil),
			wantStatus: 400,
			wantText:   "Invalid agent configuration",
		},
		{
			name:       "bad request",
			err:        bridge.NewInvokeError(bridge.FailureBadRequest, "malformed", nil),
			wantStatus: 400,
			wantText:   "Invalid request payload",
		},
		{
			name:       "access denied",
			err:        bridge.NewInvokeError(bridge.FailureAccessDenied, "denied", nil),
			wantStatus: 401,
			wantText:   "Unauthorized access to agent",
		},
		{
			name:       "not found",
			err:        bridge.NewInvokeError(bridge.FailureNotFound, "missing", nil),
			wantStatus: 404,
			wantText:   "Agent not found",
		},
		{
			name:       "throttled",
			err:        bridge.NewInvokeError(bridge.FailureThrottled, "slow down", nil),
			wantStatus: 429,
			wantText:   "Rate limit exceeded, please try again later",
		},
		{
			name:       "unavailable",
			err:        bridge.NewInvokeError(bridge.FailureUnavailable, "outage", nil),
			wantStatus: 503,
			wantText:   "Agent service temporarily unavailable",
		},
		{
			name:       "config failure is generic internal",
			err:        bridge.NewInvokeError(bridge.FailureConfig, "blank agent id", nil),
			wantStatus: 500,
			wantText:   "Internal Server Error",
		},
		{
			name:       "unrecognized kind",
			err:        bridge.NewInvokeError(bridge.FailureInternal, "boom", nil),
			wantStatus: 500,
			wantText:   "Internal Server Error",
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: 500,
			wantText:   "Internal Server Error",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event := bridge.Classify(tc.err)
			require.Equal(t, tc.wantStatus, event.StatusCode)
			require.Equal(t, tc.wantText, event.StatusText)
		})
	}
}

func TestClassifyUnwrapsChain(t *testing.T) {
	cause := bridge.NewInvokeError(bridge.FailureThrottled, "throttled", errors.New("ThrottlingException"))
	wrapped := fmt.Errorf("invoke: %w", cause)
	event := bridge.Classify(wrapped)
	require.Equal(t, 429, event.StatusCode)
}

func TestInvokeErrorChain(t *testing.T) {
	cause := errors.New("socket closed")
	err := bridge.NewInvokeError(bridge.FailureUnavailable, "stream interrupted", cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "stream interrupted")
	require.Contains(t, err.Error(), "socket closed")

	ie, ok := bridge.AsInvokeError(fmt.Errorf("outer: %w", err))
	require.True(t, ok)
	require.Equal(t, bridge.FailureUnavailable, ie.Kind())
}

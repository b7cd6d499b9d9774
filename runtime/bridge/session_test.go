package bridge_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"goa.design/agentbridge/runtime/bridge"
)

func TestSessionKeyKnownVectors(t *testing.T) {
	cases := []struct {
		name           string
		conversationID string
		requestID      string
		want           string
	}{
		{"conversation id wins", "abc", "req-456", "session-900150983cd24fb0"},
		{"request id fallback", "", "req-456", "session-3d1b29cce5858d1f"},
		{"default seed", "", "", "session-2f9d47e3a66b8afd"},
		{"conversation only", "conv-123", "", "session-82dfbc77a05e40d3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, bridge.SessionKey(tc.conversationID, tc.requestID))
		})
	}
}

func TestSessionKeyStableAcrossCalls(t *testing.T) {
	first := bridge.SessionKey("conv-123", "req-456")
	for range 10 {
		require.Equal(t, first, bridge.SessionKey("conv-123", "req-456"))
	}
}

func TestSessionKeyEmptyInputsCollapse(t *testing.T) {
	require.Equal(t, bridge.SessionKey("", ""), bridge.SessionKey("", ""))
	require.Equal(t, "session-2f9d47e3a66b8afd", bridge.SessionKey("", ""))
}

func TestSessionKeyFormat(t *testing.T) {
	format := regexp.MustCompile(`^session-[0-9a-f]{16}$`)
	for _, base := range []string{"", "a", "conversation", "日本語", "a very long conversation identifier with spaces"} {
		require.Regexp(t, format, bridge.SessionKey(base, ""))
	}
}

func TestSessionKeyDistinctConversations(t *testing.T) {
	require.NotEqual(t, bridge.SessionKey("conv-1", "req"), bridge.SessionKey("conv-2", "req"))
}

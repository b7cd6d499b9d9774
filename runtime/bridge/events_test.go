package bridge_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"goa.design/agentbridge/runtime/bridge"
)

func TestEventWireShapes(t *testing.T) {
	state := bridge.StateEvent{Agent: &bridge.AgentState{ID: "id", Alias: "alias", SessionID: "session-900150983cd24fb0"}}
	data, err := json.Marshal(state)
	require.NoError(t, err)
	require.JSONEq(t, `{"agent":{"id":"id","alias":"alias","sessionId":"session-900150983cd24fb0"}}`, string(data))

	delta := bridge.NewDelta("Hello!")
	data, err = json.Marshal(delta)
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"answer","text":"Hello!"}`, string(data))

	errEvent := bridge.Classify(bridge.NewInvokeError(bridge.FailureNotFound, "gone", nil))
	data, err = json.Marshal(errEvent)
	require.NoError(t, err)
	require.JSONEq(t, `{"statusCode":404,"statusText":"Agent not found"}`, string(data))
}

func TestEventTypes(t *testing.T) {
	require.Equal(t, bridge.EventState, bridge.StateEvent{}.Type())
	require.Equal(t, bridge.EventDelta, bridge.DeltaEvent{}.Type())
	require.Equal(t, bridge.EventError, bridge.ErrorEvent{}.Type())
}

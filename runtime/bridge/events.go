package bridge

import "context"

type (
	// Event is one unit of the uniform stream delivered to chat clients. All
	// concrete event types are immutable after construction; sinks marshal
	// them into their wire format (SSE, WebSocket, message bus).
	Event interface {
		// Type returns the event type constant used by transports to route
		// or filter events without type assertions.
		Type() EventType
	}

	// Sink is the append-only ordered channel that carries events back to the
	// client. The bridge writes zero or more state/delta events, at most one
	// terminal error event, and always ends the sink exactly once. No writes
	// are valid after End; implementations must reject them.
	Sink interface {
		// Write appends one event to the sink. Implementations are
		// responsible for marshaling and transport delivery semantics.
		Write(ctx context.Context, event Event) error

		// End signals end-of-stream. End is called exactly once per request;
		// subsequent Write calls must return errors.
		End(ctx context.Context) error
	}

	// AgentState identifies the remote agent and the session bound to the
	// current conversation. It is surfaced once at stream start so session
	// identity is visible even when the body stream is empty.
	AgentState struct {
		ID        string `json:"id"`
		Alias     string `json:"alias"`
		SessionID string `json:"sessionId"`
	}

	// StateEvent reports non-answer stream state: the agent identity at
	// stream start, or diagnostic trace data mid-stream when tracing is
	// enabled. Exactly one of Agent and Trace is set.
	StateEvent struct {
		Agent *AgentState `json:"agent,omitempty"`
		Trace any         `json:"trace,omitempty"`
	}

	// DeltaEvent carries one incremental fragment of the assistant's answer.
	// Fragments mirror the backend's own chunking; they are never merged,
	// split, or reordered.
	DeltaEvent struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}

	// ErrorEvent is the single terminal event written when an invocation
	// fails. A terminal error anywhere in the stream is authoritative: prior
	// deltas must not be assumed to form a complete answer.
	ErrorEvent struct {
		StatusCode int    `json:"statusCode"`
		StatusText string `json:"statusText"`
	}
)

// EventType enumerates the client-facing event flavors.
type EventType string

const (
	// EventState reports agent identity or diagnostic trace data.
	EventState EventType = "state"

	// EventDelta carries an incremental answer fragment.
	EventDelta EventType = "delta"

	// EventError is the terminal failure event.
	EventError EventType = "error"
)

// DeltaKindAnswer marks answer-text deltas. It is the only delta kind the
// bridge emits today; the field exists so transports can introduce other
// kinds without breaking the wire contract.
const DeltaKindAnswer = "answer"

// NewDelta constructs an answer delta carrying text.
func NewDelta(text string) DeltaEvent {
	return DeltaEvent{Kind: DeltaKindAnswer, Text: text}
}

// Type implements Event.
func (StateEvent) Type() EventType { return EventState }

// Type implements Event.
func (DeltaEvent) Type() EventType { return EventDelta }

// Type implements Event.
func (ErrorEvent) Type() EventType { return EventError }

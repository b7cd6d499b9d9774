package bridge

import "context"

type (
	// AgentInvoker abstracts the remote stateful agent backend as a single
	// capability: submit one invocation and obtain a handle to its live
	// asynchronous response stream. Concrete transports (the Bedrock Agents
	// feature, test fakes) implement it, keeping the bridge testable against
	// substitutable streams.
	AgentInvoker interface {
		// Invoke issues one outbound call carrying the validated agent
		// configuration, the derived session identifier, and the prepared
		// input text. It returns a live stream on success. Failures before
		// any stream exists (client construction, request rejection) are
		// returned as errors carrying a FailureKind; no state event has been
		// emitted at that point.
		Invoke(ctx context.Context, cfg AgentConfig, sessionID, inputText string) (AgentStream, error)
	}

	// AgentStream is a live asynchronous stream of agent response elements.
	// It is consumed strictly sequentially; Next is the pipeline's only
	// suspension point.
	AgentStream interface {
		// Next blocks until the next element arrives, the stream is
		// exhausted, or ctx is done. It returns io.EOF on normal exhaustion
		// and a FailureKind-carrying error on mid-stream failure.
		Next(ctx context.Context) (AgentElement, error)

		// Close releases the underlying stream resources. Safe to call after
		// Next returned an error.
		Close() error
	}

	// AgentElement is one element of the agent response stream. Either field
	// may be empty; elements carrying neither text nor trace data are
	// skipped by the drain loop.
	AgentElement struct {
		// Chunk holds the UTF-8 bytes of one answer fragment.
		Chunk []byte

		// Trace holds backend diagnostic data when the backend emitted any
		// for this element.
		Trace any
	}
)

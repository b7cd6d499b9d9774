package bedrock

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"

	"goa.design/agentbridge/runtime/bridge"
)

// eventSource is the subset of the AWS InvokeAgent event stream used by the
// adapter. It is satisfied by *bedrockagentruntime.InvokeAgentEventStream
// and simplifies unit testing by allowing fake implementations.
type eventSource interface {
	Events() <-chan types.ResponseStream
	Close() error
	Err() error
}

// agentStream adapts the AWS response event stream to bridge.AgentStream.
// Consumption is strictly sequential: Next pulls one union member at a time
// and is the only suspension point, so element order always mirrors arrival
// order.
type agentStream struct {
	source eventSource
}

func newAgentStream(source eventSource) *agentStream {
	return &agentStream{source: source}
}

// Next blocks until the next chunk or trace element arrives. Union members
// carrying neither (return-control, file events) are skipped. Channel close
// with a pending stream error surfaces as a classified mid-stream failure;
// clean close surfaces as io.EOF.
func (s *agentStream) Next(ctx context.Context) (bridge.AgentElement, error) {
	for {
		select {
		case <-ctx.Done():
			return bridge.AgentElement{}, ctx.Err()
		case event, ok := <-s.source.Events():
			if !ok {
				if err := s.source.Err(); err != nil {
					return bridge.AgentElement{}, classify("invoke_agent_stream", err)
				}
				return bridge.AgentElement{}, io.EOF
			}
			switch v := event.(type) {
			case *types.ResponseStreamMemberChunk:
				return bridge.AgentElement{Chunk: v.Value.Bytes}, nil
			case *types.ResponseStreamMemberTrace:
				return bridge.AgentElement{Trace: v.Value}, nil
			default:
				continue
			}
		}
	}
}

// Close releases the underlying AWS event stream.
func (s *agentStream) Close() error {
	return s.source.Close()
}

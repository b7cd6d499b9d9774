package bedrock

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/stretchr/testify/require"

	"goa.design/agentbridge/runtime/bridge"
)

// fakeSource feeds a fixed event sequence through a channel, reporting err
// after the channel closes.
type fakeSource struct {
	ch     chan types.ResponseStream
	err    error
	closed bool
}

func newFakeSource(err error, events ...types.ResponseStream) *fakeSource {
	ch := make(chan types.ResponseStream, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return &fakeSource{ch: ch, err: err}
}

func (f *fakeSource) Events() <-chan types.ResponseStream { return f.ch }
func (f *fakeSource) Err() error                          { return f.err }
func (f *fakeSource) Close() error                        { f.closed = true; return nil }

func chunk(text string) types.ResponseStream {
	return &types.ResponseStreamMemberChunk{Value: types.PayloadPart{Bytes: []byte(text)}}
}

func TestAgentStreamDeliversChunksInOrder(t *testing.T) {
	stream := newAgentStream(newFakeSource(nil, chunk("Hello "), chunk("world!")))
	ctx := context.Background()

	first, err := stream.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, "Hello ", string(first.Chunk))

	second, err := stream.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, "world!", string(second.Chunk))

	_, err = stream.Next(ctx)
	require.ErrorIs(t, err, io.EOF)
}

func TestAgentStreamTranslatesTraceParts(t *testing.T) {
	trace := &types.ResponseStreamMemberTrace{Value: types.TracePart{}}
	stream := newAgentStream(newFakeSource(nil, trace, chunk("done")))
	ctx := context.Background()

	elem, err := stream.Next(ctx)
	require.NoError(t, err)
	require.Nil(t, elem.Chunk)
	require.NotNil(t, elem.Trace)

	elem, err = stream.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, "done", string(elem.Chunk))
}

func TestAgentStreamSkipsUnknownMembers(t *testing.T) {
	stream := newAgentStream(newFakeSource(nil,
		&types.ResponseStreamMemberReturnControl{},
		chunk("text"),
	))
	elem, err := stream.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "text", string(elem.Chunk))
}

func TestAgentStreamClassifiesMidStreamFailure(t *testing.T) {
	cause := errors.New("connection reset")
	stream := newAgentStream(newFakeSource(cause, chunk("partial")))
	ctx := context.Background()

	elem, err := stream.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, "partial", string(elem.Chunk))

	_, err = stream.Next(ctx)
	require.Error(t, err)
	require.NotErrorIs(t, err, io.EOF)
	ie, ok := bridge.AsInvokeError(err)
	require.True(t, ok)
	require.Equal(t, bridge.FailureInternal, ie.Kind())
	require.ErrorIs(t, err, cause)
}

func TestAgentStreamHonorsContext(t *testing.T) {
	// An open, empty channel forces Next to block until ctx is done.
	src := &fakeSource{ch: make(chan types.ResponseStream)}
	stream := newAgentStream(src)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stream.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestAgentStreamCloseReleasesSource(t *testing.T) {
	src := newFakeSource(nil)
	stream := newAgentStream(src)
	require.NoError(t, stream.Close())
	require.True(t, src.closed)
}

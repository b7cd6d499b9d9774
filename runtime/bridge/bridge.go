// Package bridge routes chat requests to a stateful remote agent backend
// through one uniform streaming contract. It decides whether a model
// identifier selects the agent path, derives a deterministic session key
// binding a logical conversation to the backend's session concept, invokes
// the backend through the AgentInvoker capability, drains the resulting
// chunked response into the state/delta/error event vocabulary, and
// classifies failures into a small closed taxonomy. Per request the sink
// receives either a successful completion or exactly one terminal error
// event, and is always ended exactly once.
package bridge

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"

	"goa.design/agentbridge/runtime/bridge/telemetry"
)

type (
	// Bridge orchestrates one chat request end to end. It holds no mutable
	// per-request state: concurrent requests are fully isolated, each with
	// its own invocation, session key, and stream.
	Bridge struct {
		cfg     AgentConfig
		invoker AgentInvoker
		logger  telemetry.Logger
		metrics telemetry.Metrics
		tracer  telemetry.Tracer
		traces  telemetry.TraceCollector
	}

	// Options configures a Bridge.
	Options struct {
		// Config is the process-wide agent deployment configuration.
		// Required fields are validated on every request, before any
		// outbound call.
		Config AgentConfig

		// Invoker is the remote agent capability. Required.
		Invoker AgentInvoker

		// Logger receives operational diagnostics, including the detailed
		// configuration error list that never reaches clients. When nil,
		// defaults to a no-op logger.
		Logger telemetry.Logger

		// Metrics receives invocation and failure counters. When nil,
		// defaults to a no-op recorder.
		Metrics telemetry.Metrics

		// Tracer wraps each request in a span. When nil, defaults to a
		// no-op tracer.
		Tracer telemetry.Tracer

		// Traces receives decoded answer fragments when tracing is enabled.
		// When nil, defaults to a no-op collector.
		Traces telemetry.TraceCollector
	}
)

// New constructs a Bridge. The invoker is required; telemetry collaborators
// default to no-ops so the core stays independently testable.
func New(opts Options) (*Bridge, error) {
	if opts.Invoker == nil {
		return nil, errors.New("bridge: agent invoker is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = telemetry.NewNoopTracer()
	}
	traces := opts.Traces
	if traces == nil {
		traces = telemetry.NewNoopTraceCollector()
	}
	return &Bridge{
		cfg:     opts.Config,
		invoker: opts.Invoker,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		traces:  traces,
	}, nil
}

// HandleChat runs one chat request: validate configuration, derive the
// session key, invoke the backend, emit the agent state event, and drain the
// response stream into the sink. All failures route to the classifier, which
// performs the single terminal error write and ends the sink. The returned
// error reports sink/transport write failures only; backend failures are
// delivered to the client as the terminal event and yield a nil return.
func (b *Bridge) HandleChat(ctx context.Context, req *ChatRequest, sink Sink) error {
	ctx = ensureCorrelationID(ctx, req)
	ctx, span := b.tracer.Start(ctx, "agentbridge.handle_chat")
	defer span.End()

	if req == nil || req.Messages == nil {
		return b.fail(ctx, sink, NewInvokeError(FailureBadRequest, "chat request has no messages", nil))
	}
	if errs := b.cfg.Validate(); len(errs) > 0 {
		// Detailed deployment diagnostics stay in the logs; the client sees
		// a generic internal error.
		b.logger.Error(ctx, "invalid agent configuration",
			"correlation_id", CorrelationID(ctx),
			"errors", strings.Join(errs, "; "),
		)
		return b.fail(ctx, sink, NewInvokeError(FailureConfig, "agent configuration failed validation", nil))
	}

	cfg := b.cfg
	cfg.TraceEnabled = b.cfg.TraceEnabled || req.Options.TracingEnabled
	session := SessionKey(req.Options.ConversationID, req.Options.RequestID)
	input := InputText(req.Messages)

	b.metrics.IncCounter("agentbridge.invocations", 1)
	start := time.Now()
	stream, err := b.invoker.Invoke(ctx, cfg, session, input)
	if err != nil {
		// No stream exists and no state event has been emitted.
		span.RecordError(err)
		return b.fail(ctx, sink, err)
	}

	state := StateEvent{Agent: &AgentState{ID: cfg.AgentID, Alias: cfg.AgentAlias, SessionID: session}}
	if werr := sink.Write(ctx, state); werr != nil {
		_ = stream.Close()
		return werr
	}
	b.logger.Debug(ctx, "agent invoked",
		"correlation_id", CorrelationID(ctx),
		"session_id", session,
		"trace_enabled", cfg.TraceEnabled,
	)

	err = b.drain(ctx, stream, sink, cfg.TraceEnabled)
	b.metrics.RecordTimer("agentbridge.drain_duration", time.Since(start))
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// drain consumes the agent stream strictly sequentially and normalizes each
// element into the client event vocabulary: one delta per textual chunk in
// arrival order, a trace state event per diagnostic element. Empty chunks
// are skipped silently. Normal exhaustion ends the sink; mid-iteration
// failure stops consumption immediately and routes to the classifier.
func (b *Bridge) drain(ctx context.Context, stream AgentStream, sink Sink, traced bool) error {
	defer func() { _ = stream.Close() }()
	corrID := CorrelationID(ctx)
	for {
		elem, err := stream.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return sink.End(ctx)
			}
			return b.fail(ctx, sink, err)
		}
		if len(elem.Chunk) > 0 {
			text := string(elem.Chunk)
			if err := sink.Write(ctx, NewDelta(text)); err != nil {
				return err
			}
			if traced {
				b.traces.Record(ctx, corrID, text)
			}
		}
		if elem.Trace != nil {
			if err := sink.Write(ctx, StateEvent{Trace: elem.Trace}); err != nil {
				return err
			}
		}
	}
}

// fail performs the single terminal error write and ends the sink. It is the
// only path that writes an error event, preserving the at-most-one-terminal-
// event invariant.
func (b *Bridge) fail(ctx context.Context, sink Sink, err error) error {
	event := Classify(err)
	b.logger.Error(ctx, "chat request failed",
		"correlation_id", CorrelationID(ctx),
		"status", event.StatusCode,
		"err", err,
	)
	b.metrics.IncCounter("agentbridge.failures", 1, "status", strconv.Itoa(event.StatusCode))
	if werr := sink.Write(ctx, event); werr != nil {
		return werr
	}
	return sink.End(ctx)
}

// Command chat runs one chat turn against a configured Bedrock agent and
// prints the resulting event stream as one JSON object per line. It wires
// the real AWS runtime client, Clue logging, and OTEL-backed telemetry the
// same way a production transport would.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"goa.design/clue/log"
	"gopkg.in/yaml.v3"

	"goa.design/agentbridge/features/agent/bedrock"
	"goa.design/agentbridge/runtime/bridge"
	"goa.design/agentbridge/runtime/bridge/telemetry"
)

func main() {
	var (
		configF = flag.String("config", "", "Optional YAML file overriding environment configuration")
		convF   = flag.String("conversation", "", "Conversation identifier (stable session key derives from it)")
		traceF  = flag.Bool("trace", false, "Forward agent diagnostic traces")
		dbgF    = flag.Bool("debug", false, "Enable debug logs")
	)
	flag.Parse()

	// Setup logger.
	format := log.FormatJSON
	if log.IsTerminal() {
		format = log.FormatTerminal
	}
	ctx := log.Context(context.Background(), log.WithFormat(format))
	if *dbgF {
		ctx = log.Context(ctx, log.WithDebug())
		log.Debugf(ctx, "debug logs enabled")
	}

	cfg, err := loadConfig(*configF)
	if err != nil {
		log.Fatalf(ctx, err, "load configuration")
	}
	cfg.TraceEnabled = cfg.TraceEnabled || *traceF

	runtime, err := bedrock.NewRuntime(ctx, cfg.Region)
	if err != nil {
		log.Fatalf(ctx, err, "construct Bedrock runtime client")
	}
	invoker, err := bedrock.New(bedrock.Options{
		Runtime: runtime,
		Logger:  telemetry.NewClueLogger(),
	})
	if err != nil {
		log.Fatalf(ctx, err, "construct agent invoker")
	}
	b, err := bridge.New(bridge.Options{
		Config:  cfg,
		Invoker: invoker,
		Logger:  telemetry.NewClueLogger(),
		Metrics: telemetry.NewClueMetrics(),
		Tracer:  telemetry.NewClueTracer(),
		Traces:  telemetry.NewClueTraceCollector(),
	})
	if err != nil {
		log.Fatalf(ctx, err, "construct bridge")
	}

	prompt := strings.Join(flag.Args(), " ")
	if prompt == "" {
		prompt = "Hello"
	}
	req := &bridge.ChatRequest{
		Messages: []bridge.Message{{Role: bridge.RoleUser, Content: prompt}},
		Options: bridge.RequestOptions{
			ConversationID: *convF,
			TracingEnabled: *traceF,
		},
	}

	sink := newLineSink(os.Stdout)
	if err := b.HandleChat(ctx, req, sink); err != nil {
		log.Fatalf(ctx, err, "deliver chat events")
	}
}

// fileConfig mirrors the optional YAML override file.
type fileConfig struct {
	AgentID      string `yaml:"agent_id"`
	AgentAlias   string `yaml:"agent_alias"`
	Region       string `yaml:"region"`
	TraceEnabled *bool  `yaml:"trace_enabled"`
}

// loadConfig reads the agent configuration from the environment, then
// applies the YAML override file when one is given. Validation happens in
// the bridge on every request.
func loadConfig(path string) (bridge.AgentConfig, error) {
	cfg := bridge.AgentConfig{
		AgentID:      os.Getenv("BEDROCK_AGENT_ID"),
		AgentAlias:   os.Getenv("BEDROCK_AGENT_ALIAS"),
		Region:       os.Getenv("BEDROCK_REGION"),
		TraceEnabled: os.Getenv("BEDROCK_TRACE_ENABLED") == "true",
	}
	if cfg.Region == "" {
		cfg.Region = os.Getenv("AWS_REGION")
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	if fc.AgentID != "" {
		cfg.AgentID = fc.AgentID
	}
	if fc.AgentAlias != "" {
		cfg.AgentAlias = fc.AgentAlias
	}
	if fc.Region != "" {
		cfg.Region = fc.Region
	}
	if fc.TraceEnabled != nil {
		cfg.TraceEnabled = *fc.TraceEnabled
	}
	return cfg, nil
}

// lineSink writes one JSON envelope per event, then an explicit end marker.
// It mirrors the framing an SSE transport would use.
type lineSink struct {
	enc   *json.Encoder
	ended bool
}

func newLineSink(w *os.File) *lineSink {
	return &lineSink{enc: json.NewEncoder(w)}
}

func (s *lineSink) Write(_ context.Context, event bridge.Event) error {
	if s.ended {
		return errors.New("sink already ended")
	}
	return s.enc.Encode(map[string]any{"type": event.Type(), "data": event})
}

func (s *lineSink) End(context.Context) error {
	if s.ended {
		return errors.New("sink already ended")
	}
	s.ended = true
	return s.enc.Encode(map[string]any{"type": "end"})
}

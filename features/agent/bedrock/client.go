// Package bedrock implements the bridge's AgentInvoker capability on top of
// the Amazon Bedrock Agents runtime. It submits InvokeAgent calls carrying
// the configured agent id, alias, derived session id, input text, and trace
// flag, and adapts the resulting chunked event stream into bridge elements.
package bedrock

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"

	"goa.design/agentbridge/runtime/bridge"
	"goa.design/agentbridge/runtime/bridge/telemetry"
)

// RuntimeClient mirrors the subset of the AWS Bedrock Agents runtime client
// required by the adapter. It matches *bedrockagentruntime.Client so callers
// can pass either the real client or a mock in tests.
type RuntimeClient interface {
	InvokeAgent(ctx context.Context, params *bedrockagentruntime.InvokeAgentInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.InvokeAgentOutput, error)
}

// Options configures the Bedrock Agents adapter.
type Options struct {
	// Runtime provides access to the Bedrock Agents runtime. Required.
	Runtime RuntimeClient

	// Logger is used for non-fatal diagnostics inside the adapter. When
	// nil, defaults to a no-op logger.
	Logger telemetry.Logger
}

// Client implements bridge.AgentInvoker on top of Bedrock InvokeAgent.
type Client struct {
	runtime RuntimeClient
	logger  telemetry.Logger
}

// New initializes a Bedrock-backed agent invoker.
func New(opts Options) (*Client, error) {
	if opts.Runtime == nil {
		return nil, errors.New("bedrock agent runtime client is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	return &Client{runtime: opts.Runtime, logger: logger}, nil
}

// NewRuntime constructs the AWS Bedrock Agents runtime client for the given
// region. Construction failure is a pre-stream transport failure: it occurs
// before any invocation exists and before any state event is emitted.
func NewRuntime(ctx context.Context, region string) (*bedrockagentruntime.Client, error) {
	if strings.TrimSpace(region) == "" {
		return nil, bridge.NewInvokeError(bridge.FailureConfig, "bedrock agent: region is required to construct the runtime client", nil)
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, bridge.NewInvokeError(bridge.FailureInternal, "bedrock agent: load AWS configuration", err)
	}
	return bedrockagentruntime.NewFromConfig(cfg), nil
}

// Invoke submits one InvokeAgent call and returns a handle to its live
// response stream. Failures are classified into the bridge taxonomy before
// being returned.
func (c *Client) Invoke(ctx context.Context, cfg bridge.AgentConfig, sessionID, inputText string) (bridge.AgentStream, error) {
	input := &bedrockagentruntime.InvokeAgentInput{
		AgentId:      aws.String(cfg.AgentID),
		AgentAliasId: aws.String(cfg.AgentAlias),
		SessionId:    aws.String(sessionID),
		InputText:    aws.String(inputText),
	}
	if cfg.TraceEnabled {
		input.EnableTrace = aws.Bool(true)
	}
	out, err := c.runtime.InvokeAgent(ctx, input)
	if err != nil {
		return nil, classify("invoke_agent", err)
	}
	es := out.GetStream()
	if es == nil {
		return nil, bridge.NewInvokeError(bridge.FailureInternal, "bedrock agent: response missing event stream", nil)
	}
	c.logger.Debug(ctx, "invoke agent accepted",
		"agent_id", cfg.AgentID,
		"agent_alias", cfg.AgentAlias,
		"session_id", sessionID,
	)
	return newAgentStream(es), nil
}

package bridge

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

type (
	// ChatRequest is the inbound chat payload handed to the bridge by the
	// router. It is immutable once received.
	ChatRequest struct {
		// Messages is the ordered conversation transcript.
		Messages []Message `json:"messages"`

		// Options carries optional per-request identifiers and flags.
		Options RequestOptions `json:"options"`
	}

	// Message is one transcript entry.
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	// RequestOptions carries conversation-scoped identifiers and the
	// per-request tracing flag.
	RequestOptions struct {
		// RequestID identifies this request; used as the session base when
		// no conversation identifier is present.
		RequestID string `json:"requestId,omitempty"`

		// ConversationID identifies the logical conversation; all requests
		// sharing it address the same backend session.
		ConversationID string `json:"conversationId,omitempty"`

		// TracingEnabled requests backend diagnostic traces for this
		// invocation only.
		TracingEnabled bool `json:"tracingEnabled,omitempty"`
	}
)

// Message roles recognized in transcripts.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// fallbackInputText substitutes for the outbound payload when the transcript
// contains no user-role message, so the backend always receives non-empty
// input.
const fallbackInputText = "Hello"

// InputText builds the outbound agent payload: the paragraph-separated
// concatenation of all user-role message contents in transcript order, or
// fallbackInputText when the transcript has no user-role message.
func InputText(msgs []Message) string {
	var parts []string
	for _, m := range msgs {
		if m.Role == RoleUser {
			parts = append(parts, m.Content)
		}
	}
	if len(parts) == 0 {
		return fallbackInputText
	}
	return strings.Join(parts, "\n\n")
}

//go:embed chat_request_schema.json
var chatRequestSchemaJSON []byte

var (
	chatRequestSchemaOnce sync.Once
	chatRequestSchema     *jsonschema.Schema
	chatRequestSchemaErr  error
)

func compiledChatRequestSchema() (*jsonschema.Schema, error) {
	chatRequestSchemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(chatRequestSchemaJSON, &doc); err != nil {
			chatRequestSchemaErr = fmt.Errorf("unmarshal chat request schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("chat_request.json", doc); err != nil {
			chatRequestSchemaErr = fmt.Errorf("add chat request schema resource: %w", err)
			return
		}
		chatRequestSchema, chatRequestSchemaErr = c.Compile("chat_request.json")
	})
	return chatRequestSchema, chatRequestSchemaErr
}

// DecodeChatRequest parses an inbound request body and validates its shape
// against the chat request schema. Shape violations yield a bad-request
// failure that classifies to a 400 terminal event with no outbound call
// attempted.
func DecodeChatRequest(data []byte) (*ChatRequest, error) {
	schema, err := compiledChatRequestSchema()
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, NewInvokeError(FailureBadRequest, "request body is not valid JSON", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, NewInvokeError(FailureBadRequest, "request body does not match the chat request shape", err)
	}
	var req ChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, NewInvokeError(FailureBadRequest, "request body does not match the chat request shape", err)
	}
	return &req, nil
}

package bridge

import "strings"

const (
	// agentModelID is the reserved model identifier that selects the
	// stateful agent path outright.
	agentModelID = "bedrock-agent"

	// agentModelPrefix selects named agents, e.g. "agent/travel-assistant".
	agentModelPrefix = "agent/"

	// agentModelToken selects composite identifiers that embed the reserved
	// name, e.g. "us.bedrock-agent-v2".
	agentModelToken = "bedrock-agent"
)

// RoutesToAgent reports whether the model identifier selects the stateful
// agent backend. The check is case-sensitive and never panics: any non-string
// value, nil, or empty string routes elsewhere. The router evaluates this on
// every incoming chat request before any other routing decision.
func RoutesToAgent(model any) bool {
	s, ok := model.(string)
	if !ok || s == "" {
		return false
	}
	return s == agentModelID ||
		strings.HasPrefix(s, agentModelPrefix) ||
		strings.Contains(s, agentModelToken)
}

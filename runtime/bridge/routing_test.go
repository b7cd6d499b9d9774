package bridge_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"goa.design/agentbridge/runtime/bridge"
)

func TestRoutesToAgent(t *testing.T) {
	cases := []struct {
		name  string
		model any
		want  bool
	}{
		{"reserved literal", "bedrock-agent", true},
		{"named agent prefix", "agent/travel-assistant", true},
		{"embedded token", "us.bedrock-agent-v2", true},
		{"other model", "gpt-4", false},
		{"anthropic model", "anthropic.claude-3", false},
		{"empty string", "", false},
		{"case sensitive", "Bedrock-Agent", false},
		{"nil", nil, false},
		{"integer", 42, false},
		{"bool", true, false},
		{"string slice", []string{"bedrock-agent"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, bridge.RoutesToAgent(tc.model))
		})
	}
}

// TestRoutesToAgentTokenProperty verifies any identifier embedding the
// reserved token routes to the agent path.
func TestRoutesToAgentTokenProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("identifiers containing the reserved token route to the agent", prop.ForAll(
		func(prefix, suffix string) bool {
			return bridge.RoutesToAgent(prefix + "bedrock-agent" + suffix)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("identifiers without any reserved marker never route to the agent", prop.ForAll(
		func(s string) bool {
			if s == "" || strings.Contains(s, "bedrock-agent") || strings.HasPrefix(s, "agent/") {
				return true
			}
			return !bridge.RoutesToAgent(s)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

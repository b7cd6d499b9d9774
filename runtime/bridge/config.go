package bridge

import "strings"

// AgentConfig holds the deployment parameters the remote agent backend
// requires. It is process-wide and read-only after startup; the bridge
// validates it before every outbound call.
type AgentConfig struct {
	// AgentID is the backend agent identifier.
	AgentID string

	// AgentAlias is the deployed agent alias identifier.
	AgentAlias string

	// Region is the backend deployment region used to construct the
	// transport client.
	Region string

	// TraceEnabled requests backend diagnostic traces for every invocation.
	// Individual requests may also enable tracing via their options.
	TraceEnabled bool
}

// Validate checks the three required deployment parameters and accumulates
// one descriptive error per blank field rather than short-circuiting. A nil
// result means the configuration is usable. Validation failures are reported
// to clients as a single generic 500; the detailed list is for operational
// logging only and never leaves the process.
func (c AgentConfig) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.AgentID) == "" {
		errs = append(errs, "agent id must be a non-empty string")
	}
	if strings.TrimSpace(c.AgentAlias) == "" {
		errs = append(errs, "agent alias must be a non-empty string")
	}
	if strings.TrimSpace(c.Region) == "" {
		errs = append(errs, "region must be a non-empty string")
	}
	return errs
}

// Package agent talks to the remote hosted agent runtime. The runtime is
// an opaque collaborator: the only load-bearing parts of its contract are
// the chunked completion stream and the trace/citation payloads attached
// to the same call.
package agent

import "context"

// Trace phase tags the runtime is known to emit. The set is closed.
const (
	PhasePreGuardrail   = "preGuardrailTrace"
	PhasePreProcessing  = "preProcessingTrace"
	PhaseOrchestration  = "orchestrationTrace"
	PhasePostProcessing = "postProcessingTrace"
	PhasePostGuardrail  = "postGuardrailTrace"
)

// TracePhases lists all known phase tags in processing order.
var TracePhases = []string{
	PhasePreGuardrail,
	PhasePreProcessing,
	PhaseOrchestration,
	PhasePostProcessing,
	PhasePostGuardrail,
}

// Request identifies one agent invocation. SessionID ties consecutive
// requests into one conversation on the runtime side.
type Request struct {
	AgentID      string
	AgentAliasID string
	SessionID    string
	InputText    string
	EnableTrace  bool
}

// Invocation is the decoded result of one call: the concatenated
// completion text plus the out-of-band diagnostics. Trace entries keep
// their raw nested shape; no schema is enforced beyond presence checks.
type Invocation struct {
	Completion string
	Trace      map[string][]map[string]any
	Citations  []map[string]any
}

// Invoker is the capability the pipeline needs from the remote runtime.
// Tests substitute a deterministic fake.
type Invoker interface {
	InvokeAgent(ctx context.Context, req Request) (*Invocation, error)
}

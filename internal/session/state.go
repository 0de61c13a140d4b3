// Package session holds per-conversation state. One State belongs to one
// interactive session; concurrent sessions each get their own bundle.
package session

import (
	"github.com/google/uuid"

	"teamforge/internal/agent"
)

// Message roles in the conversation log.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in the ordered conversation log.
type Message struct {
	Role    string
	Content string
}

// State bundles everything a conversation accumulates: the runtime
// session id, the message log, trace buckets, citations, and the last
// generated composition. Reset replaces the whole bundle; nothing is
// cleared piecemeal.
type State struct {
	ID              string
	Messages        []Message
	Trace           map[string][]map[string]any
	Citations       []map[string]any
	TeamComposition string
}

// New returns a fresh State with a newly generated session id.
func New() *State {
	return &State{
		ID:    uuid.NewString(),
		Trace: make(map[string][]map[string]any),
	}
}

// Append adds one message to the conversation log.
func (s *State) Append(role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// Record logs one completed exchange: the submitted prompt, then the
// invocation's diagnostics and completion.
func (s *State) Record(prompt string, inv *agent.Invocation) {
	if inv == nil {
		return
	}
	s.Append(RoleUser, prompt)
	s.Absorb(inv)
	s.Append(RoleAssistant, inv.Completion)
}

// Absorb merges one invocation result into the session: trace entries are
// appended per phase, citations are appended, and the composition text is
// replaced.
func (s *State) Absorb(inv *agent.Invocation) {
	if inv == nil {
		return
	}
	for phase, entries := range inv.Trace {
		s.Trace[phase] = append(s.Trace[phase], entries...)
	}
	s.Citations = append(s.Citations, inv.Citations...)
	s.TeamComposition = inv.Completion
}

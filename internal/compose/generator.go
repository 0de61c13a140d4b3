// Package compose drives the team-generation pipeline: fetch players,
// validate the diversity rules, build the prompt, and invoke the remote
// agent.
package compose

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"teamforge/internal/agent"
	"teamforge/internal/prompt"
	"teamforge/internal/roster"
)

// ErrInvocation marks remote-call failures. The generation yields no
// composition; callers show a generic failure rather than transport
// detail.
var ErrInvocation = errors.New("agent invocation failed")

// Generator owns the pipeline dependencies. One Generator serves one
// interactive session at a time; calls are synchronous.
type Generator struct {
	Store        *roster.Store
	Invoker      agent.Invoker
	AgentID      string
	AgentAliasID string
	Logger       *zap.Logger
}

// Outcome is the result of one successful pipeline pass. The caller folds
// it into its session state; Generate itself never touches shared state.
type Outcome struct {
	Prompt      string
	Composition string
	Invocation  *agent.Invocation
}

// IsInputError reports whether err is one of the pre-invocation input
// errors: unknown submission type, empty filter result, or a failed
// validation rule. Input errors halt the pipeline before any remote call.
func IsInputError(err error) bool {
	var vErr *roster.ValidationError
	return errors.Is(err, roster.ErrUnknownSubmissionType) ||
		errors.Is(err, roster.ErrNoPlayers) ||
		errors.As(err, &vErr)
}

// Generate runs one full pipeline pass for the submission type and
// optional constraints, conversing under sessionID. Errors follow the
// taxonomy: input errors and storage faults halt before the remote call,
// invocation faults wrap ErrInvocation and yield no partial completion.
func (g *Generator) Generate(ctx context.Context, sessionID string, teamType roster.SubmissionType, constraints string) (*Outcome, error) {
	logger := g.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	players, err := g.Store.FetchPlayers(ctx, teamType)
	if err != nil {
		return nil, err
	}

	if err := roster.Validate(teamType, players); err != nil {
		logger.Info("validation failed",
			zap.String("team_type", string(teamType)),
			zap.String("reason", err.Error()))
		return nil, err
	}

	input, err := prompt.Build(teamType, constraints, players)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	inv, err := g.Invoker.InvokeAgent(ctx, agent.Request{
		AgentID:      g.AgentID,
		AgentAliasID: g.AgentAliasID,
		SessionID:    sessionID,
		InputText:    input,
		EnableTrace:  true,
	})
	if err != nil {
		logger.Error("agent invocation failed",
			zap.String("team_type", string(teamType)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvocation, err)
	}

	logger.Info("team composition generated",
		zap.String("team_type", string(teamType)),
		zap.Int("players", len(players)),
		zap.Int("completion_len", len(inv.Completion)))
	return &Outcome{
		Prompt:      input,
		Composition: inv.Completion,
		Invocation:  inv,
	}, nil
}

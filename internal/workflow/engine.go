// Package workflow implements the postback-driven session workflow engine.
//
// This file implements the engine entry point: one invocation per inbound
// postback. The engine performs a single non-atomic read-modify-write cycle
// against the session store per event. The store itself is concurrency-safe,
// but two concurrent events for the same conversation key can interleave and
// one write can be lost; ordering between rapid successive taps is not
// guaranteed. Accepted risk.
package workflow

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ck19910321/LineBot/internal/models"
)

// FallbackText is the generic "message not understood" reply. Routing and
// validation failures resolve to it instead of surfacing an error.
const FallbackText = "對不起，我看不懂> <"

// Scheduler accepts a delivery for best-effort future execution. Submission
// is fire-and-forget: the call returns immediately and there is no handle for
// later cancellation.
type Scheduler interface {
	Schedule(d models.Delivery) error
}

// Engine routes inbound postbacks through the registry into workflow
// transitions.
type Engine struct {
	registry *Registry
}

// NewEngine creates an engine over the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// HandlePostback resolves and applies one postback command. Unknown
// workflow/action pairs and parameter validation failures return the fallback
// reply with a nil error; store and scheduler failures propagate as errors
// the caller must translate into a platform-level failure response.
func (e *Engine) HandlePostback(ctx context.Context, key models.ConversationKey, cmd models.PostbackCommand) (models.Message, error) {
	slog.Debug("Engine HandlePostback", "key", key.String(), "type", cmd.Type, "action", cmd.Action)

	fn, err := e.registry.Resolve(cmd.Type, cmd.Action)
	if err != nil {
		slog.Warn("Engine unknown postback", "error", err, "type", cmd.Type, "action", cmd.Action)
		return models.NewTextMessage(FallbackText), nil
	}

	msg, err := fn(ctx, key, NewParams(cmd))
	if errors.Is(err, ErrBadParams) {
		slog.Warn("Engine parameter validation failed", "error", err, "type", cmd.Type, "action", cmd.Action)
		return models.NewTextMessage(FallbackText), nil
	}
	if err != nil {
		slog.Error("Engine handler failed", "error", err, "key", key.String(), "type", cmd.Type, "action", cmd.Action)
		return nil, err
	}
	return msg, nil
}

// Package intent routes free-text messages to intent-specific responders.
//
// Each responder owns one trigger pattern and the reply for it. The router
// tries responders in registration order and falls back to the generic
// "message not understood" reply when nothing matches.
package intent

import (
	"context"
	"log/slog"

	"github.com/ck19910321/LineBot/internal/models"
	"github.com/ck19910321/LineBot/internal/workflow"
)

// Responder answers one free-text intent.
type Responder interface {
	// Match reports whether this responder handles the text.
	Match(text string) bool
	// Respond produces the reply for a matched text.
	Respond(ctx context.Context, key models.ConversationKey, text string) (models.Message, error)
}

// Router dispatches free text to the first matching responder.
type Router struct {
	responders []Responder
}

// NewRouter builds a router over the given responders, tried in order.
func NewRouter(responders ...Responder) *Router {
	return &Router{responders: responders}
}

// Respond routes the text. An unmatched text returns the fallback reply with
// a nil error; responder errors propagate.
func (r *Router) Respond(ctx context.Context, key models.ConversationKey, text string) (models.Message, error) {
	for _, responder := range r.responders {
		if responder.Match(text) {
			return responder.Respond(ctx, key, text)
		}
	}
	slog.Debug("Intent router no match", "key", key.String())
	return models.NewTextMessage(workflow.FallbackText), nil
}

// Package intent routes free-text messages to intent-specific responders.
//
// This file bridges free text into the reminder workflow: a message
// mentioning 提醒 becomes an add_reminder transition for the sender's
// conversation.
package intent

import (
	"context"
	"regexp"

	"github.com/ck19910321/LineBot/internal/models"
	"github.com/ck19910321/LineBot/internal/workflow"
)

var reminderTrigger = regexp.MustCompile(`提醒`)

// Reminder feeds matched texts into the reminder workflow.
type Reminder struct {
	engine *workflow.Engine
}

// NewReminder creates the reminder responder over the workflow engine.
func NewReminder(engine *workflow.Engine) *Reminder {
	return &Reminder{engine: engine}
}

// Match implements Responder.
func (r *Reminder) Match(text string) bool {
	return reminderTrigger.MatchString(text)
}

// Respond applies add_reminder with the full message text as the event.
func (r *Reminder) Respond(ctx context.Context, key models.ConversationKey, text string) (models.Message, error) {
	return r.engine.HandlePostback(ctx, key, models.PostbackCommand{
		Type:   models.WorkflowReminder,
		Action: "add_reminder",
		Params: map[string]string{"text": text},
	})
}

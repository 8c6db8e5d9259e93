// Package workflow implements the postback-driven session workflow engine.
//
// This file implements the reminder workflow: collect event texts, pick a
// timezone, confirm a datetime, then hand the combined reminder off for
// deferred delivery.
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/ck19910321/LineBot/internal/models"
	"github.com/ck19910321/LineBot/internal/store"
)

// IdleTTL is the lifetime of an unconfirmed workflow session. An in-progress
// workflow that sees no action for this long silently disappears.
const IdleTTL = 2 * time.Hour

// Reminder workflow reply texts.
const (
	reminderAltText    = "提醒小幫手"
	reminderTitle      = "提醒事項"
	reminderBanner     = "提醒小幫手來囉！"
	askPromptText      = "請回覆想被提醒的事項"
	confirmAckText     = "設定完畢！"
	cancelAckText      = "已移除所有提醒"
	pickTimeLabel      = "選擇需要提醒的時間"
	cancelActionLabel  = "移除"
	datetimePickerMode = "datetime"
)

// ReminderWorkflow owns the reminder state machine.
type ReminderWorkflow struct {
	store store.Store
	sched Scheduler

	// now is overridable in tests; it must return UTC.
	now func() time.Time
}

// NewReminderWorkflow creates the reminder workflow over a session store and
// a delivery scheduler.
func NewReminderWorkflow(st store.Store, sched Scheduler) *ReminderWorkflow {
	return &ReminderWorkflow{
		store: st,
		sched: sched,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Type implements Workflow.
func (w *ReminderWorkflow) Type() models.WorkflowType {
	return models.WorkflowReminder
}

// Actions implements Workflow. The map is the workflow's complete transition
// table.
func (w *ReminderWorkflow) Actions() map[string]ActionFunc {
	return map[string]ActionFunc{
		"ask":             w.ask,
		"add_reminder":    w.addReminder,
		"adjust_timezone": w.adjustTimezone,
		"confirm":         w.confirm,
		"cancel":          w.cancel,
	}
}

// load reads the session for key, returning the default empty session on a
// miss. A miss is never an error; only store unavailability is.
func (w *ReminderWorkflow) load(key models.ConversationKey) (*models.ReminderSession, error) {
	data, err := w.store.GetSession(key.String(), string(models.WorkflowReminder))
	if err != nil {
		return nil, fmt.Errorf("reminder session read failed: %w", err)
	}
	session := &models.ReminderSession{}
	if data == nil {
		return session, nil
	}
	if err := json.Unmarshal(data, session); err != nil {
		slog.Warn("ReminderWorkflow discarding undecodable session", "error", err, "key", key.String())
		return &models.ReminderSession{}, nil
	}
	return session, nil
}

func (w *ReminderWorkflow) save(key models.ConversationKey, session *models.ReminderSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("reminder session encode failed: %w", err)
	}
	if err := w.store.SetSession(key.String(), string(models.WorkflowReminder), data, ttl); err != nil {
		return fmt.Errorf("reminder session write failed: %w", err)
	}
	return nil
}

// ask resets the conversation to an empty collecting session and prompts for
// the first event text.
func (w *ReminderWorkflow) ask(ctx context.Context, key models.ConversationKey, p Params) (models.Message, error) {
	if err := w.save(key, &models.ReminderSession{}, IdleTTL); err != nil {
		return nil, err
	}
	slog.Debug("ReminderWorkflow ask reset session", "key", key.String())
	return models.NewTextMessage(askPromptText), nil
}

// addReminder appends the event text and offers the timezone choices. Events
// accumulate in arrival order into one combined reminder.
func (w *ReminderWorkflow) addReminder(ctx context.Context, key models.ConversationKey, p Params) (models.Message, error) {
	session, err := w.load(key)
	if err != nil {
		return nil, err
	}
	session.AddEvent(p.Text("text"))
	if err := w.save(key, session, IdleTTL); err != nil {
		return nil, err
	}
	slog.Debug("ReminderWorkflow added event", "key", key.String(), "events", len(session.Events))

	actions := make([]models.Action, 0, len(zones)+1)
	for _, z := range zones {
		actions = append(actions, models.PostbackAction{
			Label: z.Label,
			Data:  PostbackData(models.WorkflowReminder, "adjust_timezone", "tz", z.Key),
		})
	}
	actions = append(actions, cancelReminderAction())
	return models.ButtonsMessage{
		AltText: reminderAltText,
		Title:   reminderTitle,
		Text:    session.JoinedEvents(),
		Actions: actions,
	}, nil
}

// adjustTimezone stores the zone's hour shift and offers the datetime picker.
// An unrecognized zone label leaves the stored state untouched.
func (w *ReminderWorkflow) adjustTimezone(ctx context.Context, key models.ConversationKey, p Params) (models.Message, error) {
	zone, ok := LookupZone(p.Text("tz"))
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized zone %q", ErrBadParams, p.Text("tz"))
	}
	session, err := w.load(key)
	if err != nil {
		return nil, err
	}
	session.ShiftHours = zone.Hours
	if err := w.save(key, session, IdleTTL); err != nil {
		return nil, err
	}
	slog.Debug("ReminderWorkflow timezone chosen", "key", key.String(), "zone", zone.Key, "shift_hours", zone.Hours)

	return models.ButtonsMessage{
		AltText: reminderAltText,
		Title:   reminderTitle,
		Text:    session.JoinedEvents(),
		Actions: []models.Action{
			models.DatetimePickerAction{
				Label: pickTimeLabel,
				Data:  PostbackData(models.WorkflowReminder, "confirm"),
				Mode:  datetimePickerMode,
			},
			cancelReminderAction(),
		},
	}, nil
}

// confirm stores the picked datetime, computes the zone-normalized fire time,
// and submits the deferred delivery. The stored shift is applied exactly once
// here; it is never folded into the stored datetime string. The session TTL is
// recomputed to the exact remaining duration so the entry and the delivery
// expire together. A past-due fire time deletes the session without
// scheduling; the caller still receives the generic acknowledgment.
func (w *ReminderWorkflow) confirm(ctx context.Context, key models.ConversationKey, p Params) (models.Message, error) {
	local, err := p.Datetime()
	if err != nil {
		return nil, err
	}
	session, err := w.load(key)
	if err != nil {
		return nil, err
	}
	session.DateTime = p.RawDatetime()
	session.Status = true

	// Local picker time minus the zone offset is the absolute fire time.
	fireAt := local.Add(-time.Duration(session.ShiftHours) * time.Hour)
	remaining := fireAt.Sub(w.now())
	if remaining <= 0 {
		slog.Warn("ReminderWorkflow confirm past due, dropping", "key", key.String(), "fire_at", fireAt)
		if err := w.store.DeleteSession(key.String(), string(models.WorkflowReminder)); err != nil {
			return nil, fmt.Errorf("reminder session delete failed: %w", err)
		}
		return models.NewTextMessage(confirmAckText), nil
	}

	if err := w.save(key, session, remaining); err != nil {
		return nil, err
	}
	payload := reminderBanner
	if len(session.Events) > 0 {
		payload += "\n - " + session.JoinedEvents()
	}
	if err := w.sched.Schedule(models.Delivery{To: key.Target(), Body: payload, FireAt: fireAt}); err != nil {
		return nil, fmt.Errorf("reminder delivery submission failed: %w", err)
	}
	slog.Info("ReminderWorkflow reminder scheduled", "key", key.String(), "fire_at", fireAt, "remaining", remaining)
	return models.NewTextMessage(confirmAckText), nil
}

// cancel deletes the session from any state. An already-submitted delivery is
// not retracted; the scheduler keeps no cancellation handle.
func (w *ReminderWorkflow) cancel(ctx context.Context, key models.ConversationKey, p Params) (models.Message, error) {
	if err := w.store.DeleteSession(key.String(), string(models.WorkflowReminder)); err != nil {
		return nil, fmt.Errorf("reminder session delete failed: %w", err)
	}
	slog.Debug("ReminderWorkflow cancelled", "key", key.String())
	return models.NewTextMessage(cancelAckText), nil
}

func cancelReminderAction() models.Action {
	return models.PostbackAction{
		Label: cancelActionLabel,
		Data:  PostbackData(models.WorkflowReminder, "cancel"),
	}
}

// PostbackData encodes a self-describing postback data string carrying the
// workflow type, action name and extra key/value parameter pairs.
func PostbackData(wt models.WorkflowType, action string, kv ...string) string {
	values := url.Values{}
	values.Set("type", string(wt))
	values.Set("action", action)
	for i := 0; i+1 < len(kv); i += 2 {
		values.Set(kv[i], kv[i+1])
	}
	return values.Encode()
}

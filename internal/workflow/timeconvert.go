// Package workflow implements the postback-driven session workflow engine.
//
// This file implements the timezone-conversion workflow. Its session is
// short-lived scratch data: only the two resolved hour offsets survive
// between the zone-pair selection and the datetime picker result.
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ck19910321/LineBot/internal/models"
)

// DisplayLayout is the human-readable rendering of converted times.
const DisplayLayout = "2006-01-02 03:04 PM"

// Timezone-conversion reply texts.
const (
	timeConvertAltText   = "時間轉換"
	pickConvertTimeLabel = "請選擇想轉換的時間"
)

// TimeConvertWorkflow owns the timezone-conversion state machine. It never
// schedules a deferred delivery; its result is immediate and terminal.
type TimeConvertWorkflow struct {
	store sessionStore
}

// sessionStore is the subset of the store the conversion workflow needs.
type sessionStore interface {
	GetSession(key, workflow string) ([]byte, error)
	SetSession(key, workflow string, data []byte, ttl time.Duration) error
	DeleteSession(key, workflow string) error
}

// NewTimeConvertWorkflow creates the timezone-conversion workflow.
func NewTimeConvertWorkflow(st sessionStore) *TimeConvertWorkflow {
	return &TimeConvertWorkflow{store: st}
}

// Type implements Workflow.
func (w *TimeConvertWorkflow) Type() models.WorkflowType {
	return models.WorkflowTimeConvert
}

// Actions implements Workflow.
func (w *TimeConvertWorkflow) Actions() map[string]ActionFunc {
	return map[string]ActionFunc{
		"pick":   w.pick,
		"choose": w.choose,
	}
}

// pick resolves the chosen zone pair through the shared zone table, stores
// the two offsets, and offers the datetime picker.
func (w *TimeConvertWorkflow) pick(ctx context.Context, key models.ConversationKey, p Params) (models.Message, error) {
	from, ok := LookupZone(p.Text("from"))
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized zone %q", ErrBadParams, p.Text("from"))
	}
	to, ok := LookupZone(p.Text("to"))
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized zone %q", ErrBadParams, p.Text("to"))
	}

	session := &models.TimeConvertSession{FromHours: from.Hours, ToHours: to.Hours}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("conversion session encode failed: %w", err)
	}
	if err := w.store.SetSession(key.String(), string(models.WorkflowTimeConvert), data, IdleTTL); err != nil {
		return nil, fmt.Errorf("conversion session write failed: %w", err)
	}
	slog.Debug("TimeConvertWorkflow pair chosen", "key", key.String(), "from", from.Key, "to", to.Key)

	return models.ButtonsMessage{
		AltText: timeConvertAltText,
		Title:   timeConvertAltText,
		Text:    fmt.Sprintf("%s → %s", from.Label, to.Label),
		Actions: []models.Action{
			models.DatetimePickerAction{
				Label: pickConvertTimeLabel,
				Data:  PostbackData(models.WorkflowTimeConvert, "choose"),
				Mode:  datetimePickerMode,
			},
		},
	}, nil
}

// choose converts the picked source time into the target zone:
// target = (source - from_hours) + to_hours. The session is consumed.
func (w *TimeConvertWorkflow) choose(ctx context.Context, key models.ConversationKey, p Params) (models.Message, error) {
	source, err := p.Datetime()
	if err != nil {
		return nil, err
	}

	session := &models.TimeConvertSession{}
	data, err := w.store.GetSession(key.String(), string(models.WorkflowTimeConvert))
	if err != nil {
		return nil, fmt.Errorf("conversion session read failed: %w", err)
	}
	if data != nil {
		if err := json.Unmarshal(data, session); err != nil {
			slog.Warn("TimeConvertWorkflow discarding undecodable session", "error", err, "key", key.String())
			session = &models.TimeConvertSession{}
		}
	}

	utc := source.Add(-time.Duration(session.FromHours) * time.Hour)
	target := utc.Add(time.Duration(session.ToHours) * time.Hour)

	if err := w.store.DeleteSession(key.String(), string(models.WorkflowTimeConvert)); err != nil {
		return nil, fmt.Errorf("conversion session delete failed: %w", err)
	}
	slog.Debug("TimeConvertWorkflow converted", "key", key.String(),
		"from_hours", session.FromHours, "to_hours", session.ToHours)

	return models.NewTextMessage(fmt.Sprintf("%s時間 %s\n%s時間 %s",
		zoneName(session.FromHours), source.Format(DisplayLayout),
		zoneName(session.ToHours), target.Format(DisplayLayout),
	)), nil
}

// zoneName renders the label of the zone holding the offset, falling back to
// a UTC±N label for offsets outside the table (e.g. the zero default of an
// expired session).
func zoneName(hours int) string {
	if z, ok := ZoneByOffset(hours); ok {
		return z.Label
	}
	return fmt.Sprintf("UTC%+d", hours)
}

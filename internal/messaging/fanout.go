// Package messaging provides the outbound message transports.
//
// This file implements the delivery fanout: every push goes to the primary
// transport, and, when an SMS mirror is configured, a copy goes to the
// operator's phone so a reminder is not missed while away from LINE.
package messaging

import (
	"context"
	"log/slog"
)

// Fanout pushes through the primary transport and mirrors to an optional
// secondary destination. Mirror failures are logged, never propagated: the
// mirror is strictly best-effort.
type Fanout struct {
	primary  Service
	mirror   Service
	mirrorTo string
}

// NewFanout creates a fanout. mirror may be nil, in which case the fanout is
// a plain pass-through.
func NewFanout(primary, mirror Service, mirrorTo string) *Fanout {
	return &Fanout{primary: primary, mirror: mirror, mirrorTo: mirrorTo}
}

// PushText sends body to the destination and mirrors it when configured.
func (f *Fanout) PushText(ctx context.Context, to, body string) error {
	err := f.primary.PushText(ctx, to, body)
	if f.mirror != nil && f.mirrorTo != "" {
		if merr := f.mirror.PushText(ctx, f.mirrorTo, body); merr != nil {
			slog.Warn("Mirror push failed", "error", merr, "to", f.mirrorTo)
		}
	}
	return err
}

// Package messaging provides the outbound message transports.
//
// The workflow engine produces platform-neutral messages (internal/models);
// this package renders and delivers them over LINE, with an optional Twilio
// SMS mirror for reminder deliveries.
package messaging

import "context"

// Service is a pluggable outbound push transport.
type Service interface {
	// PushText sends a plain text message to a destination.
	PushText(ctx context.Context, to, body string) error
}

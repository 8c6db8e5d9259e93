// Package models defines the shared data types for the Woody LINE assistant.
//
// It contains conversation identity, postback commands, session payloads, and
// the outbound message shapes the messaging layer renders into platform
// messages.
package models

import (
	"fmt"
	"strings"
	"time"
)

// WorkflowType identifies a postback-driven workflow.
type WorkflowType string

// Workflow type constants. The type value travels inside every postback data
// string, so these are part of the wire format.
const (
	WorkflowReminder    WorkflowType = "reminder"
	WorkflowTimeConvert WorkflowType = "time_convert"
)

// IsValidWorkflowType checks if the given workflow type is supported.
func IsValidWorkflowType(wt WorkflowType) bool {
	switch wt {
	case WorkflowReminder, WorkflowTimeConvert:
		return true
	}
	return false
}

// ConversationKey identifies a conversation: a user alone, or a user inside a
// room. It keys persisted session state and resolves the push destination for
// deferred deliveries.
type ConversationKey struct {
	UserID string `json:"user_id"`
	RoomID string `json:"room_id,omitempty"`
}

// String serializes the key into the single-string form used as the store key.
func (k ConversationKey) String() string {
	return k.UserID + "_" + k.RoomID
}

// Target resolves the delivery destination. Room wins over user: a reminder
// set inside a room is delivered back to the room.
func (k ConversationKey) Target() string {
	if k.RoomID != "" {
		return k.RoomID
	}
	return k.UserID
}

// Validate checks that the key identifies at least a user.
func (k ConversationKey) Validate() error {
	if k.UserID == "" {
		return fmt.Errorf("conversation key requires a user id")
	}
	return nil
}

// ParseConversationKey reconstructs a key from its serialized form.
func ParseConversationKey(s string) (ConversationKey, error) {
	userID, roomID, ok := strings.Cut(s, "_")
	if !ok || userID == "" {
		return ConversationKey{}, fmt.Errorf("malformed conversation key %q", s)
	}
	return ConversationKey{UserID: userID, RoomID: roomID}, nil
}

// PostbackCommand is the decoded form of one inbound postback. It is produced
// fresh from each event and never persisted.
type PostbackCommand struct {
	Type     WorkflowType
	Action   string
	Params   map[string]string
	Datetime string // platform datetime picker value, "YYYY-MM-DDThh:mm"; empty if absent
}

// Delivery is the handoff record for a deferred send. Ownership transfers to
// the delivery scheduler on submission; the workflow engine keeps no reference
// to it afterwards.
type Delivery struct {
	To     string
	Body   string
	FireAt time.Time
}

// Package models defines the outbound message shapes returned by responders
// and workflow handlers. The messaging layer renders these into
// platform-specific payloads.
package models

// Message is an outbound reply payload.
type Message interface {
	message()
}

// TextMessage is a plain text reply.
type TextMessage struct {
	Text string
}

func (TextMessage) message() {}

// NewTextMessage creates a plain text reply.
func NewTextMessage(text string) TextMessage {
	return TextMessage{Text: text}
}

// Action is a tappable action attached to a template message. Each action
// pre-encodes its own postback data so the next inbound event is
// self-describing.
type Action interface {
	action()
}

// PostbackAction sends its Data string back as a postback when tapped.
type PostbackAction struct {
	Label string
	Data  string
}

func (PostbackAction) action() {}

// DatetimePickerAction opens the platform datetime picker; the chosen value
// arrives alongside the postback Data.
type DatetimePickerAction struct {
	Label string
	Data  string
	Mode  string // "date", "time" or "datetime"
}

func (DatetimePickerAction) action() {}

// ButtonsMessage is a template message offering up to four actions.
type ButtonsMessage struct {
	AltText string
	Title   string
	Text    string
	Actions []Action
}

func (ButtonsMessage) message() {}

// CarouselColumn is one card of a carousel, carrying up to three actions.
type CarouselColumn struct {
	Title   string
	Text    string
	Actions []Action
}

// CarouselMessage is a template message of several columns, used when a
// choice set does not fit a single buttons template.
type CarouselMessage struct {
	AltText string
	Columns []CarouselColumn
}

func (CarouselMessage) message() {}

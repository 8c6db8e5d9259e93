// Package api provides the webhook HTTP server.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/ck19910321/LineBot/internal/models"
	"github.com/ck19910321/LineBot/internal/workflow"
)

// callbackHandler processes one webhook delivery. Signature failures return
// 403, platform reply failures 400, engine failures 500; a fully processed
// delivery returns 200 "Ok".
func (s *Server) callbackHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	events, err := s.line.ParseRequest(r)
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			slog.Warn("Webhook signature verification failed", "error", err)
			w.WriteHeader(http.StatusForbidden)
			return
		}
		slog.Warn("Webhook request parse failed", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	for _, event := range events {
		if err := s.handleEvent(w, r, event); err != nil {
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Ok"))
}

// handleEvent processes one event; a non-nil return means a failure response
// has already been written.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request, event *linebot.Event) error {
	key := conversationKey(event.Source)
	if err := key.Validate(); err != nil {
		slog.Debug("Webhook event without user id, skipping", "type", event.Type)
		return nil
	}

	var (
		reply models.Message
		err   error
	)
	switch event.Type {
	case linebot.EventTypeMessage:
		text, ok := event.Message.(*linebot.TextMessage)
		if !ok {
			slog.Debug("Webhook ignoring non-text message", "key", key.String())
			return nil
		}
		reply, err = s.intents.Respond(r.Context(), key, text.Text)
	case linebot.EventTypePostback:
		reply, err = s.handlePostback(w, r, key, event)
	default:
		slog.Debug("Webhook ignoring event", "type", event.Type)
		return nil
	}
	if err != nil {
		slog.Error("Webhook event handling failed", "error", err, "key", key.String())
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}
	if reply == nil {
		return nil
	}

	if err := s.line.Reply(r.Context(), event.ReplyToken, reply); err != nil {
		slog.Error("Webhook reply failed", "error", err, "key", key.String())
		w.WriteHeader(http.StatusBadRequest)
		return err
	}
	return nil
}

func (s *Server) handlePostback(w http.ResponseWriter, r *http.Request, key models.ConversationKey, event *linebot.Event) (models.Message, error) {
	var datetime string
	if event.Postback.Params != nil {
		datetime = event.Postback.Params.Datetime
	}
	cmd, err := workflow.ParseCommand(event.Postback.Data, datetime)
	if err != nil {
		slog.Warn("Webhook undecodable postback", "error", err, "key", key.String())
		return models.NewTextMessage(workflow.FallbackText), nil
	}
	return s.engine.HandlePostback(r.Context(), key, cmd)
}

// conversationKey derives the conversation identity from the event source.
// A room or group id scopes the conversation to that room; otherwise it is
// user-scoped.
func conversationKey(source *linebot.EventSource) models.ConversationKey {
	if source == nil {
		return models.ConversationKey{}
	}
	roomID := source.RoomID
	if roomID == "" {
		roomID = source.GroupID
	}
	return models.ConversationKey{UserID: source.UserID, RoomID: roomID}
}

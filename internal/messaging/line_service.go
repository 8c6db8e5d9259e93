// Package messaging provides the outbound message transports.
//
// This file wraps the LINE Messaging API client: webhook request parsing
// (signature verification included), synchronous replies, and push messages.
package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/ck19910321/LineBot/internal/models"
)

// Opts holds configuration options for the LINE client.
type Opts struct {
	ChannelSecret string
	ChannelToken  string
}

// Option defines a configuration option for the LINE client.
type Option func(*Opts)

// WithChannelSecret sets the LINE channel secret used for webhook signature
// verification.
func WithChannelSecret(secret string) Option {
	return func(o *Opts) { o.ChannelSecret = secret }
}

// WithChannelToken sets the LINE channel access token.
func WithChannelToken(token string) Option {
	return func(o *Opts) { o.ChannelToken = token }
}

// LineService implements Service over the LINE Messaging API.
type LineService struct {
	client *linebot.Client
}

// NewLineService creates a LINE service. Credentials fall back to the
// LINE_CHANNEL_SECRET and LINE_CHANNEL_TOKEN environment variables when not
// provided via options.
func NewLineService(opts ...Option) (*LineService, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ChannelSecret == "" {
		cfg.ChannelSecret = os.Getenv("LINE_CHANNEL_SECRET")
	}
	if cfg.ChannelToken == "" {
		cfg.ChannelToken = os.Getenv("LINE_CHANNEL_TOKEN")
	}
	slog.Debug("LINE client config loaded",
		"ChannelSecret_set", cfg.ChannelSecret != "",
		"ChannelToken_set", cfg.ChannelToken != "")

	if cfg.ChannelSecret == "" || cfg.ChannelToken == "" {
		return nil, fmt.Errorf("channel secret and channel token must be provided")
	}

	client, err := linebot.New(cfg.ChannelSecret, cfg.ChannelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE client: %w", err)
	}
	return &LineService{client: client}, nil
}

// ParseRequest parses and signature-verifies an inbound webhook request.
// It returns linebot.ErrInvalidSignature on a signature mismatch.
func (s *LineService) ParseRequest(r *http.Request) ([]*linebot.Event, error) {
	return s.client.ParseRequest(r)
}

// Reply sends messages as a synchronous reply to an inbound event.
func (s *LineService) Reply(ctx context.Context, replyToken string, msgs ...models.Message) error {
	rendered, err := renderMessages(msgs)
	if err != nil {
		return err
	}
	if _, err := s.client.ReplyMessage(replyToken, rendered...).WithContext(ctx).Do(); err != nil {
		slog.Error("LINE reply failed", "error", err)
		return fmt.Errorf("failed to reply: %w", err)
	}
	return nil
}

// PushText sends a plain text push message to a user, room or group id.
func (s *LineService) PushText(ctx context.Context, to, body string) error {
	if _, err := s.client.PushMessage(to, linebot.NewTextMessage(body)).WithContext(ctx).Do(); err != nil {
		slog.Error("LINE push failed", "error", err, "to", to)
		return fmt.Errorf("failed to push message to %s: %w", to, err)
	}
	slog.Debug("LINE message pushed", "to", to)
	return nil
}

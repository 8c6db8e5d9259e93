// Package messaging provides the outbound message transports.
//
// This file renders the platform-neutral message shapes into LINE SDK
// messages.
package messaging

import (
	"fmt"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/ck19910321/LineBot/internal/models"
)

func renderMessages(msgs []models.Message) ([]linebot.SendingMessage, error) {
	out := make([]linebot.SendingMessage, 0, len(msgs))
	for _, m := range msgs {
		rendered, err := renderMessage(m)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}

func renderMessage(m models.Message) (linebot.SendingMessage, error) {
	switch msg := m.(type) {
	case models.TextMessage:
		return linebot.NewTextMessage(msg.Text), nil
	case models.ButtonsMessage:
		actions, err := renderActions(msg.Actions)
		if err != nil {
			return nil, err
		}
		template := linebot.NewButtonsTemplate("", msg.Title, msg.Text, actions...)
		return linebot.NewTemplateMessage(msg.AltText, template), nil
	case models.CarouselMessage:
		columns := make([]*linebot.CarouselColumn, 0, len(msg.Columns))
		for _, col := range msg.Columns {
			actions, err := renderActions(col.Actions)
			if err != nil {
				return nil, err
			}
			columns = append(columns, linebot.NewCarouselColumn("", col.Title, col.Text, actions...))
		}
		return linebot.NewTemplateMessage(msg.AltText, linebot.NewCarouselTemplate(columns...)), nil
	default:
		return nil, fmt.Errorf("unsupported message type %T", m)
	}
}

func renderActions(actions []models.Action) ([]linebot.TemplateAction, error) {
	out := make([]linebot.TemplateAction, 0, len(actions))
	for _, a := range actions {
		switch action := a.(type) {
		case models.PostbackAction:
			out = append(out, linebot.NewPostbackAction(action.Label, action.Data, "", "", "", ""))
		case models.DatetimePickerAction:
			out = append(out, linebot.NewDatetimePickerAction(action.Label, action.Data, action.Mode, "", "", ""))
		default:
			return nil, fmt.Errorf("unsupported action type %T", a)
		}
	}
	return out, nil
}

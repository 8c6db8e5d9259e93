// Package intent routes free-text messages to intent-specific responders.
//
// This file implements the timezone-conversion kickoff: a message mentioning
// 時間轉換 gets a carousel of zone pairs, each button pre-encoding the
// workflow's pick action.
package intent

import (
	"context"
	"fmt"
	"regexp"

	"github.com/ck19910321/LineBot/internal/models"
	"github.com/ck19910321/LineBot/internal/workflow"
)

var timeConvertTrigger = regexp.MustCompile(`時間轉換`)

// carouselActionsPerColumn is the platform limit on actions per carousel
// column.
const carouselActionsPerColumn = 3

// TimeConvert offers the zone-pair choices that start the conversion
// workflow. It is stateless; the chosen pair is persisted by the workflow.
type TimeConvert struct{}

// NewTimeConvert creates the timezone-conversion responder.
func NewTimeConvert() *TimeConvert {
	return &TimeConvert{}
}

// Match implements Responder.
func (t *TimeConvert) Match(text string) bool {
	return timeConvertTrigger.MatchString(text)
}

// Respond returns a carousel listing every ordered pair of distinct zones
// from the shared zone table.
func (t *TimeConvert) Respond(ctx context.Context, key models.ConversationKey, text string) (models.Message, error) {
	zones := workflow.Zones()
	var actions []models.Action
	for _, from := range zones {
		for _, to := range zones {
			if from.Key == to.Key {
				continue
			}
			actions = append(actions, models.PostbackAction{
				Label: fmt.Sprintf("%s → %s", from.Label, to.Label),
				Data: workflow.PostbackData(models.WorkflowTimeConvert, "pick",
					"from", from.Key, "to", to.Key),
			})
		}
	}

	var columns []models.CarouselColumn
	for start := 0; start < len(actions); start += carouselActionsPerColumn {
		end := start + carouselActionsPerColumn
		if end > len(actions) {
			end = len(actions)
		}
		columns = append(columns, models.CarouselColumn{
			Title:   "時間轉換",
			Text:    "請選擇想轉換的時區組合",
			Actions: actions[start:end],
		})
	}
	return models.CarouselMessage{AltText: "時間轉換", Columns: columns}, nil
}

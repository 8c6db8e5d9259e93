// Package intent routes free-text messages to intent-specific responders.
//
// This file implements the temperature conversion answerer: a message
// mentioning 溫度 with a number and a scale marker gets the converted value.
package intent

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/ck19910321/LineBot/internal/models"
	"github.com/ck19910321/LineBot/internal/workflow"
)

var (
	temperatureTrigger = regexp.MustCompile(`溫度`)
	temperatureValue   = regexp.MustCompile(`\d+`)
	celsiusMarker      = regexp.MustCompile(`[cC]|攝`)
	fahrenheitMarker   = regexp.MustCompile(`[fF]|華`)
)

// Temperature converts between Celsius and Fahrenheit. It is stateless.
type Temperature struct{}

// NewTemperature creates the temperature responder.
func NewTemperature() *Temperature {
	return &Temperature{}
}

// Match implements Responder.
func (t *Temperature) Match(text string) bool {
	return temperatureTrigger.MatchString(text)
}

// Respond converts the first number in the text. The marker names the scale
// the number is in; the reply carries the other scale. A message without a
// number or marker gets the fallback reply.
func (t *Temperature) Respond(ctx context.Context, key models.ConversationKey, text string) (models.Message, error) {
	raw := temperatureValue.FindString(text)
	if raw == "" {
		return models.NewTextMessage(workflow.FallbackText), nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.NewTextMessage(workflow.FallbackText), nil
	}

	switch {
	case celsiusMarker.MatchString(text):
		return models.NewTextMessage(fmt.Sprintf("華氏溫度: %s", formatDegrees(value*9.0/5+32))), nil
	case fahrenheitMarker.MatchString(text):
		return models.NewTextMessage(fmt.Sprintf("攝氏溫度: %s", formatDegrees((value-32.0)/9*5))), nil
	}
	return models.NewTextMessage(workflow.FallbackText), nil
}

// formatDegrees rounds to two decimals and drops trailing zeros.
func formatDegrees(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

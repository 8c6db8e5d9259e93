// Package workflow implements the postback-driven session workflow engine.
//
// This file implements postback decoding and the typed parameter wrapper.
package workflow

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/ck19910321/LineBot/internal/models"
)

// ErrBadParams marks a parameter validation failure. Handlers and the engine
// resolve it locally into the generic fallback reply; it never propagates to
// the transport layer.
var ErrBadParams = errors.New("invalid postback parameters")

// ParseCommand decodes a postback data string (URL-encoded query) plus the
// optional datetime picker value into a command. The data string must carry
// `type` and `action`; all remaining keys become workflow parameters.
// Unrecognized extra keys are kept and ignored by handlers.
func ParseCommand(data, datetime string) (models.PostbackCommand, error) {
	values, err := url.ParseQuery(data)
	if err != nil {
		return models.PostbackCommand{}, fmt.Errorf("%w: malformed postback data %q", ErrBadParams, data)
	}
	typ := values.Get("type")
	action := values.Get("action")
	if typ == "" || action == "" {
		return models.PostbackCommand{}, fmt.Errorf("%w: postback data missing type or action", ErrBadParams)
	}
	params := make(map[string]string)
	for k, v := range values {
		if k == "type" || k == "action" {
			continue
		}
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return models.PostbackCommand{
		Type:     models.WorkflowType(typ),
		Action:   action,
		Params:   params,
		Datetime: datetime,
	}, nil
}

// Params wraps the flat key/value payload of one postback with typed, defaulted
// accessors. It is a pure value; validation failures surface as ErrBadParams.
type Params struct {
	values   map[string]string
	datetime string
}

// NewParams builds the parameter wrapper for a command.
func NewParams(cmd models.PostbackCommand) Params {
	return Params{values: cmd.Params, datetime: cmd.Datetime}
}

// Text returns the string value for key, or the empty string when absent.
func (p Params) Text(key string) string {
	return p.values[key]
}

// Hours returns the signed integer value for key. A missing key defaults to
// zero; a non-numeric value is a validation failure.
func (p Params) Hours(key string) (int, error) {
	raw, ok := p.values[key]
	if !ok || raw == "" {
		return 0, nil
	}
	hours, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a signed integer", ErrBadParams, raw)
	}
	return hours, nil
}

// Datetime parses the platform picker value in its fixed format. The result
// is an unzoned local time carried in UTC; callers apply zone shifts
// themselves.
func (p Params) Datetime() (time.Time, error) {
	t, err := time.ParseInLocation(models.PickerLayout, p.datetime, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a %s datetime", ErrBadParams, p.datetime, models.PickerLayout)
	}
	return t, nil
}

// RawDatetime returns the unparsed picker value.
func (p Params) RawDatetime() string {
	return p.datetime
}

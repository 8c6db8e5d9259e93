package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/ck19910321/LineBot/internal/models"
)

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand("type=reminder&action=adjust_timezone&tz=taipei", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Type != models.WorkflowReminder || cmd.Action != "adjust_timezone" {
		t.Errorf("unexpected command %+v", cmd)
	}
	if cmd.Params["tz"] != "taipei" {
		t.Errorf("expected tz param, got %+v", cmd.Params)
	}
}

func TestParseCommandKeepsDatetime(t *testing.T) {
	cmd, err := ParseCommand("type=reminder&action=confirm", "2024-01-01T10:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Datetime != "2024-01-01T10:00" {
		t.Errorf("expected datetime to be carried, got %q", cmd.Datetime)
	}
}

func TestParseCommandMissingTypeOrAction(t *testing.T) {
	cases := []string{
		"action=confirm",
		"type=reminder",
		"",
	}
	for _, data := range cases {
		if _, err := ParseCommand(data, ""); !errors.Is(err, ErrBadParams) {
			t.Errorf("data %q: expected ErrBadParams, got %v", data, err)
		}
	}
}

func TestParseCommandMalformedQuery(t *testing.T) {
	if _, err := ParseCommand("type=reminder&action=%zz", ""); !errors.Is(err, ErrBadParams) {
		t.Errorf("expected ErrBadParams, got %v", err)
	}
}

func TestParamsTextDefaultsToEmpty(t *testing.T) {
	p := NewParams(models.PostbackCommand{Params: map[string]string{}})
	if got := p.Text("text"); got != "" {
		t.Errorf("expected empty default, got %q", got)
	}
}

func TestParamsHours(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{"positive", "8", 8, false},
		{"negative", "-7", -7, false},
		{"missing defaults to zero", "", 0, false},
		{"non-numeric", "eight", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := map[string]string{}
			if tc.value != "" {
				params["hours"] = tc.value
			}
			p := NewParams(models.PostbackCommand{Params: params})
			got, err := p.Hours("hours")
			if tc.wantErr {
				if !errors.Is(err, ErrBadParams) {
					t.Errorf("expected ErrBadParams, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestParamsDatetime(t *testing.T) {
	p := NewParams(models.PostbackCommand{Datetime: "2024-06-01T09:00"})
	got, err := p.Datetime()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	bad := NewParams(models.PostbackCommand{Datetime: "06/01/2024 9am"})
	if _, err := bad.Datetime(); !errors.Is(err, ErrBadParams) {
		t.Errorf("expected ErrBadParams, got %v", err)
	}
}

func TestPostbackDataRoundTrip(t *testing.T) {
	data := PostbackData(models.WorkflowTimeConvert, "pick", "from", "taipei", "to", "osaka")
	cmd, err := ParseCommand(data, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Type != models.WorkflowTimeConvert || cmd.Action != "pick" {
		t.Errorf("unexpected command %+v", cmd)
	}
	if cmd.Params["from"] != "taipei" || cmd.Params["to"] != "osaka" {
		t.Errorf("unexpected params %+v", cmd.Params)
	}
}

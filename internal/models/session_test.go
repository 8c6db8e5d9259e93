package models

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestReminderSessionRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		session ReminderSession
	}{
		{"empty", ReminderSession{}},
		{"populated", ReminderSession{
			Events:     []string{"買牛奶", "倒垃圾"},
			DateTime:   "2024-01-01T10:00",
			Status:     true,
			ShiftHours: 8,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(&tc.session)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			var got ReminderSession
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual(got, tc.session) {
				t.Errorf("round trip mismatch: %+v != %+v", got, tc.session)
			}
		})
	}
}

func TestTimeConvertSessionRoundTrip(t *testing.T) {
	session := TimeConvertSession{FromHours: 8, ToHours: -7}
	data, err := json.Marshal(&session)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var got TimeConvertSession
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got != session {
		t.Errorf("round trip mismatch: %+v != %+v", got, session)
	}
}

func TestReminderSessionFieldAbsenceDefaults(t *testing.T) {
	// Field absence on read is the documented default, not an error.
	var session ReminderSession
	if err := json.Unmarshal([]byte(`{}`), &session); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(session.Events) != 0 || session.DateTime != "" || session.Status || session.ShiftHours != 0 {
		t.Errorf("expected zero defaults, got %+v", session)
	}
}

func TestReminderSessionJoinedEvents(t *testing.T) {
	session := ReminderSession{}
	session.AddEvent("a")
	session.AddEvent("b")
	if got := session.JoinedEvents(); got != "a\n - b" {
		t.Errorf("expected %q, got %q", "a\n - b", got)
	}
}

func TestReminderSessionLocalDateTime(t *testing.T) {
	session := ReminderSession{DateTime: "2024-01-01T10:30"}
	got, err := session.LocalDateTime()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	session.DateTime = "not-a-datetime"
	if _, err := session.LocalDateTime(); err == nil {
		t.Error("expected error for malformed datetime")
	}
}

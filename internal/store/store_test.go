package store

import (
	"testing"
	"time"
)

func TestMemoryStoreMissIsNotAnError(t *testing.T) {
	st := NewMemoryStore()
	data, err := st.GetSession("U1_", "reminder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil payload for missing session, got %q", data)
	}
}

func TestMemoryStoreSetGetDelete(t *testing.T) {
	st := NewMemoryStore()
	if err := st.SetSession("U1_", "reminder", []byte(`{"events":["a"]}`), time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := st.GetSession("U1_", "reminder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"events":["a"]}` {
		t.Errorf("unexpected payload %q", data)
	}

	// Different workflow under the same key is a separate entry.
	other, err := st.GetSession("U1_", "time_convert")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other != nil {
		t.Errorf("expected miss for other workflow, got %q", other)
	}

	if err := st.DeleteSession("U1_", "reminder"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err = st.GetSession("U1_", "reminder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != nil {
		t.Errorf("expected miss after delete, got %q", data)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	st := NewMemoryStore()
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return current }

	if err := st.SetSession("U1_", "reminder", []byte(`{}`), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = current.Add(30 * time.Second)
	if data, _ := st.GetSession("U1_", "reminder"); data == nil {
		t.Fatal("expected hit before expiry")
	}

	current = current.Add(2 * time.Minute)
	if data, _ := st.GetSession("U1_", "reminder"); data != nil {
		t.Errorf("expected miss after expiry, got %q", data)
	}
}

func TestMemoryStoreDeleteExpired(t *testing.T) {
	st := NewMemoryStore()
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return current }

	st.SetSession("U1_", "reminder", []byte(`{}`), time.Minute)
	st.SetSession("U2_", "reminder", []byte(`{}`), time.Hour)

	current = current.Add(10 * time.Minute)
	removed, err := st.DeleteExpired()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if data, _ := st.GetSession("U2_", "reminder"); data == nil {
		t.Error("expected unexpired session to survive the sweep")
	}
}

func TestMemoryStorePayloadIsolation(t *testing.T) {
	st := NewMemoryStore()
	payload := []byte(`{"events":["a"]}`)
	st.SetSession("U1_", "reminder", payload, time.Hour)
	payload[2] = 'X'

	data, _ := st.GetSession("U1_", "reminder")
	if string(data) != `{"events":["a"]}` {
		t.Errorf("stored payload mutated through caller's slice: %q", data)
	}
}

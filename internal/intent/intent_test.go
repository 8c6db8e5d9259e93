package intent

import (
	"context"
	"testing"

	"github.com/ck19910321/LineBot/internal/models"
	"github.com/ck19910321/LineBot/internal/store"
	"github.com/ck19910321/LineBot/internal/workflow"
)

type nopScheduler struct{}

func (nopScheduler) Schedule(d models.Delivery) error { return nil }

func newTestRouter(st *store.MemoryStore) *Router {
	engine := workflow.NewEngine(workflow.NewRegistry(
		workflow.NewReminderWorkflow(st, nopScheduler{}),
		workflow.NewTimeConvertWorkflow(st),
	))
	return NewRouter(
		NewTemperature(),
		NewReminder(engine),
		NewTimeConvert(),
	)
}

func respondText(t *testing.T, router *Router, text string) models.Message {
	t.Helper()
	msg, err := router.Respond(context.Background(), models.ConversationKey{UserID: "U1"}, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return msg
}

func TestTemperatureCelsiusToFahrenheit(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())
	msg := respondText(t, router, "溫度 100C")
	text, ok := msg.(models.TextMessage)
	if !ok {
		t.Fatalf("expected TextMessage, got %T", msg)
	}
	if text.Text != "華氏溫度: 212" {
		t.Errorf("expected %q, got %q", "華氏溫度: 212", text.Text)
	}
}

func TestTemperatureFahrenheitToCelsius(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())
	msg := respondText(t, router, "溫度 50華")
	text, ok := msg.(models.TextMessage)
	if !ok {
		t.Fatalf("expected TextMessage, got %T", msg)
	}
	if text.Text != "攝氏溫度: 10" {
		t.Errorf("expected %q, got %q", "攝氏溫度: 10", text.Text)
	}
}

func TestTemperatureRoundsToTwoDecimals(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())
	msg := respondText(t, router, "溫度 37攝")
	text := msg.(models.TextMessage)
	// 37C = 98.6F
	if text.Text != "華氏溫度: 98.6" {
		t.Errorf("expected %q, got %q", "華氏溫度: 98.6", text.Text)
	}
}

func TestTemperatureWithoutNumberFallsBack(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())
	msg := respondText(t, router, "溫度好冷")
	if text, ok := msg.(models.TextMessage); !ok || text.Text != workflow.FallbackText {
		t.Errorf("expected fallback, got %#v", msg)
	}
}

func TestReminderIntentFeedsWorkflow(t *testing.T) {
	st := store.NewMemoryStore()
	router := newTestRouter(st)

	msg := respondText(t, router, "提醒我買牛奶")
	if _, ok := msg.(models.ButtonsMessage); !ok {
		t.Fatalf("expected ButtonsMessage, got %T", msg)
	}

	data, err := st.GetSession("U1_", string(models.WorkflowReminder))
	if err != nil {
		t.Fatalf("unexpected store error: %v", err)
	}
	if data == nil {
		t.Fatal("expected reminder session to be created")
	}
}

func TestTimeConvertIntentOffersAllOrderedPairs(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())

	msg := respondText(t, router, "時間轉換")
	carousel, ok := msg.(models.CarouselMessage)
	if !ok {
		t.Fatalf("expected CarouselMessage, got %T", msg)
	}

	var total int
	for _, col := range carousel.Columns {
		if len(col.Actions) > carouselActionsPerColumn {
			t.Errorf("column exceeds action limit: %d", len(col.Actions))
		}
		total += len(col.Actions)
	}
	// Three zones give six ordered pairs.
	if total != 6 {
		t.Errorf("expected 6 pair actions, got %d", total)
	}

	// Every action must decode back into a valid pick command.
	for _, col := range carousel.Columns {
		for _, a := range col.Actions {
			pb, ok := a.(models.PostbackAction)
			if !ok {
				t.Fatalf("expected PostbackAction, got %T", a)
			}
			cmd, err := workflow.ParseCommand(pb.Data, "")
			if err != nil {
				t.Fatalf("undecodable postback data %q: %v", pb.Data, err)
			}
			if cmd.Type != models.WorkflowTimeConvert || cmd.Action != "pick" {
				t.Errorf("unexpected command %+v", cmd)
			}
		}
	}
}

func TestRouterFallsBackWhenNothingMatches(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())
	msg := respondText(t, router, "你好嗎")
	if text, ok := msg.(models.TextMessage); !ok || text.Text != workflow.FallbackText {
		t.Errorf("expected fallback, got %#v", msg)
	}
}

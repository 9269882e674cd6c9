package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/fitness-tracker/internal/db"
	"github.com/Spok95/fitness-tracker/internal/fitness"
	"github.com/Spok95/fitness-tracker/internal/students"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) last(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatal("nothing sent")
	}
	return f.sent[len(f.sent)-1].Text
}

func message(chatID int64, text string) *tgbotapi.Message {
	m := &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: text}
	if strings.HasPrefix(text, "/") {
		n := strings.IndexByte(text, ' ')
		if n < 0 {
			n = len(text)
		}
		m.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: n}}
	}
	return m
}

const adminChat = 42

func newTestBot() (*Bot, *fakeSender, *students.Service) {
	api := &fakeSender{}
	svc := students.NewService(db.NewMemStore(), nil)
	b := New(api, svc, func(id int64) bool { return id == adminChat }, nil)
	return b, api, svc
}

func TestAdd_ScoresThroughService(t *testing.T) {
	b, api, svc := newTestBot()
	ctx := context.Background()

	b.Handle(ctx, message(1, "/add Siti Aminah; 17; 160; 55; 9,2; 35; 20"))
	if got := api.last(t); !strings.Contains(got, "Score 75/100") || !strings.Contains(got, "Cukup") {
		t.Fatalf("reply = %q", got)
	}
	list, _ := svc.List(ctx)
	if len(list) != 1 || list[0].Level != fitness.Average || list[0].RunningTime != 9.2 {
		t.Fatalf("stored %+v", list)
	}
}

func TestAdd_Invalid(t *testing.T) {
	b, api, svc := newTestBot()
	ctx := context.Background()

	b.Handle(ctx, message(1, "/add X; 5; 175; 70; 8; 45; 30"))
	if got := api.last(t); !strings.Contains(got, "Age must be at least 10 years old.") {
		t.Fatalf("reply = %q", got)
	}
	b.Handle(ctx, message(1, "/add only; three; parts"))
	if got := api.last(t); !strings.Contains(got, "expected 7 values") {
		t.Fatalf("reply = %q", got)
	}
	list, _ := svc.List(ctx)
	if len(list) != 0 {
		t.Fatalf("invalid input stored: %+v", list)
	}
}

func TestStatsAndRecent(t *testing.T) {
	b, api, _ := newTestBot()
	ctx := context.Background()

	b.Handle(ctx, message(1, "/stats"))
	if got := api.last(t); got != "No students recorded yet." {
		t.Fatalf("empty stats = %q", got)
	}

	for i := 0; i < 7; i++ {
		b.Handle(ctx, message(1, fmt.Sprintf("/add Student %d; 18; 175; 70; 8; 45; 30", i)))
	}
	b.Handle(ctx, message(1, "📊 Stats"))
	got := api.last(t)
	if !strings.Contains(got, "Students evaluated: 7") || !strings.Contains(got, "Baik (Good): 7") || !strings.Contains(got, "Average score: 95/100") {
		t.Fatalf("stats = %q", got)
	}

	b.Handle(ctx, message(1, "/recent"))
	got = api.last(t)
	if n := strings.Count(got, "Score 95/100"); n != recentLimit {
		t.Fatalf("recent shows %d records, want %d:\n%s", n, recentLimit, got)
	}
	if !strings.HasPrefix(got, "#7 Student 6") {
		t.Fatalf("recent must start with the newest record: %q", got)
	}
}

func TestDelete_AdminOnly(t *testing.T) {
	b, api, svc := newTestBot()
	ctx := context.Background()
	st, err := svc.Create(ctx, students.Input{
		Name:        "Budi",
		Measurement: fitness.Measurement{Age: 19, Height: 180, Weight: 85, RunningTime: 12, SitUps: 25, PushUps: 15},
	})
	if err != nil {
		t.Fatal(err)
	}
	cmd := fmt.Sprintf("/delete %d", st.ID)

	b.Handle(ctx, message(7, cmd))
	if got := api.last(t); !strings.Contains(got, "Only administrators") {
		t.Fatalf("reply = %q", got)
	}
	if _, err := svc.Get(ctx, st.ID); err != nil {
		t.Fatal("non-admin delete must not remove the record")
	}

	b.Handle(ctx, message(adminChat, cmd))
	if got := api.last(t); !strings.Contains(got, "deleted") {
		t.Fatalf("reply = %q", got)
	}
	b.Handle(ctx, message(adminChat, cmd))
	if got := api.last(t); !strings.Contains(got, "not found") {
		t.Fatalf("reply = %q", got)
	}
	b.Handle(ctx, message(adminChat, "/delete abc"))
	if got := api.last(t); !strings.HasPrefix(got, "Usage") {
		t.Fatalf("reply = %q", got)
	}
}

func TestStart_KeyboardAndUnknown(t *testing.T) {
	b, api, _ := newTestBot()
	ctx := context.Background()

	b.Handle(ctx, message(adminChat, "/start"))
	api.mu.Lock()
	m := api.sent[len(api.sent)-1]
	api.mu.Unlock()
	if _, ok := m.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup); !ok {
		t.Fatalf("start must attach the keyboard, got %T", m.ReplyMarkup)
	}
	if !strings.Contains(m.Text, "/delete") {
		t.Fatal("admin help must mention /delete")
	}

	b.Handle(ctx, message(1, "hello"))
	if got := api.last(t); !strings.Contains(got, "Unknown command") {
		t.Fatalf("reply = %q", got)
	}
}

func TestHandle_BusyChat(t *testing.T) {
	b, api, _ := newTestBot()
	unlock, ok := b.limiter.TryLock(1)
	if !ok {
		t.Fatal("lock")
	}
	defer unlock()

	b.Handle(context.Background(), message(1, "/stats"))
	if got := api.last(t); !strings.Contains(got, "previous command") {
		t.Fatalf("reply = %q", got)
	}
}

func TestParseAddArgs(t *testing.T) {
	got, err := parseAddArgs(" Ahmad Fitri ; 18;175; 65 ;7,5;45;30")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"name": "Ahmad Fitri", "age": "18", "height": "175", "weight": "65",
		"running_time": "7,5", "sit_ups": "45", "push_ups": "30",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
	if _, err := parseAddArgs(""); err == nil {
		t.Error("empty args must fail")
	}
}

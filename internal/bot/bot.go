// Package bot is the optional Telegram front-end. It goes through the same
// students.Service as the web UI, so records are scored the same way.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Spok95/fitness-tracker/internal/app"
	"github.com/Spok95/fitness-tracker/internal/bot/menu"
	"github.com/Spok95/fitness-tracker/internal/ctxutil"
	"github.com/Spok95/fitness-tracker/internal/students"
	"github.com/Spok95/fitness-tracker/internal/tg"
)

const recentLimit = 5

type Bot struct {
	api     tg.Sender
	svc     *students.Service
	isAdmin func(chatID int64) bool
	limiter *app.ChatLimiter
	log     *zap.Logger
}

func New(api tg.Sender, svc *students.Service, isAdmin func(int64) bool, log *zap.Logger) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	if isAdmin == nil {
		isAdmin = func(int64) bool { return false }
	}
	return &Bot{api: api, svc: svc, isAdmin: isAdmin, limiter: app.NewChatLimiter(), log: log}
}

// Run обрабатывает обновления, пока не закроется канал или не отменят ctx.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if u.Message == nil {
				continue
			}
			go b.Handle(ctx, u.Message)
		}
	}
}

// Handle runs one message. A chat that is still busy gets a short notice instead.
func (b *Bot) Handle(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	unlock, ok := b.limiter.TryLock(chatID)
	if !ok {
		b.reply(ctx, chatID, "⏳ Still working on your previous command.")
		return
	}
	defer unlock()

	ctx = ctxutil.WithChatID(ctx, chatID)
	cmd, args := split(msg)
	ctx = ctxutil.WithOp(ctx, "bot."+cmd)

	switch cmd {
	case "start", "help":
		b.start(ctx, chatID)
	case "stats":
		b.stats(ctx, chatID)
	case "recent":
		b.recent(ctx, chatID)
	case "add":
		b.add(ctx, chatID, args)
	case "delete":
		b.delete(ctx, chatID, args)
	default:
		b.reply(ctx, chatID, "⚠️ Unknown command. Use /start")
	}
}

// split maps keyboard buttons onto commands and strips a "@botname" suffix.
func split(msg *tgbotapi.Message) (cmd, args string) {
	switch strings.TrimSpace(msg.Text) {
	case menu.BtnStats:
		return "stats", ""
	case menu.BtnRecent:
		return "recent", ""
	case menu.BtnHelp:
		return "help", ""
	}
	if msg.IsCommand() {
		return strings.ToLower(msg.Command()), strings.TrimSpace(msg.CommandArguments())
	}
	return "", ""
}

func (b *Bot) start(ctx context.Context, chatID int64) {
	text := "🏃 Student Fitness Tracker\n\n" +
		"/stats - summary by fitness level\n" +
		"/recent - last " + strconv.Itoa(recentLimit) + " records\n" +
		"/add Name; age; height; weight; running; sit-ups; push-ups\n" +
		"    e.g. /add Siti Aminah; 17; 160; 55; 9.2; 35; 20"
	if b.isAdmin(chatID) {
		text += "\n/delete <id> - remove a record"
	}
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = menu.Main(b.isAdmin(chatID))
	b.send(ctx, m)
}

func (b *Bot) stats(ctx context.Context, chatID int64) {
	d, err := b.svc.Dashboard(ctx)
	if err != nil {
		b.fail(ctx, chatID, err)
		return
	}
	b.reply(ctx, chatID, formatStats(d))
}

func (b *Bot) recent(ctx context.Context, chatID int64) {
	list, err := b.svc.Recent(ctx, recentLimit)
	if err != nil {
		b.fail(ctx, chatID, err)
		return
	}
	if len(list) == 0 {
		b.reply(ctx, chatID, "No students recorded yet.")
		return
	}
	var sb strings.Builder
	for _, s := range list {
		sb.WriteString(formatStudent(s))
		sb.WriteString("\n\n")
	}
	b.reply(ctx, chatID, strings.TrimSpace(sb.String()))
}

func (b *Bot) add(ctx context.Context, chatID int64, args string) {
	values, err := parseAddArgs(args)
	if err != nil {
		b.reply(ctx, chatID, "❌ "+err.Error()+"\nFormat: /add Name; age; height; weight; running; sit-ups; push-ups")
		return
	}
	in, ve := students.ParseForm(values)
	if ve = students.Validate(in, ve); ve != nil {
		b.reply(ctx, chatID, formatValidation(ve))
		return
	}
	st, err := b.svc.Create(ctx, in)
	var vErr *students.ValidationError
	if errors.As(err, &vErr) {
		b.reply(ctx, chatID, formatValidation(vErr))
		return
	}
	if err != nil {
		b.fail(ctx, chatID, err)
		return
	}
	b.reply(ctx, chatID, "✅ Recorded\n\n"+formatStudent(st))
}

func (b *Bot) delete(ctx context.Context, chatID int64, args string) {
	if !b.isAdmin(chatID) {
		b.reply(ctx, chatID, "🚫 Only administrators can delete records.")
		return
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args, "#"), 10, 64)
	if err != nil || id <= 0 {
		b.reply(ctx, chatID, "Usage: /delete <id>")
		return
	}
	switch err := b.svc.Delete(ctx, id); {
	case errors.Is(err, students.ErrNotFound):
		b.reply(ctx, chatID, fmt.Sprintf("Record #%d not found.", id))
	case err != nil:
		b.fail(ctx, chatID, err)
	default:
		b.reply(ctx, chatID, fmt.Sprintf("🗑 Record #%d deleted.", id))
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	b.send(ctx, tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) {
	if _, err := tg.Send(ctx, b.api, c); err != nil {
		b.log.Warn("telegram send failed", zap.Error(err), zap.String("op", opName(ctx)))
	}
}

func (b *Bot) fail(ctx context.Context, chatID int64, err error) {
	b.log.Error("bot command failed", zap.Int64("chat_id", chatID), zap.String("op", opName(ctx)), zap.Error(err))
	b.reply(ctx, chatID, "❌ Something went wrong, please try again later.")
}

func opName(ctx context.Context) string {
	op, _ := ctxutil.Op(ctx)
	return op
}

package tg

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/fitness-tracker/internal/metrics"
	"github.com/Spok95/fitness-tracker/internal/observability"
)

// Sender is the part of *tgbotapi.BotAPI the front-end uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Считаем системными: 5xx, 429, timeout. 400-ки и типичные телеграм-валидации в Sentry не шлём.
func isSystemErr(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	for _, marker := range []string{"429", "500", "502", "503", "504", "timeout", "connection reset"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func Send(ctx context.Context, bot Sender, msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	m, err := bot.Send(msg)
	report(ctx, err)
	return m, err
}

func report(ctx context.Context, err error) {
	if isSystemErr(err) {
		metrics.HandlerErrors.Inc()
		observability.CaptureErrOp(ctx, err)
	}
}

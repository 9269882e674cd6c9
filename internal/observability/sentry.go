package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Spok95/fitness-tracker/internal/ctxutil"
)

// InitSentry is a no-op when dsn is empty. The returned func flushes pending events.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}

// CaptureErrOp tags the event with the operation name from ctx.
func CaptureErrOp(ctx context.Context, err error) {
	if err == nil {
		return
	}
	op, ok := ctxutil.Op(ctx)
	if !ok {
		CaptureErr(err)
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("op", op)
		if chatID, ok := ctxutil.ChatID(ctx); ok {
			scope.SetTag("chat_id", strconv.FormatInt(chatID, 10))
		}
		sentry.CaptureException(err)
	})
}

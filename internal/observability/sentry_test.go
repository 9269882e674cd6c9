package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/Spok95/fitness-tracker/internal/ctxutil"
)

func TestInitSentry_EmptyDSN(t *testing.T) {
	flush, err := InitSentry("", "test", "dev")
	if err != nil {
		t.Fatal(err)
	}
	flush()

	// без клиента захват ошибок просто ничего не делает
	ctx := ctxutil.WithChatID(ctxutil.WithOp(context.Background(), "test.op"), 7)
	CaptureErrOp(ctx, errors.New("boom"))
	CaptureErrOp(context.Background(), errors.New("boom"))
	CaptureErrOp(ctx, nil)
}

func TestInitSentry_BadDSN(t *testing.T) {
	if _, err := InitSentry("not a dsn", "test", "dev"); err == nil {
		t.Fatal("expected error for malformed DSN")
	}
}

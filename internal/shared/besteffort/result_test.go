package besteffort

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Constructors(t *testing.T) {
	t.Parallel()

	done := Done("op", "THYAO.IS", 3)
	assert.True(t, done.OK())
	assert.False(t, done.Failed())
	assert.Equal(t, 3, done.Rows)

	skip := Skip("op", "THYAO.IS", ErrStoreUnavailable)
	assert.False(t, skip.OK())
	assert.False(t, skip.Failed())
	assert.ErrorIs(t, skip.Err, ErrStoreUnavailable)

	fail := Fail("op", "THYAO.IS", errors.New("boom"))
	assert.False(t, fail.OK())
	assert.True(t, fail.Failed())
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(42).String())
}

// TestResult_Log はslogのデフォルトロガーを差し替えるため並列実行しない。
func TestResult_Log(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	Fail("append_price_history", "THYAO.IS", errors.New("db down")).Log(context.Background())
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "op=append_price_history")
	assert.Contains(t, buf.String(), "symbol=THYAO.IS")
	assert.Contains(t, buf.String(), `error="db down"`)

	buf.Reset()
	Skip("record_tick", "THYAO.IS", ErrStoreUnavailable).Log(context.Background())
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `reason="store unavailable"`)

	buf.Reset()
	Done("record_tick", "THYAO.IS", 1).Log(context.Background())
	assert.Contains(t, buf.String(), "rows=1")
}

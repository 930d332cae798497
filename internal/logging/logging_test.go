package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).(nopHandler); !ok {
		t.Error("WithAttrs should return nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup should return nopHandler")
	}
}

func TestSetAndRestore(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { Set(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Set(custom)
	if Logger() != custom {
		t.Fatal("Logger() did not return the logger passed to Set")
	}
	Logger().Warn("lut rejected", "width", 300)
	if !strings.Contains(buf.String(), "lut rejected") {
		t.Errorf("expected output to contain message, got %q", buf.String())
	}

	Set(nil)
	if Logger() == nil {
		t.Fatal("Set(nil) must install the nop logger")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("Set(nil) should produce a disabled logger")
	}
}

func TestConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { Set(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("read")
		}()
		go func() {
			defer wg.Done()
			Set(slog.Default())
			Set(nil)
		}()
	}
	wg.Wait()
}

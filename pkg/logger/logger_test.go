package logger

import (
	"context"
	"testing"
)

func TestInitAndLevels(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	l := Get()
	if l == nil {
		t.Fatal("expected a logger after Init")
	}

	for _, level := range []string{"debug", "info", "warn", "warning", "error", ""} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("SetLevelString(%q) failed: %v", level, err)
		}
	}
	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected an error for an unknown level")
	}

	// Smoke the facade; nothing to assert beyond not panicking.
	ctx := context.Background()
	named := l.Named("test")
	named.Debug(ctx, "debug", String("k", "v"))
	named.Info(ctx, "info", Int("n", 1), Bool("b", true))
	named.Warn(ctx, "warn", Float64("f", 1.5))
	named.Error(ctx, "error", Error(nil), Any("x", struct{}{}))
}

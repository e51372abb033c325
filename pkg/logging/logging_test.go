package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelWarn))

	logger.Info("hidden")
	logger.Warn("settlement rejected", "friend_id", "f1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "settlement rejected") || !strings.Contains(out, "friend_id=f1") {
		t.Errorf("missing warn record: %q", out)
	}
	// 非終端機不輸出顏色
	if strings.Contains(out, "\x1b[") {
		t.Errorf("unexpected ANSI escape in %q", out)
	}
	if !logger.Handler().Enabled(context.Background(), slog.LevelError) {
		t.Error("error level disabled")
	}
}

// Package logging 使用 tint 設定彩色的 slog 結構化日誌
//
// 等級: debug, info, warn, error (預設 info)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup 將預設 logger 設為輸出到 stderr 的 tint handler
func Setup(level string) {
	SetupWithWriter(os.Stderr, ParseLevel(level))
}

// SetupWithWriter 將預設 logger 輸出到 w
func SetupWithWriter(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(NewHandler(w, level)))
}

// NewHandler 回傳 Setup 使用的 tint handler，非終端機時不輸出顏色
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    !isTerminal(w),
	})
}

// ParseLevel 將等級名稱轉成 slog.Level，無法辨識時使用 info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

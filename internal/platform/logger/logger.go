package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/ogurasousui/contratacao-empresa/internal/platform/config"
)

// New は設定に従って slog.Logger を生成し、プロセスのデフォルトロガーとして登録します。
func New(cfg config.LogConfig) *slog.Logger {
	l := newWithWriter(os.Stdout, cfg)
	slog.SetDefault(l)
	return l
}

func newWithWriter(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var h slog.Handler
	if cfg.Format == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(h).With(slog.String("service", "contratacao-empresa"))
}

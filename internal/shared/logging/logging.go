// Package logging owns the bot's process-wide slog logger. Records go to a
// rotating JSON file and, in development, to stdout as text. Code that runs
// before Init (tests, early startup) gets a stderr logger at warn level.
package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultPath = "./logs/whitelist-bot.log"

var (
	current  atomic.Pointer[slog.Logger]
	initOnce sync.Once
	early    = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

// Options configures Init. Zero values pick the defaults below.
type Options struct {
	Path       string `env:"LOG_PATH" envDefault:"./logs/whitelist-bot.log"`
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Console    bool   `env:"LOG_CONSOLE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"10"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"14"`
	Compress   bool   `env:"LOG_COMPRESS"`
}

func (o Options) withDefaults() Options {
	if o.Path == "" {
		o.Path = defaultPath
	}
	if o.Level == "" {
		o.Level = "info"
	}
	if o.MaxSizeMB <= 0 {
		o.MaxSizeMB = 10
	}
	if o.MaxBackups <= 0 {
		o.MaxBackups = 3
	}
	if o.MaxAgeDays <= 0 {
		o.MaxAgeDays = 14
	}
	return o
}

// Init installs the process logger. Only the first call has an effect.
func Init(opt Options) {
	initOnce.Do(func() {
		opt = opt.withDefaults()
		_ = os.MkdirAll(filepath.Dir(opt.Path), 0755)

		lvl := parseLevel(opt.Level)
		sinks := []slog.Handler{
			slog.NewJSONHandler(&lumberjack.Logger{
				Filename:   opt.Path,
				MaxSize:    opt.MaxSizeMB,
				MaxBackups: opt.MaxBackups,
				MaxAge:     opt.MaxAgeDays,
				Compress:   opt.Compress,
			}, &slog.HandlerOptions{Level: lvl}),
		}
		if opt.Console {
			sinks = append(sinks, slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
		}

		l := slog.New(fanout{hs: sinks})
		current.Store(l)
		l.Info("logger initialized", "path", opt.Path, "level", lvl.String(), "console", opt.Console)
	})
}

// L returns the process logger.
func L() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return early
}

// parseLevel accepts slog level names in any case; anything else is info.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// BootstrapFromEnv loads .env if present and calls Init with LOG_* settings.
// ENV=dev turns the console sink on.
func BootstrapFromEnv() {
	_ = godotenv.Load()
	Init(optionsFromEnv())
}

func optionsFromEnv() Options {
	opt, err := env.ParseAs[Options]()
	if err != nil {
		early.Warn("bad logging env, using defaults", "error", err)
		opt = Options{}
	}
	if os.Getenv("ENV") == "dev" {
		opt.Console = true
	}
	return opt.withDefaults()
}

// fanout sends each record to every sink enabled for its level.
type fanout struct{ hs []slog.Handler }

func (f fanout) Enabled(ctx context.Context, lvl slog.Level) bool {
	for _, h := range f.hs {
		if h.Enabled(ctx, lvl) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f.hs {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanout) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanout) each(fn func(slog.Handler) slog.Handler) fanout {
	out := make([]slog.Handler, len(f.hs))
	for i, h := range f.hs {
		out[i] = fn(h)
	}
	return fanout{hs: out}
}

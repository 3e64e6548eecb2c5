package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFanout(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	h := fanout{hs: []slog.Handler{
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	l := slog.New(h).With("component", "test")

	l.Info("hello")
	l.Error("boom")

	if got := strings.Count(infoBuf.String(), "\n"); got != 2 {
		t.Errorf("info handler lines = %d, want 2", got)
	}
	if strings.Contains(errBuf.String(), "hello") {
		t.Error("error handler received info record")
	}
	if !strings.Contains(errBuf.String(), "component=test") {
		t.Errorf("error handler missing attrs: %q", errBuf.String())
	}
}

func TestInit_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bot.log")
	Init(Options{Path: path, Level: "debug"})

	L().Debug("written", "key", "value")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	var last map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil {
		t.Fatalf("last line not JSON: %v", err)
	}
	if last["msg"] != "written" || last["key"] != "value" {
		t.Errorf("last record = %v", last)
	}
}

func TestOptionsFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Options
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: Options{Path: defaultPath, Level: "info", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 14},
		},
		{
			name: "console flag",
			env:  map[string]string{"LOG_CONSOLE": "1", "LOG_LEVEL": "debug"},
			want: Options{Path: defaultPath, Level: "debug", Console: true, MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 14},
		},
		{
			name: "dev env",
			env:  map[string]string{"ENV": "dev", "LOG_PATH": "/tmp/x.log", "LOG_MAX_BACKUPS": "7"},
			want: Options{Path: "/tmp/x.log", Level: "info", Console: true, MaxSizeMB: 10, MaxBackups: 7, MaxAgeDays: 14},
		},
		{
			name: "unparsable falls back",
			env:  map[string]string{"LOG_MAX_SIZE_MB": "huge"},
			want: Options{Path: defaultPath, Level: "info", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 14},
		},
	}

	keys := []string{"ENV", "LOG_PATH", "LOG_LEVEL", "LOG_CONSOLE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS", "LOG_COMPRESS"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range keys {
				t.Setenv(k, "")
				os.Unsetenv(k)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := optionsFromEnv(); got != tt.want {
				t.Errorf("optionsFromEnv() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"", zapcore.InfoLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{" warn ", zapcore.WarnLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWithoutSinksIsNop(t *testing.T) {
	l, err := New(Config{Level: "debug"})
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected a no-op logger")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud", Console: true}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestConsoleOutputHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "warn", Console: true, ConsoleWriter: &buf})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("shown", zap.String("object", "ball"))
	l.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown") || !strings.Contains(out, `"object": "ball"`) {
		t.Errorf("console output = %q", out)
	}
}

func TestFileOutputIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "anim2d.log")
	cfg := Config{Level: "debug", File: DefaultFileConfig(path)}
	cfg.File.Compress = false
	l, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.Named("sim").Debug("event dispatched", zap.Int64("tick", 40))
	l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, data)
	}
	if rec["msg"] != "event dispatched" || rec["logger"] != "sim" || rec["level"] != "debug" {
		t.Errorf("record = %v", rec)
	}
	if rec["tick"] != float64(40) {
		t.Errorf("tick = %v, want 40", rec["tick"])
	}
}

func TestInitReplacesProcessLogger(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	var buf bytes.Buffer
	if err := Init(Config{Level: "info", Console: true, ConsoleWriter: &buf}); err != nil {
		t.Fatal(err)
	}
	Log.Info("hello")
	Sync()
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("process logger output = %q", buf.String())
	}
	if err := Init(Config{Level: "nope"}); err == nil {
		t.Error("expected Init error")
	}
}

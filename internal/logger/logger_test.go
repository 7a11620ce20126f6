package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, LevelInfo))

	logger.Info("design rendered", "width", 800)

	line := strings.TrimRight(buf.String(), "\n")
	if !strings.Contains(line, "[INFO] design rendered | width=800") {
		t.Errorf("unexpected line %q", line)
	}
	if !strings.HasSuffix(strings.Split(line, " [")[0], "Z") {
		t.Errorf("expected UTC timestamp ending with Z, got %q", line)
	}
}

func TestHandler_NoAttrs(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler(&buf, LevelInfo)).Info("no attrs")
	if strings.Contains(buf.String(), "|") {
		t.Errorf("expected no pipe separator without attrs, got %q", buf.String())
	}
}

func TestHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, LevelWarn))

	logger.Info("should be filtered")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Error("info message should have been filtered at warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn message should appear at warn level")
	}
}

func TestHandler_CustomLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, LevelTrace))

	Trace(logger, "trace msg")
	Fail(logger, "fail msg")

	out := buf.String()
	if !strings.Contains(out, "[TRACE] trace msg") || !strings.Contains(out, "[FAIL] fail msg") {
		t.Errorf("missing custom levels in %q", out)
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, LevelInfo)).With("session", "abc").WithGroup("req")

	logger.Info("hit", "path", "/")

	if !strings.Contains(buf.String(), "| req.session=abc, req.path=/") {
		t.Errorf("unexpected attrs in %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace": LevelTrace, "DEBUG": LevelDebug, "info": LevelInfo,
		"Warn": LevelWarn, "error": LevelError, "fail": LevelFail, "bogus": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "designer.log")
	logger, closer := NewLogger(path, LevelInfo, 1)
	logger.Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "[INFO] to file") {
		t.Errorf("log file content = %q", data)
	}
}

func TestNewLoggerStderr(t *testing.T) {
	logger, closer := NewLogger("", LevelInfo, 1)
	if logger == nil {
		t.Fatal("nil logger")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

package logging

import (
	"bufio"
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func lastJSONLine(t *testing.T, data []byte) map[string]any {
	t.Helper()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var last string
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			last = line
		}
	}
	if last == "" {
		t.Fatalf("no log lines found")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal log line %q: %v", last, err)
	}
	return m
}

func TestNew_JSONConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := New(Options{Level: "debug", Format: "json", Output: &buf})
	defer closeFn()

	WithComponent(logger, "editor").Debug("command applied", slog.String("command", "insert"))

	m := lastJSONLine(t, buf.Bytes())
	if m["app"] != "formbuilder" || m["component"] != "editor" || m["command"] != "insert" {
		t.Fatalf("unexpected attributes: %v", m)
	}
	if m["msg"] != "command applied" {
		t.Fatalf("unexpected msg: %v", m["msg"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Options{Level: "warn", Output: &buf})
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("level filter not applied: %q", out)
	}
}

func TestNew_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formbuilder.log")
	var console bytes.Buffer
	logger, closeFn := New(Options{Level: "info", File: path, Output: &console})
	logger.Info("saved", slog.Int("pages", 2))
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	m := lastJSONLine(t, data)
	if m["msg"] != "saved" || m["pages"] != float64(2) {
		t.Fatalf("unexpected file record: %v", m)
	}
	if !strings.Contains(console.String(), "saved") {
		t.Fatalf("console sink missed the record: %q", console.String())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "error")
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvSource, "yes")
	t.Setenv(EnvFile, " /tmp/fb.log ")

	opts := FromEnv()
	if opts.Level != "error" || opts.Format != "json" || !opts.AddSource || opts.File != "/tmp/fb.log" {
		t.Fatalf("unexpected options: %#v", opts)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	scrub := func(s string) string { return strings.ReplaceAll(s, "hunter2", "[REDACTED]") }
	log := Setup(EnvProd, "info", &buf, scrub)

	log.Debug("hidden")
	log.Info("login failed for hunter2", "secret", "hunter2", Err(errors.New("bad hunter2")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 line (debug filtered), got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if strings.Contains(lines[0], "hunter2") {
		t.Errorf("secret leaked: %s", lines[0])
	}
	if rec["msg"] != "login failed for [REDACTED]" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["error"] != "bad [REDACTED]" {
		t.Errorf("error = %v", rec["error"])
	}
}

func TestSetup_Pretty(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	log := Setup(EnvLocal, "debug", &buf, nil).With("run_id", "r1")

	log.Debug("checking out", "branch", "feature/x")

	out := buf.String()
	for _, want := range []string{"DEBUG:", "checking out", `"branch": "feature/x"`, `"run_id": "r1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestPrettyHandler_GroupAndError(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	h := PrettyHandlerOptions{}.NewPrettyHandler(&buf)
	log := slog.New(h).WithGroup("looker")

	log.Warn("retrying", "error", errors.New("status 503"))

	out := buf.String()
	if !strings.Contains(out, `"looker.error": "status 503"`) {
		t.Errorf("output = %s", out)
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing happens")
}
